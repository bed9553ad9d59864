package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, log, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		// Migrate is idempotent; NewSQLite has usually applied it already.
		if err := s.Migrate(cmd.Context()); err != nil {
			return err
		}
		log.Info("schema up to date")
		return nil
	},
}
