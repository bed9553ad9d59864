package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/examhall/backend/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load users, subjects, parts and questions from a YAML fixture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open fixture: %w", err)
		}
		defer f.Close()

		fixture, err := seed.Load(f)
		if err != nil {
			return err
		}

		s, _, log, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := seed.Apply(cmd.Context(), s, fixture)
		if err != nil {
			return fmt.Errorf("apply fixture: %w", err)
		}
		log.Info("fixture loaded",
			"users", res.Users,
			"subjects", res.Subjects,
			"parts", res.Parts,
			"questions", res.Questions,
		)
		return nil
	},
}
