package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/examhall/backend/internal/infrastructure/config"
	"github.com/examhall/backend/internal/platform/logger"
	"github.com/examhall/backend/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "examhall",
	Short:         "Test generation and scoring backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DATABASE_PATH)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
}

// resolveDBPath returns the --db flag when set, else the configured path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) string {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p
	}
	return cfg.DatabasePath
}

// openStore opens the database for the tooling commands.
func openStore(cmd *cobra.Command) (*store.SQLiteStore, *config.Config, *logger.Logger, error) {
	cfg := config.LoadTooling()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}
	s, err := store.NewSQLite(resolveDBPath(cmd, cfg))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	return s, cfg, log, nil
}
