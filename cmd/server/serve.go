package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/examhall/backend/internal/api"
	"github.com/examhall/backend/internal/auth"
	"github.com/examhall/backend/internal/infrastructure/config"
	"github.com/examhall/backend/internal/platform/logger"
	"github.com/examhall/backend/internal/service"
	"github.com/examhall/backend/internal/store"

	_ "github.com/examhall/backend/docs" // generated swagger docs
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
}

func serve(cmd *cobra.Command) error {
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(resolveDBPath(cmd, cfg))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	access := service.NewAccess(db)
	handler := api.NewHandler(api.Services{
		Builder:   service.NewBuilder(db, log.With("component", "builder")),
		Intake:    service.NewIntake(db, service.NewScorer(log.With("component", "scorer")), log.With("component", "intake")),
		Stats:     service.NewAggregator(db, cfg.StatsConcurrency),
		Questions: service.NewQuestionBank(db, access, log.With("component", "questions")),
		Access:    access,
	}, db, log)
	authn := api.Authenticate(auth.NewTokens(cfg.JWTSecret, 0), db, log)

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           api.NewRouter(handler, authn, cfg.CORSOrigin),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			log.Error("server forced to shutdown", "error", err)
		}
	}()

	log.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
