package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/db"
	"github.com/jonathan/job-assistant/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume analysis, answer generation, job search and application tracking endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := a.cfg.Port
	if servePort > 0 {
		port = servePort
	}

	deps := server.Dependencies{}

	if a.cfg.DatabaseURL != "" {
		store, err := openStore(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		deps.Store = store
	} else {
		a.logger.Warn("DATABASE_URL not set; user and application routes are disabled")
	}

	analyzer, err := a.analyzer(ctx)
	if err != nil {
		return err
	}
	deps.Analyzer = analyzer

	pipeline, err := a.pipeline(false)
	if err != nil {
		return err
	}
	deps.Matcher = pipeline

	a.logger.Info("Starting job assistant",
		zap.Int("port", port),
		zap.String("llm_provider", a.cfg.LLM.Provider),
		zap.Bool("database", deps.Store != nil),
	)

	srv := server.New(server.Config{Port: port, RateLimit: a.cfg.RateLimit}, deps, a.logger)
	return srv.Start(ctx)
}

// openStore connects to Postgres and creates the tables if needed.
func openStore(ctx context.Context, databaseURL string) (*db.DB, error) {
	store, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return store, nil
}
