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
	"go.uber.org/zap"

	"fluffymud/commands"
	"fluffymud/internal/config"
	"fluffymud/internal/game"
	"fluffymud/internal/logging"
	"fluffymud/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MUD server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	profiles, err := store.Open(cfg.Storage.ProfilesPath)
	if err != nil {
		return fmt.Errorf("open profile store: %w", err)
	}
	defer profiles.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := game.NewMetrics()
	if cfg.Metrics.Addr != "" {
		srv := startMetricsServer(cfg.Metrics, metrics, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	return game.ListenAndServe(ctx, game.ServerConfig{
		Addr:             cfg.Server.Addr,
		AccountsPath:     cfg.Storage.AccountsPath,
		AreasPath:        cfg.Storage.AreasPath,
		AdminAccount:     cfg.Server.AdminAccount,
		TLS:              cfg.Server.TLS,
		CertFile:         cfg.Server.CertFile,
		KeyFile:          cfg.Server.KeyFile,
		DisabledCommands: cfg.Game.DisabledCommands,
	}, game.Deps{
		Dispatcher: commands.Dispatch,
		Logger:     logger,
		Metrics:    metrics,
		Profiles:   profiles,
	})
}

func startMetricsServer(cfg config.MetricsConfig, metrics *game.Metrics, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, metrics.Handler())
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics listening", zap.String("addr", cfg.Addr), zap.String("path", cfg.Path))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", zap.Error(err))
		}
	}()
	return srv
}
