package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"buildwith.dev/internal/fixtures"
	"buildwith.dev/internal/handlers"
	"buildwith.dev/internal/livereload"
	"buildwith.dev/internal/services"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the web server",
	Long: `Start the web server.

With --live-reload and the fixtures source, editing a file under the data
directory reloads every open page.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().String("source", "fixtures", "content source (api, fixtures)")
	serveCmd.Flags().String("api-url", "", "backend API base URL")
	serveCmd.Flags().String("data", "data", "fixture directory")
	serveCmd.Flags().Bool("live-reload", false, "reload open pages when fixture files change")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("source", serveCmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("api.base_url", serveCmd.Flags().Lookup("api-url"))
	_ = viper.BindPFlag("data.path", serveCmd.Flags().Lookup("data"))
	_ = viper.BindPFlag("dev.live_reload", serveCmd.Flags().Lookup("live-reload"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := services.OpenSource(cfg, logger)
	if err != nil {
		return err
	}

	deps := handlers.NewDeps(cfg, source, logger)
	writeTimeout := cfg.Server.WriteTimeout

	if cfg.Dev.LiveReload {
		hub := livereload.NewHub(logger)
		deps.LiveReload = hub
		go hub.Run(ctx)

		if store, ok := source.(*fixtures.Store); ok {
			go func() {
				err := store.Watch(ctx, func(path string) {
					logger.Info("content changed", zap.String("file", path))
					hub.Broadcast()
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("fixture watcher stopped", zap.Error(err))
				}
			}()
		} else {
			logger.Warn("live reload only watches the fixtures source", zap.String("source", cfg.Source))
		}

		// Reload sockets outlive any write deadline.
		writeTimeout = 0
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handlers.SetupRoutes(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Addr),
			zap.String("source", cfg.Source),
			zap.Bool("live_reload", cfg.Dev.LiveReload),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if deps.LiveReload != nil {
		deps.LiveReload.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
