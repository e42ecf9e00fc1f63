package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/viper"

	"buildwith.dev/internal/config"
	"buildwith.dev/internal/export"
	"buildwith.dev/internal/handlers"
	"buildwith.dev/internal/logging"
	"buildwith.dev/internal/services"
	"buildwith.dev/static"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: generate <output-dir>")
		fmt.Println("       reads .portfolio.yml and PORTFOLIO_* like the server does")
		os.Exit(1)
	}

	outputDir := os.Args[1]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, outputDir string) error {
	v := viper.New()
	config.SetDefaults(v)
	config.Bind(v)
	// Exported pages are static, so the reload client is never wanted.
	v.Set("dev.live_reload", false)

	if _, err := config.ReadInConfig(v, ""); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.New("warn", cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	source, err := services.OpenSource(cfg, logger)
	if err != nil {
		return err
	}

	exporter := &export.Exporter{
		Handler:   handlers.SetupRoutes(handlers.NewDeps(cfg, source, logger)),
		Source:    source,
		Static:    static.FS,
		OutputDir: outputDir,
		Progress:  os.Stdout,
	}

	report, err := exporter.Export(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Done! %d pages, %d assets\n", report.Pages, report.Assets)
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d pages failed: %v", len(report.Failed), report.Failed)
	}
	return nil
}
