package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/genego-hq/genego-site/internal/app"
	"github.com/genego-hq/genego-site/internal/config"
	"github.com/genego-hq/genego-site/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "site start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("site starting", "config", map[string]any{
		"app_name":   cfg.AppName,
		"env":        cfg.Env,
		"http_addr":  cfg.HTTPAddr,
		"cache_type": cfg.CacheType,
		"locale":     cfg.SiteLocale,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	site, err := app.NewSite(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize site", "error", err)
		return err
	}

	if err := site.Run(ctx); err != nil {
		return fmt.Errorf("site run: %w", err)
	}

	return nil
}
