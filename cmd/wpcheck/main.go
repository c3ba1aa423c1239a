package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/genego-hq/genego-site/internal/config"
	"github.com/genego-hq/genego-site/internal/diagnostics"
	"github.com/genego-hq/genego-site/internal/logger"
	"github.com/genego-hq/genego-site/pkg/httpclient"
)

func main() {
	ok, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wpcheck failed: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(2)
	}
}

func run() (bool, error) {
	url := flag.String("url", "", "WordPress site URL (defaults to WORDPRESS_API_URL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return false, fmt.Errorf("load config: %w", err)
	}
	if *url != "" {
		cfg.WordPressAPIURL = *url
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return false, fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := httpclient.NewRestyClient(cfg.DiagnosticTimeout, cfg.WordPressUserAgent)
	res := diagnostics.NewProber(client, cfg.WordPressAPIURL, cfg.DiagnosticTimeout, log).Probe(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return false, fmt.Errorf("encode result: %w", err)
	}
	return res.Success, nil
}
