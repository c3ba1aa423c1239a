package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/genego-hq/genego-site/internal/config"
	"github.com/genego-hq/genego-site/internal/content"
	"github.com/genego-hq/genego-site/internal/diagnostics"
	"github.com/genego-hq/genego-site/internal/logger"
	"github.com/genego-hq/genego-site/internal/storage"
	"github.com/genego-hq/genego-site/internal/warmer"
	"github.com/genego-hq/genego-site/internal/web"
	"github.com/genego-hq/genego-site/pkg/httpclient"
	"github.com/genego-hq/genego-site/pkg/publishers"
	"github.com/genego-hq/genego-site/pkg/wordpress"
)

// warmCategories are the post categories rendered by the fixed routes.
var warmCategories = []string{"bildergalerie", "projekt"}

// Site represents the website runtime. It owns the response cache, the
// contact publishers and the HTTP server.
type Site struct {
	cfg      *config.Config
	resolver *content.Resolver
	warmer   *warmer.Service
	fanout   *publishers.Fanout
	server   *http.Server
	log      logger.Logger
	store    storage.Store
}

// NewSite builds the site runtime from config.
func NewSite(ctx context.Context, cfg *config.Config, log logger.Logger) (*Site, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := storage.NewStore(cfg.CacheType, cfg.BBoltPath, storage.Options{
		CleanupInterval: cfg.CacheCleanupInterval,
		RedisAddr:       cfg.RedisAddr,
		RedisPassword:   cfg.RedisPassword,
		RedisDB:         cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.CacheType,
		"path":                     cfg.BBoltPath,
		"cleanup_interval_seconds": int(cfg.CacheCleanupInterval.Seconds()),
	})

	fallback := wordpress.DefaultFallback()
	if strings.TrimSpace(cfg.FallbackFile) != "" {
		if fallback, err = wordpress.LoadFallback(cfg.FallbackFile); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("load fallback content: %w", err)
		}
		log.InfoObj("fallback content loaded", "fallback_file", cfg.FallbackFile)
	}

	client := httpclient.NewRestyClient(cfg.RequestTimeout, cfg.WordPressUserAgent)
	tiers := wordpress.DefaultTiers(client, wordpress.Options{
		BaseURL: cfg.WordPressAPIURL,
		PageTTL: cfg.PageTTL,
		ListTTL: cfg.ListTTL,
		Cache:   store,
		Log:     log,
	})
	resolver := content.NewResolver(tiers, fallback, log)
	if resolver.FallbackMode() {
		log.WarnObj("wordpress not configured; serving fallback content", "wordpress_api_url", cfg.WordPressAPIURL)
	} else {
		tierNames := make([]string, 0, len(tiers))
		for _, t := range tiers {
			tierNames = append(tierNames, string(t.Name()))
		}
		log.InfoObj("content tiers configured", "content_meta", map[string]any{
			"base_url": wordpress.NormalizeBaseURL(cfg.WordPressAPIURL),
			"tiers":    tierNames,
		})
	}

	fanout, err := buildPublishers(ctx, cfg, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	prober := diagnostics.NewProber(client, cfg.WordPressAPIURL, cfg.DiagnosticTimeout, log)
	srv, err := web.NewServer(web.Options{
		SiteName:       cfg.AppName,
		Locale:         cfg.SiteLocale,
		Content:        resolver,
		Prober:         prober,
		Publisher:      fanout,
		RequestTimeout: handlerTimeout(cfg.RequestTimeout),
		Log:            log,
	})
	if err != nil {
		_ = fanout.Close()
		_ = store.Close()
		return nil, fmt.Errorf("init web server: %w", err)
	}

	return &Site{
		cfg:      cfg,
		resolver: resolver,
		warmer:   warmer.NewService(resolver, warmCategories, log),
		fanout:   fanout,
		server: &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           srv.Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		log:   log,
		store: store,
	}, nil
}

// handlerTimeout bounds a page request. A page resolves through the plugin
// and standard tiers, each limited by the upstream timeout, and still needs
// room to render the fallback after both have failed.
func handlerTimeout(upstream time.Duration) time.Duration {
	return 3 * upstream
}

// buildPublishers loads the optional contact publishers. No file means
// submissions are only logged.
func buildPublishers(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if strings.TrimSpace(cfg.PublishersFile) == "" {
		log.InfoObj("no publishers file configured; contact submissions are logged only", "publishers_file", "")
		return publishers.NewFanout(nil), nil
	}
	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Handler exposes the routed HTTP handler.
func (s *Site) Handler() http.Handler {
	return s.server.Handler
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *Site) Run(ctx context.Context) error {
	if s == nil || s.server == nil {
		return fmt.Errorf("site is not initialized")
	}
	defer s.closeResources()

	if s.cfg.WarmInterval > 0 && !s.resolver.FallbackMode() {
		warmCtx, stopWarm := context.WithCancel(ctx)
		defer stopWarm()
		go s.warmer.Loop(warmCtx, s.cfg.WarmInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoObj("http server starting", "site_state", map[string]any{
			"addr":             s.server.Addr,
			"fallback_mode":    s.resolver.FallbackMode(),
			"publishers_count": s.fanout.Size(),
			"warm_interval":    s.cfg.WarmInterval.String(),
		})
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.log.InfoObj("http server shutting down", "reason", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// closeResources releases publishers and the cache, logging any errors.
func (s *Site) closeResources() {
	if err := s.fanout.Close(); err != nil {
		s.log.ErrorObj("publishers close failed", "error", err)
	}
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.log.ErrorObj("storage close failed", "error", err)
	}
}
