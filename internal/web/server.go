// Package web serves the public site pages and the JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/genego-hq/genego-site/internal/diagnostics"
	"github.com/genego-hq/genego-site/internal/domain"
	"github.com/genego-hq/genego-site/internal/logger"
	"github.com/genego-hq/genego-site/pkg/publishers"
)

//go:embed templates/*.html static/*
var assets embed.FS

const defaultRequestTimeout = 30 * time.Second

// ContentSource resolves site content. Its methods never fail.
type ContentSource interface {
	Home(ctx context.Context) domain.Home
	Page(ctx context.Context, slug string) domain.Page
	Pages(ctx context.Context) []domain.MenuItem
	Post(ctx context.Context, slug string) domain.Post
	PostsByCategory(ctx context.Context, categorySlug string) []domain.Post
	FallbackMode() bool
}

// Prober runs the WordPress connectivity check.
type Prober interface {
	Probe(ctx context.Context) diagnostics.Result
}

// ContactPublisher forwards contact submissions downstream.
type ContactPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
	Size() int
}

// Options configures a Server.
type Options struct {
	SiteName       string
	Locale         string
	Content        ContentSource
	Prober         Prober
	Publisher      ContactPublisher
	RequestTimeout time.Duration
	Log            logger.Logger
}

// Server holds the handlers and parsed templates.
type Server struct {
	siteName  string
	locale    string
	content   ContentSource
	prober    Prober
	publisher ContactPublisher
	timeout   time.Duration
	log       logger.Logger
	views     *views
	now       func() time.Time
}

// NewServer validates options and parses the page templates.
func NewServer(opts Options) (*Server, error) {
	if opts.Content == nil {
		return nil, errors.New("content source must not be nil")
	}
	if opts.Prober == nil {
		return nil, errors.New("prober must not be nil")
	}
	if opts.SiteName == "" {
		opts.SiteName = "GeNeGo"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	v, err := parseViews(assets)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{
		siteName:  opts.SiteName,
		locale:    opts.Locale,
		content:   opts.Content,
		prober:    opts.Prober,
		publisher: opts.Publisher,
		timeout:   opts.RequestTimeout,
		log:       logger.Ensure(opts.Log),
		views:     v,
		now:       time.Now,
	}, nil
}

// Routes builds the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	static, _ := fs.Sub(assets, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/healthz", s.health)
	r.Route("/api/wordpress", func(r chi.Router) {
		r.Get("/home", s.apiHome)
		r.Get("/pages", s.apiPages)
		r.Get("/pages/{slug}", s.apiPage)
		r.Get("/test", s.apiTest)
	})

	r.Get("/", s.homePage)
	r.Get("/projekt", s.projectPage)
	r.Get("/projekt/{slug}", s.postPage)
	r.Get("/kontakt", s.contactPage)
	r.Post("/kontakt", s.submitContact)
	r.Get("/wordpress-test", s.diagnosticPage)
	r.Get("/{slug}", s.slugPage)
	return r
}
