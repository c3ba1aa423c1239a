// Package wordpress reads site content from a WordPress installation.
//
// Content is served by an ordered list of tiers: the GeNeGo plugin namespace
// (genego/v1) first, then the standard REST namespace (wp/v2). Callers walk
// the tiers in order and fall back to the static Fallback table when every
// tier fails.
package wordpress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/genego-hq/genego-site/internal/domain"
	"github.com/genego-hq/genego-site/pkg/httpclient"
)

const (
	pluginNamespace   = "/wp-json/genego/v1"
	standardNamespace = "/wp-json/wp/v2"

	placeholderHost = "your-wordpress-site.com"

	defaultPageTTL = 60 * time.Second
	defaultListTTL = 300 * time.Second
)

var (
	// ErrNotFound reports a well-formed response without matching content.
	ErrNotFound = errors.New("content not found")
	// ErrUnsupported reports that a tier has no endpoint for the request.
	ErrUnsupported = errors.New("not supported by tier")
)

// Tier is one content source in the fallback chain.
type Tier interface {
	Name() domain.Source
	Home(ctx context.Context) (domain.Home, error)
	Page(ctx context.Context, slug string) (domain.Page, error)
	Pages(ctx context.Context) ([]domain.MenuItem, error)
	Post(ctx context.Context, slug string) (domain.Post, error)
	PostsByCategory(ctx context.Context, categorySlug string) ([]domain.Post, error)
	Menu(ctx context.Context, slug string) (domain.Menu, error)
}

// Cache stores successful response bodies for a revalidation window.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// HTTPClient aliases the shared httpclient.Client interface.
type HTTPClient = httpclient.Client

// Options configures the network tiers.
type Options struct {
	BaseURL string
	Headers map[string]string
	// PageTTL applies to single items and post lists; ListTTL to page lists,
	// category lookups and menus.
	PageTTL time.Duration
	ListTTL time.Duration
	Cache   Cache
	Log     Logger
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d body: %s", e.URL, e.StatusCode, e.Body)
}

// NormalizeBaseURL trims the configured URL down to the site root. Values
// pointing into the REST API (".../wp-json/wp/v2") are cut at /wp-json.
func NormalizeBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if idx := strings.Index(strings.ToLower(base), "/wp-json"); idx >= 0 {
		base = base[:idx]
	}
	return strings.TrimRight(base, "/")
}

// IsPlaceholder reports whether the URL is still the template placeholder.
func IsPlaceholder(raw string) bool {
	return strings.Contains(strings.ToLower(raw), placeholderHost)
}

// Configured reports whether raw selects a usable content provider.
func Configured(raw string) bool {
	return NormalizeBaseURL(raw) != "" && !IsPlaceholder(raw)
}

// DefaultTiers wires the plugin and standard tiers for the configured
// provider. It returns nil when no provider is configured, which puts
// callers into permanent fallback mode.
func DefaultTiers(client HTTPClient, opts Options) []Tier {
	if !Configured(opts.BaseURL) {
		return nil
	}
	if client == nil {
		client = httpclient.NewRestyClient(15*time.Second, "")
	}
	f := newFetcher(client, opts)
	return []Tier{
		newPluginTier(f),
		newStandardTier(f),
	}
}
