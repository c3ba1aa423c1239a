package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/genego-hq/genego-site/pkg/httpclient"
)

// fetcher performs cached JSON GETs against one WordPress installation.
type fetcher struct {
	client  HTTPClient
	baseURL string
	headers map[string]string
	pageTTL time.Duration
	listTTL time.Duration
	cache   Cache
	log     Logger
}

func newFetcher(client HTTPClient, opts Options) *fetcher {
	f := &fetcher{
		client:  client,
		baseURL: NormalizeBaseURL(opts.BaseURL),
		headers: opts.Headers,
		pageTTL: opts.PageTTL,
		listTTL: opts.ListTTL,
		cache:   opts.Cache,
		log:     ensureLogger(opts.Log),
	}
	if f.pageTTL <= 0 {
		f.pageTTL = defaultPageTTL
	}
	if f.listTTL <= 0 {
		f.listTTL = defaultListTTL
	}
	return f
}

func (f *fetcher) pluginURL(path string) string   { return f.baseURL + pluginNamespace + path }
func (f *fetcher) standardURL(path string) string { return f.baseURL + standardNamespace + path }

// getJSON decodes the body at url into out. Successful bodies are cached for ttl.
func (f *fetcher) getJSON(ctx context.Context, url string, ttl time.Duration, out any) error {
	if body, ok := f.cached(ctx, url); ok {
		if err := json.Unmarshal(body, out); err == nil {
			return nil
		}
	}

	resp, err := f.client.Get(ctx, url, f.headers)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}

	body := resp.Body()
	if !httpclient.IsSuccess(resp) {
		return &StatusError{URL: url, StatusCode: resp.StatusCode(), Body: responseSnippet(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}

	f.store(ctx, url, body, ttl)
	return nil
}

func (f *fetcher) cached(ctx context.Context, key string) ([]byte, bool) {
	if f.cache == nil {
		return nil, false
	}
	body, ok, err := f.cache.Get(ctx, key)
	if err != nil {
		f.log.WarnObj("response cache read failed", "cache_error", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}
	return body, ok
}

func (f *fetcher) store(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if f.cache == nil {
		return
	}
	if err := f.cache.Put(ctx, key, body, ttl); err != nil {
		f.log.WarnObj("response cache write failed", "cache_error", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
