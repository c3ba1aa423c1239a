package diagnostics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/genego-hq/genego-site/pkg/httpclient"
)

func TestProbeNotConfigured(t *testing.T) {
	res := NewProber(nil, "  ", 0, nil).Probe(context.Background())
	if res.Success || res.ErrorType != ErrorNotConfigured || res.Instructions == "" {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestProbePlaceholder(t *testing.T) {
	res := NewProber(nil, "https://your-wordpress-site.com/wp-json/wp/v2", 0, nil).Probe(context.Background())
	if res.Success || res.ErrorType != ErrorPlaceholder {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestProbeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/pages" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":4,"slug":"home","title":{"rendered":"Home &amp; Start"}},{"id":5,"slug":"kontakt","title":{"rendered":"Kontakt"}}]`))
	}))
	defer srv.Close()

	// API-style URL is normalized to the site root.
	res := NewProber(httpclient.NewRestyClient(time.Second, ""), srv.URL+"/wp-json/wp/v2/", time.Second, nil).Probe(context.Background())
	if !res.Success {
		t.Fatalf("expected success, got %#v", res)
	}
	if res.PagesFound != 2 || res.SamplePage == nil || res.SamplePage.Title != "Home & Start" {
		t.Fatalf("unexpected result %#v", res)
	}
	if res.URL != srv.URL+"/wp-json/wp/v2/pages" {
		t.Fatalf("url = %s", res.URL)
	}
}

func TestProbeHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html><head><title>Wartungsmodus</title></head><body>" + strings.Repeat("x", 500) + "</body></html>"))
	}))
	defer srv.Close()

	res := NewProber(httpclient.NewRestyClient(time.Second, ""), srv.URL, time.Second, nil).Probe(context.Background())
	if res.Success || res.ErrorType != ErrorHTTPStatus || res.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected result %#v", res)
	}
	if res.Details != "Wartungsmodus" {
		t.Fatalf("details = %q", res.Details)
	}
	if len(res.Troubleshooting) == 0 {
		t.Fatal("expected troubleshooting hints")
	}
}

func TestProbeDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 300)))
	}))
	defer srv.Close()

	res := NewProber(httpclient.NewRestyClient(time.Second, ""), srv.URL, time.Second, nil).Probe(context.Background())
	if res.ErrorType != ErrorDecode {
		t.Fatalf("unexpected result %#v", res)
	}
	if len(res.Details) != maxDetailsLen {
		t.Fatalf("details length = %d", len(res.Details))
	}
}

func TestProbeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	}))
	defer srv.Close()

	start := time.Now()
	res := NewProber(httpclient.NewRestyClient(5*time.Second, ""), srv.URL, 100*time.Millisecond, nil).Probe(context.Background())
	if res.ErrorType != ErrorTimeout {
		t.Fatalf("unexpected result %#v", res)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("probe ignored its timeout")
	}
}

func TestProbeNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	res := NewProber(httpclient.NewRestyClient(time.Second, ""), url, time.Second, nil).Probe(context.Background())
	if res.ErrorType != ErrorNetwork || res.Details == "" {
		t.Fatalf("unexpected result %#v", res)
	}
}
