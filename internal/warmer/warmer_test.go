package warmer

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/genego-hq/genego-site/internal/domain"
)

// fakeContent records every lookup and serves fallback for listed slugs.
type fakeContent struct {
	mu        sync.Mutex
	calls     []string
	fallback  map[string]bool
	offline   bool
	homeStale bool
}

func (f *fakeContent) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeContent) Home(context.Context) domain.Home {
	f.record("home")
	if f.homeStale {
		return domain.Home{Source: domain.SourceFallback}
	}
	return domain.Home{Source: domain.SourcePlugin}
}

func (f *fakeContent) Page(_ context.Context, slug string) domain.Page {
	f.record("page:" + slug)
	if f.fallback[slug] {
		return domain.Page{Slug: slug, Source: domain.SourceFallback, Missing: true}
	}
	return domain.Page{Slug: slug, Source: domain.SourcePlugin}
}

func (f *fakeContent) Pages(context.Context) []domain.MenuItem {
	f.record("pages")
	return []domain.MenuItem{{Slug: "home", URL: "/"}, {Slug: "unser-projekt", URL: "/unser-projekt"}, {URL: "/extern"}}
}

func (f *fakeContent) PostsByCategory(_ context.Context, slug string) []domain.Post {
	f.record("category:" + slug)
	return []domain.Post{{Slug: "a"}, {Slug: "b"}}
}

func (f *fakeContent) FallbackMode() bool { return f.offline }

func (f *fakeContent) snapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func TestRunResolvesEverything(t *testing.T) {
	src := &fakeContent{}
	svc := NewService(src, []string{"projekt", "bildergalerie"}, nil)

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"home", "pages", "page:home", "page:unser-projekt", "category:projekt", "category:bildergalerie"}
	got := src.snapshot()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", got, want)
	}
}

func TestRunReportsFallbackItems(t *testing.T) {
	src := &fakeContent{fallback: map[string]bool{"unser-projekt": true}, homeStale: true}
	err := NewService(src, nil, nil).Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "home served from fallback") || !strings.Contains(err.Error(), "page unser-projekt") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunSkipsInFallbackMode(t *testing.T) {
	src := &fakeContent{offline: true}
	if err := NewService(src, []string{"projekt"}, nil).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls := src.snapshot(); len(calls) != 0 {
		t.Fatalf("expected no lookups, got %v", calls)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &fakeContent{}
	if err := NewService(src, []string{"projekt"}, nil).Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestNilServiceFails(t *testing.T) {
	var svc *Service
	if err := svc.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoopExitsOnCancel(t *testing.T) {
	src := &fakeContent{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewService(src, nil, nil).Loop(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit")
	}
	if n := strings.Count(strings.Join(src.snapshot(), ","), "pages"); n < 2 {
		t.Fatalf("expected repeated passes, got %d", n)
	}
}
