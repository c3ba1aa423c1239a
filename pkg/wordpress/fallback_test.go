package wordpress

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/genego-hq/genego-site/internal/domain"
)

func TestFallbackPagePlaceholder(t *testing.T) {
	fb := DefaultFallback()

	known := fb.Page("unser-projekt")
	if known.Missing || known.Title != "Unser Projekt" || known.Source != domain.SourceFallback {
		t.Fatalf("unexpected known page %#v", known)
	}

	missing := fb.Page("nonexistent-page")
	if !missing.Missing {
		t.Fatal("expected Missing placeholder")
	}
	if missing.Title != "Seite nicht gefunden" || missing.Content != "<p>Diese Seite ist noch nicht verfügbar.</p>" {
		t.Fatalf("unexpected placeholder %#v", missing)
	}
}

func TestFallbackPostCarriesSlug(t *testing.T) {
	fb := DefaultFallback()
	now := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	fb.now = func() time.Time { return now }

	post := fb.Post("spatenstich")
	if post.Slug != "spatenstich" || post.Title != "Blogpost nicht gefunden" || !post.Date.Equal(now) {
		t.Fatalf("unexpected post %#v", post)
	}
}

func TestFallbackPagesAreCopies(t *testing.T) {
	fb := DefaultFallback()
	pages := fb.Pages()
	if len(pages) != 3 || pages[0].URL != "/" || pages[1].URL != "/projekt" || pages[2].URL != "/kontakt" {
		t.Fatalf("unexpected pages %#v", pages)
	}
	pages[0].Title = "changed"
	if fb.Pages()[0].Title != "Home" {
		t.Fatal("fallback table was mutated through returned slice")
	}
}

func TestLoadFallbackMergesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fallback.yaml")
	content := `
home:
  title: Willkommen
pages:
  - slug: agenda
    title: Agenda
    content: "<p>Termine folgen.</p>"
menu:
  - title: Start
    slug: home
    url: /start
  - title: Agenda
    slug: agenda
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fb, err := LoadFallback(path)
	if err != nil {
		t.Fatalf("LoadFallback: %v", err)
	}
	if fb.Home().Title != "Willkommen" || len(fb.Home().Paragraphs) != len(defaultHomeParagraphs) {
		t.Fatalf("home = %#v", fb.Home())
	}
	if p := fb.Page("agenda"); p.Missing || p.Title != "Agenda" {
		t.Fatalf("agenda = %#v", p)
	}
	if p := fb.Page("unser-projekt"); p.Missing {
		t.Fatal("built-in page lost after merge")
	}
	menu := fb.Pages()
	if len(menu) != 2 || menu[0].URL != "/" || menu[1].URL != "/agenda" {
		t.Fatalf("menu = %#v", menu)
	}
}

func TestLoadFallbackRejectsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fallback.json")
	if err := os.WriteFile(path, []byte(`{"pages":[{"slug":"","title":"x"}]}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFallback(path); err == nil {
		t.Fatal("expected error for missing slug")
	}
	if _, err := LoadFallback(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
