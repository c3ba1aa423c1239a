package navigation

import (
	"testing"

	"github.com/genego-hq/genego-site/internal/domain"
)

var sitePages = []domain.MenuItem{
	{Slug: "home", URL: "/"},
	{Slug: "projekt", URL: "/projekt"},
	{Slug: "kontakt", URL: "/kontakt"},
}

func TestNextPage(t *testing.T) {
	cases := []struct {
		current  string
		wantSlug string
		wantOK   bool
	}{
		{current: "home", wantSlug: "projekt", wantOK: true},
		{current: "projekt", wantSlug: "kontakt", wantOK: true},
		{current: "kontakt", wantOK: false},
		{current: "unbekannt", wantOK: false},
	}
	for _, tc := range cases {
		got, ok := NextPage(tc.current, sitePages)
		if ok != tc.wantOK || got.Slug != tc.wantSlug {
			t.Errorf("NextPage(%q) = %q, %v; want %q, %v", tc.current, got.Slug, ok, tc.wantSlug, tc.wantOK)
		}
	}
}

func TestNextPageMatchesByURL(t *testing.T) {
	pages := []domain.MenuItem{
		{Slug: "start", URL: "/"},
		{Slug: "unser-projekt", URL: "/projekt"},
		{Slug: "kontakt", URL: "/kontakt"},
	}
	if got, ok := NextPage("home", pages); !ok || got.Slug != "unser-projekt" {
		t.Fatalf("home via root URL = %q, %v", got.Slug, ok)
	}
	if got, ok := NextPage("projekt", pages); !ok || got.Slug != "kontakt" {
		t.Fatalf("projekt via URL = %q, %v", got.Slug, ok)
	}
}

func TestNextPageEmpty(t *testing.T) {
	if _, ok := NextPage("home", nil); ok {
		t.Fatal("expected no next page for empty navigation")
	}
}

func TestPreviousPage(t *testing.T) {
	if got, ok := PreviousPage("kontakt", sitePages); !ok || got.Slug != "projekt" {
		t.Fatalf("PreviousPage(kontakt) = %q, %v", got.Slug, ok)
	}
	if _, ok := PreviousPage("home", sitePages); ok {
		t.Fatal("expected no previous page for the first entry")
	}
}
