package wordpress

import (
	"encoding/json"
	"testing"
)

func TestPluginPageToleratesLooseTypes(t *testing.T) {
	var p pluginPage
	body := `{"id":7,"title":"Kontakt","slug":"kontakt","content":"<p>x</p>","featuredImage":false,"parent":"12"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.FeaturedImage != "" {
		t.Errorf("featuredImage = %q", p.FeaturedImage)
	}
	if p.Parent != 12 {
		t.Errorf("parent = %d", p.Parent)
	}
}

func TestPluginPageContentAcceptsParagraphList(t *testing.T) {
	cases := []struct {
		name string
		body string
		want pageContent
	}{
		{"html", `{"content":"<p>Vision</p>"}`, "<p>Vision</p>"},
		{"paragraphs", `{"content":["Wir bauen.", " ", "Kosten & Termine"]}`, "<p>Wir bauen.</p><p>Kosten &amp; Termine</p>"},
		{"null", `{"content":null}`, ""},
		{"object", `{"content":{"rendered":"x"}}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p pluginPage
			if err := json.Unmarshal([]byte(tc.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.Content != tc.want {
				t.Errorf("content = %q, want %q", p.Content, tc.want)
			}
		})
	}
}

func TestHomeContentAcceptsStringOrObject(t *testing.T) {
	var fromHTML pluginHome
	if err := json.Unmarshal([]byte(`{"content":"<p>a</p><p>b</p>"}`), &fromHTML); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if fromHTML.Content.HTML != "<p>a</p><p>b</p>" {
		t.Errorf("html = %q", fromHTML.Content.HTML)
	}

	var fromObj pluginHome
	body := `{"content":{"title":"Willkommen","paragraphs":["eins","zwei"]}}`
	if err := json.Unmarshal([]byte(body), &fromObj); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	if fromObj.Content.Title != "Willkommen" || len(fromObj.Content.Paragraphs) != 2 {
		t.Errorf("content = %#v", fromObj.Content)
	}
}

func TestParsePostDate(t *testing.T) {
	for _, raw := range []string{"2025-03-14T09:30:00", "2025-03-14T09:30:00+01:00", "2025-03-14 09:30:00", "2025-03-14"} {
		d, ok := ParsePostDate(raw)
		if !ok {
			t.Fatalf("ParsePostDate(%q) failed", raw)
		}
		if d.Year() != 2025 || d.Month() != 3 || d.Day() != 14 {
			t.Errorf("ParsePostDate(%q) = %v", raw, d)
		}
	}
	if _, ok := ParsePostDate("gestern"); ok {
		t.Fatal("expected failure for free text")
	}
}
