package wordpress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genego-hq/genego-site/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultHeroImage is served from the site's static assets.
const DefaultHeroImage = "/modern-sustainable-housing-development-with-green-.jpg"

const (
	missingPageTitle   = "Seite nicht gefunden"
	missingPageContent = "<p>Diese Seite ist noch nicht verfügbar.</p>"
	missingPostTitle   = "Blogpost nicht gefunden"
	missingPostExcerpt = "<p>Dieser Blogpost konnte nicht geladen werden.</p>"
	missingPostContent = "<p>Dieser Blogpost konnte nicht geladen werden. Bitte überprüfen Sie die WordPress-Verbindung.</p>"
)

var defaultHomeParagraphs = []string{
	"Die Genossenschaft Neumühle Goldach (GeNeGo) realisiert ein innovatives Wohnprojekt, das gemeinschaftliches Leben und nachhaltiges Wohnen vereint.",
	"Unser Ziel ist es, bezahlbaren Wohnraum zu schaffen, der gleichzeitig hohe ökologische Standards erfüllt und ein lebendiges Miteinander fördert.",
	"Werden Sie Teil unserer Gemeinschaft und gestalten Sie die Zukunft des Wohnens mit.",
}

const projectContent = `<h2>Vision und Ziele</h2>
<p>Die Genossenschaft Neumühle Goldach (GeNeGo) entwickelt eine altersdurchmischte Wohnsiedlung, die mehr als nur Wohnraum bietet. Unser Ziel ist es, einen Lebensort zu schaffen, der Gemeinschaft, Nachhaltigkeit und Selbstbestimmung vereint.</p>
<h2>Nachhaltigkeit</h2>
<p>Nachhaltigkeit steht im Zentrum unseres Projekts. Wir nutzen Boden, Energie und Infrastruktur ressourcenschonend und setzen auf ökologische Bauweise.</p>
<h2>Gemeinschaft</h2>
<p>Das Zusammenleben in der Gemeinschaft ist ein zentraler Aspekt unseres Projekts. Wir schaffen Räume für Begegnung und gemeinsame Aktivitäten.</p>`

// Fallback is the static content table served when every tier fails or no
// provider is configured. It is read-only after construction.
type Fallback struct {
	home  domain.Home
	pages map[string]domain.Page
	menu  []domain.MenuItem
	now   func() time.Time
}

// DefaultFallback returns the built-in German fallback content.
func DefaultFallback() *Fallback {
	fb := &Fallback{
		home: domain.Home{
			HeroSlides: []domain.HeroSlide{{
				Image:    DefaultHeroImage,
				Alt:      "Start 1. Etappe",
				Title:    "Start 1. Etappe",
				Subtitle: HomeSubtitle,
			}},
			Title:      "Gemeinsam Wohnen, Gemeinsam Gestalten",
			Paragraphs: defaultHomeParagraphs,
			Source:     domain.SourceFallback,
		},
		pages: map[string]domain.Page{},
		menu: []domain.MenuItem{
			{ID: 1, Title: "Home", Slug: "home", URL: "/", Order: 0},
			{ID: 2, Title: "Unser Projekt", Slug: "unser-projekt", URL: "/projekt", Order: 1},
			{ID: 3, Title: "Kontakt", Slug: "kontakt", URL: "/kontakt", Order: 2},
		},
		now: time.Now,
	}
	fb.pages["home"] = domain.Page{
		ID:      1,
		Slug:    "home",
		Title:   "Home",
		Content: paragraphsHTML(defaultHomeParagraphs),
		Source:  domain.SourceFallback,
	}
	fb.pages["unser-projekt"] = domain.Page{
		ID:      2,
		Slug:    "unser-projekt",
		Title:   "Unser Projekt",
		Content: projectContent,
		Source:  domain.SourceFallback,
	}
	return fb
}

func paragraphsHTML(paragraphs []string) string {
	var b strings.Builder
	for _, p := range paragraphs {
		b.WriteString("<p>")
		b.WriteString(p)
		b.WriteString("</p>")
	}
	return b.String()
}

// Home returns the fallback home data.
func (f *Fallback) Home() domain.Home {
	h := f.home
	h.HeroSlides = append([]domain.HeroSlide(nil), f.home.HeroSlides...)
	h.Paragraphs = append([]string(nil), f.home.Paragraphs...)
	return h
}

// Page returns the table entry for slug, or the generic not-found
// placeholder with Missing set.
func (f *Fallback) Page(slug string) domain.Page {
	if p, ok := f.pages[slug]; ok {
		return p
	}
	return domain.Page{
		Slug:    slug,
		Title:   missingPageTitle,
		Content: missingPageContent,
		Source:  domain.SourceFallback,
		Missing: true,
	}
}

// Pages returns the fallback navigation.
func (f *Fallback) Pages() []domain.MenuItem {
	return append([]domain.MenuItem(nil), f.menu...)
}

// Post returns the placeholder post carrying the requested slug.
func (f *Fallback) Post(slug string) domain.Post {
	return domain.Post{
		ID:      1,
		Slug:    slug,
		Title:   missingPostTitle,
		Excerpt: missingPostExcerpt,
		Content: missingPostContent,
		Date:    f.now(),
		Link:    "#",
		Source:  domain.SourceFallback,
	}
}

// Menu builds a menu from the fallback navigation.
func (f *Fallback) Menu(slug string) domain.Menu {
	return domain.Menu{Name: slug, Slug: slug, Items: f.Pages()}
}

// fallbackFile is the on-disk shape of FALLBACK_FILE.
type fallbackFile struct {
	Home *struct {
		Title      string   `json:"title" yaml:"title"`
		Paragraphs []string `json:"paragraphs" yaml:"paragraphs"`
		HeroSlides []struct {
			Image    string `json:"image" yaml:"image"`
			Alt      string `json:"alt" yaml:"alt"`
			Title    string `json:"title" yaml:"title"`
			Subtitle string `json:"subtitle" yaml:"subtitle"`
			Link     string `json:"link" yaml:"link"`
		} `json:"hero_slides" yaml:"hero_slides"`
	} `json:"home" yaml:"home"`
	Pages []struct {
		Slug    string `json:"slug" yaml:"slug"`
		Title   string `json:"title" yaml:"title"`
		Content string `json:"content" yaml:"content"`
	} `json:"pages" yaml:"pages"`
	Menu []struct {
		Title string `json:"title" yaml:"title"`
		Slug  string `json:"slug" yaml:"slug"`
		URL   string `json:"url" yaml:"url"`
	} `json:"menu" yaml:"menu"`
}

// LoadFallback reads a YAML or JSON file and merges it over the built-in
// table. Pages are added or replaced by slug; a non-empty menu replaces the
// default navigation.
func LoadFallback(path string) (*Fallback, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("fallback file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fallback file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read fallback file: %w", err)
	}

	ff, err := parseFallback(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	fb := DefaultFallback()
	if err := fb.merge(ff); err != nil {
		return nil, err
	}
	return fb, nil
}

func parseFallback(data []byte, ext string) (fallbackFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	var lastErr error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var ff fallbackFile
		if err := d.fn(data, &ff); err != nil {
			lastErr = fmt.Errorf("decode %s fallback: %w", d.name, err)
			continue
		}
		return ff, nil
	}
	if lastErr != nil {
		return fallbackFile{}, lastErr
	}
	return fallbackFile{}, errors.New("fallback file format not recognized (expected YAML or JSON)")
}

func (f *Fallback) merge(ff fallbackFile) error {
	if ff.Home != nil {
		if t := strings.TrimSpace(ff.Home.Title); t != "" {
			f.home.Title = t
		}
		if len(ff.Home.Paragraphs) > 0 {
			f.home.Paragraphs = ff.Home.Paragraphs
		}
		if len(ff.Home.HeroSlides) > 0 {
			slides := make([]domain.HeroSlide, 0, len(ff.Home.HeroSlides))
			for i, s := range ff.Home.HeroSlides {
				if strings.TrimSpace(s.Image) == "" {
					return fmt.Errorf("home.hero_slides[%d]: image is required", i)
				}
				subtitle := s.Subtitle
				if subtitle == "" {
					subtitle = HomeSubtitle
				}
				slides = append(slides, domain.HeroSlide{
					Image: strings.TrimSpace(s.Image), Alt: s.Alt, Title: s.Title,
					Subtitle: subtitle, Link: s.Link,
				})
			}
			f.home.HeroSlides = slides
		}
	}

	for i, p := range ff.Pages {
		slug := strings.TrimSpace(p.Slug)
		if slug == "" {
			return fmt.Errorf("pages[%d]: slug is required", i)
		}
		if strings.TrimSpace(p.Title) == "" {
			return fmt.Errorf("title is required for page %q", slug)
		}
		id := len(f.pages) + 1
		if existing, ok := f.pages[slug]; ok {
			id = existing.ID
		}
		f.pages[slug] = domain.Page{
			ID:      id,
			Slug:    slug,
			Title:   strings.TrimSpace(p.Title),
			Content: p.Content,
			Source:  domain.SourceFallback,
		}
	}

	if len(ff.Menu) > 0 {
		menu := make([]domain.MenuItem, 0, len(ff.Menu))
		seen := make(map[string]struct{}, len(ff.Menu))
		for i, m := range ff.Menu {
			slug := strings.TrimSpace(m.Slug)
			if slug == "" {
				return fmt.Errorf("menu[%d]: slug is required", i)
			}
			if _, dup := seen[slug]; dup {
				return fmt.Errorf("duplicate menu slug %q", slug)
			}
			seen[slug] = struct{}{}
			link := strings.TrimSpace(m.URL)
			if link == "" || slug == "home" {
				link = MenuURL(slug)
			}
			menu = append(menu, domain.MenuItem{
				ID: i + 1, Title: strings.TrimSpace(m.Title), Slug: slug, URL: link, Order: i,
			})
		}
		f.menu = menu
	}
	return nil
}
