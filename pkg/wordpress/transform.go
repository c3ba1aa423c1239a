package wordpress

import (
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/genego-hq/genego-site/internal/domain"
)

// Positions of the term groups inside _embedded["wp:term"] for posts.
const (
	EmbeddedTermCategories = 0
	EmbeddedTermTags       = 1

	tagTaxonomy = "post_tag"
)

// HomeSubtitle is the hero subtitle shown when the provider sends none.
const HomeSubtitle = "Genossenschaft Neumühle Goldach"

var postDateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParsePostDate reads the date formats WordPress emits. Wall-clock values
// are kept as-is; no timezone conversion happens.
func ParsePostDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range postDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MenuURL returns the site path for a page slug.
func MenuURL(slug string) string {
	if slug == "" || slug == "home" {
		return "/"
	}
	return "/" + slug
}

func (f *fetcher) pageFromStandard(p wpPage) domain.Page {
	page := domain.Page{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     html.UnescapeString(p.Title.Rendered),
		Content:   RewriteImageURLs(p.Content.Rendered, f.baseURL),
		MenuOrder: p.MenuOrder,
		Parent:    p.Parent,
		Source:    domain.SourceStandard,
	}
	if media, ok := featuredMedia(p.Embedded); ok {
		page.FeaturedImage = media.SourceURL
	}
	return page
}

func (f *fetcher) postFromStandard(p wpPost) domain.Post {
	post := domain.Post{
		ID:      p.ID,
		Slug:    p.Slug,
		Title:   html.UnescapeString(p.Title.Rendered),
		Content: RewriteImageURLs(p.Content.Rendered, f.baseURL),
		Excerpt: RewriteImageURLs(p.Excerpt.Rendered, f.baseURL),
		Link:    p.Link,
		Tags:    f.tagsFromEmbedded(p.Slug, p.Embedded),
		Source:  domain.SourceStandard,
	}
	if d, ok := ParsePostDate(p.Date); ok {
		post.Date = d
	} else if p.Date != "" {
		f.log.WarnObj("unparseable post date", "post", map[string]any{
			"slug": p.Slug,
			"date": p.Date,
		})
	}
	if media, ok := featuredMedia(p.Embedded); ok {
		post.FeaturedImage = media.SourceURL
		post.FeaturedImageAlt = media.AltText
	}
	return post
}

func featuredMedia(e *wpEmbedded) (wpMedia, bool) {
	if e == nil || len(e.FeaturedMedia) == 0 {
		return wpMedia{}, false
	}
	m := e.FeaturedMedia[0]
	if m.SourceURL == "" {
		return wpMedia{}, false
	}
	return m, true
}

// tagsFromEmbedded returns the tag group of the embedded terms. A group whose
// taxonomy is not post_tag is still returned but logged.
func (f *fetcher) tagsFromEmbedded(postSlug string, e *wpEmbedded) []domain.Tag {
	if e == nil || len(e.Terms) <= EmbeddedTermTags {
		return nil
	}
	group := e.Terms[EmbeddedTermTags]
	tags := make([]domain.Tag, 0, len(group))
	drifted := ""
	for _, t := range group {
		if t.Taxonomy != "" && t.Taxonomy != tagTaxonomy {
			drifted = t.Taxonomy
		}
		tags = append(tags, domain.Tag{
			ID:       t.ID,
			Name:     html.UnescapeString(t.Name),
			Slug:     t.Slug,
			Taxonomy: t.Taxonomy,
		})
	}
	if drifted != "" {
		f.log.WarnObj("embedded tag group has unexpected taxonomy", "terms", map[string]any{
			"post":     postSlug,
			"index":    EmbeddedTermTags,
			"taxonomy": drifted,
		})
	}
	return tags
}

func (f *fetcher) pageFromPlugin(p pluginPage) domain.Page {
	return domain.Page{
		ID:            p.ID,
		Slug:          p.Slug,
		Title:         html.UnescapeString(p.Title),
		Content:       RewriteImageURLs(string(p.Content), f.baseURL),
		FeaturedImage: string(p.FeaturedImage),
		MenuOrder:     int(p.MenuOrder),
		Parent:        int(p.Parent),
		Source:        domain.SourcePlugin,
	}
}

func (f *fetcher) postFromPlugin(p pluginPost) domain.Post {
	post := domain.Post{
		ID:               p.ID,
		Slug:             p.Slug,
		Title:            html.UnescapeString(p.Title),
		Content:          RewriteImageURLs(p.Content, f.baseURL),
		Excerpt:          RewriteImageURLs(p.Excerpt, f.baseURL),
		Link:             p.Link,
		FeaturedImage:    string(p.FeaturedImage),
		FeaturedImageAlt: string(p.FeaturedImageAlt),
		Source:           domain.SourcePlugin,
	}
	if d, ok := ParsePostDate(p.Date); ok {
		post.Date = d
	}
	for _, t := range p.Tags {
		post.Tags = append(post.Tags, domain.Tag{
			ID:       int(t.ID),
			Name:     html.UnescapeString(t.Name),
			Slug:     t.Slug,
			Taxonomy: tagTaxonomy,
		})
	}
	return post
}

func pagesFromPlugin(refs []pluginPageRef) []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(refs))
	for i, r := range refs {
		link := string(r.URL)
		if link == "" || r.Slug == "home" {
			link = MenuURL(r.Slug)
		}
		items = append(items, domain.MenuItem{
			ID:     r.ID,
			Title:  html.UnescapeString(r.Title),
			Slug:   r.Slug,
			URL:    link,
			Order:  i,
			Parent: int(r.Parent),
		})
	}
	return items
}

func pagesFromStandard(pages []wpPage) []domain.MenuItem {
	items := make([]domain.MenuItem, 0, len(pages))
	for _, p := range pages {
		items = append(items, domain.MenuItem{
			ID:     p.ID,
			Title:  html.UnescapeString(p.Title.Rendered),
			Slug:   p.Slug,
			URL:    MenuURL(p.Slug),
			Order:  p.MenuOrder,
			Parent: p.Parent,
		})
	}
	return items
}

func menuFromPlugin(m pluginMenu) domain.Menu {
	menu := domain.Menu{Name: m.Name, Slug: m.Slug}
	for _, it := range m.Items {
		menu.Items = append(menu.Items, domain.MenuItem{
			ID:     int(it.ID),
			Title:  html.UnescapeString(it.Title),
			Slug:   slugFromURL(it.URL),
			URL:    it.URL,
			Order:  int(it.Order),
			Parent: int(it.Parent),
		})
	}
	return menu
}

// slugFromURL returns the last path segment of a menu link.
func slugFromURL(raw string) string {
	path := strings.TrimSpace(raw)
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return "home"
	}
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return path
}

func (f *fetcher) homeFromPlugin(h pluginHome) domain.Home {
	home := domain.Home{
		Title:      html.UnescapeString(h.Content.Title),
		Paragraphs: h.Content.Paragraphs,
		Source:     domain.SourcePlugin,
	}
	if h.Content.HTML != "" {
		home.Paragraphs = ExtractParagraphs(RewriteImageURLs(h.Content.HTML, f.baseURL))
	}
	for _, s := range h.HeroSlides {
		if s.Image == "" {
			continue
		}
		subtitle := string(s.Subtitle)
		if subtitle == "" {
			subtitle = HomeSubtitle
		}
		home.HeroSlides = append(home.HeroSlides, domain.HeroSlide{
			Image:    string(s.Image),
			Alt:      string(s.Alt),
			Title:    string(s.Title),
			Subtitle: subtitle,
			Link:     string(s.Link),
		})
	}
	return home
}

func (f *fetcher) homeFromStandard(p wpPage) domain.Home {
	page := f.pageFromStandard(p)
	home := domain.Home{
		Title:      page.Title,
		Paragraphs: ExtractParagraphs(page.Content),
		Source:     domain.SourceStandard,
	}
	image := page.FeaturedImage
	if image == "" {
		image = DefaultHeroImage
	}
	home.HeroSlides = []domain.HeroSlide{{
		Image:    image,
		Alt:      page.Title,
		Title:    page.Title,
		Subtitle: HomeSubtitle,
	}}
	return home
}
