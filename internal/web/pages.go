package web

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/genego-hq/genego-site/internal/diagnostics"
	"github.com/genego-hq/genego-site/internal/domain"
	"github.com/genego-hq/genego-site/internal/navigation"
	"github.com/genego-hq/genego-site/internal/timeline"
	"github.com/genego-hq/genego-site/pkg/wordpress"
)

const (
	homeSlug         = "home"
	projectSlug      = "unser-projekt"
	projectCategory  = "projekt"
	galleryCategory  = "bildergalerie"
	contactSlug      = "kontakt"
	homeHeading      = "Gemeinsam Wohnen, Gemeinsam Gestalten"
	historyHeading   = "Was bisher geschah"
	defaultSlideLink = "/unser-projekt"
)

type homeView struct {
	chrome
	Heading string
	Slides  []domain.HeroSlide
	Page    domain.Page
}

type pageView struct {
	chrome
	Page          domain.Page
	TimelineTitle string
	Timeline      []timeline.Group
}

type postView struct {
	chrome
	Post      domain.Post
	DateLabel string
}

type diagnosticView struct {
	chrome
	Ran    bool
	Result diagnostics.Result
}

// pageData fetches a page, a category and the navigation concurrently.
func (s *Server) pageData(ctx context.Context, slug, category string) (domain.Page, []domain.Post, []domain.MenuItem) {
	var (
		page  domain.Page
		posts []domain.Post
		pages []domain.MenuItem
	)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		page = s.content.Page(ctx, slug)
	}()
	go func() {
		defer wg.Done()
		posts = s.content.PostsByCategory(ctx, category)
	}()
	go func() {
		defer wg.Done()
		pages = s.content.Pages(ctx)
	}()
	wg.Wait()
	return page, posts, pages
}

func (s *Server) layout(r *http.Request, title, current string, pages []domain.MenuItem) chrome {
	c := chrome{
		SiteName: s.siteName,
		Title:    title,
		Path:     r.URL.Path,
		Menu:     pages,
		Year:     s.now().Year(),
	}
	if next, ok := navigation.NextPage(current, pages); ok {
		c.Next = &next
	}
	return c
}

func (s *Server) homePage(w http.ResponseWriter, r *http.Request) {
	page, gallery, pages := s.pageData(r.Context(), homeSlug, galleryCategory)
	s.render(w, r, "home", http.StatusOK, homeView{
		chrome:  s.layout(r, "", homeSlug, pages),
		Heading: homeHeading,
		Slides:  gallerySlides(gallery),
		Page:    page,
	})
}

// gallerySlides turns gallery posts with a featured image into hero slides.
// A post's last tag decides where its slide links to.
func gallerySlides(posts []domain.Post) []domain.HeroSlide {
	var slides []domain.HeroSlide
	for _, p := range posts {
		if p.FeaturedImage == "" {
			continue
		}
		slide := domain.HeroSlide{
			Image:    p.FeaturedImage,
			Alt:      p.FeaturedImageAlt,
			Title:    p.Title,
			Subtitle: wordpress.StripTags(p.Excerpt),
		}
		if tag, ok := p.LastTag(); ok && tag.Slug != "" {
			slide.Link = "/" + tag.Slug
		}
		if slide.Alt == "" {
			slide.Alt = p.Title
		}
		slides = append(slides, slide)
	}
	if len(slides) == 0 {
		slides = append(slides, domain.HeroSlide{
			Image:    wordpress.DefaultHeroImage,
			Alt:      wordpress.HomeSubtitle,
			Title:    wordpress.HomeSubtitle,
			Subtitle: homeHeading,
			Link:     defaultSlideLink,
		})
	}
	return slides
}

func (s *Server) projectPage(w http.ResponseWriter, r *http.Request) {
	page, posts, pages := s.pageData(r.Context(), projectSlug, projectCategory)
	s.render(w, r, "project", http.StatusOK, pageView{
		chrome:   s.layout(r, page.Title, projectSlug, pages),
		Page:     page,
		Timeline: timeline.Build(posts, s.locale),
	})
}

func (s *Server) postPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var (
		post  domain.Post
		pages []domain.MenuItem
	)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		post = s.content.Post(r.Context(), slug)
	}()
	go func() {
		defer wg.Done()
		pages = s.content.Pages(r.Context())
	}()
	wg.Wait()

	view := postView{
		chrome: s.layout(r, post.Title, "", pages),
		Post:   post,
	}
	if entries := timeline.Entries([]domain.Post{post}, s.locale); len(entries) == 1 {
		view.DateLabel = entries[0].Label
	}
	s.render(w, r, "post", http.StatusOK, view)
}

func (s *Server) slugPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if strings.Contains(slug, ".") {
		http.NotFound(w, r)
		return
	}
	page, posts, pages := s.pageData(r.Context(), slug, slug)
	status := http.StatusOK
	if page.Missing && len(posts) == 0 {
		status = http.StatusNotFound
	}
	view := pageView{
		chrome:   s.layout(r, page.Title, slug, pages),
		Page:     page,
		Timeline: timeline.Build(posts, s.locale),
	}
	if len(view.Timeline) > 0 {
		view.TimelineTitle = historyHeading
	}
	s.render(w, r, "page", status, view)
}

func (s *Server) diagnosticPage(w http.ResponseWriter, r *http.Request) {
	view := diagnosticView{
		chrome: s.layout(r, "WordPress Verbindungstest", "", s.content.Pages(r.Context())),
	}
	if r.URL.Query().Get("run") == "1" {
		view.Ran = true
		view.Result = s.prober.Probe(r.Context())
	}
	s.render(w, r, "diagnostic", http.StatusOK, view)
}
