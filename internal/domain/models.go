package domain

import "time"

// Domain contains the content models rendered by the site. Entities are
// read-only: they are produced by the content provider or the fallback table
// and never mutated afterwards.

// Source names the tier that produced a content entity.
type Source string

const (
	SourcePlugin   Source = "plugin"
	SourceStandard Source = "standard"
	SourceFallback Source = "fallback"
)

// Page is a single WordPress page.
type Page struct {
	ID            int    `json:"id"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	FeaturedImage string `json:"featuredImage,omitempty"`
	MenuOrder     int    `json:"menuOrder,omitempty"`
	Parent        int    `json:"parent,omitempty"`
	Source        Source `json:"source"`
	// Missing marks the generic "not found" placeholder.
	Missing bool `json:"-"`
}

// Tag is a taxonomy term attached to a post.
type Tag struct {
	ID       int    `json:"id,omitempty"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy,omitempty"`
}

// Post is a blog-style project post.
type Post struct {
	ID               int       `json:"id"`
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Excerpt          string    `json:"excerpt"`
	Date             time.Time `json:"date"`
	Link             string    `json:"link"`
	FeaturedImage    string    `json:"featuredImage,omitempty"`
	FeaturedImageAlt string    `json:"featuredImageAlt,omitempty"`
	Tags             []Tag     `json:"tags"`
	Source           Source    `json:"source"`
}

// LastTag returns the last tag of the post, if any.
func (p Post) LastTag() (Tag, bool) {
	if len(p.Tags) == 0 {
		return Tag{}, false
	}
	return p.Tags[len(p.Tags)-1], true
}

// MenuItem is one navigation entry.
type MenuItem struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	URL    string `json:"url"`
	Order  int    `json:"order"`
	Parent int    `json:"parent"`
}

// Menu is a named WordPress navigation menu.
type Menu struct {
	Name  string     `json:"name"`
	Slug  string     `json:"slug"`
	Items []MenuItem `json:"items"`
}

// HeroSlide is one image of the home page hero.
type HeroSlide struct {
	Image    string `json:"image"`
	Alt      string `json:"alt,omitempty"`
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Link     string `json:"link,omitempty"`
}

// Home is the structured home page payload.
type Home struct {
	HeroSlides []HeroSlide `json:"heroSlides"`
	Title      string      `json:"title"`
	Paragraphs []string    `json:"paragraphs"`
	Source     Source      `json:"source"`
}

// ContactMessage is a submission of the contact form.
type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}
