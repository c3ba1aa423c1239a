package wordpress

import (
	"bytes"
	"encoding/json"
	"html"
	"strconv"
	"strings"
)

// flexString decodes strings and treats false, null and other non-string
// values as empty. The plugin sends featuredImage: false for missing images.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = flexString(v)
	return nil
}

// flexInt decodes numbers and numeric strings; anything else is zero.
type flexInt int

func (i *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*i = flexInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*i = flexInt(n)
			return nil
		}
	}
	*i = 0
	return nil
}

// standard namespace (wp/v2) ------------------------------------------------

type rendered struct {
	Rendered string `json:"rendered"`
}

type wpPage struct {
	ID        int         `json:"id"`
	Slug      string      `json:"slug"`
	Title     rendered    `json:"title"`
	Content   rendered    `json:"content"`
	Excerpt   rendered    `json:"excerpt"`
	MenuOrder int         `json:"menu_order"`
	Parent    int         `json:"parent"`
	Embedded  *wpEmbedded `json:"_embedded,omitempty"`
}

type wpPost struct {
	ID       int         `json:"id"`
	Slug     string      `json:"slug"`
	Date     string      `json:"date"`
	Link     string      `json:"link"`
	Title    rendered    `json:"title"`
	Content  rendered    `json:"content"`
	Excerpt  rendered    `json:"excerpt"`
	Embedded *wpEmbedded `json:"_embedded,omitempty"`
}

type wpEmbedded struct {
	FeaturedMedia []wpMedia  `json:"wp:featuredmedia,omitempty"`
	Terms         [][]wpTerm `json:"wp:term,omitempty"`
}

type wpMedia struct {
	SourceURL string `json:"source_url"`
	AltText   string `json:"alt_text"`
}

type wpTerm struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
}

type wpCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// plugin namespace (genego/v1) ----------------------------------------------

type pluginPage struct {
	ID            int         `json:"id"`
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Content       pageContent `json:"content"`
	FeaturedImage flexString  `json:"featuredImage"`
	MenuOrder     flexInt     `json:"menuOrder"`
	Parent        flexInt     `json:"parent"`
}

// pageContent is HTML. Older plugin versions send a list of plain-text
// paragraphs instead, which are joined into <p> markup.
type pageContent string

func (c *pageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = pageContent(s)
		return nil
	}
	var paragraphs []string
	if err := json.Unmarshal(data, &paragraphs); err != nil {
		*c = ""
		return nil
	}
	var b strings.Builder
	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(p))
		b.WriteString("</p>")
	}
	*c = pageContent(b.String())
	return nil
}

type pluginPageRef struct {
	ID     int        `json:"id"`
	Title  string     `json:"title"`
	Slug   string     `json:"slug"`
	URL    flexString `json:"url"`
	Parent flexInt    `json:"parent"`
}

type pluginTag struct {
	ID   flexInt `json:"id"`
	Name string  `json:"name"`
	Slug string  `json:"slug"`
}

type pluginPost struct {
	ID               int         `json:"id"`
	Title            string      `json:"title"`
	Slug             string      `json:"slug"`
	Excerpt          string      `json:"excerpt"`
	Content          string      `json:"content"`
	Date             string      `json:"date"`
	Link             string      `json:"link"`
	FeaturedImage    flexString  `json:"featuredImage"`
	FeaturedImageAlt flexString  `json:"featuredImageAlt"`
	Tags             []pluginTag `json:"tags"`
}

type pluginMenuItem struct {
	ID     flexInt `json:"id"`
	Title  string  `json:"title"`
	URL    string  `json:"url"`
	Parent flexInt `json:"parent"`
	Order  flexInt `json:"order"`
}

type pluginMenu struct {
	Name  string           `json:"name"`
	Slug  string           `json:"slug"`
	Items []pluginMenuItem `json:"items"`
}

type pluginSlide struct {
	Image    flexString `json:"image"`
	Alt      flexString `json:"alt"`
	Title    flexString `json:"title"`
	Subtitle flexString `json:"subtitle"`
	Link     flexString `json:"link"`
}

type pluginHome struct {
	HeroSlides []pluginSlide `json:"heroSlides"`
	Content    homeContent   `json:"content"`
}

// homeContent accepts either a structured {title, paragraphs} object or a
// raw HTML string.
type homeContent struct {
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
	HTML       string   `json:"-"`
}

func (c *homeContent) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*c = homeContent{HTML: raw}
		return nil
	}
	type alias homeContent
	var v alias
	if err := json.Unmarshal(data, &v); err != nil {
		*c = homeContent{}
		return nil
	}
	*c = homeContent(v)
	return nil
}
