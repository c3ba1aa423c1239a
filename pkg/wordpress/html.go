package wordpress

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	srcAttr    = regexp.MustCompile(`(?i)(src=)(["'])([^"']+)["']`)
	srcsetAttr = regexp.MustCompile(`(?i)(srcset=)(["'])([^"']+)["']`)
	spaceRun   = regexp.MustCompile(`\s+`)
)

// RewriteImageURLs prefixes relative src and srcset URLs in markup with base.
// Absolute, protocol-relative and data URIs are kept, as are srcset width and
// density descriptors. Markup without relative URLs is returned unchanged.
func RewriteImageURLs(markup, base string) string {
	base = strings.TrimRight(base, "/")
	if markup == "" || base == "" {
		return markup
	}

	out := srcsetAttr.ReplaceAllStringFunc(markup, func(m string) string {
		parts := srcsetAttr.FindStringSubmatch(m)
		return parts[1] + parts[2] + rewriteSrcset(parts[3], base) + parts[2]
	})
	return srcAttr.ReplaceAllStringFunc(out, func(m string) string {
		parts := srcAttr.FindStringSubmatch(m)
		return parts[1] + parts[2] + absoluteURL(parts[3], base) + parts[2]
	})
}

// rewriteSrcset rewrites the URL of each "url descriptor" candidate.
func rewriteSrcset(value, base string) string {
	candidates := strings.Split(value, ",")
	for i, c := range candidates {
		trimmed := strings.TrimLeft(c, " \t\n\r")
		lead := c[:len(c)-len(trimmed)]
		url, rest := trimmed, ""
		if j := strings.IndexAny(trimmed, " \t\n\r"); j >= 0 {
			url, rest = trimmed[:j], trimmed[j:]
		}
		candidates[i] = lead + absoluteURL(url, base) + rest
	}
	return strings.Join(candidates, ",")
}

func absoluteURL(u, base string) string {
	if u == "" {
		return u
	}
	lower := strings.ToLower(u)
	for _, prefix := range []string{"http://", "https://", "//", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return u
		}
	}
	if strings.HasPrefix(u, "/") {
		return base + u
	}
	return base + "/" + u
}

// ExtractParagraphs returns the trimmed text of every <p> element. Markup
// without paragraphs yields its whole text as a single entry.
func ExtractParagraphs(markup string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	var out []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := collapseSpace(s.Text()); text != "" {
			out = append(out, text)
		}
	})
	if len(out) == 0 {
		if text := collapseSpace(doc.Text()); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// StripTags returns the visible text of markup with whitespace collapsed.
func StripTags(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	return collapseSpace(doc.Text())
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
