package web

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const fileButtonSelector = "a.wp-block-file__button"

// DecorateFileButtons opens WordPress file block download links in a new tab.
// Markup without file buttons is returned unchanged.
func DecorateFileButtons(markup string) string {
	if !strings.Contains(markup, "wp-block-file__button") {
		return markup
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	buttons := doc.Find(fileButtonSelector)
	if buttons.Length() == 0 {
		return markup
	}
	buttons.SetAttr("target", "_blank")
	buttons.SetAttr("rel", "noopener noreferrer")

	out, err := doc.Find("body").Html()
	if err != nil {
		return markup
	}
	return out
}
