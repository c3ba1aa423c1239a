// Package navigation derives page-to-page links from the site navigation.
package navigation

import "github.com/genego-hq/genego-site/internal/domain"

// NextPage returns the entry following the current page in navigation order.
// current matches an entry by slug, by URL "/"+current, or, for "home", by the
// root URL. It reports false when current is unknown or last.
func NextPage(current string, pages []domain.MenuItem) (domain.MenuItem, bool) {
	idx := indexOf(current, pages)
	if idx < 0 || idx+1 >= len(pages) {
		return domain.MenuItem{}, false
	}
	return pages[idx+1], true
}

// PreviousPage is the inverse of NextPage.
func PreviousPage(current string, pages []domain.MenuItem) (domain.MenuItem, bool) {
	idx := indexOf(current, pages)
	if idx <= 0 {
		return domain.MenuItem{}, false
	}
	return pages[idx-1], true
}

func indexOf(current string, pages []domain.MenuItem) int {
	for i, p := range pages {
		if p.Slug == current || p.URL == "/"+current || (current == "home" && p.URL == "/") {
			return i
		}
	}
	return -1
}
