// Package timeline projects category posts onto a dated timeline.
package timeline

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/genego-hq/genego-site/internal/domain"
)

// Entry is a post annotated with its date labels.
type Entry struct {
	Post      domain.Post `json:"post"`
	Day       string      `json:"day"`
	MonthYear string      `json:"monthYear"`
	Label     string      `json:"label"`
}

// Group holds consecutive entries sharing the same month and year.
type Group struct {
	MonthYear string  `json:"monthYear"`
	Entries   []Entry `json:"entries"`
}

type calendar struct {
	months [12]string
	day    func(d int) string
	label  func(d int, month string, year int) string
}

var calendars = []calendar{
	{
		months: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		day:    func(d int) string { return fmt.Sprintf("%d.", d) },
		label:  func(d int, m string, y int) string { return fmt.Sprintf("%d. %s %d", d, m, y) },
	},
	{
		months: [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		day:    func(d int) string { return fmt.Sprintf("%d", d) },
		label:  func(d int, m string, y int) string { return fmt.Sprintf("%s %d, %d", m, d, y) },
	},
	{
		months: [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		day:    func(d int) string { return fmt.Sprintf("%d", d) },
		label:  func(d int, m string, y int) string { return fmt.Sprintf("%d %s %d", d, m, y) },
	},
}

// supported lists the locales in calendar order; de-CH is the default.
var supported = []language.Tag{
	language.MustParse("de-CH"),
	language.English,
	language.French,
}

var matcher = language.NewMatcher(supported)

func calendarFor(locale string) calendar {
	_, idx := language.MatchStrings(matcher, locale)
	if idx < 0 || idx >= len(calendars) {
		idx = 0
	}
	return calendars[idx]
}

// Build annotates posts with date labels and groups consecutive posts of the
// same month. Provider order is preserved; no sorting happens. Posts without
// a date get empty labels and form their own group.
func Build(posts []domain.Post, locale string) []Group {
	cal := calendarFor(locale)
	var groups []Group
	for _, p := range posts {
		e := annotate(p, cal)
		if n := len(groups); n > 0 && groups[n-1].MonthYear == e.MonthYear {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, Group{MonthYear: e.MonthYear, Entries: []Entry{e}})
	}
	return groups
}

// Entries annotates posts without grouping them.
func Entries(posts []domain.Post, locale string) []Entry {
	cal := calendarFor(locale)
	out := make([]Entry, 0, len(posts))
	for _, p := range posts {
		out = append(out, annotate(p, cal))
	}
	return out
}

func annotate(p domain.Post, cal calendar) Entry {
	e := Entry{Post: p}
	if p.Date.IsZero() {
		return e
	}
	month := cal.months[p.Date.Month()-1]
	e.Day = cal.day(p.Date.Day())
	e.MonthYear = fmt.Sprintf("%s %d", month, p.Date.Year())
	e.Label = cal.label(p.Date.Day(), month, p.Date.Year())
	return e
}
