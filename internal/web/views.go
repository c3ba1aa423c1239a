package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/genego-hq/genego-site/internal/domain"
)

var pageTemplates = []string{"home", "page", "project", "post", "contact", "diagnostic"}

type views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	// content marks provider HTML as trusted after decorating file buttons.
	"content": func(markup string) template.HTML {
		return template.HTML(DecorateFileButtons(markup))
	},
}

func parseViews(fsys fs.FS) (*views, error) {
	base, err := template.New("layout").Funcs(funcs).ParseFS(fsys, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, err
	}
	v := &views{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		t, err := clone.ParseFS(fsys, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// chrome is the data shared by every page layout.
type chrome struct {
	SiteName string
	Title    string
	Path     string
	Menu     []domain.MenuItem
	Next     *domain.MenuItem
	Year     int
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	t, ok := s.views.pages[name]
	if !ok {
		s.log.ErrorObj("unknown template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.log.ErrorObj("render failed", "render_error", map[string]any{
			"template": name,
			"path":     r.URL.Path,
			"error":    err.Error(),
		})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
