package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

type pagesResponse struct {
	Pages []pageSummary `json:"pages"`
}

type pageSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	URL   string `json:"url"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"status":       "ok",
		"fallbackMode": s.content.FallbackMode(),
	})
}

func (s *Server) apiHome(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.content.Home(r.Context()))
}

func (s *Server) apiPages(w http.ResponseWriter, r *http.Request) {
	items := s.content.Pages(r.Context())
	resp := pagesResponse{Pages: make([]pageSummary, 0, len(items))}
	for _, it := range items {
		resp.Pages = append(resp.Pages, pageSummary{ID: it.ID, Title: it.Title, Slug: it.Slug, URL: it.URL})
	}
	render.JSON(w, r, resp)
}

func (s *Server) apiPage(w http.ResponseWriter, r *http.Request) {
	page := s.content.Page(r.Context(), chi.URLParam(r, "slug"))
	if page.Missing {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorResponse{Error: "Page not found"})
		return
	}
	render.JSON(w, r, page)
}

func (s *Server) apiTest(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, s.prober.Probe(r.Context()))
}
