package wordpress

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/genego-hq/genego-site/internal/domain"
)

// standardTier reads the core wp/v2 endpoints.
type standardTier struct {
	f *fetcher
}

func newStandardTier(f *fetcher) *standardTier { return &standardTier{f: f} }

func (t *standardTier) Name() domain.Source { return domain.SourceStandard }

func (t *standardTier) Home(ctx context.Context) (domain.Home, error) {
	p, err := t.pageBySlug(ctx, "home")
	if err != nil {
		return domain.Home{}, err
	}
	return t.f.homeFromStandard(p), nil
}

func (t *standardTier) Page(ctx context.Context, slug string) (domain.Page, error) {
	p, err := t.pageBySlug(ctx, slug)
	if err != nil {
		return domain.Page{}, err
	}
	return t.f.pageFromStandard(p), nil
}

func (t *standardTier) pageBySlug(ctx context.Context, slug string) (wpPage, error) {
	var pages []wpPage
	u := t.f.standardURL("/pages?slug=" + url.QueryEscape(slug) + "&_embed")
	if err := t.f.getJSON(ctx, u, t.f.pageTTL, &pages); err != nil {
		return wpPage{}, err
	}
	if len(pages) == 0 {
		return wpPage{}, fmt.Errorf("standard page %q: %w", slug, ErrNotFound)
	}
	return pages[0], nil
}

func (t *standardTier) Pages(ctx context.Context) ([]domain.MenuItem, error) {
	var pages []wpPage
	u := t.f.standardURL("/pages?per_page=100&orderby=menu_order&order=asc")
	if err := t.f.getJSON(ctx, u, t.f.listTTL, &pages); err != nil {
		return nil, err
	}
	return pagesFromStandard(pages), nil
}

func (t *standardTier) Post(ctx context.Context, slug string) (domain.Post, error) {
	var posts []wpPost
	u := t.f.standardURL("/posts?slug=" + url.QueryEscape(slug) + "&_embed")
	if err := t.f.getJSON(ctx, u, t.f.pageTTL, &posts); err != nil {
		return domain.Post{}, err
	}
	if len(posts) == 0 {
		return domain.Post{}, fmt.Errorf("standard post %q: %w", slug, ErrNotFound)
	}
	return t.f.postFromStandard(posts[0]), nil
}

// PostsByCategory resolves the category id first, then lists its posts with
// embedded media and terms.
func (t *standardTier) PostsByCategory(ctx context.Context, categorySlug string) ([]domain.Post, error) {
	var cats []wpCategory
	cu := t.f.standardURL("/categories?slug=" + url.QueryEscape(categorySlug))
	if err := t.f.getJSON(ctx, cu, t.f.listTTL, &cats); err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, fmt.Errorf("standard category %q: %w", categorySlug, ErrNotFound)
	}

	var raw []wpPost
	pu := t.f.standardURL("/posts?categories=" + strconv.Itoa(cats[0].ID) + "&_embed&per_page=100")
	if err := t.f.getJSON(ctx, pu, t.f.pageTTL, &raw); err != nil {
		return nil, err
	}
	posts := make([]domain.Post, 0, len(raw))
	for _, p := range raw {
		posts = append(posts, t.f.postFromStandard(p))
	}
	return posts, nil
}

// Menu has no wp/v2 equivalent without extra plugins.
func (t *standardTier) Menu(context.Context, string) (domain.Menu, error) {
	return domain.Menu{}, fmt.Errorf("standard menu: %w", ErrUnsupported)
}
