package wordpress

import (
	"context"
	"fmt"
	"net/url"

	"github.com/genego-hq/genego-site/internal/domain"
)

// pluginTier reads the structured genego/v1 endpoints.
type pluginTier struct {
	f *fetcher
}

func newPluginTier(f *fetcher) *pluginTier { return &pluginTier{f: f} }

func (t *pluginTier) Name() domain.Source { return domain.SourcePlugin }

func (t *pluginTier) Home(ctx context.Context) (domain.Home, error) {
	var raw pluginHome
	if err := t.f.getJSON(ctx, t.f.pluginURL("/home"), t.f.pageTTL, &raw); err != nil {
		return domain.Home{}, err
	}
	home := t.f.homeFromPlugin(raw)
	if len(home.HeroSlides) == 0 && len(home.Paragraphs) == 0 {
		return domain.Home{}, fmt.Errorf("plugin home: %w", ErrNotFound)
	}
	return home, nil
}

func (t *pluginTier) Page(ctx context.Context, slug string) (domain.Page, error) {
	var raw pluginPage
	u := t.f.pluginURL("/pages/" + url.PathEscape(slug))
	if err := t.f.getJSON(ctx, u, t.f.pageTTL, &raw); err != nil {
		return domain.Page{}, err
	}
	if raw.ID == 0 && raw.Title == "" && raw.Content == "" {
		return domain.Page{}, fmt.Errorf("plugin page %q: %w", slug, ErrNotFound)
	}
	page := t.f.pageFromPlugin(raw)
	if page.Slug == "" {
		page.Slug = slug
	}
	return page, nil
}

func (t *pluginTier) Pages(ctx context.Context) ([]domain.MenuItem, error) {
	var raw []pluginPageRef
	if err := t.f.getJSON(ctx, t.f.pluginURL("/pages"), t.f.listTTL, &raw); err != nil {
		return nil, err
	}
	return pagesFromPlugin(raw), nil
}

func (t *pluginTier) Post(ctx context.Context, slug string) (domain.Post, error) {
	var raw pluginPost
	u := t.f.pluginURL("/posts/" + url.PathEscape(slug))
	if err := t.f.getJSON(ctx, u, t.f.pageTTL, &raw); err != nil {
		return domain.Post{}, err
	}
	if raw.ID == 0 && raw.Title == "" && raw.Content == "" {
		return domain.Post{}, fmt.Errorf("plugin post %q: %w", slug, ErrNotFound)
	}
	post := t.f.postFromPlugin(raw)
	if post.Slug == "" {
		post.Slug = slug
	}
	return post, nil
}

// PostsByCategory has no plugin endpoint.
func (t *pluginTier) PostsByCategory(context.Context, string) ([]domain.Post, error) {
	return nil, fmt.Errorf("plugin posts by category: %w", ErrUnsupported)
}

func (t *pluginTier) Menu(ctx context.Context, slug string) (domain.Menu, error) {
	var raw pluginMenu
	u := t.f.pluginURL("/menus/" + url.PathEscape(slug))
	if err := t.f.getJSON(ctx, u, t.f.listTTL, &raw); err != nil {
		return domain.Menu{}, err
	}
	if len(raw.Items) == 0 {
		return domain.Menu{}, fmt.Errorf("plugin menu %q: %w", slug, ErrNotFound)
	}
	menu := menuFromPlugin(raw)
	if menu.Slug == "" {
		menu.Slug = slug
	}
	return menu, nil
}
