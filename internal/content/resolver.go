package content

import (
	"context"
	"errors"

	"github.com/genego-hq/genego-site/internal/domain"
	"github.com/genego-hq/genego-site/internal/logger"
	"github.com/genego-hq/genego-site/pkg/wordpress"
)

// Resolver coordinates content lookups across the provider tiers and the
// static fallback table. Its operations never fail: when every tier errors
// the fallback value is returned.
type Resolver struct {
	tiers    []wordpress.Tier
	fallback *wordpress.Fallback
	log      logger.Logger
}

// NewResolver wires a resolver. With no tiers it stays in fallback mode and
// performs no network calls.
func NewResolver(tiers []wordpress.Tier, fallback *wordpress.Fallback, log logger.Logger) *Resolver {
	if fallback == nil {
		fallback = wordpress.DefaultFallback()
	}
	return &Resolver{
		tiers:    tiers,
		fallback: fallback,
		log:      logger.Ensure(log),
	}
}

// FallbackMode reports whether no content provider is configured.
func (r *Resolver) FallbackMode() bool {
	return len(r.tiers) == 0
}

// Page returns the page for slug. Unknown slugs yield the fallback
// placeholder with Missing set.
func (r *Resolver) Page(ctx context.Context, slug string) domain.Page {
	if p, ok := firstOf(ctx, r, "page", slug, func(t wordpress.Tier) (domain.Page, error) {
		return t.Page(ctx, slug)
	}); ok {
		return p
	}
	return r.fallback.Page(slug)
}

// Pages returns the navigation entries in provider order.
func (r *Resolver) Pages(ctx context.Context) []domain.MenuItem {
	if items, ok := firstOf(ctx, r, "pages", "", func(t wordpress.Tier) ([]domain.MenuItem, error) {
		return t.Pages(ctx)
	}); ok {
		return items
	}
	return r.fallback.Pages()
}

// Post returns the post for slug, or a placeholder carrying the slug.
func (r *Resolver) Post(ctx context.Context, slug string) domain.Post {
	if p, ok := firstOf(ctx, r, "post", slug, func(t wordpress.Tier) (domain.Post, error) {
		return t.Post(ctx, slug)
	}); ok {
		return p
	}
	return r.fallback.Post(slug)
}

// PostsByCategory returns the posts of a category in provider order. Unknown
// categories and failures yield an empty slice.
func (r *Resolver) PostsByCategory(ctx context.Context, categorySlug string) []domain.Post {
	if posts, ok := firstOf(ctx, r, "posts_by_category", categorySlug, func(t wordpress.Tier) ([]domain.Post, error) {
		return t.PostsByCategory(ctx, categorySlug)
	}); ok && posts != nil {
		return posts
	}
	return []domain.Post{}
}

// Home returns the structured home page data.
func (r *Resolver) Home(ctx context.Context) domain.Home {
	if h, ok := firstOf(ctx, r, "home", "home", func(t wordpress.Tier) (domain.Home, error) {
		return t.Home(ctx)
	}); ok {
		return h
	}
	return r.fallback.Home()
}

// Menu returns a named navigation menu. Without a plugin menu the fallback
// navigation is used.
func (r *Resolver) Menu(ctx context.Context, slug string) domain.Menu {
	if m, ok := firstOf(ctx, r, "menu", slug, func(t wordpress.Tier) (domain.Menu, error) {
		return t.Menu(ctx, slug)
	}); ok {
		return m
	}
	return r.fallback.Menu(slug)
}

// firstOf walks the tiers in order and returns the first successful result.
func firstOf[T any](ctx context.Context, r *Resolver, op, id string, call func(wordpress.Tier) (T, error)) (T, bool) {
	var zero T
	for _, tier := range r.tiers {
		if err := ctx.Err(); err != nil {
			r.log.WarnObj("content lookup cancelled", "content_error", map[string]any{
				"op":    op,
				"id":    id,
				"error": err.Error(),
			})
			return zero, false
		}

		v, err := call(tier)
		if err == nil {
			r.log.DebugObj("content resolved", "content", map[string]any{
				"op":   op,
				"id":   id,
				"tier": tier.Name(),
			})
			return v, true
		}

		fields := map[string]any{
			"op":    op,
			"id":    id,
			"tier":  tier.Name(),
			"error": err.Error(),
		}
		switch {
		case errors.Is(err, wordpress.ErrUnsupported):
			r.log.DebugObj("tier does not serve lookup", "content_error", fields)
		case errors.Is(err, wordpress.ErrNotFound):
			r.log.InfoObj("tier has no matching content", "content_error", fields)
		default:
			r.log.WarnObj("tier lookup failed", "content_error", fields)
		}
	}
	if len(r.tiers) > 0 {
		r.log.InfoObj("serving fallback content", "content", map[string]any{
			"op": op,
			"id": id,
		})
	}
	return zero, false
}
