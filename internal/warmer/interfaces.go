package warmer

import (
	"context"

	"github.com/genego-hq/genego-site/internal/domain"
)

// ContentSource is the subset of the content resolver a warm pass touches.
type ContentSource interface {
	Home(ctx context.Context) domain.Home
	Page(ctx context.Context, slug string) domain.Page
	Pages(ctx context.Context) []domain.MenuItem
	PostsByCategory(ctx context.Context, categorySlug string) []domain.Post
	FallbackMode() bool
}
