// Package warmer keeps the response cache populated by resolving the site's
// content on a fixed interval, so visitors rarely wait on WordPress.
package warmer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/genego-hq/genego-site/internal/domain"
	"github.com/genego-hq/genego-site/internal/logger"
)

// Service resolves home, every navigation page and the listed categories.
type Service struct {
	content    ContentSource
	categories []string
	log        logger.Logger
}

// NewService wires a warmer. categories are resolved after the pages.
func NewService(content ContentSource, categories []string, log logger.Logger) *Service {
	return &Service{
		content:    content,
		categories: categories,
		log:        logger.Ensure(log),
	}
}

// Run executes one warm pass. Items that could only be served from the
// fallback table are reported as errors.
func (s *Service) Run(ctx context.Context) error {
	if s == nil || s.content == nil {
		return fmt.Errorf("warmer service is not initialized")
	}
	if s.content.FallbackMode() {
		return nil
	}

	var errs []error
	if home := s.content.Home(ctx); home.Source == domain.SourceFallback {
		errs = append(errs, errors.New("home served from fallback"))
	}

	pages := s.content.Pages(ctx)
	for _, item := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if item.Slug == "" {
			continue
		}
		if page := s.content.Page(ctx, item.Slug); page.Source == domain.SourceFallback {
			errs = append(errs, fmt.Errorf("page %s served from fallback", item.Slug))
		}
	}

	posts := 0
	for _, category := range s.categories {
		if err := ctx.Err(); err != nil {
			return err
		}
		posts += len(s.content.PostsByCategory(ctx, category))
	}

	s.log.InfoObj("cache warm pass completed", "warm_result", map[string]any{
		"pages":      len(pages),
		"categories": len(s.categories),
		"posts":      posts,
		"failures":   len(errs),
	})
	return errors.Join(errs...)
}

// Loop runs a pass immediately and then on every tick until ctx is done.
func (s *Service) Loop(ctx context.Context, interval time.Duration) {
	if err := s.Run(ctx); err != nil {
		s.log.WarnObj("initial warm pass incomplete", "error", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.InfoObj("warm loop exiting", "reason", ctx.Err())
			return
		case <-ticker.C:
			if err := s.Run(ctx); err != nil {
				s.log.WarnObj("scheduled warm pass incomplete", "error", err)
			}
		}
	}
}
