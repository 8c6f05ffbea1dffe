package mock

import (
	"context"

	"github.com/fwojciec/docrag"
)

var _ docrag.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of docrag.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, baseURL string, maxDepth int) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, baseURL string, maxDepth int) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL, maxDepth)
}

var _ docrag.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docrag.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}

var _ docrag.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of docrag.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *Limiter) Wait(ctx context.Context) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx)
}
