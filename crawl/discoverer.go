package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docrag"
)

// defaultPageTimeout bounds a single page navigation during discovery.
const defaultPageTimeout = 30 * time.Second

// Compile-time interface verification.
var _ docrag.URLSource = (*Discoverer)(nil)

// Discoverer finds documentation URLs by depth-bounded recursive traversal.
//
// The traversal is sequential: one page navigation at a time, depth-first.
// Depth increases by one per recursive hop from the page where a link was
// found, so sibling links discovered on the same page share the same next
// depth. A navigation error abandons that branch but not the crawl.
type Discoverer struct {
	Fetcher docrag.Fetcher
	Links   docrag.LinkExtractor
	Logger  *slog.Logger

	// PageTimeout bounds a single navigation. Zero means the default.
	PageTimeout time.Duration
}

// Discover crawls from baseURL up to maxDepth hops away and returns the set
// of discovered in-scope URLs in lexical order.
func (d *Discoverer) Discover(ctx context.Context, baseURL string, maxDepth int) ([]string, error) {
	frontier, err := NewFrontier(baseURL)
	if err != nil {
		return nil, docrag.Errorf(docrag.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	base := Normalize(baseURL)
	frontier.AddDiscovered(base)
	d.crawlPage(ctx, frontier, base, 0, maxDepth)

	d.logger().Info("url discovery completed",
		"base_url", baseURL,
		"discovered", len(frontier.Discovered()),
		"visited", frontier.VisitedCount(),
	)
	return frontier.Discovered(), nil
}

// crawlPage fetches one page, records it, and recurses into newly
// discovered links while depth allows.
func (d *Discoverer) crawlPage(ctx context.Context, frontier *Frontier, pageURL string, depth, maxDepth int) {
	if depth > maxDepth {
		return
	}
	if frontier.Visited(pageURL) {
		return
	}
	if ctx.Err() != nil {
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, d.pageTimeout())
	html, err := d.Fetcher.Fetch(fetchCtx, pageURL)
	cancel()
	if err != nil {
		d.logger().Warn("error crawling page", "url", pageURL, "depth", depth, "err", err)
		return
	}

	frontier.MarkVisited(pageURL)

	links, err := d.Links.ExtractLinks(html, pageURL)
	if err != nil {
		d.logger().Warn("error extracting links", "url", pageURL, "err", err)
		return
	}

	for _, link := range links {
		link = Normalize(link)
		if !frontier.Valid(link) {
			continue
		}
		if !frontier.AddDiscovered(link) {
			continue
		}
		if depth < maxDepth {
			d.crawlPage(ctx, frontier, link, depth+1, maxDepth)
		}
	}
}

func (d *Discoverer) pageTimeout() time.Duration {
	if d.PageTimeout > 0 {
		return d.PageTimeout
	}
	return defaultPageTimeout
}

func (d *Discoverer) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
