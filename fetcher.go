package docrag

import "context"

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL, waits for JavaScript to render,
	// and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// URLSource discovers documentation URLs from a site.
// Implementations hide the complexity of sitemap vs recursive discovery.
type URLSource interface {
	Discover(ctx context.Context, baseURL string, maxDepth int) ([]string, error)
}
