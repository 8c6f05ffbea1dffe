package crawl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/docrag"
	"golang.org/x/sync/semaphore"
)

// FetchResult holds the outcome of fetching a single discovered URL.
// A failed fetch records its error and does not affect sibling fetches.
type FetchResult struct {
	URL  string
	HTML string
	Err  error
}

// BatchFetcher fetches a batch of already-discovered URLs concurrently,
// gated by a counting semaphore. Individual failures are captured per URL;
// the batch itself never fails.
type BatchFetcher struct {
	Fetcher     docrag.Fetcher
	Limiter     docrag.Limiter // optional pacing per fetch
	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger

	// PageTimeout bounds a single navigation attempt. Zero means the default.
	PageTimeout time.Duration
}

// FetchAll fetches all urls and returns one result per URL in input order.
func (b *BatchFetcher) FetchAll(ctx context.Context, urls []string) []FetchResult {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	results := make([]FetchResult, len(urls))
	sem := semaphore.NewWeighted(int64(concurrency))

	var wg sync.WaitGroup
	for i, u := range urls {
		results[i].URL = u

		if err := sem.Acquire(ctx, 1); err != nil {
			results[i].Err = err
			continue
		}

		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			defer sem.Release(1)

			html, err := FetchWithRetryDelays(ctx, u, b.fetchOnce, delays)
			if err != nil {
				b.logger().Warn("fetch failed", "url", u, "err", err)
				results[i].Err = err
				return
			}
			results[i].HTML = html
		}(i, u)
	}
	wg.Wait()

	return results
}

// fetchOnce performs a single rate-limited, timeout-bounded navigation.
func (b *BatchFetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	if b.Limiter != nil {
		if err := b.Limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	timeout := b.PageTimeout
	if timeout <= 0 {
		timeout = defaultPageTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return b.Fetcher.Fetch(fetchCtx, url)
}

func (b *BatchFetcher) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}
