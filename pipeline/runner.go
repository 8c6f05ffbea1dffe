// Package pipeline drives the ingestion flow from URL discovery through
// vector storage.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/crawl"
)

// BatchFetcher fetches a set of URLs concurrently, reporting per-URL
// outcomes.
type BatchFetcher interface {
	FetchAll(ctx context.Context, urls []string) []crawl.FetchResult
}

// Pipeline runs the full ingestion sequence: discover, fetch, process,
// embed, store, validate. Progress and outcome are recorded on State.
type Pipeline struct {
	Config    docrag.Config
	Sitemap   docrag.SitemapService
	Source    docrag.URLSource
	Fetcher   BatchFetcher
	Extractor docrag.Extractor
	Chunker   *docrag.Chunker
	Embedder  docrag.Embedder
	Store     docrag.VectorStore
	State     *docrag.State
	Logger    *slog.Logger
}

// Run executes the pipeline. The caller is expected to have claimed the
// State via TryStart; Run releases the running flag when it returns.
func (p *Pipeline) Run(ctx context.Context, maxDepth int) error {
	defer p.State.Stop()

	logger := p.logger()

	p.State.SetProgress("Discovering URLs")
	urls, err := p.discover(ctx, maxDepth)
	if err != nil {
		return p.fail(fmt.Errorf("discovering URLs: %w", err))
	}
	if len(urls) == 0 {
		return p.fail(docrag.Errorf(docrag.ENOTFOUND, "no URLs discovered for %s", p.Config.BaseURL))
	}
	logger.Info("discovered URLs", "count", len(urls))

	p.State.SetProgress("Fetching and processing content")
	chunks := p.fetchAndProcess(ctx, urls)
	if len(chunks) == 0 {
		return p.fail(docrag.Errorf(docrag.ENOTFOUND, "no content extracted from %d pages", len(urls)))
	}
	logger.Info("processed content chunks", "count", len(chunks))

	p.State.SetProgress("Generating embeddings")
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	vectors, err := p.Embedder.Embed(ctx, texts, docrag.InputTypeDocument)
	if err != nil {
		return p.fail(fmt.Errorf("generating embeddings: %w", err))
	}
	logger.Info("generated embeddings", "count", len(vectors))

	p.State.SetProgress("Storing vectors")
	if err := p.Store.EnsureCollection(ctx, len(vectors[0]), docrag.DistanceCosine); err != nil {
		return p.fail(fmt.Errorf("ensuring collection: %w", err))
	}

	payloads := make([]map[string]any, len(chunks))
	ids := make([]string, len(chunks))
	for i, chunk := range chunks {
		payload := make(map[string]any, len(chunk.Metadata)+2)
		for k, v := range chunk.Metadata {
			payload[k] = v
		}
		payload["text"] = chunk.Text
		payload["chunk_id"] = chunk.ID
		payloads[i] = payload
		ids[i] = chunkPointID(chunk)
	}
	if err := p.Store.Upsert(ctx, vectors, payloads, ids); err != nil {
		return p.fail(fmt.Errorf("storing vectors: %w", err))
	}

	p.State.SetProgress("Validating stored vectors")
	stored, err := p.Store.Count(ctx)
	if err != nil {
		return p.fail(fmt.Errorf("counting stored vectors: %w", err))
	}
	reconciliation := docrag.Reconcile(len(vectors), stored)
	if !reconciliation.Passed {
		logger.Warn("vector count reconciliation failed", "issues", strings.Join(reconciliation.Issues, "; "))
	}
	logger.Info("stored vectors", "count", stored, "validation_passed", reconciliation.Passed)

	p.State.Complete(fmt.Sprintf("Completed successfully. Stored %d vectors.", stored))
	return nil
}

// discover prefers the sitemap fast path and falls back to the
// depth-bounded crawl when the sitemap yields nothing.
func (p *Pipeline) discover(ctx context.Context, maxDepth int) ([]string, error) {
	if p.Sitemap != nil {
		urls, err := p.Sitemap.DiscoverURLs(ctx, p.Config.BaseURL)
		if err != nil {
			p.logger().Warn("sitemap discovery failed, falling back to crawl", "error", err)
		} else if len(urls) > 0 {
			return urls, nil
		}
	}
	return p.Source.Discover(ctx, p.Config.BaseURL, maxDepth)
}

// fetchAndProcess fetches all pages and turns each successful fetch into
// chunks. Individual page failures are logged and skipped.
func (p *Pipeline) fetchAndProcess(ctx context.Context, urls []string) []docrag.Chunk {
	logger := p.logger()
	results := p.Fetcher.FetchAll(ctx, urls)

	var chunks []docrag.Chunk
	for _, result := range results {
		if result.Err != nil {
			logger.Warn("skipping page after fetch failure", "url", result.URL, "error", result.Err)
			continue
		}
		if result.HTML == "" {
			continue
		}

		doc, err := p.Extractor.Extract(result.HTML, result.URL)
		if err != nil {
			logger.Warn("skipping page after extraction failure", "url", result.URL, "error", err)
			continue
		}

		cleaned := docrag.Clean(doc.Text)
		if cleaned == "" {
			logger.Warn("skipping page with no content after cleaning", "url", result.URL)
			continue
		}

		metadata := doc.Metadata.Map()
		metadata["content_hash"] = fmt.Sprintf("%016x", xxhash.Sum64String(cleaned))
		chunks = append(chunks, p.Chunker.Split(cleaned, metadata)...)
	}
	return chunks
}

// chunkPointID builds a stable identifier for a chunk so re-ingesting a
// page overwrites its previous chunks.
func chunkPointID(chunk docrag.Chunk) string {
	url, _ := chunk.Metadata["url"].(string)
	return fmt.Sprintf("%s#%s", url, chunk.ID)
}

func (p *Pipeline) fail(err error) error {
	p.logger().Error("ingestion pipeline failed", "error", err)
	p.State.Fail(err)
	return err
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
