// Package batch provides concurrency-bounded, rate-limited batch embedding
// with all-or-nothing semantics.
package batch

import (
	"context"
	"fmt"

	"github.com/fwojciec/docrag"
	"golang.org/x/sync/errgroup"
)

// providerMaxBatchSize is the hard per-request limit of the embedding
// provider; configured batch sizes are capped at it.
const providerMaxBatchSize = 96

// Compile-time interface verification.
var _ docrag.Embedder = (*Embedder)(nil)

// Embedder wraps an embedding provider with batching, a concurrency gate,
// and per-call rate limiting.
//
// Semantics are all-or-nothing: if any batch fails or returns the wrong
// number of vectors, the whole operation fails and no partial result is
// returned. This prevents silently storing an inconsistent subset.
type Embedder struct {
	Client  docrag.Embedder
	Limiter docrag.Limiter // optional pacing per provider call

	// MaxBatchSize caps texts per provider call; values above the provider
	// hard limit are clamped. Zero means the provider hard limit.
	MaxBatchSize int

	// Concurrency bounds in-flight provider calls. Zero means 5.
	Concurrency int
}

// Embed generates one vector per input text. Batch results are concatenated
// in submission order, so output order always equals input order regardless
// of completion order.
func (e *Embedder) Embed(ctx context.Context, texts []string, inputType docrag.InputType) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	batches := Partition(texts, e.batchSize())
	results := make([][][]float32, len(batches))

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, b := range batches {
		g.Go(func() error {
			if e.Limiter != nil {
				if err := e.Limiter.Wait(gctx); err != nil {
					return err
				}
			}

			vectors, err := e.Client.Embed(gctx, b, inputType)
			if err != nil {
				return fmt.Errorf("embedding batch %d: %w", i, err)
			}
			if len(vectors) != len(b) {
				return docrag.Errorf(docrag.EINTERNAL,
					"embedding batch %d returned %d vectors for %d texts", i, len(vectors), len(b))
			}

			results[i] = vectors
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([][]float32, 0, len(texts))
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

func (e *Embedder) batchSize() int {
	if e.MaxBatchSize > 0 && e.MaxBatchSize < providerMaxBatchSize {
		return e.MaxBatchSize
	}
	return providerMaxBatchSize
}

// Partition splits texts into contiguous batches of at most size elements.
func Partition(texts []string, size int) [][]string {
	if len(texts) == 0 {
		return nil
	}

	var batches [][]string
	for start := 0; start < len(texts); start += size {
		end := start + size
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, texts[start:end])
	}
	return batches
}
