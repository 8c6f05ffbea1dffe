package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docrag"
)

// Ensure LoggingVectorStore implements docrag.VectorStore.
var _ docrag.VectorStore = (*LoggingVectorStore)(nil)

// LoggingVectorStore wraps a VectorStore with debug logging.
type LoggingVectorStore struct {
	next   docrag.VectorStore
	logger *slog.Logger
}

// NewLoggingVectorStore creates a new LoggingVectorStore.
func NewLoggingVectorStore(next docrag.VectorStore, logger *slog.Logger) *LoggingVectorStore {
	return &LoggingVectorStore{next: next, logger: logger}
}

// EnsureCollection delegates to the wrapped store and logs the operation.
func (s *LoggingVectorStore) EnsureCollection(ctx context.Context, vectorSize int, distance string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("ensure collection",
			"vector_size", vectorSize,
			"distance", distance,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.EnsureCollection(ctx, vectorSize, distance)
}

// Upsert delegates to the wrapped store and logs the operation.
func (s *LoggingVectorStore) Upsert(ctx context.Context, vectors [][]float32, payloads []map[string]any, ids []string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("upsert",
			"points", len(vectors),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Upsert(ctx, vectors, payloads, ids)
}

// Search delegates to the wrapped store and logs the operation.
func (s *LoggingVectorStore) Search(ctx context.Context, queryVector []float32, limit int, filters map[string]any) (results []docrag.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"limit", limit,
			"filters", len(filters),
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, queryVector, limit, filters)
}

// Count delegates to the wrapped store and logs the operation.
func (s *LoggingVectorStore) Count(ctx context.Context) (n int, err error) {
	defer func(begin time.Time) {
		s.logger.Info("count",
			"count", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Count(ctx)
}
