package mock

import (
	"context"

	"github.com/fwojciec/docrag"
)

var _ docrag.VectorStore = (*VectorStore)(nil)

// VectorStore is a mock implementation of docrag.VectorStore.
type VectorStore struct {
	EnsureCollectionFn func(ctx context.Context, vectorSize int, distance string) error
	UpsertFn           func(ctx context.Context, vectors [][]float32, payloads []map[string]any, ids []string) error
	SearchFn           func(ctx context.Context, queryVector []float32, limit int, filters map[string]any) ([]docrag.SearchResult, error)
	CountFn            func(ctx context.Context) (int, error)
}

func (s *VectorStore) EnsureCollection(ctx context.Context, vectorSize int, distance string) error {
	return s.EnsureCollectionFn(ctx, vectorSize, distance)
}

func (s *VectorStore) Upsert(ctx context.Context, vectors [][]float32, payloads []map[string]any, ids []string) error {
	return s.UpsertFn(ctx, vectors, payloads, ids)
}

func (s *VectorStore) Search(ctx context.Context, queryVector []float32, limit int, filters map[string]any) ([]docrag.SearchResult, error) {
	return s.SearchFn(ctx, queryVector, limit, filters)
}

func (s *VectorStore) Count(ctx context.Context) (int, error) {
	return s.CountFn(ctx)
}
