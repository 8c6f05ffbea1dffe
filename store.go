package docrag

import "context"

// Distance metrics supported by vector store collections.
const (
	DistanceCosine    = "cosine"
	DistanceEuclidean = "euclidean"
	DistanceDot       = "dot"
)

// SearchResult represents a single similarity-search match.
// Results are ephemeral: produced by a query, never persisted.
type SearchResult struct {
	ID      string         `json:"id"`
	Score   float32        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// VectorStore manages a vector collection: provisioning, idempotent upsert,
// filtered similarity search, and point counting.
type VectorStore interface {
	// EnsureCollection provisions the collection if it does not exist.
	// Calling it against an existing collection is a no-op.
	EnsureCollection(ctx context.Context, vectorSize int, distance string) error

	// Upsert stores vectors with their payloads. Vectors and payloads must
	// have equal non-zero length. When ids is nil, sequential ids are
	// generated. Upserting the same ids again replaces the stored points.
	Upsert(ctx context.Context, vectors [][]float32, payloads []map[string]any, ids []string) error

	// Search returns up to limit results ordered by descending similarity.
	// Filters are equality-only: scalar values must match exactly, slice
	// values match any element. An empty result is a valid outcome.
	Search(ctx context.Context, queryVector []float32, limit int, filters map[string]any) ([]SearchResult, error)

	// Count returns the number of points stored in the collection.
	Count(ctx context.Context) (int, error)
}
