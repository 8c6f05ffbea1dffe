// Package qdrant implements vector storage using the Qdrant gRPC client.
package qdrant

import (
	"context"
	"fmt"

	"github.com/fwojciec/docrag"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// pointNamespace makes point IDs deterministic so re-ingesting the same
// chunk updates the existing point instead of creating a duplicate.
var pointNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// Ensure Store implements docrag.VectorStore at compile time.
var _ docrag.VectorStore = (*Store)(nil)

// Store implements docrag.VectorStore backed by a Qdrant collection.
type Store struct {
	client     *qdrant.Client
	collection string
	limiter    docrag.Limiter
}

// NewStore creates a new Store for the given collection.
func NewStore(client *qdrant.Client, collection string, limiter docrag.Limiter) *Store {
	return &Store{client: client, collection: collection, limiter: limiter}
}

// EnsureCollection creates the collection if it does not already exist.
// Calling it repeatedly with the same parameters is a no-op.
func (s *Store) EnsureCollection(ctx context.Context, vectorSize int, distance string) error {
	if vectorSize <= 0 {
		return docrag.Errorf(docrag.EINVALID, "vector size must be positive, got %d", vectorSize)
	}

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("checking collection %q: %w", s.collection, err)
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(vectorSize),
			Distance: Distance(distance),
		}),
	})
	if err != nil {
		return fmt.Errorf("creating collection %q: %w", s.collection, err)
	}
	return nil
}

// Upsert writes vectors with their payloads into the collection. When ids
// is nil, sequential identifiers are generated. Existing points with the
// same identifier are overwritten.
func (s *Store) Upsert(ctx context.Context, vectors [][]float32, payloads []map[string]any, ids []string) error {
	if len(vectors) == 0 {
		return nil
	}
	if len(payloads) != len(vectors) {
		return docrag.Errorf(docrag.EINVALID, "got %d payloads for %d vectors", len(payloads), len(vectors))
	}
	if ids != nil && len(ids) != len(vectors) {
		return docrag.Errorf(docrag.EINVALID, "got %d ids for %d vectors", len(ids), len(vectors))
	}

	points := make([]*qdrant.PointStruct, len(vectors))
	for i := range vectors {
		id := PointID(i, ids)
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(id),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: toQdrantPayload(payloads[i]),
		}
	}

	if err := s.wait(ctx); err != nil {
		return err
	}
	if _, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("upserting %d points: %w", len(points), err)
	}
	return nil
}

// Search returns the closest points to the query vector, optionally
// restricted by equality filters. A scalar filter value must match
// exactly; a list value matches any of its elements.
func (s *Store) Search(ctx context.Context, queryVector []float32, limit int, filters map[string]any) ([]docrag.SearchResult, error) {
	if len(queryVector) == 0 {
		return nil, docrag.Errorf(docrag.EINVALID, "query vector required")
	}
	if limit <= 0 {
		limit = 5
	}

	lim := uint64(limit)
	query := &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          &lim,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         BuildFilter(filters),
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	points, err := s.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying collection %q: %w", s.collection, err)
	}

	results := make([]docrag.SearchResult, 0, len(points))
	for _, p := range points {
		results = append(results, docrag.SearchResult{
			ID:      pointIDString(p.Id),
			Score:   p.Score,
			Payload: fromQdrantPayload(p.Payload),
		})
	}
	return results, nil
}

// Count returns the exact number of points in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.wait(ctx); err != nil {
		return 0, err
	}
	exact := true
	n, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: s.collection,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("counting collection %q: %w", s.collection, err)
	}
	return int(n), nil
}

func (s *Store) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

// Distance maps a domain distance name to the Qdrant distance metric.
// Unknown names fall back to cosine.
func Distance(name string) qdrant.Distance {
	switch name {
	case docrag.DistanceEuclidean:
		return qdrant.Distance_Euclid
	case docrag.DistanceDot:
		return qdrant.Distance_Dot
	default:
		return qdrant.Distance_Cosine
	}
}

// PointID returns the deterministic UUID for the point at position i.
// Caller-supplied identifiers hash to the same UUID on every run.
func PointID(i int, ids []string) string {
	id := fmt.Sprintf("doc_%d", i)
	if ids != nil {
		id = ids[i]
	}
	return uuid.NewSHA1(pointNamespace, []byte(id)).String()
}

// BuildFilter converts equality filters into a Qdrant filter. Scalar
// values become must conditions; list values become a nested should
// group matching any element. Nil or empty filters return nil.
func BuildFilter(filters map[string]any) *qdrant.Filter {
	if len(filters) == 0 {
		return nil
	}

	var must []*qdrant.Condition
	for key, value := range filters {
		switch v := value.(type) {
		case []string:
			if len(v) == 0 {
				continue
			}
			should := make([]*qdrant.Condition, len(v))
			for i, elem := range v {
				should[i] = matchCondition(key, elem)
			}
			must = append(must, anyOfCondition(should))
		case []any:
			if len(v) == 0 {
				continue
			}
			should := make([]*qdrant.Condition, len(v))
			for i, elem := range v {
				should[i] = matchCondition(key, elem)
			}
			must = append(must, anyOfCondition(should))
		default:
			must = append(must, matchCondition(key, value))
		}
	}
	if len(must) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: must}
}

func matchCondition(key string, value any) *qdrant.Condition {
	switch v := value.(type) {
	case string:
		return qdrant.NewMatch(key, v)
	case bool:
		return qdrant.NewMatchBool(key, v)
	case int:
		return qdrant.NewMatchInt(key, int64(v))
	case int64:
		return qdrant.NewMatchInt(key, v)
	case float64:
		return qdrant.NewMatchInt(key, int64(v))
	default:
		return qdrant.NewMatch(key, fmt.Sprintf("%v", v))
	}
}

func anyOfCondition(should []*qdrant.Condition) *qdrant.Condition {
	return &qdrant.Condition{
		ConditionOneOf: &qdrant.Condition_Filter{
			Filter: &qdrant.Filter{Should: should},
		},
	}
}

func toQdrantPayload(payload map[string]any) map[string]*qdrant.Value {
	out := make(map[string]*qdrant.Value, len(payload))
	for k, v := range payload {
		out[k] = toQdrantValue(v)
	}
	return out
}

func toQdrantValue(v any) *qdrant.Value {
	switch val := v.(type) {
	case string:
		return qdrant.NewValueString(val)
	case int:
		return qdrant.NewValueInt(int64(val))
	case int64:
		return qdrant.NewValueInt(val)
	case uint64:
		return qdrant.NewValueInt(int64(val))
	case float64:
		return qdrant.NewValueDouble(val)
	case float32:
		return qdrant.NewValueDouble(float64(val))
	case bool:
		return qdrant.NewValueBool(val)
	case []string:
		values := make([]*qdrant.Value, len(val))
		for i, s := range val {
			values[i] = qdrant.NewValueString(s)
		}
		return listValue(values)
	case []any:
		values := make([]*qdrant.Value, len(val))
		for i, elem := range val {
			values[i] = toQdrantValue(elem)
		}
		return listValue(values)
	default:
		return qdrant.NewValueString(fmt.Sprintf("%v", v))
	}
}

func listValue(values []*qdrant.Value) *qdrant.Value {
	return &qdrant.Value{
		Kind: &qdrant.Value_ListValue{
			ListValue: &qdrant.ListValue{Values: values},
		},
	}
}

func fromQdrantPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = fromQdrantValue(v)
	}
	return out
}

func fromQdrantValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch kind := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_ListValue:
		elems := make([]any, len(kind.ListValue.Values))
		for i, elem := range kind.ListValue.Values {
			elems[i] = fromQdrantValue(elem)
		}
		return elems
	default:
		return nil
	}
}

func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return fmt.Sprintf("%d", id.GetNum())
}
