package batch_test

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/batch"
	"github.com/fwojciec/docrag/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
		size  int
		want  []int // batch lengths
	}{
		{name: "empty", count: 0, size: 3, want: nil},
		{name: "single partial batch", count: 2, size: 3, want: []int{2}},
		{name: "exact multiple", count: 6, size: 3, want: []int{3, 3}},
		{name: "remainder batch", count: 7, size: 3, want: []int{3, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			texts := make([]string, tt.count)
			for i := range texts {
				texts[i] = strconv.Itoa(i)
			}

			batches := batch.Partition(texts, tt.size)
			require.Len(t, batches, len(tt.want))
			for i, b := range batches {
				assert.Len(t, b, tt.want[i])
			}
		})
	}
}

func TestEmbedder_Embed_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	// Each text embeds to a vector encoding its numeric value, so output
	// order is checkable regardless of batch completion order.
	e := &batch.Embedder{
		Client: &mock.Embedder{
			EmbedFn: func(ctx context.Context, texts []string, inputType docrag.InputType) ([][]float32, error) {
				vectors := make([][]float32, len(texts))
				for i, txt := range texts {
					n, err := strconv.Atoi(txt)
					if err != nil {
						return nil, err
					}
					vectors[i] = []float32{float32(n)}
				}
				return vectors, nil
			},
		},
		MaxBatchSize: 3,
		Concurrency:  4,
	}

	texts := make([]string, 10)
	for i := range texts {
		texts[i] = strconv.Itoa(i)
	}

	vectors, err := e.Embed(context.Background(), texts, docrag.InputTypeDocument)
	require.NoError(t, err)
	require.Len(t, vectors, 10)
	for i, v := range vectors {
		assert.Equal(t, []float32{float32(i)}, v)
	}
}

func TestEmbedder_Embed_Empty(t *testing.T) {
	t.Parallel()

	e := &batch.Embedder{Client: &mock.Embedder{}}

	vectors, err := e.Embed(context.Background(), nil, docrag.InputTypeDocument)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

func TestEmbedder_Embed_BatchFailureFailsAll(t *testing.T) {
	t.Parallel()

	e := &batch.Embedder{
		Client: &mock.Embedder{
			EmbedFn: func(ctx context.Context, texts []string, inputType docrag.InputType) ([][]float32, error) {
				if texts[0] == "3" {
					return nil, docrag.Errorf(docrag.EINTERNAL, "provider rejected batch")
				}
				vectors := make([][]float32, len(texts))
				for i := range texts {
					vectors[i] = []float32{0.1}
				}
				return vectors, nil
			},
		},
		MaxBatchSize: 3,
		Concurrency:  1,
	}

	texts := make([]string, 7)
	for i := range texts {
		texts[i] = strconv.Itoa(i)
	}

	vectors, err := e.Embed(context.Background(), texts, docrag.InputTypeDocument)
	require.Error(t, err)
	assert.Nil(t, vectors, "no partial results on failure")
	assert.Contains(t, err.Error(), "embedding batch 1")
}

func TestEmbedder_Embed_VectorCountMismatch(t *testing.T) {
	t.Parallel()

	e := &batch.Embedder{
		Client: &mock.Embedder{
			EmbedFn: func(ctx context.Context, texts []string, inputType docrag.InputType) ([][]float32, error) {
				return [][]float32{{0.1}}, nil // always one vector
			},
		},
		MaxBatchSize: 3,
	}

	_, err := e.Embed(context.Background(), []string{"a", "b", "c"}, docrag.InputTypeDocument)
	require.Error(t, err)
	assert.Equal(t, docrag.EINTERNAL, docrag.ErrorCode(err))
	assert.Equal(t, "embedding batch 0 returned 1 vectors for 3 texts", docrag.ErrorMessage(err))
}

func TestEmbedder_Embed_WaitsPerBatch(t *testing.T) {
	t.Parallel()

	var waits atomic.Int64
	e := &batch.Embedder{
		Client: &mock.Embedder{
			EmbedFn: func(ctx context.Context, texts []string, inputType docrag.InputType) ([][]float32, error) {
				vectors := make([][]float32, len(texts))
				for i := range texts {
					vectors[i] = []float32{0.1}
				}
				return vectors, nil
			},
		},
		Limiter: &mock.Limiter{
			WaitFn: func(ctx context.Context) error {
				waits.Add(1)
				return nil
			},
		},
		MaxBatchSize: 2,
	}

	texts := make([]string, 5)
	for i := range texts {
		texts[i] = fmt.Sprintf("text %d", i)
	}

	_, err := e.Embed(context.Background(), texts, docrag.InputTypeDocument)
	require.NoError(t, err)
	assert.Equal(t, int64(3), waits.Load(), "one limiter wait per provider call")
}

func TestEmbedder_Embed_PassesInputType(t *testing.T) {
	t.Parallel()

	var got docrag.InputType
	e := &batch.Embedder{
		Client: &mock.Embedder{
			EmbedFn: func(ctx context.Context, texts []string, inputType docrag.InputType) ([][]float32, error) {
				got = inputType
				return [][]float32{{0.1}}, nil
			},
		},
	}

	_, err := e.Embed(context.Background(), []string{"q"}, docrag.InputTypeQuery)
	require.NoError(t, err)
	assert.Equal(t, docrag.InputTypeQuery, got)
}
