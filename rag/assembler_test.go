package rag_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/mock"
	"github.com/fwojciec/docrag/rag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryVector() [][]float32 {
	return [][]float32{{0.1, 0.2, 0.3}}
}

func TestAssembler_Answer_EmptyQuery(t *testing.T) {
	t.Parallel()

	assembler := &rag.Assembler{}

	answer := assembler.Answer(context.Background(), "   ", "")

	assert.Contains(t, answer.Response, "Please ask a question")
	assert.Empty(t, answer.Sources)
}

func TestAssembler_Answer_EmbedFailureDegradesToFixedResponse(t *testing.T) {
	t.Parallel()

	assembler := &rag.Assembler{
		Embedder: &mock.Embedder{
			EmbedFn: func(context.Context, []string, docrag.InputType) ([][]float32, error) {
				return nil, docrag.Errorf(docrag.EUNAVAILABLE, "embedding service down")
			},
		},
	}

	answer := assembler.Answer(context.Background(), "how do I install?", "")

	assert.Contains(t, answer.Response, "couldn't process your query")
}

func TestAssembler_Answer_UsesQueryTaskType(t *testing.T) {
	t.Parallel()

	var gotInputType docrag.InputType
	assembler := &rag.Assembler{
		Embedder: &mock.Embedder{
			EmbedFn: func(_ context.Context, texts []string, inputType docrag.InputType) ([][]float32, error) {
				gotInputType = inputType
				return queryVector(), nil
			},
		},
		Store: &mock.VectorStore{
			SearchFn: func(context.Context, []float32, int, map[string]any) ([]docrag.SearchResult, error) {
				return nil, nil
			},
		},
	}

	assembler.Answer(context.Background(), "how do I install?", "")

	assert.Equal(t, docrag.InputTypeQuery, gotInputType)
}

func TestAssembler_Answer_NoResults(t *testing.T) {
	t.Parallel()

	assembler := &rag.Assembler{
		Embedder: &mock.Embedder{
			EmbedFn: func(context.Context, []string, docrag.InputType) ([][]float32, error) {
				return queryVector(), nil
			},
		},
		Store: &mock.VectorStore{
			SearchFn: func(context.Context, []float32, int, map[string]any) ([]docrag.SearchResult, error) {
				return nil, nil
			},
		},
	}

	answer := assembler.Answer(context.Background(), "how do I install?", "")

	assert.Contains(t, answer.Response, "couldn't find relevant information")
}

func TestAssembler_Answer_ResultsWithoutContentFields(t *testing.T) {
	t.Parallel()

	assembler := &rag.Assembler{
		Embedder: &mock.Embedder{
			EmbedFn: func(context.Context, []string, docrag.InputType) ([][]float32, error) {
				return queryVector(), nil
			},
		},
		Store: &mock.VectorStore{
			SearchFn: func(context.Context, []float32, int, map[string]any) ([]docrag.SearchResult, error) {
				return []docrag.SearchResult{
					{ID: "a", Score: 0.9, Payload: map[string]any{"url": "https://example.com"}},
				}, nil
			},
		},
	}

	answer := assembler.Answer(context.Background(), "how do I install?", "")

	assert.Contains(t, answer.Response, "couldn't extract relevant content")
}

func TestAssembler_Answer_GeneratesFromRetrievedContext(t *testing.T) {
	t.Parallel()

	var gotPrompt string
	assembler := &rag.Assembler{
		Embedder: &mock.Embedder{
			EmbedFn: func(context.Context, []string, docrag.InputType) ([][]float32, error) {
				return queryVector(), nil
			},
		},
		Store: &mock.VectorStore{
			SearchFn: func(context.Context, []float32, int, map[string]any) ([]docrag.SearchResult, error) {
				return []docrag.SearchResult{
					{ID: "a", Score: 0.9, Payload: map[string]any{
						"text":  "Run the install script to get started.",
						"title": "Installation",
						"url":   "https://example.com/docs/install",
					}},
				}, nil
			},
		},
		Generator: &mock.Generator{
			GenerateFn: func(_ context.Context, prompt string) (string, error) {
				gotPrompt = prompt
				return "Run the install script.", nil
			},
		},
	}

	answer := assembler.Answer(context.Background(), "how do I install?", "")

	assert.Equal(t, "Run the install script.", answer.Response)
	assert.Contains(t, gotPrompt, "Run the install script to get started.")
	assert.Contains(t, gotPrompt, "Question: how do I install?")
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "Installation", answer.Sources[0].Title)
	assert.Equal(t, "https://example.com/docs/install", answer.Sources[0].URL)
	assert.InDelta(t, 0.9, answer.Sources[0].Score, 0.001)
	assert.Equal(t, 1, answer.Metadata.RetrievedCount)
	assert.False(t, answer.Metadata.UsedProvidedContext)
}

func TestAssembler_Answer_PrefersTextOverContent(t *testing.T) {
	t.Parallel()

	var gotPrompt string
	assembler := &rag.Assembler{
		Embedder: &mock.Embedder{
			EmbedFn: func(context.Context, []string, docrag.InputType) ([][]float32, error) {
				return queryVector(), nil
			},
		},
		Store: &mock.VectorStore{
			SearchFn: func(context.Context, []float32, int, map[string]any) ([]docrag.SearchResult, error) {
				return []docrag.SearchResult{
					{Payload: map[string]any{"text": "from text", "content": "from content"}},
					{Payload: map[string]any{"content": "only content"}},
				}, nil
			},
		},
		Generator: &mock.Generator{
			GenerateFn: func(_ context.Context, prompt string) (string, error) {
				gotPrompt = prompt
				return "answer", nil
			},
		},
	}

	assembler.Answer(context.Background(), "question", "")

	assert.Contains(t, gotPrompt, "from text")
	assert.NotContains(t, gotPrompt, "from content")
	assert.Contains(t, gotPrompt, "only content")
}

func TestAssembler_Answer_ProvidedContextPrepended(t *testing.T) {
	t.Parallel()

	var gotPrompt string
	assembler := &rag.Assembler{
		Embedder: &mock.Embedder{
			EmbedFn: func(context.Context, []string, docrag.InputType) ([][]float32, error) {
				return queryVector(), nil
			},
		},
		Store: &mock.VectorStore{
			SearchFn: func(context.Context, []float32, int, map[string]any) ([]docrag.SearchResult, error) {
				return []docrag.SearchResult{
					{Payload: map[string]any{"text": "retrieved chunk"}},
				}, nil
			},
		},
		Generator: &mock.Generator{
			GenerateFn: func(_ context.Context, prompt string) (string, error) {
				gotPrompt = prompt
				return "answer", nil
			},
		},
	}

	answer := assembler.Answer(context.Background(), "question", "selected text")

	assert.True(t, answer.Metadata.UsedProvidedContext)
	assert.Less(t, strings.Index(gotPrompt, "selected text"), strings.Index(gotPrompt, "retrieved chunk"))
}

func TestAssembler_Answer_GenerationFailureFallsBackToContext(t *testing.T) {
	t.Parallel()

	longText := strings.Repeat("documentation content ", 50)
	assembler := &rag.Assembler{
		Embedder: &mock.Embedder{
			EmbedFn: func(context.Context, []string, docrag.InputType) ([][]float32, error) {
				return queryVector(), nil
			},
		},
		Store: &mock.VectorStore{
			SearchFn: func(context.Context, []float32, int, map[string]any) ([]docrag.SearchResult, error) {
				return []docrag.SearchResult{
					{Payload: map[string]any{"text": longText}},
				}, nil
			},
		},
		Generator: &mock.Generator{
			GenerateFn: func(context.Context, string) (string, error) {
				return "", docrag.Errorf(docrag.EUNAVAILABLE, "generation unavailable")
			},
		},
	}

	answer := assembler.Answer(context.Background(), "question", "")

	assert.Contains(t, answer.Response, "Based on the documentation content:")
	assert.Contains(t, answer.Response, "truncated for brevity")
	assert.Equal(t, 1, answer.Metadata.RetrievedCount)
}

func TestAssembler_Answer_ShortFallbackHasNoTruncationNote(t *testing.T) {
	t.Parallel()

	assembler := &rag.Assembler{
		Embedder: &mock.Embedder{
			EmbedFn: func(context.Context, []string, docrag.InputType) ([][]float32, error) {
				return queryVector(), nil
			},
		},
		Store: &mock.VectorStore{
			SearchFn: func(context.Context, []float32, int, map[string]any) ([]docrag.SearchResult, error) {
				return []docrag.SearchResult{
					{Payload: map[string]any{"text": "short chunk"}},
				}, nil
			},
		},
		Generator: &mock.Generator{
			GenerateFn: func(context.Context, string) (string, error) {
				return "", docrag.Errorf(docrag.EUNAVAILABLE, "generation unavailable")
			},
		},
	}

	answer := assembler.Answer(context.Background(), "question", "")

	assert.Contains(t, answer.Response, "short chunk")
	assert.NotContains(t, answer.Response, "truncated for brevity")
}

func TestBuildPrompt_ContainsContextAndQuestion(t *testing.T) {
	t.Parallel()

	prompt := rag.BuildPrompt("What is this?", []string{"part one", "part two"})

	assert.Contains(t, prompt, "Context:")
	assert.Contains(t, prompt, "part one")
	assert.Contains(t, prompt, "part two")
	assert.Contains(t, prompt, "Question: What is this?")
	assert.True(t, strings.HasSuffix(prompt, "Answer:"))
}
