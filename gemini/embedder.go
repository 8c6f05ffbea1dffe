// Package gemini implements embedding and answer generation using the
// Google Gemini API.
package gemini

import (
	"context"

	"github.com/fwojciec/docrag"
	"google.golang.org/genai"
)

const embeddingModel = "gemini-embedding-001"

// Ensure Embedder implements docrag.Embedder at compile time.
var _ docrag.Embedder = (*Embedder)(nil)

// Embedder generates embeddings via the Gemini embedding API.
type Embedder struct {
	client *genai.Client
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) *Embedder {
	return &Embedder{client: client}
}

// Embed generates one vector per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string, inputType docrag.InputType) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = &genai.Content{Parts: []*genai.Part{{Text: t}}}
	}

	config := &genai.EmbedContentConfig{
		TaskType: TaskType(inputType),
	}

	result, err := e.client.Models.EmbedContent(ctx, embeddingModel, contents, config)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, docrag.Errorf(docrag.EINTERNAL, "gemini returned %d embeddings for %d texts",
			embeddingCount(result), len(texts))
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, docrag.Errorf(docrag.EINTERNAL, "gemini returned empty embedding at index %d", i)
		}
		vectors[i] = emb.Values
	}
	return vectors, nil
}

// TaskType maps the domain input type to Gemini's task type names.
func TaskType(inputType docrag.InputType) string {
	if inputType == docrag.InputTypeQuery {
		return "RETRIEVAL_QUERY"
	}
	return "RETRIEVAL_DOCUMENT"
}

func embeddingCount(result *genai.EmbedContentResponse) int {
	if result == nil {
		return 0
	}
	return len(result.Embeddings)
}
