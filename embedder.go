package docrag

import "context"

// InputType distinguishes how an embedding will be used. Embedding providers
// optimize document and query vectors differently.
type InputType string

// Input types for embedding generation.
const (
	InputTypeDocument InputType = "search_document"
	InputTypeQuery    InputType = "search_query"
)

// Embedder turns texts into fixed-length vectors.
type Embedder interface {
	// Embed generates one vector per input text, in input order.
	// An empty input returns an empty result without calling the provider.
	Embed(ctx context.Context, texts []string, inputType InputType) ([][]float32, error)
}

// Generator produces a natural-language answer from a prompt.
// It is treated as best-effort: callers must have a fallback for failures.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
