package mock

import (
	"context"

	"github.com/fwojciec/docrag"
)

var _ docrag.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of docrag.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string, inputType docrag.InputType) ([][]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, texts []string, inputType docrag.InputType) ([][]float32, error) {
	return e.EmbedFn(ctx, texts, inputType)
}

var _ docrag.Generator = (*Generator)(nil)

// Generator is a mock implementation of docrag.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.GenerateFn(ctx, prompt)
}
