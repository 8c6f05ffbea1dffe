package gemini

import (
	"context"

	"github.com/fwojciec/docrag"
	"google.golang.org/genai"
)

const generationModel = "gemini-2.5-flash"

// Ensure Generator implements docrag.Generator at compile time.
var _ docrag.Generator = (*Generator)(nil)

// Generator produces answers using the Gemini generation API.
type Generator struct {
	client *genai.Client
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client) *Generator {
	return &Generator{client: client}
}

// Generate produces a text response for the given prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", docrag.Errorf(docrag.EINVALID, "prompt required")
	}

	result, err := g.client.Models.GenerateContent(ctx, generationModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", docrag.Errorf(docrag.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for answer generation.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about website documentation. Answer based only on the context provided. If the answer is not in the context, say so.",
			}},
		},
		Temperature: &temp,
	}
}
