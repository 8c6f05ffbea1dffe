// Package rag assembles retrieval-augmented answers from stored document
// chunks.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/docrag"
)

const (
	emptyQueryResponse     = "Please ask a question about the documentation content."
	embedFailedResponse    = "Sorry, I couldn't process your query. Please try again."
	noResultsResponse      = "I couldn't find relevant information in the documentation to answer your question."
	noContentResponse      = "I found some related information but couldn't extract relevant content to answer your question."
	fallbackContextLength  = 500
	fallbackTruncationNote = "\n\n(Additional context was retrieved but truncated for brevity.)"
)

// Source identifies a document chunk that contributed to an answer.
type Source struct {
	Title string  `json:"title"`
	URL   string  `json:"url"`
	Page  string  `json:"page"`
	Score float32 `json:"score"`
}

// Metadata describes how an answer was assembled.
type Metadata struct {
	RetrievedCount      int  `json:"retrieved_count"`
	UsedProvidedContext bool `json:"used_provided_context"`
}

// Answer is the result of a chat query.
type Answer struct {
	Response string   `json:"response"`
	Sources  []Source `json:"sources"`
	Metadata Metadata `json:"metadata"`
}

// Assembler answers natural language questions about ingested content.
// Every failure mode degrades to a fixed response so the caller always
// receives an answer.
type Assembler struct {
	Embedder   docrag.Embedder
	Store      docrag.VectorStore
	Generator  docrag.Generator
	Logger     *slog.Logger
	MaxResults int
}

// Answer generates a response to the query. providedContext, when
// non-empty, is treated as additional context supplied by the caller and
// takes precedence over retrieved chunks.
func (a *Assembler) Answer(ctx context.Context, query, providedContext string) *Answer {
	logger := a.logger()

	if strings.TrimSpace(query) == "" {
		return &Answer{Response: emptyQueryResponse, Sources: []Source{}}
	}

	maxResults := a.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	vectors, err := a.Embedder.Embed(ctx, []string{query}, docrag.InputTypeQuery)
	if err != nil || len(vectors) == 0 {
		logger.Error("failed to embed chat query", "error", err)
		return &Answer{Response: embedFailedResponse, Sources: []Source{}}
	}

	results, err := a.Store.Search(ctx, vectors[0], maxResults, nil)
	if err != nil {
		logger.Error("chat search failed", "error", err)
		return &Answer{Response: embedFailedResponse, Sources: []Source{}}
	}
	if len(results) == 0 && providedContext == "" {
		logger.Warn("no relevant content found for query")
		return &Answer{Response: noResultsResponse, Sources: []Source{}}
	}

	contextParts := make([]string, 0, len(results)+1)
	if providedContext != "" {
		contextParts = append(contextParts, providedContext)
	}
	for _, result := range results {
		if text := chunkText(result.Payload); text != "" {
			contextParts = append(contextParts, text)
		}
	}
	if len(contextParts) == 0 {
		logger.Warn("search results returned no content")
		return &Answer{Response: noContentResponse, Sources: []Source{}}
	}

	answer := &Answer{
		Sources: buildSources(results),
		Metadata: Metadata{
			RetrievedCount:      len(results),
			UsedProvidedContext: providedContext != "",
		},
	}

	prompt := BuildPrompt(query, contextParts)
	response, err := a.Generator.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(response) == "" {
		logger.Warn("answer generation failed, using fallback", "error", err)
		answer.Response = fallbackResponse(contextParts)
		return answer
	}

	answer.Response = strings.TrimSpace(response)
	return answer
}

func (a *Assembler) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// BuildPrompt combines retrieved context and the question into a single
// generation prompt.
func BuildPrompt(query string, contextParts []string) string {
	var sb strings.Builder
	sb.WriteString("Based on the following context, please answer the user's question.\n")
	sb.WriteString("If the context doesn't contain enough information to answer the question,\n")
	sb.WriteString("please say so and explain what information is missing.\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(strings.Join(contextParts, "\n\n"))
	fmt.Fprintf(&sb, "\n\nQuestion: %s\n\nAnswer:", query)
	return sb.String()
}

// fallbackResponse quotes the start of the retrieved context when
// generation is unavailable.
func fallbackResponse(contextParts []string) string {
	joined := strings.Join(contextParts, "\n\n")
	quoted := joined
	if len(quoted) > fallbackContextLength {
		quoted = quoted[:fallbackContextLength]
	}
	response := fmt.Sprintf("Based on the documentation content:\n\n%s...", quoted)
	if len(joined) > fallbackContextLength {
		response += fallbackTruncationNote
	}
	return response
}

// chunkText extracts chunk content from a payload, preferring the text
// field over content.
func chunkText(payload map[string]any) string {
	if payload == nil {
		return ""
	}
	if text, ok := payload["text"].(string); ok && text != "" {
		return text
	}
	if content, ok := payload["content"].(string); ok && content != "" {
		return content
	}
	return ""
}

func buildSources(results []docrag.SearchResult) []Source {
	sources := make([]Source, 0, len(results))
	for _, result := range results {
		source := Source{Score: result.Score}
		if title, ok := result.Payload["title"].(string); ok {
			source.Title = title
		}
		if url, ok := result.Payload["url"].(string); ok {
			source.URL = url
		}
		if page, ok := result.Payload["page"].(string); ok {
			source.Page = page
		}
		sources = append(sources, source)
	}
	return sources
}
