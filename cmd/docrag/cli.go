package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/docrag"
)

// Dependencies holds shared services and configuration for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config docrag.Config

	// Extractor selects the content extraction strategy.
	Extractor string

	// Fetcher selects the page fetch strategy.
	Fetcher string

	// Connection settings for external services.
	GeminiAPIKey string
	QdrantHost   string
	QdrantPort   int
	QdrantAPIKey string
	QdrantUseTLS bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL      string `help:"Base URL of the documentation site" env:"DOCRAG_BASE_URL"`
	MaxDepth     int    `default:"2" help:"Maximum crawl depth" env:"DOCRAG_MAX_DEPTH"`
	Collection   string `default:"doc_site_content" help:"Qdrant collection name" env:"QDRANT_COLLECTION"`
	ChunkSize    int    `default:"512" help:"Chunk word budget" env:"DOCRAG_CHUNK_SIZE"`
	ChunkOverlap int    `default:"64" help:"Chunk overlap word budget" env:"DOCRAG_CHUNK_OVERLAP"`
	Concurrency  int    `default:"5" help:"Concurrent fetch limit" env:"DOCRAG_MAX_CONCURRENT"`
	EmbedRPM     int    `default:"100" help:"Embedding requests per minute" env:"DOCRAG_EMBED_RPM"`
	StoreRPM     int    `default:"1000" help:"Vector store requests per minute" env:"DOCRAG_STORE_RPM"`
	Extractor    string `default:"selectors" enum:"selectors,trafilatura" help:"Content extraction strategy" env:"DOCRAG_EXTRACTOR"`
	Fetcher      string `default:"browser" enum:"browser,http" help:"Page fetch strategy (browser renders JavaScript)" env:"DOCRAG_FETCHER"`

	GeminiAPIKey string `help:"Gemini API key" env:"GEMINI_API_KEY"`
	QdrantHost   string `default:"localhost" help:"Qdrant host" env:"QDRANT_HOST"`
	QdrantPort   int    `default:"6334" help:"Qdrant gRPC port" env:"QDRANT_PORT"`
	QdrantAPIKey string `help:"Qdrant API key" env:"QDRANT_API_KEY"`
	QdrantUseTLS bool   `help:"Use TLS for Qdrant" env:"QDRANT_USE_TLS"`

	Serve  ServeCmd  `cmd:"" help:"Run the control API server"`
	Ingest IngestCmd `cmd:"" help:"Run the ingestion pipeline once and exit"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about the ingested content"`
}

// Config builds the pipeline configuration from the parsed flags.
func (c *CLI) Config() docrag.Config {
	return docrag.Config{
		BaseURL:        c.BaseURL,
		MaxDepth:       c.MaxDepth,
		CollectionName: c.Collection,
		ChunkSize:      c.ChunkSize,
		ChunkOverlap:   c.ChunkOverlap,
		MaxConcurrent:  c.Concurrency,
		EmbedRPM:       c.EmbedRPM,
		StoreRPM:       c.StoreRPM,
	}
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port int `default:"8000" help:"HTTP listen port" env:"PORT"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	MaxDepth int `help:"Override the configured crawl depth"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask about the documentation"`
	Context  string `short:"c" help:"Additional context for the question"`
}
