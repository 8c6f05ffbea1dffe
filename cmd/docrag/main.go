package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/batch"
	"github.com/fwojciec/docrag/crawl"
	"github.com/fwojciec/docrag/gemini"
	"github.com/fwojciec/docrag/goquery"
	dochttp "github.com/fwojciec/docrag/http"
	docqdrant "github.com/fwojciec/docrag/qdrant"
	"github.com/fwojciec/docrag/rag"
	"github.com/fwojciec/docrag/rod"
	docslog "github.com/fwojciec/docrag/slog"
	"github.com/fwojciec/docrag/trafilatura"
	"github.com/joho/godotenv"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// .env is optional; environment variables win when both are set.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docrag"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docrag --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:          ctx,
		Stdout:       stdout,
		Stderr:       stderr,
		Logger:       slog.New(slog.NewTextHandler(stderr, nil)),
		Config:       cli.Config(),
		Extractor:    cli.Extractor,
		Fetcher:      cli.Fetcher,
		GeminiAPIKey: cli.GeminiAPIKey,
		QdrantHost:   cli.QdrantHost,
		QdrantPort:   cli.QdrantPort,
		QdrantAPIKey: cli.QdrantAPIKey,
		QdrantUseTLS: cli.QdrantUseTLS,
	}

	return kongCtx.Run(deps)
}

// geminiClient connects to the Gemini API using the configured key.
func geminiClient(deps *Dependencies) (*genai.Client, error) {
	if deps.GeminiAPIKey == "" {
		fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, docrag.Errorf(docrag.EINVALID, "GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(deps.Ctx, &genai.ClientConfig{
		APIKey:  deps.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

// vectorStore connects to Qdrant and wraps the store with logging and a
// rate limiter.
func vectorStore(deps *Dependencies) (docrag.VectorStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   deps.QdrantHost,
		Port:   deps.QdrantPort,
		APIKey: deps.QdrantAPIKey,
		UseTLS: deps.QdrantUseTLS,
	})
	if err != nil {
		hostPort := net.JoinHostPort(deps.QdrantHost, strconv.Itoa(deps.QdrantPort))
		return nil, fmt.Errorf("failed to connect to Qdrant at %s: %w", hostPort, err)
	}

	limiter := crawl.NewRPMLimiter(deps.Config.StoreRPM)
	store := docqdrant.NewStore(client, deps.Config.CollectionName, limiter)
	return docslog.NewLoggingVectorStore(store, deps.Logger), nil
}

// embedder builds the rate-limited batch embedder on top of Gemini.
func embedder(deps *Dependencies, client *genai.Client) docrag.Embedder {
	inner := docslog.NewLoggingEmbedder(gemini.NewEmbedder(client), deps.Logger)
	return &batch.Embedder{
		Client:      inner,
		Limiter:     crawl.NewRPMLimiter(deps.Config.EmbedRPM),
		Concurrency: deps.Config.MaxConcurrent,
	}
}

// assembler wires the chat path: query embedding, search, generation.
func assembler(deps *Dependencies, client *genai.Client, store docrag.VectorStore) *rag.Assembler {
	return &rag.Assembler{
		Embedder:  embedder(deps, client),
		Store:     store,
		Generator: gemini.NewGenerator(client),
		Logger:    deps.Logger,
	}
}

// extractor returns the content extraction strategy selected by flags.
func extractor(deps *Dependencies) docrag.Extractor {
	if deps.Extractor == "trafilatura" {
		return trafilatura.NewExtractor()
	}
	return goquery.NewExtractor()
}

// pageFetcher builds the fetch strategy selected by flags. The returned
// closer shuts down the browser; it is a no-op for plain HTTP.
func pageFetcher(deps *Dependencies) (docrag.Fetcher, func(), error) {
	if deps.Fetcher == "http" {
		return dochttp.NewFetcher(), func() {}, nil
	}
	fetcher, err := rod.NewFetcher()
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return nil, nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return fetcher, func() { _ = fetcher.Close() }, nil
}

// ingestionComponents builds the crawl-side components shared by serve
// and ingest. The returned closer shuts down the browser.
func ingestionComponents(deps *Dependencies) (docrag.URLSource, *crawl.BatchFetcher, docrag.SitemapService, func(), error) {
	fetcher, closer, err := pageFetcher(deps)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logged := rod.NewLoggingFetcher(fetcher, deps.Logger)

	source := &crawl.Discoverer{
		Fetcher: logged,
		Links:   goquery.NewLinkExtractor(),
		Logger:  deps.Logger,
	}
	// Page fetches are paced to one per second.
	batchFetcher := &crawl.BatchFetcher{
		Fetcher:     logged,
		Limiter:     crawl.NewRPMLimiter(60),
		Concurrency: deps.Config.MaxConcurrent,
		Logger:      deps.Logger,
	}
	sitemaps := docslog.NewLoggingSitemapService(dochttp.NewSitemapService(nil), deps.Logger)

	return source, batchFetcher, sitemaps, closer, nil
}
