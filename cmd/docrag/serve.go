package main

import (
	"fmt"

	"github.com/fwojciec/docrag"
	docgin "github.com/fwojciec/docrag/gin"
	"github.com/fwojciec/docrag/pipeline"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if err := deps.Config.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrag.ErrorMessage(err))
		return err
	}

	client, err := geminiClient(deps)
	if err != nil {
		return err
	}

	store, err := vectorStore(deps)
	if err != nil {
		return err
	}

	source, batchFetcher, sitemaps, closeBrowser, err := ingestionComponents(deps)
	if err != nil {
		return err
	}
	defer closeBrowser()

	state := docrag.NewState()
	runner := &pipeline.Pipeline{
		Config:    deps.Config,
		Sitemap:   sitemaps,
		Source:    source,
		Fetcher:   batchFetcher,
		Extractor: extractor(deps),
		Chunker:   &docrag.Chunker{Size: deps.Config.ChunkSize, Overlap: deps.Config.ChunkOverlap},
		Embedder:  embedder(deps, client),
		Store:     store,
		State:     state,
		Logger:    deps.Logger,
	}

	router := docgin.NewRouter(&docgin.Server{
		State:    state,
		Runner:   runner,
		Chat:     assembler(deps, client, store),
		MaxDepth: deps.Config.MaxDepth,
		Logger:   deps.Logger,
	})

	deps.Logger.Info("starting server", "port", c.Port)
	if err := router.Run(fmt.Sprintf(":%d", c.Port)); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
