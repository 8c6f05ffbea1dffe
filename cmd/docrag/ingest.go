package main

import (
	"fmt"

	"github.com/fwojciec/docrag"
	"github.com/fwojciec/docrag/pipeline"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	if err := deps.Config.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrag.ErrorMessage(err))
		return err
	}

	maxDepth := deps.Config.MaxDepth
	if c.MaxDepth > 0 {
		maxDepth = c.MaxDepth
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
	if !state.TryStart() {
		return docrag.Errorf(docrag.ECONFLICT, "pipeline is already running")
	}

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

	if err := runner.Run(deps.Ctx, maxDepth); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docrag.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, state.Snapshot().Progress)
	return nil
}
