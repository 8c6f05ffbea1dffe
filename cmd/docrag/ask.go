package main

import (
	"fmt"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	client, err := geminiClient(deps)
	if err != nil {
		return err
	}

	store, err := vectorStore(deps)
	if err != nil {
		return err
	}

	answer := assembler(deps, client, store).Answer(deps.Ctx, c.Question, c.Context)

	fmt.Fprintln(deps.Stdout, answer.Response)
	if len(answer.Sources) > 0 {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Sources:")
		for _, source := range answer.Sources {
			title := source.Title
			if title == "" {
				title = source.URL
			}
			fmt.Fprintf(deps.Stdout, "  - %s (%s)\n", title, source.URL)
		}
	}
	return nil
}
