package docrag

import "context"

// Limiter paces calls to an external collaborator.
type Limiter interface {
	// Wait blocks until the collaborator's rate budget allows another call.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context) error
}
