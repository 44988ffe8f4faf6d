package retrieval

import (
	"context"
	"log/slog"

	"github.com/npratt/flagreveal/internal/transition"
)

// Executor performs the network fetch and converts its outcome into a new
// State. Transport failures are recorded in the returned state, never
// returned as errors.
type Executor struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewExecutor creates an executor backed by fetcher. A nil logger uses
// slog.Default().
func NewExecutor(fetcher Fetcher, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{fetcher: fetcher, logger: logger}
}

// Execute fetches the flag. It returns a *transition.PreconditionError if
// Permits(s) is false; callers are expected to check the guard first.
func (e *Executor) Execute(ctx context.Context, s State) (State, error) {
	if !Permits(s) {
		return State{}, &transition.PreconditionError{
			Op:     "retrieve",
			Reason: "retrieval not permitted in current state",
		}
	}

	e.logger.Debug("retrieving flag")

	content, err := e.fetcher.Fetch(ctx)
	if err != nil {
		e.logger.Warn("flag retrieval failed", "error", err)
		return Failed(err.Error()), nil
	}

	e.logger.Info("flag retrieved", "length", len(content))
	return Succeeded(content), nil
}
