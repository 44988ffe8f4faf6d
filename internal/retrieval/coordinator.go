package retrieval

import (
	"context"
	"log/slog"
)

// Coordinator is the single entry point for retrieval: it checks the guard
// and only then calls the executor.
type Coordinator struct {
	executor *Executor
	logger   *slog.Logger
}

// NewCoordinator creates a coordinator around executor.
func NewCoordinator(executor *Executor, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{executor: executor, logger: logger}
}

// Run returns s unchanged when the guard denies, otherwise the executor's
// result.
func (c *Coordinator) Run(ctx context.Context, s State) State {
	if !Permits(s) {
		return s
	}

	next, err := c.executor.Execute(ctx, s)
	if err != nil {
		// Unreachable while the guard above holds.
		c.logger.Error("retrieval executor refused", "error", err)
		return s
	}
	return next
}
