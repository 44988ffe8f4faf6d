// Package shutdown runs a blocking component and stops it on SIGINT/SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// RunWithGracefulShutdown starts a component and handles graceful shutdown.
// The runner function should block while the component is running and
// return once its context is canceled. On a signal the runner context is
// canceled, shutdown is called, and the runner is given up to timeout to
// return. A runner error of context.Canceled after a signal is not an error.
func RunWithGracefulShutdown(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	runner func(ctx context.Context) error,
	shutdown func(ctx context.Context) error,
) error {
	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	runDone := make(chan error, 1)
	go func() {
		runDone <- runner(runCtx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logger.Info("received signal, initiating shutdown", "signal", sig)
		runCancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if shutdown != nil {
			if err := shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown error", "error", err)
			}
		}

		select {
		case err := <-runDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case <-shutdownCtx.Done():
			logger.Warn("shutdown timeout exceeded")
		}

		logger.Info("shutdown complete")
		return nil

	case err := <-runDone:
		return err
	}
}
