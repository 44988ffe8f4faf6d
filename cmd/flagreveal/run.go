package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/npratt/flagreveal/internal/config"
	"github.com/npratt/flagreveal/internal/display"
	"github.com/npratt/flagreveal/internal/events"
	"github.com/npratt/flagreveal/internal/metrics"
	"github.com/npratt/flagreveal/internal/retrieval"
	"github.com/npratt/flagreveal/internal/shutdown"
	"github.com/npratt/flagreveal/internal/tui"
)

// shutdownTimeout bounds how long the program may take to exit after a signal.
const shutdownTimeout = 5 * time.Second

// RetrievalError reports that the flag could not be retrieved. The message
// has already been shown to the user when it is returned.
type RetrievalError struct {
	Message string
}

func (e *RetrievalError) Error() string {
	return "retrieval failed: " + e.Message
}

// startSinks starts the events log sink and the metrics collector that cfg
// enables, both fed by one router. The returned close function flushes them
// and writes the metrics textfile.
func startSinks(ctx context.Context, cfg *config.Config, logger *slog.Logger) (events.Emitter, func(), error) {
	if cfg.Paths.Events == "" && cfg.Paths.Metrics == "" {
		return events.Discard, func() {}, nil
	}

	router := events.NewRouter(events.DefaultBufferSize, logger)

	// Sinks outlive a canceled run so the final transitions land.
	sinkCtx := context.WithoutCancel(ctx)

	var logSink *events.LogSink
	if cfg.Paths.Events != "" {
		logSink = events.NewLogSink(cfg.Paths.Events, logger)
		if err := logSink.Start(sinkCtx, router.Subscribe()); err != nil {
			router.Close()
			return nil, nil, fmt.Errorf("start events sink: %w", err)
		}
	}

	var collector *metrics.Collector
	if cfg.Paths.Metrics != "" {
		collector = metrics.NewCollector(logger)
		collector.Start(sinkCtx, router.Subscribe())
	}

	closeSinks := func() {
		router.Close()
		if logSink != nil {
			if err := logSink.Stop(); err != nil {
				logger.Warn("failed to close events file", "error", err)
			}
		}
		if collector != nil {
			collector.Stop()
			if err := collector.WriteTextfile(cfg.Paths.Metrics); err != nil {
				logger.Warn("failed to write metrics", "error", err)
			}
		}
	}
	return router, closeSinks, nil
}

// runEnv carries the process surroundings of a run.
type runEnv struct {
	stdout     io.Writer
	stderr     io.Writer
	logger     *slog.Logger
	logLevel   slog.Leveler
	isTerminal func() bool
}

// useTUI resolves the display mode against the terminal.
func useTUI(mode string, isTerminal func() bool) bool {
	switch mode {
	case config.ModeTUI:
		return true
	case config.ModePlain:
		return false
	default:
		return isTerminal != nil && isTerminal()
	}
}

// runReveal retrieves the flag and reveals it, in the TUI or as a plain
// character stream. It blocks until the sequence ends, the user quits or a
// signal arrives.
func runReveal(ctx context.Context, cfg *config.Config, env runEnv) error {
	tuiEnabled := useTUI(cfg.Display.Mode, env.isTerminal)
	runID := events.NewRunID()

	debugLog, err := SetupDebugLogger(cfg.Paths.LogDir, env.logLevel, cfg.LogRotation)
	if err != nil {
		return err
	}
	defer func() { _ = debugLog.Close() }()

	// TUI mode logs only to the file; plain mode also keeps stderr.
	logger := debugLog.Logger
	if tuiEnabled {
		slog.SetDefault(logger)
	} else {
		logger = FanoutLogger(env.logger, debugLog.Logger)
	}
	logger = logger.With("run_id", runID)

	logger.Info("flagreveal starting",
		"version", version,
		"endpoint", cfg.Fetch.Endpoint,
		"interval", cfg.Reveal.Interval,
		"tui", tuiEnabled,
	)

	fetcher := retrieval.NewHTTPFetcher(cfg.Fetch.Endpoint, retrieval.WithTimeout(cfg.Fetch.Timeout))
	coordinator := retrieval.NewCoordinator(retrieval.NewExecutor(fetcher, logger), logger)

	emitter, closeSinks, err := startSinks(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSinks()

	opts := []tui.Option{
		tui.WithInterval(cfg.Reveal.Interval),
		tui.WithEndpoint(cfg.Fetch.Endpoint),
		tui.WithEmitter(events.WithRun(emitter, runID)),
		tui.WithLogger(logger),
		tui.WithExitOnComplete(cfg.Reveal.ExitOnComplete || !tuiEnabled),
	}
	if tuiEnabled {
		opts = append(opts, tui.WithOutput(env.stdout))
	} else {
		stream := tui.NewStreamWriter(env.stdout, env.stderr)
		opts = append(opts,
			tui.WithPlain(true),
			tui.WithOutput(io.Discard),
			tui.WithOnView(stream.Update),
		)
	}
	ui := tui.New(coordinator, opts...)

	var (
		mu    sync.Mutex
		final display.View
	)
	err = shutdown.RunWithGracefulShutdown(
		ctx,
		logger,
		shutdownTimeout,
		func(runCtx context.Context) error {
			v, err := ui.Run(runCtx)
			mu.Lock()
			final = v
			mu.Unlock()
			if errors.Is(err, tea.ErrProgramKilled) && runCtx.Err() != nil {
				return runCtx.Err()
			}
			return err
		},
		nil,
	)
	if errors.Is(err, context.Canceled) {
		logger.Info("flagreveal interrupted")
		return nil
	}
	if err != nil {
		return fmt.Errorf("run display: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if final.Kind == display.KindError {
		return &RetrievalError{Message: final.Message}
	}

	logger.Info("flagreveal finished", "view", string(final.Kind), "characters", len(final.Characters))
	return nil
}
