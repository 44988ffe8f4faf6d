// Package metrics turns transition events into Prometheus metrics and writes
// them in the textfile collector format.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/npratt/flagreveal/internal/events"
)

// Result label values for retrievals.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Collector consumes transition events and keeps the derived metrics in its
// own registry.
type Collector struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	retrievals        *prometheus.CounterVec
	retrievalDuration prometheus.Histogram
	characters        prometheus.Counter
	revealComplete    prometheus.Gauge
	revealDuration    prometheus.Gauge

	mu             sync.Mutex
	retrievalStart time.Time
	revealStart    time.Time

	done chan struct{}
}

// NewCollector creates a collector with all metrics registered. A nil logger
// uses slog.Default().
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		logger:   logger,
		retrievals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flagreveal_retrievals_total",
				Help: "Flag retrievals by result.",
			},
			[]string{"result"},
		),
		retrievalDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flagreveal_retrieval_duration_seconds",
				Help:    "Time from retrieval start to its result.",
				Buckets: prometheus.DefBuckets,
			},
		),
		characters: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "flagreveal_characters_revealed_total",
				Help: "Characters revealed across all steps.",
			},
		),
		revealComplete: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "flagreveal_reveal_complete",
				Help: "1 once the reveal sequence has finished.",
			},
		),
		revealDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "flagreveal_reveal_duration_seconds",
				Help: "Time from seeding to the last revealed character.",
			},
		),
		done: make(chan struct{}),
	}

	c.registry.MustRegister(
		c.retrievals,
		c.retrievalDuration,
		c.characters,
		c.revealComplete,
		c.revealDuration,
	)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe updates the metrics for one event.
func (c *Collector) Observe(event events.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ts := event.Timestamp()
	switch event.Type() {
	case events.EventRetrievalStart:
		c.retrievalStart = ts
	case events.EventRetrievalSuccess:
		c.retrievals.WithLabelValues(ResultSuccess).Inc()
		c.observeRetrievalDuration(ts)
	case events.EventRetrievalFailure:
		c.retrievals.WithLabelValues(ResultFailure).Inc()
		c.observeRetrievalDuration(ts)
	case events.EventRevealSeed:
		c.revealStart = ts
		c.revealComplete.Set(0)
	case events.EventRevealAdvance:
		c.characters.Inc()
	case events.EventRevealComplete:
		c.revealComplete.Set(1)
		if !c.revealStart.IsZero() {
			c.revealDuration.Set(ts.Sub(c.revealStart).Seconds())
		}
	}
}

func (c *Collector) observeRetrievalDuration(end time.Time) {
	if c.retrievalStart.IsZero() {
		return
	}
	c.retrievalDuration.Observe(end.Sub(c.retrievalStart).Seconds())
	c.retrievalStart = time.Time{}
}

// Start consumes events until ctx is canceled or the channel is closed.
func (c *Collector) Start(ctx context.Context, ch <-chan events.Event) {
	go func() {
		defer close(c.done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				c.Observe(event)
			}
		}
	}()
}

// Stop waits for the consumer started by Start to finish.
func (c *Collector) Stop() {
	<-c.done
}

// WriteTextfile writes the current metrics to path atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.logger.Debug("metrics written", "path", path)
	return nil
}
