package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// LogSink appends events to a JSON lines file, one object per line.
type LogSink struct {
	path    string
	logger  *slog.Logger
	file    *os.File
	encoder *json.Encoder
	mu      sync.Mutex
	done    chan struct{}
}

// NewLogSink creates a sink writing to path. A nil logger uses slog.Default().
func NewLogSink(path string, logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{
		path:   path,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start opens the file and consumes events until ctx is canceled or the
// channel is closed.
func (s *LogSink) Start(ctx context.Context, events <-chan Event) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create events directory: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open events file: %w", err)
	}

	s.mu.Lock()
	s.file = file
	s.encoder = json.NewEncoder(file)
	s.mu.Unlock()

	go s.run(ctx, events)
	return nil
}

func (s *LogSink) run(ctx context.Context, events <-chan Event) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			// Drain what is already buffered so the final transitions land.
			for {
				select {
				case event, ok := <-events:
					if !ok {
						return
					}
					s.write(event)
				default:
					return
				}
			}
		case event, ok := <-events:
			if !ok {
				return
			}
			s.write(event)
		}
	}
}

func (s *LogSink) write(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encoder == nil {
		return
	}

	if err := s.encoder.Encode(event); err != nil {
		s.logger.Error("events sink write failed", "error", err, "event_type", event.Type())
	}
}

// Stop waits for the consumer to finish and closes the file. Stop must only
// be called after a successful Start.
func (s *LogSink) Stop() error {
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.encoder = nil
	return err
}

// Path returns the events file path.
func (s *LogSink) Path() string {
	return s.path
}
