package retrieval

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/npratt/flagreveal/internal/transition"
)

// countingFetcher returns a fixed result and counts calls.
type countingFetcher struct {
	content string
	err     error
	calls   atomic.Int32
}

func (f *countingFetcher) Fetch(ctx context.Context) (string, error) {
	f.calls.Add(1)
	return f.content, f.err
}

func TestExecutor_Success(t *testing.T) {
	fetcher := &countingFetcher{content: "abc"}
	exec := NewExecutor(fetcher, nil)

	got, err := exec.Execute(context.Background(), Initial())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, ok := got.Content()
	if !ok || content != "abc" {
		t.Errorf("Content() = (%q, %v), want (\"abc\", true)", content, ok)
	}
	if _, ok := got.Err(); ok {
		t.Error("error should be absent on success")
	}
	if fetcher.calls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1", fetcher.calls.Load())
	}
}

func TestExecutor_FailureIsRecorded(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("network down")}
	exec := NewExecutor(fetcher, nil)

	got, err := exec.Execute(context.Background(), Initial())
	if err != nil {
		t.Fatalf("failure must be recorded in state, got error: %v", err)
	}

	msg, ok := got.Err()
	if !ok || msg != "network down" {
		t.Errorf("Err() = (%q, %v), want (\"network down\", true)", msg, ok)
	}
	if _, ok := got.Content(); ok {
		t.Error("content should be absent on failure")
	}
}

func TestExecutor_PreconditionViolation(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{name: "content already present", state: Succeeded("abc")},
		{name: "error already present", state: Failed("network down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &countingFetcher{content: "other"}
			exec := NewExecutor(fetcher, nil)

			got, err := exec.Execute(context.Background(), tt.state)
			if err == nil {
				t.Fatal("expected precondition error, got nil")
			}
			if !transition.IsPrecondition(err) {
				t.Errorf("expected PreconditionError, got %T: %v", err, err)
			}
			if got.Settled() {
				t.Error("no new state should be returned on precondition violation")
			}
			if fetcher.calls.Load() != 0 {
				t.Error("fetcher must not be called when the guard denies")
			}
		})
	}
}

func TestExecutor_ContextCanceled(t *testing.T) {
	fetcher := FetcherFunc(func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	exec := NewExecutor(fetcher, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := exec.Execute(ctx, Initial())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg, ok := got.Err(); !ok || msg != context.Canceled.Error() {
		t.Errorf("Err() = (%q, %v), want (%q, true)", msg, ok, context.Canceled.Error())
	}
}
