package events

import (
	"sync"
	"testing"
	"time"
)

func TestNewRouter(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{name: "default buffer size", size: 0, want: DefaultBufferSize},
		{name: "negative uses default", size: -10, want: DefaultBufferSize},
		{name: "custom buffer size", size: 50, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(tt.size, nil)
			if r.bufferSize != tt.want {
				t.Errorf("bufferSize = %d, want %d", r.bufferSize, tt.want)
			}
		})
	}
}

func TestRouterEmitSubscribe(t *testing.T) {
	r := NewRouter(10, nil)
	defer r.Close()

	ch1 := r.Subscribe()
	ch2 := r.Subscribe()

	r.Emit(&RevealAdvanceEvent{
		BaseEvent: NewRevealEvent(EventRevealAdvance),
		Revealed:  2,
		Pending:   1,
	})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case got := <-ch:
			adv, ok := got.(*RevealAdvanceEvent)
			if !ok {
				t.Fatalf("subscriber %d: got %T, want *RevealAdvanceEvent", i, got)
			}
			if adv.Revealed != 2 || adv.Pending != 1 {
				t.Errorf("subscriber %d: got %+v", i, adv)
			}
			if adv.Source() != SourceReveal {
				t.Errorf("subscriber %d: source = %q, want %q", i, adv.Source(), SourceReveal)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d: timeout waiting for event", i)
		}
	}
}

func TestRouterDropsWhenFull(t *testing.T) {
	r := NewRouter(1, nil)
	defer r.Close()

	ch := r.Subscribe()
	r.Emit(&RevealSeedEvent{BaseEvent: NewRevealEvent(EventRevealSeed), Total: 1})
	r.Emit(&RevealSeedEvent{BaseEvent: NewRevealEvent(EventRevealSeed), Total: 2})

	got := <-ch
	if got.(*RevealSeedEvent).Total != 1 {
		t.Errorf("expected first event to be kept")
	}
	select {
	case extra := <-ch:
		t.Errorf("expected second event to be dropped, got %+v", extra)
	default:
	}
}

func TestRouterUnsubscribe(t *testing.T) {
	r := NewRouter(10, nil)
	defer r.Close()

	ch := r.Subscribe()
	r.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed after Unsubscribe")
	}

	// Unknown channel is ignored.
	r.Unsubscribe(make(chan Event))
}

func TestRouterClose(t *testing.T) {
	r := NewRouter(10, nil)
	ch := r.Subscribe()

	r.Close()
	r.Close()

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed after Close")
	}

	// Emit after close must not panic.
	r.Emit(&RevealSeedEvent{BaseEvent: NewRevealEvent(EventRevealSeed)})

	late := r.Subscribe()
	if _, ok := <-late; ok {
		t.Error("expected Subscribe after Close to return a closed channel")
	}
}

func TestRouterConcurrentEmit(t *testing.T) {
	r := NewRouter(1000, nil)
	defer r.Close()

	ch := r.Subscribe()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				r.Emit(&RevealAdvanceEvent{BaseEvent: NewRevealEvent(EventRevealAdvance)})
			}
		}()
	}
	wg.Wait()

	if len(ch) != 100 {
		t.Errorf("received %d events, want 100", len(ch))
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard.Emit(&RevealSeedEvent{BaseEvent: NewRevealEvent(EventRevealSeed)})
}
