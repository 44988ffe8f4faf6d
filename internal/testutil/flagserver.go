package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// FlagServer is an httptest server standing in for the flag endpoint. It
// records every request it receives.
type FlagServer struct {
	*httptest.Server

	mu      sync.Mutex
	body    string
	status  int
	delay   time.Duration
	methods []string
}

// NewFlagServer starts a server answering every request with 200 and body.
// The server is closed when the test ends.
func NewFlagServer(t *testing.T, body string) *FlagServer {
	t.Helper()
	fs := &FlagServer{body: body, status: http.StatusOK}
	fs.Server = httptest.NewServer(http.HandlerFunc(fs.handle))
	t.Cleanup(fs.Close)
	return fs
}

// SetStatus makes later responses use status.
func (fs *FlagServer) SetStatus(status int) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.status = status
}

// SetDelay makes later responses wait d, or until the request is canceled.
func (fs *FlagServer) SetDelay(d time.Duration) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.delay = d
}

// RequestCount returns the number of requests received so far.
func (fs *FlagServer) RequestCount() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.methods)
}

// Methods returns the HTTP methods of the received requests in order.
func (fs *FlagServer) Methods() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.methods...)
}

func (fs *FlagServer) handle(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	fs.methods = append(fs.methods, r.Method)
	body, status, delay := fs.body, fs.status, fs.delay
	fs.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	w.WriteHeader(status)
	if status >= 200 && status < 300 {
		_, _ = w.Write([]byte(body))
	}
}
