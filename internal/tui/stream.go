package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/npratt/flagreveal/internal/display"
)

// StreamWriter presents views as a plain character stream: each newly
// revealed character is written as it appears and a newline ends the
// sequence. Errors go to errOut as "Error: <message>".
type StreamWriter struct {
	out     io.Writer
	errOut  io.Writer
	written int
	done    bool
}

// NewStreamWriter creates a StreamWriter.
func NewStreamWriter(out, errOut io.Writer) *StreamWriter {
	return &StreamWriter{out: out, errOut: errOut}
}

// Update writes whatever v adds to what has already been written. It is
// intended as a WithOnView callback.
func (w *StreamWriter) Update(v display.View) {
	if w.done {
		return
	}

	switch v.Kind {
	case display.KindError:
		_, _ = fmt.Fprintf(w.errOut, "Error: %s\n", v.Message)
		w.done = true

	case display.KindCharacters:
		if len(v.Characters) > w.written {
			_, _ = io.WriteString(w.out, strings.Join(v.Characters[w.written:], ""))
			w.written = len(v.Characters)
		}
		if v.Complete {
			_, _ = io.WriteString(w.out, "\n")
			w.done = true
		}
	}
}

// Done reports whether the stream has been terminated.
func (w *StreamWriter) Done() bool {
	return w.done
}
