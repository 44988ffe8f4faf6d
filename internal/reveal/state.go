// Package reveal implements the timed character-reveal state machine. It is
// pure: every transition takes a State and returns a new one.
package reveal

import (
	"slices"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/npratt/flagreveal/internal/transition"
)

// State is an immutable snapshot of reveal progress. revealed followed by
// pending always spells the seeded text.
type State struct {
	revealed []string
	pending  []string
	complete bool
}

// Revealed returns a copy of the characters shown so far.
func (s State) Revealed() []string {
	return slices.Clone(s.revealed)
}

// Pending returns a copy of the characters not yet shown.
func (s State) Pending() []string {
	return slices.Clone(s.pending)
}

// Complete reports whether nothing is left to reveal.
func (s State) Complete() bool {
	return s.complete
}

// Text returns the revealed characters joined into a string.
func (s State) Text() string {
	return strings.Join(s.revealed, "")
}

// Source returns revealed ++ pending joined into a string.
func (s State) Source() string {
	return strings.Join(s.revealed, "") + strings.Join(s.pending, "")
}

// Characters splits content into user-perceived characters (grapheme
// clusters) in original order.
func Characters(content string) []string {
	var chars []string
	gr := uniseg.NewGraphemes(content)
	for gr.Next() {
		chars = append(chars, gr.Str())
	}
	return chars
}

// Seed builds the initial state for content.
func Seed(content string) State {
	return State{
		revealed: []string{},
		pending:  Characters(content),
		complete: content == "",
	}
}

// Permits reports whether another character may be revealed.
func Permits(s State) bool {
	return !s.complete && len(s.pending) > 0
}

// Advance moves the first pending character to the end of revealed. It
// returns a *transition.PreconditionError if Permits(s) is false.
func Advance(s State) (State, error) {
	if !Permits(s) {
		return State{}, &transition.PreconditionError{
			Op:     "advance",
			Reason: "no character available to reveal",
		}
	}

	revealed := make([]string, len(s.revealed), len(s.revealed)+1)
	copy(revealed, s.revealed)
	revealed = append(revealed, s.pending[0])
	pending := slices.Clone(s.pending[1:])

	return State{
		revealed: revealed,
		pending:  pending,
		complete: len(pending) == 0,
	}, nil
}

// Run advances s when the guard permits and returns it unchanged otherwise.
func Run(s State) State {
	if !Permits(s) {
		return s
	}
	next, err := Advance(s)
	if err != nil {
		return s
	}
	return next
}
