// Package display derives the single view value the host renders on every
// state change.
package display

import (
	"strings"

	"github.com/npratt/flagreveal/internal/retrieval"
	"github.com/npratt/flagreveal/internal/reveal"
)

// Kind discriminates the view variants.
type Kind string

const (
	// KindLoading is shown while no reveal sequence exists.
	KindLoading Kind = "loading"
	// KindError is shown once retrieval has failed.
	KindError Kind = "error"
	// KindCharacters shows the characters revealed so far.
	KindCharacters Kind = "characters"
)

// View is the discriminated value produced per state tick: Error(message),
// Loading, or Characters(sequence).
type View struct {
	Kind       Kind
	Message    string   // Set for KindError
	Characters []string // Set for KindCharacters
	Complete   bool     // True once the reveal sequence has finished
}

// Text returns the characters joined into a string.
func (v View) Text() string {
	return strings.Join(v.Characters, "")
}

// Compute derives the view from the held states. A recorded error wins over
// everything else; without a reveal state the view is loading.
func Compute(r retrieval.State, rv *reveal.State) View {
	if msg, ok := r.Err(); ok {
		return View{Kind: KindError, Message: msg}
	}
	if rv == nil {
		return View{Kind: KindLoading}
	}
	return View{
		Kind:       KindCharacters,
		Characters: rv.Revealed(),
		Complete:   rv.Complete(),
	}
}
