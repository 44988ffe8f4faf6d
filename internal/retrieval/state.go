// Package retrieval implements the one-shot flag retrieval state machine:
// an immutable State, the guard that decides whether an attempt may start,
// the executor that performs the fetch and the coordinator that ties them.
package retrieval

// State is an immutable snapshot of the retrieval outcome. At most one of
// content and error is set; neither set is the initial state.
type State struct {
	content *string
	err     *string
}

// Initial returns the state before any retrieval attempt.
func Initial() State {
	return State{}
}

// Succeeded returns a state carrying the retrieved text.
func Succeeded(content string) State {
	return State{content: &content}
}

// Failed returns a state carrying a failure description.
func Failed(description string) State {
	return State{err: &description}
}

// Content returns the retrieved text and whether retrieval succeeded.
func (s State) Content() (string, bool) {
	if s.content == nil {
		return "", false
	}
	return *s.content, true
}

// Err returns the failure description and whether retrieval failed.
func (s State) Err() (string, bool) {
	if s.err == nil {
		return "", false
	}
	return *s.err, true
}

// Settled reports whether an outcome has been recorded.
func (s State) Settled() bool {
	return s.content != nil || s.err != nil
}

// Equal reports whether two states carry the same observable fields.
func (s State) Equal(other State) bool {
	c1, ok1 := s.Content()
	c2, ok2 := other.Content()
	e1, eok1 := s.Err()
	e2, eok2 := other.Err()
	return ok1 == ok2 && c1 == c2 && eok1 == eok2 && e1 == e2
}

// Permits reports whether a retrieval attempt may start from s.
// Retrieval is one-shot: once either outcome is recorded no further
// attempt is allowed.
func Permits(s State) bool {
	return s.content == nil && s.err == nil
}
