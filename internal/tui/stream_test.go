package tui

import (
	"bytes"
	"testing"

	"github.com/npratt/flagreveal/internal/display"
)

func TestStreamWriter_Characters(t *testing.T) {
	var out, errOut bytes.Buffer
	w := NewStreamWriter(&out, &errOut)

	w.Update(display.View{Kind: display.KindLoading})
	w.Update(display.View{Kind: display.KindCharacters, Characters: []string{}})
	w.Update(display.View{Kind: display.KindCharacters, Characters: []string{"f"}})
	w.Update(display.View{Kind: display.KindCharacters, Characters: []string{"f", "l"}})
	w.Update(display.View{Kind: display.KindCharacters, Characters: []string{"f", "l", "a"}, Complete: true})

	if got := out.String(); got != "fla\n" {
		t.Errorf("out = %q, want %q", got, "fla\n")
	}
	if errOut.Len() != 0 {
		t.Errorf("errOut = %q, want empty", errOut.String())
	}
	if !w.Done() {
		t.Error("writer should be done after a complete view")
	}

	// Nothing is written once done.
	w.Update(display.View{Kind: display.KindCharacters, Characters: []string{"f", "l", "a", "g"}, Complete: true})
	if got := out.String(); got != "fla\n" {
		t.Errorf("out after done = %q, want %q", got, "fla\n")
	}
}

func TestStreamWriter_RepeatedViewWritesOnce(t *testing.T) {
	var out bytes.Buffer
	w := NewStreamWriter(&out, &bytes.Buffer{})

	v := display.View{Kind: display.KindCharacters, Characters: []string{"a", "b"}}
	w.Update(v)
	w.Update(v)

	if got := out.String(); got != "ab" {
		t.Errorf("out = %q, want %q", got, "ab")
	}
	if w.Done() {
		t.Error("writer should not be done before completion")
	}
}

func TestStreamWriter_EmptyComplete(t *testing.T) {
	var out bytes.Buffer
	w := NewStreamWriter(&out, &bytes.Buffer{})

	w.Update(display.View{Kind: display.KindCharacters, Characters: []string{}, Complete: true})

	if got := out.String(); got != "\n" {
		t.Errorf("out = %q, want a lone newline", got)
	}
	if !w.Done() {
		t.Error("writer should be done")
	}
}

func TestStreamWriter_Error(t *testing.T) {
	var out, errOut bytes.Buffer
	w := NewStreamWriter(&out, &errOut)

	w.Update(display.View{Kind: display.KindError, Message: "network down"})

	if got := errOut.String(); got != "Error: network down\n" {
		t.Errorf("errOut = %q, want %q", got, "Error: network down\n")
	}
	if out.Len() != 0 {
		t.Errorf("out = %q, want empty", out.String())
	}
	if !w.Done() {
		t.Error("writer should be done after an error")
	}
}
