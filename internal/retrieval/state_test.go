package retrieval

import "testing"

func TestStateConstructors(t *testing.T) {
	tests := []struct {
		name        string
		state       State
		wantContent string
		hasContent  bool
		wantErr     string
		hasErr      bool
	}{
		{name: "initial", state: Initial()},
		{name: "succeeded", state: Succeeded("flag{abc}"), wantContent: "flag{abc}", hasContent: true},
		{name: "succeeded empty", state: Succeeded(""), wantContent: "", hasContent: true},
		{name: "failed", state: Failed("network down"), wantErr: "network down", hasErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, ok := tt.state.Content()
			if ok != tt.hasContent || content != tt.wantContent {
				t.Errorf("Content() = (%q, %v), want (%q, %v)", content, ok, tt.wantContent, tt.hasContent)
			}
			msg, ok := tt.state.Err()
			if ok != tt.hasErr || msg != tt.wantErr {
				t.Errorf("Err() = (%q, %v), want (%q, %v)", msg, ok, tt.wantErr, tt.hasErr)
			}
			if tt.hasContent && tt.hasErr {
				t.Error("content and error must be mutually exclusive")
			}
			if tt.state.Settled() != (tt.hasContent || tt.hasErr) {
				t.Errorf("Settled() = %v", tt.state.Settled())
			}
		})
	}
}

func TestPermits(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{name: "initial permits", state: Initial(), want: true},
		{name: "zero value permits", state: State{}, want: true},
		{name: "succeeded denies", state: Succeeded("x"), want: false},
		{name: "succeeded empty denies", state: Succeeded(""), want: false},
		{name: "failed denies", state: Failed("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Permits(tt.state); got != tt.want {
				t.Errorf("Permits() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateEqual(t *testing.T) {
	if !Succeeded("a").Equal(Succeeded("a")) {
		t.Error("equal contents should compare equal")
	}
	if Succeeded("a").Equal(Succeeded("b")) {
		t.Error("different contents should not compare equal")
	}
	if Succeeded("").Equal(Initial()) {
		t.Error("empty success should differ from initial")
	}
	if Failed("x").Equal(Succeeded("x")) {
		t.Error("failure should differ from success with same text")
	}
	if !Initial().Equal(State{}) {
		t.Error("initial should equal zero value")
	}
}
