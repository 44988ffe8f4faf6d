package testutil

// Sample transition events, one JSON object per line as written by the
// events log sink.

// RetrievalStartLine is a retrieval.start event.
var RetrievalStartLine = `{"type":"retrieval.start","timestamp":"2024-01-15T10:30:00Z","source":"retrieval","endpoint":"http://localhost/flag"}`

// RetrievalSuccessLine is a retrieval.success event for a four character flag.
var RetrievalSuccessLine = `{"type":"retrieval.success","timestamp":"2024-01-15T10:30:01Z","source":"retrieval","length":4}`

// RetrievalFailureLine is a retrieval.failure event.
var RetrievalFailureLine = `{"type":"retrieval.failure","timestamp":"2024-01-15T10:30:01Z","source":"retrieval","error":"network down"}`

// RevealSeedLine is a reveal.seed event for a four character flag.
var RevealSeedLine = `{"type":"reveal.seed","timestamp":"2024-01-15T10:30:01Z","source":"reveal","total":4}`

// RevealAdvanceLine is a reveal.advance event after the first step.
var RevealAdvanceLine = `{"type":"reveal.advance","timestamp":"2024-01-15T10:30:02Z","source":"reveal","revealed":1,"pending":3}`

// RevealCompleteLine is a reveal.complete event.
var RevealCompleteLine = `{"type":"reveal.complete","timestamp":"2024-01-15T10:30:04Z","source":"reveal","total":4}`

// SampleEventLines is a short successful sequence.
var SampleEventLines = []string{
	RetrievalStartLine,
	RetrievalSuccessLine,
	RevealSeedLine,
	RevealAdvanceLine,
	RevealCompleteLine,
}
