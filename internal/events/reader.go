package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Record is one decoded line of an events file. Fields holds the full
// object so type-specific values can be formatted.
type Record struct {
	Type      EventType
	Timestamp time.Time
	Source    string
	Run       string
	Fields    map[string]any
	Raw       string
}

// ReadLast returns the last n records from the events file at path, oldest
// first. A missing file yields no records and no error. Lines that are not
// JSON are kept with only Raw set.
func ReadLast(path string, n int) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if scanner.Text() == "" {
			continue
		}
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}

	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		records = append(records, parseRecord(line))
	}
	return records, nil
}

// FilterRun returns the records stamped with run, in order.
func FilterRun(records []Record, run string) []Record {
	var out []Record
	for _, rec := range records {
		if rec.Run == run {
			out = append(out, rec)
		}
	}
	return out
}

// LastRun returns the run ID of the newest stamped record, or "".
func LastRun(records []Record) string {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Run != "" {
			return records[i].Run
		}
	}
	return ""
}

func parseRecord(line string) Record {
	rec := Record{Raw: line}

	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return rec
	}
	rec.Fields = fields

	if t, ok := fields["type"].(string); ok {
		rec.Type = EventType(t)
	}
	if src, ok := fields["source"].(string); ok {
		rec.Source = src
	}
	if run, ok := fields["run"].(string); ok {
		rec.Run = run
	}
	if ts, ok := fields["timestamp"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			rec.Timestamp = parsed
		}
	}
	return rec
}

// Format renders a record as "[15:04:05] type: detail".
func (r Record) Format() string {
	if r.Fields == nil {
		return r.Raw
	}

	timestamp := ""
	if !r.Timestamp.IsZero() {
		timestamp = r.Timestamp.Format("15:04:05")
	}

	var detail string
	switch r.Type {
	case EventRetrievalStart:
		if ep, ok := r.Fields["endpoint"].(string); ok {
			detail = "endpoint=" + ep
		}
	case EventRetrievalSuccess:
		if n, ok := r.Fields["length"].(float64); ok {
			detail = fmt.Sprintf("length=%d", int(n))
		}
	case EventRetrievalFailure:
		if msg, ok := r.Fields["error"].(string); ok {
			detail = msg
		}
	case EventRevealSeed, EventRevealComplete:
		if n, ok := r.Fields["total"].(float64); ok {
			detail = fmt.Sprintf("total=%d", int(n))
		}
	case EventRevealAdvance:
		revealed, _ := r.Fields["revealed"].(float64)
		pending, _ := r.Fields["pending"].(float64)
		detail = fmt.Sprintf("revealed=%d pending=%d", int(revealed), int(pending))
	}

	if detail != "" {
		return fmt.Sprintf("[%s] %s: %s", timestamp, r.Type, detail)
	}
	return fmt.Sprintf("[%s] %s", timestamp, r.Type)
}
