package sinks

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"marble-race/server/logging"
)

func TestMemorySinkRecordsInOrder(t *testing.T) {
	sink := NewMemorySink()
	for _, typ := range []logging.EventType{"race.started", "race.marbleFinished", "race.completed"} {
		if err := sink.Write(logging.Event{Type: typ}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	events := sink.Events()
	if len(events) != 3 {
		t.Fatalf("recorded %d events, want 3", len(events))
	}
	if events[1].Type != "race.marbleFinished" {
		t.Fatalf("order broken: %+v", events)
	}

	sink.Reset()
	if got := len(sink.Events()); got != 0 {
		t.Fatalf("%d events after reset, want 0", got)
	}
}

func TestJSONSinkWritesOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSinkWriter(&buf)

	if err := sink.Write(logging.Event{
		Type:  "race.started",
		Tick:  7,
		Actor: logging.EntityRef{ID: "seed", Kind: logging.EntityKindRace},
	}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Write(logging.Event{Type: "race.completed", Tick: 120}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("wrote %d lines, want 2", len(lines))
	}

	var decoded logging.Event
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if decoded.Type != "race.started" || decoded.Tick != 7 {
		t.Fatalf("decoded event = %+v", decoded)
	}
}

func TestConsoleSinkRespectsSeverityFloor(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf, logging.ConsoleConfig{MinSeverity: logging.SeverityWarn, NoColor: true})

	if err := sink.Write(logging.Event{Type: "race.started", Severity: logging.SeverityInfo}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("info event rendered below the floor: %q", buf.String())
	}

	if err := sink.Write(logging.Event{Type: "race.stalled", Severity: logging.SeverityWarn}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "race.stalled") {
		t.Fatalf("warn event missing from output: %q", buf.String())
	}
}
