package log

import (
	"testing"
	"time"
)

// mockLogger records events for testing
type mockLogger struct {
	events []Event
}

func (m *mockLogger) Log(event Event) {
	m.events = append(m.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	mock1 := &mockLogger{}
	mock2 := &mockLogger{}
	mock3 := &mockLogger{}

	multi := NewMultiLogger(mock1, mock2, mock3)

	multi.Log(Event{
		Timestamp: time.Now(),
		Interface: "wlan0",
		Category:  CategoryTransition,
	})

	for i, mock := range []*mockLogger{mock1, mock2, mock3} {
		if len(mock.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(mock.events))
			continue
		}
		if mock.events[0].Interface != "wlan0" {
			t.Errorf("logger %d: Interface = %q, want %q", i, mock.events[0].Interface, "wlan0")
		}
	}
}

func TestMultiLoggerSkipsNil(t *testing.T) {
	rec := &mockLogger{}
	multi := NewMultiLogger(nil, rec, nil)

	if multi.Len() != 1 {
		t.Errorf("Len() = %d, want 1", multi.Len())
	}

	multi.Log(Event{Category: CategoryState})
	if len(rec.events) != 1 {
		t.Errorf("got %d events, want 1", len(rec.events))
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	multi := NewMultiLogger()

	// Should not panic with empty logger list
	multi.Log(Event{Timestamp: time.Now()})
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{})
}
