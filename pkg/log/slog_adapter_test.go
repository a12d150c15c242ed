package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func newJSONAdapter(buf *bytes.Buffer) *SlogAdapter {
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler))
}

func parseEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsTransition(t *testing.T) {
	var buf bytes.Buffer
	adapter := newJSONAdapter(&buf)

	adapter.Log(Event{
		Timestamp: time.Now(),
		Interface: "wlan0",
		Category:  CategoryTransition,
		Transition: &TransitionEvent{
			TransitionID: "t-1",
			From:         "DISABLED",
			To:           "SCAN_ONLY",
			Result:       TransitionOK,
		},
	})

	entry := parseEntry(t, &buf)
	if entry["msg"] != "trace" {
		t.Errorf("msg = %v, want %q", entry["msg"], "trace")
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level = %v, want DEBUG", entry["level"])
	}
	if entry["iface"] != "wlan0" {
		t.Errorf("iface = %v, want wlan0", entry["iface"])
	}
	if entry["from"] != "DISABLED" || entry["to"] != "SCAN_ONLY" {
		t.Errorf("from/to = %v/%v, want DISABLED/SCAN_ONLY", entry["from"], entry["to"])
	}
	if entry["result"] != "OK" {
		t.Errorf("result = %v, want OK", entry["result"])
	}
}

func TestSlogAdapterFailedTransitionWarns(t *testing.T) {
	var buf bytes.Buffer
	adapter := newJSONAdapter(&buf)

	adapter.Log(Event{
		Category: CategoryTransition,
		Transition: &TransitionEvent{
			From:   "SCAN_ONLY",
			To:     "CLIENT",
			Result: TransitionFailed,
			Reason: "radio busy",
		},
	})

	entry := parseEntry(t, &buf)
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["reason"] != "radio busy" {
		t.Errorf("reason = %v, want %q", entry["reason"], "radio busy")
	}
}

func TestSlogAdapterLogsOperation(t *testing.T) {
	var buf bytes.Buffer
	adapter := newJSONAdapter(&buf)

	netID := 12
	d := 40 * time.Millisecond
	adapter.Log(Event{
		Category: CategoryOperation,
		ModeID:   "client/abc",
		Operation: &OperationEvent{
			Name:      "connect",
			NetworkID: &netID,
			Outcome:   "success",
			Duration:  &d,
		},
	})

	entry := parseEntry(t, &buf)
	if entry["op"] != "connect" {
		t.Errorf("op = %v, want connect", entry["op"])
	}
	if entry["network_id"] != float64(12) {
		t.Errorf("network_id = %v, want 12", entry["network_id"])
	}
	if entry["mode_id"] != "client/abc" {
		t.Errorf("mode_id = %v, want client/abc", entry["mode_id"])
	}
}

func TestSlogAdapterLogsStateAndError(t *testing.T) {
	var buf bytes.Buffer
	adapter := newJSONAdapter(&buf)

	adapter.Log(Event{
		Category: CategoryState,
		StateChange: &StateChangeEvent{
			Entity:   StateEntityLink,
			OldState: "CONNECTED",
			NewState: "RECONNECTING",
			Reason:   "beacon loss",
		},
	})
	entry := parseEntry(t, &buf)
	if entry["entity"] != "LINK" || entry["new_state"] != "RECONNECTING" {
		t.Errorf("entity/new_state = %v/%v, want LINK/RECONNECTING", entry["entity"], entry["new_state"])
	}

	buf.Reset()
	adapter.Log(Event{
		Category: CategoryError,
		Error:    &ErrorEventData{Component: "client", Message: "associate failed"},
	})
	entry = parseEntry(t, &buf)
	if entry["level"] != "WARN" {
		t.Errorf("level = %v, want WARN", entry["level"])
	}
	if entry["component"] != "client" {
		t.Errorf("component = %v, want client", entry["component"])
	}
}
