package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wlanmode/wlanmode-go/pkg/log"
)

const (
	clientMode = "client/3f2a9c1b-7d4e-4a8b-9c0d-112233445566"
	apMode     = "softap/9a8b7c6d-1111-2222-3333-444455556666"
)

func createTestTrace(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+log.FileExt)

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()
	return path
}

func sampleEvents() []log.Event {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	netID := 4
	took := 42 * time.Millisecond
	return []log.Event{
		{
			Timestamp: ts,
			Interface: "wlan0",
			ModeID:    clientMode,
			Category:  log.CategoryTransition,
			State:     "CLIENT",
			Transition: &log.TransitionEvent{
				TransitionID: "0b7e8f5a-aaaa-bbbb-cccc-ddddeeeeffff",
				From:         "SCAN_ONLY",
				To:           "CLIENT",
				ToMode:       clientMode,
				Result:       log.TransitionOK,
				Reason:       "user enabled wifi",
				Duration:     3 * time.Millisecond,
				UIDs:         []int{1000},
			},
		},
		{
			Timestamp: ts.Add(time.Second),
			Interface: "wlan0",
			ModeID:    clientMode,
			Category:  log.CategoryOperation,
			State:     "CLIENT",
			Operation: &log.OperationEvent{Name: "connect", NetworkID: &netID, Outcome: "success", CallingUID: 1000, Duration: &took},
		},
		{
			Timestamp: ts.Add(2 * time.Second),
			Interface: "wlan0",
			ModeID:    clientMode,
			Category:  log.CategoryState,
			State:     "CLIENT",
			StateChange: &log.StateChangeEvent{
				Entity: log.StateEntityLink, OldState: "CONNECTING", NewState: "CONNECTED",
			},
		},
		{
			Timestamp: ts.Add(3 * time.Second),
			Interface: "wlan0",
			ModeID:    clientMode,
			Category:  log.CategoryOperation,
			State:     "CLIENT",
			Operation: &log.OperationEvent{Name: "connect", Outcome: "failure", Reason: "busy"},
		},
		{
			Timestamp: ts.Add(4 * time.Second),
			Interface: "wlan0",
			ModeID:    apMode,
			Category:  log.CategoryTransition,
			State:     "SOFT_AP",
			Transition: &log.TransitionEvent{
				From: "CLIENT", To: "SOFT_AP", FromMode: clientMode, ToMode: apMode, Result: log.TransitionOK,
			},
		},
		{
			Timestamp: ts.Add(5 * time.Second),
			Interface: "wlan0",
			ModeID:    clientMode,
			Category:  log.CategoryError,
			State:     "SOFT_AP",
			Error:     &log.ErrorEventData{Component: "controller", Message: "disassociate: timeout", Context: "retire"},
		},
	}
}

func TestFormatTransitionEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[0])
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[mode:client/3f2a9c1b]",
		"wlan0 TRANSITION OK",
		"SCAN_ONLY -> CLIENT",
		"Modes: - -> client/3f2a9c1b",
		"Reason: user enabled wifi",
		"Duration: 3.000ms",
		"UIDs: [1000]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestFormatOperationAndErrorEvents(t *testing.T) {
	events := sampleEvents()

	var buf bytes.Buffer
	formatEvent(&buf, events[1])
	output := buf.String()
	if !strings.Contains(output, "OPERATION connect") || !strings.Contains(output, "Network: 4") {
		t.Errorf("unexpected operation output:\n%s", output)
	}
	if !strings.Contains(output, "Duration: 42.000ms") {
		t.Errorf("expected duration, got:\n%s", output)
	}

	buf.Reset()
	formatEvent(&buf, events[5])
	output = buf.String()
	if !strings.Contains(output, "ERROR controller") || !strings.Contains(output, "Context: retire") {
		t.Errorf("unexpected error output:\n%s", output)
	}
}

func TestShortenModeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "-"},
		{clientMode, "client/3f2a9c1b"},
		{"inactive/00000000-0000-0000-0000-000000000000", "inactive/00000000"},
		{"opaque", "opaque"},
	}
	for _, tt := range tests {
		if got := shortenModeID(tt.in); got != tt.want {
			t.Errorf("shortenModeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterFlags(t *testing.T) {
	filter, err := FilterFlags{Category: "transition", State: "softap", TimeStart: "2026-01-28T10:15:35Z"}.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if filter.Category == nil || *filter.Category != log.CategoryTransition {
		t.Errorf("Category = %v, want TRANSITION", filter.Category)
	}
	if filter.State != "SOFT_AP" {
		t.Errorf("State = %q, want SOFT_AP", filter.State)
	}
	if filter.TimeStart == nil {
		t.Error("TimeStart not set")
	}

	bad := []FilterFlags{
		{Category: "message"},
		{State: "monitor"},
		{TimeStart: "yesterday"},
		{TimeEnd: "tomorrow"},
	}
	for _, ff := range bad {
		if _, err := ff.Build(); err == nil {
			t.Errorf("Build(%+v) succeeded, want error", ff)
		}
	}
}

func TestRunViewFiltersByState(t *testing.T) {
	path := createTestTrace(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunView(path, log.Filter{State: "SOFT_AP"}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}
	output := buf.String()

	// The transition into SOFT_AP and the error recorded in it.
	if n := strings.Count(output, "[mode:"); n != 2 {
		t.Errorf("expected 2 events, got %d:\n%s", n, output)
	}
	if !strings.Contains(output, "CLIENT -> SOFT_AP") {
		t.Errorf("expected transition into SOFT_AP, got:\n%s", output)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := RunView(filepath.Join(t.TempDir(), "none.wlog"), log.Filter{}, &buf); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunStats(t *testing.T) {
	path := createTestTrace(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, log.Filter{}, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 6",
		"TRANSITION:  2",
		"OPERATION:   2",
		"connect:     ok=1 failed=1 other=0",
		"Modes: 2",
		"[client/3f2a9c1b] 5 events, lifetime 5s",
		"Errors: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestRunStatsEmpty(t *testing.T) {
	path := createTestTrace(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, log.Filter{}, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestRunExportJSONL(t *testing.T) {
	path := createTestTrace(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.jsonl")

	category := log.CategoryOperation
	if err := RunExport(path, "jsonl", out, log.Filter{Category: &category}); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var ev log.Event
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if ev.Operation == nil || ev.Operation.Name != "connect" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestRunExportCSV(t *testing.T) {
	path := createTestTrace(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", out, log.Filter{}); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("expected header and 6 rows, got %d", len(rows))
	}
	if rows[1][5] != "transition" || rows[1][6] != "SCAN_ONLY->CLIENT OK" {
		t.Errorf("unexpected transition row: %v", rows[1])
	}
	if rows[2][7] != "4" {
		t.Errorf("expected network id 4, got %v", rows[2])
	}
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := createTestTrace(t, sampleEvents())
	if err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out.xml"), log.Filter{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunFilter(t *testing.T) {
	path := createTestTrace(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "client"+log.FileExt)

	n, err := RunFilter(path, out, log.Filter{ModeID: clientMode})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 5 {
		t.Errorf("RunFilter() = %d, want 5", n)
	}

	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()
	events, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 5 {
		t.Errorf("filtered trace has %d events, want 5", len(events))
	}
}
