// Package commands implements the wlanmode-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wlanmode/wlanmode-go/pkg/controller"
	"github.com/wlanmode/wlanmode-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [mode:id] iface CATEGORY Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	iface := event.Interface
	if iface == "" {
		iface = "-"
	}

	var typeLabel string
	switch {
	case event.Transition != nil:
		typeLabel = event.Transition.Result.String()
	case event.Operation != nil:
		typeLabel = event.Operation.Name
	case event.StateChange != nil:
		typeLabel = event.StateChange.Entity.String()
	case event.Error != nil:
		typeLabel = event.Error.Component
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [mode:%s] %s %s %s\n", ts, shortenModeID(event.ModeID), iface, event.Category, typeLabel)
	if event.State != "" {
		fmt.Fprintf(w, "  State: %s\n", event.State)
	}

	switch {
	case event.Transition != nil:
		formatTransitionDetails(w, event.Transition)
	case event.Operation != nil:
		formatOperationDetails(w, event.Operation)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenModeID keeps the kind and the first 8 characters of the instance,
// e.g. "client/3f2a9c1b".
func shortenModeID(id string) string {
	if id == "" {
		return "-"
	}
	kind, instance, ok := strings.Cut(id, "/")
	if !ok {
		return id
	}
	if len(instance) > 8 {
		instance = instance[:8]
	}
	return kind + "/" + instance
}

func formatTransitionDetails(w io.Writer, tr *log.TransitionEvent) {
	fmt.Fprintf(w, "  %s -> %s\n", tr.From, tr.To)
	if tr.FromMode != "" || tr.ToMode != "" {
		fmt.Fprintf(w, "  Modes: %s -> %s\n", shortenModeID(tr.FromMode), shortenModeID(tr.ToMode))
	}
	if tr.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", tr.Reason)
	}
	if tr.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(tr.Duration))
	}
	if len(tr.UIDs) > 0 {
		fmt.Fprintf(w, "  UIDs: %v\n", tr.UIDs)
	}
	if tr.TransitionID != "" {
		fmt.Fprintf(w, "  TransitionID: %s\n", tr.TransitionID)
	}
}

func formatOperationDetails(w io.Writer, op *log.OperationEvent) {
	fmt.Fprintf(w, "  Outcome: %s\n", op.Outcome)
	if op.NetworkID != nil {
		fmt.Fprintf(w, "  Network: %d\n", *op.NetworkID)
	}
	if op.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", op.Reason)
	}
	if op.CallingUID != 0 {
		fmt.Fprintf(w, "  UID: %d\n", op.CallingUID)
	}
	if op.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*op.Duration))
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseCategoryFlag parses a category string from a command-line flag
// (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be transition, operation, state, or error)", s)
	}
	return c, nil
}

// ParseStateFlag parses a controller state from a command-line flag and
// returns its canonical name.
func ParseStateFlag(s string) (string, error) {
	st, err := controller.ParseState(s)
	if err != nil {
		return "", fmt.Errorf("invalid state: %s", s)
	}
	return st.String(), nil
}

// FilterFlags are the filter flags shared by the subcommands.
type FilterFlags struct {
	Interface string
	ModeID    string
	Category  string
	State     string
	TimeStart string
	TimeEnd   string
}

// Build converts the flags to a trace filter.
func (f FilterFlags) Build() (log.Filter, error) {
	filter := log.Filter{Interface: f.Interface, ModeID: f.ModeID}

	if f.Category != "" {
		c, err := ParseCategoryFlag(f.Category)
		if err != nil {
			return filter, err
		}
		filter.Category = &c
	}
	if f.State != "" {
		s, err := ParseStateFlag(f.State)
		if err != nil {
			return filter, err
		}
		filter.State = s
	}
	if f.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, f.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}
	if f.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, f.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}
	return filter, nil
}

// RunView prints the events of the trace at path that match filter.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}
