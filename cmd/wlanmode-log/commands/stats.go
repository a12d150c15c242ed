package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/wlanmode/wlanmode-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	TransitionResults map[log.TransitionResult]int
	Operations        map[string]*OperationStats
	Modes             map[string]*ModeStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// OperationStats counts the outcomes of one operation.
type OperationStats struct {
	Success int
	Failure int
	Other   int
}

// ModeStats holds statistics for a single mode instance.
type ModeStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, filter log.Filter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory:  make(map[log.Category]int),
		TransitionResults: make(map[log.TransitionResult]int),
		Operations:        make(map[string]*OperationStats),
		Modes:             make(map[string]*ModeStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	if event.ModeID != "" {
		m, ok := s.Modes[event.ModeID]
		if !ok {
			m = &ModeStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
			s.Modes[event.ModeID] = m
		}
		m.Events++
		if event.Timestamp.After(m.LastSeen) {
			m.LastSeen = event.Timestamp
		}
	}

	if tr := event.Transition; tr != nil {
		s.TransitionResults[tr.Result]++
	}
	if op := event.Operation; op != nil {
		o, ok := s.Operations[op.Name]
		if !ok {
			o = &OperationStats{}
			s.Operations[op.Name] = o
		}
		switch op.Outcome {
		case "success":
			o.Success++
		case "failure":
			o.Failure++
		default:
			o.Other++
		}
	}
	if event.Error != nil {
		s.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Mode Trace Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryTransition, log.CategoryOperation, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.TransitionResults) > 0 {
		fmt.Fprintln(w, "Transitions:")
		for _, r := range []log.TransitionResult{log.TransitionOK, log.TransitionFailed, log.TransitionRejected, log.TransitionNoop} {
			if count := stats.TransitionResults[r]; count > 0 {
				fmt.Fprintf(w, "  %-12s %d\n", r.String()+":", count)
			}
		}
		fmt.Fprintln(w)
	}

	if len(stats.Operations) > 0 {
		names := make([]string, 0, len(stats.Operations))
		for name := range stats.Operations {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(w, "Operations:")
		for _, name := range names {
			o := stats.Operations[name]
			fmt.Fprintf(w, "  %-12s ok=%d failed=%d other=%d\n", name+":", o.Success, o.Failure, o.Other)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Modes: %d\n", len(stats.Modes))
	if len(stats.Modes) > 0 {
		type modeInfo struct {
			id    string
			stats *ModeStats
		}
		modes := make([]modeInfo, 0, len(stats.Modes))
		for id, ms := range stats.Modes {
			modes = append(modes, modeInfo{id, ms})
		}
		sort.Slice(modes, func(i, j int) bool {
			return modes[i].stats.FirstSeen.Before(modes[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, m := range modes {
			lifetime := m.stats.LastSeen.Sub(m.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, lifetime %s\n", shortenModeID(m.id), m.stats.Events, lifetime)
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
