package controller

import (
	"fmt"
	"strings"
	"time"

	wlanlog "github.com/wlanmode/wlanmode-go/pkg/log"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// Record describes one transition attempt.
type Record struct {
	ID       string
	At       time.Time
	From     State
	To       State
	FromMode mode.ID
	ToMode   mode.ID
	Result   wlanlog.TransitionResult
	Reason   string
	Err      string
	Duration time.Duration
	UIDs     []int
}

// String formats the record as a single line.
func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s -> %s %s", r.At.Format("15:04:05.000"), r.From, r.To, r.Result)
	if !r.ToMode.IsInactive() && r.Result == wlanlog.TransitionOK {
		fmt.Fprintf(&b, " mode=%s", r.ToMode.Short())
	}
	if r.Duration > 0 {
		fmt.Fprintf(&b, " took=%s", r.Duration.Round(time.Microsecond))
	}
	if r.Reason != "" {
		fmt.Fprintf(&b, " reason=%q", r.Reason)
	}
	if len(r.UIDs) > 0 {
		fmt.Fprintf(&b, " uids=%v", r.UIDs)
	}
	if r.Err != "" {
		fmt.Fprintf(&b, " err=%q", r.Err)
	}
	return b.String()
}

// history is a bounded ring of records. Not safe for concurrent use.
type history struct {
	records []Record
	next    int
	full    bool
}

func newHistory(size int) *history {
	return &history{records: make([]Record, size)}
}

func (h *history) add(r Record) {
	if len(h.records) == 0 {
		return
	}
	h.records[h.next] = r
	h.next++
	if h.next == len(h.records) {
		h.next = 0
		h.full = true
	}
}

// list returns the records oldest first.
func (h *history) list() []Record {
	if !h.full {
		out := make([]Record, h.next)
		copy(out, h.records[:h.next])
		return out
	}
	out := make([]Record, 0, len(h.records))
	out = append(out, h.records[h.next:]...)
	out = append(out, h.records[:h.next]...)
	return out
}
