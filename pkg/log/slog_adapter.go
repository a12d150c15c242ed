package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see transitions in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level, or Warn for errors and failed
// transitions.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}

	if event.Interface != "" {
		attrs = append(attrs, slog.String("iface", event.Interface))
	}
	if event.ModeID != "" {
		attrs = append(attrs, slog.String("mode_id", event.ModeID))
	}
	if event.State != "" {
		attrs = append(attrs, slog.String("state", event.State))
	}

	switch {
	case event.Transition != nil:
		tr := event.Transition
		attrs = append(attrs,
			slog.String("transition_id", tr.TransitionID),
			slog.String("from", tr.From),
			slog.String("to", tr.To),
			slog.String("result", tr.Result.String()),
		)
		if tr.Reason != "" {
			attrs = append(attrs, slog.String("reason", tr.Reason))
		}
		if tr.Duration > 0 {
			attrs = append(attrs, slog.Duration("duration", tr.Duration))
		}
		if tr.Result == TransitionFailed {
			level = slog.LevelWarn
		}
	case event.Operation != nil:
		op := event.Operation
		attrs = append(attrs,
			slog.String("op", op.Name),
			slog.String("outcome", op.Outcome),
		)
		if op.NetworkID != nil {
			attrs = append(attrs, slog.Int("network_id", *op.NetworkID))
		}
		if op.Reason != "" {
			attrs = append(attrs, slog.String("reason", op.Reason))
		}
		if op.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *op.Duration))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("component", event.Error.Component),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
