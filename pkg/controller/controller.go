package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	wlanlog "github.com/wlanmode/wlanmode-go/pkg/log"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// Controller errors.
var (
	ErrTransitionFailed     = errors.New("transition failed")
	ErrTransitionInProgress = errors.New("transition in progress")
	ErrClosed               = errors.New("controller closed")
	ErrNoBuilder            = errors.New("no builder for state")
	ErrNilMode              = errors.New("builder returned nil mode")
	ErrWrongKind            = errors.New("builder returned mode of wrong kind")
)

// TransitionError reports a transition whose target mode could not be
// built. The previous mode is still active. It matches ErrTransitionFailed
// and the builder's error with errors.Is.
type TransitionError struct {
	From State
	To   State
	Err  error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s: %v", e.From, e.To, e.Err)
}

// Unwrap returns ErrTransitionFailed and the underlying cause.
func (e *TransitionError) Unwrap() []error {
	return []error{ErrTransitionFailed, e.Err}
}

// active pairs the published mode with the state it serves so both are
// swapped in one store.
type active struct {
	mode  mode.Mode
	state State
}

// Controller owns the active mode of one interface and replaces it on
// request.
//
// Queries never block: Current returns whichever mode was published last,
// and a caller holding the previous mode may keep using it. Transitions are
// serialized. The active mode is never unset.
type Controller struct {
	config   Config
	inactive *mode.ScanOnly
	logger   *slog.Logger
	trace    wlanlog.Logger

	current atomic.Pointer[active]

	// sem admits one transition at a time. Unlike a mutex it lets queued
	// requests give up when their context ends.
	sem chan struct{}

	mu        sync.Mutex
	closed    bool
	observers []func(Record)
	history   *history
	counts    map[wlanlog.TransitionResult]int
}

// New creates a controller publishing the inactive mode in cfg.Initial.
func New(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.HistorySize == 0 {
		cfg.HistorySize = DefaultHistorySize
	}
	inactive := cfg.Inactive
	if inactive == nil {
		inactive = mode.NewScanOnly()
	}
	builders := make(map[State]Builder, len(cfg.Builders))
	for s, b := range cfg.Builders {
		builders[s] = b
	}
	cfg.Builders = builders

	c := &Controller{
		config:   cfg,
		inactive: inactive,
		logger:   cfg.Logger,
		trace:    cfg.Trace,
		sem:      make(chan struct{}, 1),
		history:  newHistory(cfg.HistorySize),
		counts:   make(map[wlanlog.TransitionResult]int),
	}
	c.current.Store(&active{mode: inactive, state: cfg.Initial})
	return c, nil
}

// Current returns the active mode. It never returns nil.
func (c *Controller) Current() mode.Mode {
	return c.current.Load().mode
}

// State returns the active state.
func (c *Controller) State() State {
	return c.current.Load().state
}

// Active returns the active state and mode as published together.
func (c *Controller) Active() (State, mode.Mode) {
	a := c.current.Load()
	return a.state, a.mode
}

// CurrentID returns the identity of the active mode.
func (c *Controller) CurrentID() mode.ID {
	return c.Current().ID()
}

// Inactive returns the shared mode serving the inactive states.
func (c *Controller) Inactive() *mode.ScanOnly {
	return c.inactive
}

// Policy returns the configured transition policy.
func (c *Controller) Policy() Policy {
	return c.config.Policy
}

// OnTransition registers fn to be called after every transition attempt
// that changed or tried to change the active mode. Callbacks run in order on
// the transitioning goroutine while later transitions wait, so fn must not
// call Transition.
func (c *Controller) OnTransition(fn func(Record)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// Transition switches the active mode to req.Target.
//
// The target mode is built while the previous mode keeps serving. Once
// built it is published, the previous mode is retired and the new mode is
// activated. If the build fails the previous mode stays active and a
// *TransitionError is returned. Requesting the inactive state that is
// already active does nothing.
//
// With PolicyQueue a request waits for a running transition or until ctx
// ends. With PolicyReject it fails at once with ErrTransitionInProgress.
func (c *Controller) Transition(ctx context.Context, req TransitionRequest) error {
	if c.isClosed() {
		return ErrClosed
	}
	accepted := time.Now()

	if c.config.Policy == PolicyReject {
		select {
		case c.sem <- struct{}{}:
		default:
			rec := c.newRecord(req, accepted)
			rec.Result = wlanlog.TransitionRejected
			rec.Err = ErrTransitionInProgress.Error()
			c.record(rec)
			c.debugLog("transition rejected", slog.String("to", req.Target.String()))
			return ErrTransitionInProgress
		}
	} else {
		select {
		case c.sem <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	defer func() { <-c.sem }()

	if c.isClosed() {
		return ErrClosed
	}
	return c.transition(ctx, req, accepted)
}

// transition runs with the semaphore held.
func (c *Controller) transition(ctx context.Context, req TransitionRequest, accepted time.Time) error {
	prev := c.current.Load()
	rec := c.newRecord(req, accepted)

	if req.Target.Inactive() && prev.state == req.Target {
		rec.Result = wlanlog.TransitionNoop
		rec.ToMode = prev.mode.ID()
		c.record(rec)
		return nil
	}

	next, err := c.build(ctx, req, rec.ID)
	if err != nil {
		rec.Result = wlanlog.TransitionFailed
		rec.Err = err.Error()
		rec.Duration = time.Since(accepted)
		c.record(rec)
		c.notify(rec)
		if c.logger != nil {
			c.logger.Warn("transition failed",
				slog.String("from", prev.state.String()),
				slog.String("to", req.Target.String()),
				slog.Any("error", err))
		}
		return &TransitionError{From: prev.state, To: req.Target, Err: err}
	}

	c.current.Store(&active{mode: next, state: req.Target})
	rec.Result = wlanlog.TransitionOK
	rec.ToMode = next.ID()
	rec.Duration = time.Since(accepted)

	if prev.mode != next {
		c.retire(prev.mode, rec.ID)
	}
	if a, ok := next.(mode.Activator); ok {
		a.Activate()
	}

	c.record(rec)
	c.notify(rec)
	if c.logger != nil {
		c.logger.Info("mode transition",
			slog.String("from", prev.state.String()),
			slog.String("to", req.Target.String()),
			slog.String("mode_id", rec.ToMode.String()),
			slog.Duration("duration", rec.Duration))
	}
	return nil
}

func (c *Controller) build(ctx context.Context, req TransitionRequest, transitionID string) (mode.Mode, error) {
	if req.Target.Inactive() {
		return c.inactive, nil
	}
	b, ok := c.config.Builders[req.Target]
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrNoBuilder, req.Target)
	}
	m, err := b(ctx, req)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrNilMode
	}
	if kind := m.ID().Kind; kind != req.Target.Kind() {
		c.retire(m, transitionID)
		return nil, fmt.Errorf("%w: %s for %s", ErrWrongKind, kind, req.Target)
	}
	return m, nil
}

// retire retires m if it owns resources. Failures are logged and traced;
// the transition itself has already succeeded.
func (c *Controller) retire(m mode.Mode, transitionID string) error {
	r, ok := m.(mode.Retirer)
	if !ok {
		return nil
	}
	err := r.Retire()
	if err == nil {
		return nil
	}
	if c.logger != nil {
		c.logger.Warn("retire failed", slog.String("mode_id", m.ID().String()), slog.Any("error", err))
	}
	wlanlog.Emit(c.trace, wlanlog.Event{
		ModeID:   m.ID().String(),
		Category: wlanlog.CategoryError,
		State:    c.State().String(),
		Error: &wlanlog.ErrorEventData{
			Component: "controller",
			Message:   err.Error(),
			Context:   "retire " + transitionID,
		},
	})
	return err
}

// Close retires the active mode and publishes the inactive mode in
// StateDisabled. It waits for a running transition. Later transitions fail
// with ErrClosed; queries keep answering. Close is idempotent.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	prev := c.current.Load()
	if prev.state == StateDisabled {
		return nil
	}

	accepted := time.Now()
	rec := c.newRecord(TransitionRequest{Target: StateDisabled, Reason: "close"}, accepted)
	c.current.Store(&active{mode: c.inactive, state: StateDisabled})
	rec.Result = wlanlog.TransitionOK
	rec.ToMode = c.inactive.ID()

	var result *multierror.Error
	if prev.mode != mode.Mode(c.inactive) {
		if err := c.retire(prev.mode, rec.ID); err != nil {
			result = multierror.Append(result, fmt.Errorf("retire %s: %w", prev.mode.ID(), err))
		}
	}
	rec.Duration = time.Since(accepted)
	c.record(rec)
	c.notify(rec)

	c.debugLog("controller closed", slog.String("from", prev.state.String()))
	return result.ErrorOrNil()
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	return c.isClosed()
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) newRecord(req TransitionRequest, accepted time.Time) Record {
	cur := c.current.Load()
	var uids []int
	if len(req.WorkSource.UIDs) > 0 {
		uids = append([]int(nil), req.WorkSource.UIDs...)
	}
	return Record{
		ID:       uuid.NewString(),
		At:       accepted,
		From:     cur.state,
		To:       req.Target,
		FromMode: cur.mode.ID(),
		Reason:   req.Reason,
		UIDs:     uids,
	}
}

// record appends rec to the history and traces it.
func (c *Controller) record(rec Record) {
	c.mu.Lock()
	c.history.add(rec)
	c.counts[rec.Result]++
	c.mu.Unlock()

	ev := wlanlog.Event{
		Timestamp: rec.At,
		ModeID:    rec.FromMode.String(),
		Category:  wlanlog.CategoryTransition,
		State:     c.State().String(),
		Transition: &wlanlog.TransitionEvent{
			TransitionID: rec.ID,
			From:         rec.From.String(),
			To:           rec.To.String(),
			FromMode:     rec.FromMode.String(),
			Result:       rec.Result,
			Reason:       rec.Reason,
			Duration:     rec.Duration,
			UIDs:         rec.UIDs,
		},
	}
	if rec.Result == wlanlog.TransitionOK || rec.Result == wlanlog.TransitionNoop {
		ev.ModeID = rec.ToMode.String()
		ev.Transition.ToMode = rec.ToMode.String()
	}
	wlanlog.Emit(c.trace, ev)
}

// notify calls the observers outside the lock.
func (c *Controller) notify(rec Record) {
	c.mu.Lock()
	observers := make([]func(Record), len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(rec)
	}
}

// History returns the recorded transition attempts, oldest first.
func (c *Controller) History() []Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.list()
}

// Dump writes the controller state, its recent transitions and the active
// mode's dump to w. args are passed to the mode.
func (c *Controller) Dump(w io.Writer, args []string) {
	if w == nil {
		return
	}
	state, m := c.Active()

	c.mu.Lock()
	closed := c.closed
	ok := c.counts[wlanlog.TransitionOK]
	failed := c.counts[wlanlog.TransitionFailed]
	rejected := c.counts[wlanlog.TransitionRejected]
	noop := c.counts[wlanlog.TransitionNoop]
	records := c.history.list()
	c.mu.Unlock()

	fmt.Fprintf(w, "Mode controller\n")
	fmt.Fprintf(w, "  state:       %s\n", state)
	fmt.Fprintf(w, "  mode:        %s\n", m.ID())
	fmt.Fprintf(w, "  policy:      %s\n", c.config.Policy)
	fmt.Fprintf(w, "  closed:      %t\n", closed)
	fmt.Fprintf(w, "  transitions: ok=%d failed=%d rejected=%d noop=%d\n", ok, failed, rejected, noop)
	if len(records) > 0 {
		fmt.Fprintf(w, "  history:\n")
		for _, rec := range records {
			fmt.Fprintf(w, "    %s\n", rec)
		}
	}
	m.Dump(w, args)
}

func (c *Controller) debugLog(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
