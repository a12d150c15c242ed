package mode

import (
	"sync"
	"time"
)

// FailureReason explains why an asynchronous request failed.
type FailureReason uint8

const (
	// ReasonError is a generic failure.
	ReasonError FailureReason = iota

	// ReasonInProgress means an equivalent request is already running.
	ReasonInProgress

	// ReasonBusy means the mode cannot take the request right now.
	ReasonBusy
)

// String returns the reason name.
func (r FailureReason) String() string {
	switch r {
	case ReasonError:
		return "ERROR"
	case ReasonInProgress:
		return "IN_PROGRESS"
	case ReasonBusy:
		return "BUSY"
	default:
		return "UNKNOWN"
	}
}

// ActionListener receives the outcome of a connect or save request.
// Exactly one of the two methods is called per request.
type ActionListener interface {
	OnSuccess()
	OnFailure(reason FailureReason)
}

// ActionListenerFuncs adapts plain functions to ActionListener.
// Nil fields are ignored.
type ActionListenerFuncs struct {
	Success func()
	Failure func(reason FailureReason)
}

// OnSuccess calls Success if set.
func (f ActionListenerFuncs) OnSuccess() {
	if f.Success != nil {
		f.Success()
	}
}

// OnFailure calls Failure if set.
func (f ActionListenerFuncs) OnFailure(reason FailureReason) {
	if f.Failure != nil {
		f.Failure(reason)
	}
}

var _ ActionListener = ActionListenerFuncs{}

// ListenerWrapper delivers at most one result to a listener.
//
// The first SendSuccess or SendFailure wins; later calls are dropped. A nil
// listener is accepted so callers that do not care about the result can pass
// nothing.
type ListenerWrapper struct {
	listener ActionListener
	once     sync.Once
	mu       sync.Mutex
	resolved bool
}

// WrapListener wraps l for exactly-once delivery.
func WrapListener(l ActionListener) *ListenerWrapper {
	return &ListenerWrapper{listener: l}
}

// SendSuccess reports success if nothing was reported yet.
func (w *ListenerWrapper) SendSuccess() {
	w.deliver(func(l ActionListener) { l.OnSuccess() })
}

// SendFailure reports failure if nothing was reported yet.
func (w *ListenerWrapper) SendFailure(reason FailureReason) {
	w.deliver(func(l ActionListener) { l.OnFailure(reason) })
}

// Resolved reports whether a result has been delivered.
func (w *ListenerWrapper) Resolved() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resolved
}

func (w *ListenerWrapper) deliver(fn func(ActionListener)) {
	if w == nil {
		return
	}
	w.once.Do(func() {
		w.mu.Lock()
		w.resolved = true
		w.mu.Unlock()

		if w.listener != nil {
			fn(w.listener)
		}
	})
}

// LinkProbeFailure explains why a link probe failed.
type LinkProbeFailure uint8

const (
	// LinkProbeFailureUnspecified is an unknown failure.
	LinkProbeFailureUnspecified LinkProbeFailure = iota

	// LinkProbeFailureMCSUnsupported means the requested MCS rate is not supported.
	LinkProbeFailureMCSUnsupported

	// LinkProbeFailureNoAck means the peer did not acknowledge the probe.
	LinkProbeFailureNoAck

	// LinkProbeFailureTimeout means the probe timed out.
	LinkProbeFailureTimeout

	// LinkProbeFailureAlreadyStarted means a probe is already running.
	LinkProbeFailureAlreadyStarted

	// LinkProbeErrorNotConnected means there is no link to probe.
	LinkProbeErrorNotConnected
)

// String returns the failure name.
func (f LinkProbeFailure) String() string {
	switch f {
	case LinkProbeFailureUnspecified:
		return "UNSPECIFIED"
	case LinkProbeFailureMCSUnsupported:
		return "MCS_UNSUPPORTED"
	case LinkProbeFailureNoAck:
		return "NO_ACK"
	case LinkProbeFailureTimeout:
		return "TIMEOUT"
	case LinkProbeFailureAlreadyStarted:
		return "ALREADY_STARTED"
	case LinkProbeErrorNotConnected:
		return "NOT_CONNECTED"
	default:
		return "UNKNOWN"
	}
}

// LinkProbeCallback receives the outcome of a link probe.
type LinkProbeCallback interface {
	OnAck(elapsed time.Duration)
	OnFailure(reason LinkProbeFailure)
}

// LinkProbeFuncs adapts plain functions to LinkProbeCallback.
type LinkProbeFuncs struct {
	Ack     func(elapsed time.Duration)
	Failure func(reason LinkProbeFailure)
}

// OnAck calls Ack if set.
func (f LinkProbeFuncs) OnAck(elapsed time.Duration) {
	if f.Ack != nil {
		f.Ack(elapsed)
	}
}

// OnFailure calls Failure if set.
func (f LinkProbeFuncs) OnFailure(reason LinkProbeFailure) {
	if f.Failure != nil {
		f.Failure(reason)
	}
}

var _ LinkProbeCallback = LinkProbeFuncs{}

// ProvisioningCallback receives subscription provisioning progress.
type ProvisioningCallback interface {
	OnStatus(status int)
	OnFailure(status int)
	OnComplete()
}
