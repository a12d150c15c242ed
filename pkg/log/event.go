package log

import (
	"time"
)

// Event is one entry of the mode trace.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Interface is the wireless interface name (e.g. wlan0).
	Interface string `cbor:"2,keyasint,omitempty"`

	// ModeID identifies the mode instance the event belongs to.
	ModeID string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// State is the controller state when the event was recorded.
	State string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Transition  *TransitionEvent  `cbor:"10,keyasint,omitempty"` // Controller
	Operation   *OperationEvent   `cbor:"11,keyasint,omitempty"` // Mode operations
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Link lifecycle
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryTransition indicates a mode transition.
	CategoryTransition Category = 0
	// CategoryOperation indicates a mode operation such as connect or save.
	CategoryOperation Category = 1
	// CategoryState indicates a link state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryTransition:
		return "TRANSITION"
	case CategoryOperation:
		return "OPERATION"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as printed by String.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "TRANSITION", "transition":
		return CategoryTransition, true
	case "OPERATION", "operation":
		return CategoryOperation, true
	case "STATE", "state":
		return CategoryState, true
	case "ERROR", "error":
		return CategoryError, true
	default:
		return 0, false
	}
}

// TransitionEvent captures one controller transition attempt.
type TransitionEvent struct {
	// TransitionID correlates log lines of one attempt (UUID).
	TransitionID string `cbor:"1,keyasint"`

	// From and To are controller state names.
	From string `cbor:"2,keyasint"`
	To   string `cbor:"3,keyasint"`

	// FromMode and ToMode are mode identities.
	FromMode string `cbor:"4,keyasint,omitempty"`
	ToMode   string `cbor:"5,keyasint,omitempty"`

	// Result of the attempt.
	Result TransitionResult `cbor:"6,keyasint"`

	// Reason supplied by the requester.
	Reason string `cbor:"7,keyasint,omitempty"`

	// Duration from request acceptance to publication. Stored as nanoseconds.
	Duration time.Duration `cbor:"8,keyasint,omitempty"`

	// UIDs attributed to the request.
	UIDs []int `cbor:"9,keyasint,omitempty"`
}

// TransitionResult is the outcome of a transition attempt.
type TransitionResult uint8

const (
	// TransitionOK indicates the target mode was published.
	TransitionOK TransitionResult = 0
	// TransitionFailed indicates the target mode could not be built.
	TransitionFailed TransitionResult = 1
	// TransitionRejected indicates another transition was in progress.
	TransitionRejected TransitionResult = 2
	// TransitionNoop indicates the target was already active.
	TransitionNoop TransitionResult = 3
)

// String returns the result name.
func (r TransitionResult) String() string {
	switch r {
	case TransitionOK:
		return "OK"
	case TransitionFailed:
		return "FAILED"
	case TransitionRejected:
		return "REJECTED"
	case TransitionNoop:
		return "NOOP"
	default:
		return "UNKNOWN"
	}
}

// OperationEvent captures an asynchronous mode operation.
type OperationEvent struct {
	// Name of the operation (e.g. "connect", "save", "probe").
	Name string `cbor:"1,keyasint"`

	// NetworkID the operation refers to, if any.
	NetworkID *int `cbor:"2,keyasint,omitempty"`

	// Outcome is "success", "failure" or "started".
	Outcome string `cbor:"3,keyasint"`

	// Reason for a failure outcome.
	Reason string `cbor:"4,keyasint,omitempty"`

	// CallingUID is the requesting caller.
	CallingUID int `cbor:"5,keyasint,omitempty"`

	// Duration of the operation. Stored as nanoseconds.
	Duration *time.Duration `cbor:"6,keyasint,omitempty"`
}

// StateChangeEvent captures link lifecycle changes.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityLink indicates a client link state change.
	StateEntityLink StateEntity = 0
	// StateEntityAccessPoint indicates an access point state change.
	StateEntityAccessPoint StateEntity = 1
	// StateEntityGroup indicates a peer-to-peer group state change.
	StateEntityGroup StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityLink:
		return "LINK"
	case StateEntityAccessPoint:
		return "ACCESS_POINT"
	case StateEntityGroup:
		return "GROUP"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors in any component.
type ErrorEventData struct {
	// Component where the error occurred (e.g. "controller", "client").
	Component string `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
