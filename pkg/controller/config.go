package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	wlanlog "github.com/wlanmode/wlanmode-go/pkg/log"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// Configuration errors.
var (
	ErrInvalidInitial = errors.New("initial state must be DISABLED or SCAN_ONLY")
	ErrInvalidPolicy  = errors.New("invalid transition policy")
)

// DefaultHistorySize is the number of transitions kept for dumps.
const DefaultHistorySize = 32

// Policy decides what happens to a transition request that arrives while
// another transition is running.
type Policy uint8

const (
	// PolicyQueue makes the request wait for its turn.
	PolicyQueue Policy = iota

	// PolicyReject fails the request with ErrTransitionInProgress.
	PolicyReject
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case PolicyQueue:
		return "QUEUE"
	case PolicyReject:
		return "REJECT"
	default:
		return "UNKNOWN"
	}
}

// ParsePolicy parses "queue" or "reject".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "queue", "QUEUE", "":
		return PolicyQueue, nil
	case "reject", "REJECT":
		return PolicyReject, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// TransitionRequest asks the controller to switch to Target.
type TransitionRequest struct {
	Target State

	// WorkSource attributes the target mode's radio activity.
	WorkSource mode.WorkSource

	// NetworkID is the network a client mode should join once active, or
	// mode.InvalidNetworkID for none.
	NetworkID int

	// Reason is recorded in the history and trace.
	Reason string

	// Params carries mode-specific parameters. The controller passes it to
	// the builder untouched.
	Params any
}

// Request returns a request for target without a network.
func Request(target State, reason string) TransitionRequest {
	return TransitionRequest{Target: target, NetworkID: mode.InvalidNetworkID, Reason: reason}
}

// Builder creates the mode serving req.Target. It runs while the previous
// mode is still active; a returned error leaves that mode in place.
type Builder func(ctx context.Context, req TransitionRequest) (mode.Mode, error)

// Config configures a Controller.
type Config struct {
	// Initial is StateDisabled or StateScanOnly.
	Initial State

	// Builders create the modes for the active states. Inactive states are
	// served by the shared inactive mode and need no builder.
	Builders map[State]Builder

	// Policy for requests arriving during a transition.
	Policy Policy

	// HistorySize bounds History. Default DefaultHistorySize.
	HistorySize int

	// Inactive is the shared inactive mode. Default mode.NewScanOnly().
	Inactive *mode.ScanOnly

	// Logger for operational messages. Nil disables logging.
	Logger *slog.Logger

	// Trace receives one event per transition attempt. Nil disables tracing.
	Trace wlanlog.Logger
}

// DefaultConfig returns a config starting in StateDisabled with the queue
// policy and no builders.
func DefaultConfig() Config {
	return Config{
		Initial:     StateDisabled,
		Builders:    make(map[State]Builder),
		Policy:      PolicyQueue,
		HistorySize: DefaultHistorySize,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Initial.Inactive() {
		return fmt.Errorf("%w: got %s", ErrInvalidInitial, c.Initial)
	}
	if c.Policy != PolicyQueue && c.Policy != PolicyReject {
		return ErrInvalidPolicy
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("history size %d is negative", c.HistorySize)
	}
	for s, b := range c.Builders {
		if s.Inactive() {
			return fmt.Errorf("state %s does not take a builder", s)
		}
		if s.Kind() == mode.KindInactive {
			return fmt.Errorf("unknown state %d", s)
		}
		if b == nil {
			return fmt.Errorf("nil builder for %s", s)
		}
	}
	return nil
}
