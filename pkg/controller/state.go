package controller

import (
	"fmt"
	"strings"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// State is the duty the radio is performing.
type State uint8

const (
	// StateDisabled - radio off.
	StateDisabled State = iota

	// StateScanOnly - radio on for scans only.
	StateScanOnly

	// StateClient - radio in client (station) duty.
	StateClient

	// StateSoftAP - radio serving an access point.
	StateSoftAP

	// StateP2P - radio running a peer-to-peer group.
	StateP2P
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisabled:
		return "DISABLED"
	case StateScanOnly:
		return "SCAN_ONLY"
	case StateClient:
		return "CLIENT"
	case StateSoftAP:
		return "SOFT_AP"
	case StateP2P:
		return "P2P"
	default:
		return "UNKNOWN"
	}
}

// ParseState parses a state name. Case, dashes and underscores are ignored,
// so "scan-only", "scanonly" and "SCAN_ONLY" are equivalent.
func ParseState(s string) (State, error) {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "disabled", "off":
		return StateDisabled, nil
	case "scanonly", "scan":
		return StateScanOnly, nil
	case "client", "sta":
		return StateClient, nil
	case "softap", "ap":
		return StateSoftAP, nil
	case "p2p":
		return StateP2P, nil
	default:
		return 0, fmt.Errorf("unknown state %q", s)
	}
}

// Inactive reports whether the state is served by the inactive mode.
func (s State) Inactive() bool {
	return s == StateDisabled || s == StateScanOnly
}

// Kind returns the mode kind that serves the state.
func (s State) Kind() mode.Kind {
	switch s {
	case StateClient:
		return mode.KindClient
	case StateSoftAP:
		return mode.KindSoftAP
	case StateP2P:
		return mode.KindP2P
	default:
		return mode.KindInactive
	}
}

// States lists all states in order.
func States() []State {
	return []State{StateDisabled, StateScanOnly, StateClient, StateSoftAP, StateP2P}
}
