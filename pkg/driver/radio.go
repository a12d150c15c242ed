package driver

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// Driver errors.
var (
	ErrUnsupported      = errors.New("operation not supported by radio")
	ErrNotAssociated    = errors.New("not associated")
	ErrInterfaceDown    = errors.New("interface down")
	ErrNetworkNotFound  = errors.New("network not in range")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrNoSupplicant     = errors.New("no supplicant attached")
	ErrAPActive         = errors.New("access point already active")
	ErrGroupActive      = errors.New("p2p group already active")
	ErrInvalidPassword  = errors.New("invalid passphrase")
	ErrInvalidCountry   = errors.New("invalid country code")
	ErrProbeUnsupported = errors.New("mcs rate not supported")
)

// AssociateRequest describes the network to associate with.
type AssociateRequest struct {
	NetworkID int
	SSID      string

	// BSSID pins the access point. Empty lets the radio choose.
	BSSID string

	Security mode.Security
	Hidden   bool

	// PSK is the derived 256-bit key for WPA2-PSK networks.
	PSK []byte

	// Passphrase is used as-is for SAE.
	Passphrase string
}

// Association describes an established link.
type Association struct {
	BSSID         string
	FrequencyMHz  int
	RSSI          int
	LinkSpeedMbps int
	Standard      mode.Standard
}

// LinkEventType classifies link notifications.
type LinkEventType uint8

const (
	// LinkUp indicates the link became operational.
	LinkUp LinkEventType = iota

	// LinkDown indicates the link was lost.
	LinkDown

	// LinkRoamed indicates the link moved to another BSSID.
	LinkRoamed
)

// String returns the event type name.
func (t LinkEventType) String() string {
	switch t {
	case LinkUp:
		return "UP"
	case LinkDown:
		return "DOWN"
	case LinkRoamed:
		return "ROAMED"
	default:
		return "UNKNOWN"
	}
}

// LinkEvent is a link notification from the radio.
type LinkEvent struct {
	Type   LinkEventType
	BSSID  string
	Reason string
}

// APConfig configures an access point.
type APConfig struct {
	SSID       string
	Passphrase string
	Band       string
	Channel    int
	Hidden     bool
}

// P2PConfig configures a peer-to-peer group.
type P2PConfig struct {
	DeviceName       string
	GroupOwnerIntent int
	Passphrase       string
}

// P2PGroup describes a running peer-to-peer group.
type P2PGroup struct {
	Interface    string
	SSID         string
	Passphrase   string
	GroupOwner   bool
	FrequencyMHz int
}

// Capabilities describes what the radio supports.
type Capabilities struct {
	Features FeatureSet
	Wiphy    mode.WiphyCapabilities
	Roaming  mode.RoamingCapabilities
}

// FeatureSet aliases the mode feature bitmask.
type FeatureSet = mode.FeatureSet

// Radio is the binding to one physical wireless interface.
//
// Implementations must be safe for concurrent use. Blocking calls take a
// context and must return when it is cancelled.
type Radio interface {
	// Name returns the interface name.
	Name() string

	SetUp(ctx context.Context) error
	SetDown(ctx context.Context) error
	HardwareAddr() net.HardwareAddr
	Capabilities() Capabilities

	Associate(ctx context.Context, req AssociateRequest) (Association, error)
	Disassociate(ctx context.Context) error
	LinkStats() (mode.LinkLayerStats, error)

	// Probe sends a probe frame at the given MCS rate and returns the time
	// until it was acknowledged.
	Probe(ctx context.Context, mcs int) (time.Duration, error)

	SetPowerSave(enabled bool) error
	SetLowLatency(enabled bool) error
	SetCountryCode(code string) error
	ConfigureRoaming(cfg mode.RoamingConfig) error

	// WatchLink calls fn for every link event until ctx is cancelled.
	// It returns once the subscription is established.
	WatchLink(ctx context.Context, fn func(LinkEvent)) error

	StartAP(ctx context.Context, cfg APConfig) error
	StopAP(ctx context.Context) error
	StartP2PGroup(ctx context.Context, cfg P2PConfig) (P2PGroup, error)
	StopP2PGroup(ctx context.Context) error

	PacketFates() ([]mode.TxFateReport, []mode.RxFateReport)

	// Command passes a raw driver command through.
	Command(ctx context.Context, cmd string) (string, error)
}

// Supplicant performs the control-plane work the kernel link layer cannot:
// authentication, association, access point and group management. It is
// normally a binding to a wpa_supplicant or hostapd control socket.
type Supplicant interface {
	Associate(ctx context.Context, req AssociateRequest) (Association, error)
	Disassociate(ctx context.Context) error
	Probe(ctx context.Context, mcs int) (time.Duration, error)
	SetPowerSave(enabled bool) error
	SetCountryCode(code string) error
	StartAP(ctx context.Context, cfg APConfig) error
	StopAP(ctx context.Context) error
	StartP2PGroup(ctx context.Context, cfg P2PConfig) (P2PGroup, error)
	StopP2PGroup(ctx context.Context) error
	Command(ctx context.Context, cmd string) (string, error)
}

// ValidCountryCode reports whether code is a two-letter upper-case ISO 3166
// alpha-2 code, or "00" for world regulatory domain.
func ValidCountryCode(code string) bool {
	if code == "00" {
		return true
	}
	if len(code) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
