package mode

import (
	"net"
	"time"
)

// InvalidRSSI is reported when there is no signal measurement.
const InvalidRSSI = -127

// InvalidNetworkID marks the absence of a network.
const InvalidNetworkID = -1

// DppFailure is returned by DPP operations that produce an identifier or
// status code when the operation could not be performed.
const DppFailure = -1

// NetworkUpdateResult describes the outcome of adding or updating a stored
// network, and names the network a connect or save refers to.
type NetworkUpdateResult struct {
	NetworkID         int
	IsNewNetwork      bool
	CredentialChanged bool
}

// WorkSource attributes radio activity to the callers that requested it.
type WorkSource struct {
	UIDs []int
	Tags []string
}

// IsEmpty reports whether no caller is attributed.
func (ws WorkSource) IsEmpty() bool {
	return len(ws.UIDs) == 0 && len(ws.Tags) == 0
}

// Standard is an IEEE 802.11 generation.
type Standard uint8

const (
	StandardUnknown Standard = iota
	StandardLegacy
	Standard11N
	Standard11AC
	Standard11AX
	Standard11AD
	Standard11BE
)

// String returns the standard name.
func (s Standard) String() string {
	switch s {
	case StandardLegacy:
		return "LEGACY"
	case Standard11N:
		return "11N"
	case Standard11AC:
		return "11AC"
	case Standard11AX:
		return "11AX"
	case Standard11AD:
		return "11AD"
	case Standard11BE:
		return "11BE"
	default:
		return "UNKNOWN"
	}
}

// ConnectionInfo is a snapshot of the current link.
// Use NoConnection for the canonical "not connected" value.
type ConnectionInfo struct {
	SSID            string
	BSSID           string
	NetworkID       int
	RSSI            int
	LinkSpeedMbps   int
	FrequencyMHz    int
	Standard        Standard
	MACAddress      string
	IPAddress       net.IP
	SupplicantState string
}

// NoConnection returns the connection info reported when there is no link.
func NoConnection() ConnectionInfo {
	return ConnectionInfo{
		NetworkID:       InvalidNetworkID,
		RSSI:            InvalidRSSI,
		SupplicantState: "DISCONNECTED",
	}
}

// Connected reports whether the info describes a live link.
func (c ConnectionInfo) Connected() bool {
	return c.NetworkID != InvalidNetworkID && c.BSSID != ""
}

// Network is a handle to the network the interface is attached to.
type Network struct {
	ID        int
	Interface string
}

// Security is the authentication scheme of a network.
type Security uint8

const (
	SecurityOpen Security = iota
	SecurityWPA2PSK
	SecurityWPA3SAE
	SecurityOWE
)

// String returns the security name.
func (s Security) String() string {
	switch s {
	case SecurityOpen:
		return "open"
	case SecurityWPA2PSK:
		return "wpa2-psk"
	case SecurityWPA3SAE:
		return "wpa3-sae"
	case SecurityOWE:
		return "owe"
	default:
		return "unknown"
	}
}

// ParseSecurity parses the output of Security.String.
func ParseSecurity(s string) (Security, bool) {
	switch s {
	case "open", "none", "":
		return SecurityOpen, true
	case "wpa2-psk", "psk2", "psk":
		return SecurityWPA2PSK, true
	case "wpa3-sae", "sae":
		return SecurityWPA3SAE, true
	case "owe":
		return SecurityOWE, true
	default:
		return SecurityOpen, false
	}
}

// NetworkConfig is a stored network profile.
type NetworkConfig struct {
	ID         int
	SSID       string
	BSSID      string
	Security   Security
	Passphrase string
	Hidden     bool
	Priority   int
}

// DHCPResults holds the IP configuration obtained for the link.
type DHCPResults struct {
	Address   string
	Gateway   string
	DNS       []string
	Domains   string
	ServerMTU int
	Lease     time.Duration
}

// LinkLayerStats are cumulative counters for the current link.
type LinkLayerStats struct {
	Timestamp time.Time
	RxBytes   uint64
	TxBytes   uint64
	RxPackets uint64
	TxPackets uint64
	TxRetries uint64
	TxFailed  uint64
	RxDropped uint64
	BeaconRx  uint64
	RSSIMgmt  int
}

// TxFate is the disposition of a transmitted frame.
type TxFate uint8

const (
	TxFateAcked TxFate = iota
	TxFateSent
	TxFateFirmwareQueued
	TxFateFirmwareDropped
	TxFateDriverDropped
	TxFateUnknown
)

// RxFate is the disposition of a received frame.
type RxFate uint8

const (
	RxFateSuccess RxFate = iota
	RxFateFirmwareQueued
	RxFateFirmwareDropped
	RxFateDriverDropped
	RxFateUnknown
)

// TxFateReport is one entry in the transmit packet-fate log.
type TxFateReport struct {
	Fate      TxFate
	Timestamp time.Duration
	Frame     []byte
}

// RxFateReport is one entry in the receive packet-fate log.
type RxFateReport struct {
	Fate      RxFate
	Timestamp time.Duration
	Frame     []byte
}

// RoamingCapabilities bounds the firmware roaming lists.
type RoamingCapabilities struct {
	MaxBlocklistSize int
	MaxAllowlistSize int
}

// RoamingConfig sets the firmware roaming lists.
type RoamingConfig struct {
	BlocklistBSSIDs []string
	AllowlistSSIDs  []string
}

// WiphyCapabilities describes what the radio hardware supports.
type WiphyCapabilities struct {
	Standards    []Standard
	MaxTxStreams int
	MaxRxStreams int
}

// Supports reports whether std is among the supported standards.
func (c *WiphyCapabilities) Supports(std Standard) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Standards {
		if s == std {
			return true
		}
	}
	return false
}

// DppRole is the role taken in a DPP exchange.
type DppRole uint8

const (
	DppRoleConfigurator DppRole = iota
	DppRoleEnrollee
)

// DppConfig carries parameters for DPP bootstrap generation and
// authentication.
type DppConfig struct {
	BootstrapType   string
	Frequencies     string
	MACAddress      string
	Info            string
	Curve           string
	Key             string
	PeerBootstrapID int
	OwnBootstrapID  int
	ConfiguratorID  int
	Role            DppRole
	SSID            string
	Passphrase      string
	NetRoleAP       bool
}

// OSUProvider is an online sign-up provider for Passpoint subscriptions.
type OSUProvider struct {
	FriendlyName string
	ServerURI    string
	Methods      []int
}

// Message is an opaque request posted to a mode's internal queue.
type Message struct {
	What int
	Arg1 int
	Arg2 int
	Obj  any
}

// FeatureSet is a bitmask of driver features.
type FeatureSet uint64

const (
	FeatureInfra FeatureSet = 1 << iota
	FeatureInfra5G
	FeaturePasspoint
	FeatureP2P
	FeatureSoftAP
	FeatureTDLS
	FeatureLinkLayerStats
	FeatureWPA3SAE
	FeatureOWE
	FeatureDPP
	FeatureLowLatency
	FeatureControlRoaming
)

// Has reports whether all bits of f are set.
func (s FeatureSet) Has(f FeatureSet) bool {
	return s&f == f
}

// SimResetReason explains why SIM-authenticated networks are reset.
type SimResetReason uint8

const (
	SimRemoved SimResetReason = iota
	SimInserted
	SimDefaultDataChanged
)

// MulticastFilterController toggles multicast packet filtering.
type MulticastFilterController interface {
	StartFiltering()
	StopFiltering()
}

// NoopMulticastFilter ignores filtering requests.
type NoopMulticastFilter struct{}

// StartFiltering does nothing.
func (NoopMulticastFilter) StartFiltering() {}

// StopFiltering does nothing.
func (NoopMulticastFilter) StopFiltering() {}

var _ MulticastFilterController = NoopMulticastFilter{}

// NetworkScorer rates the connected network.
type NetworkScorer interface {
	OnStart(sessionID int)
	OnStop(sessionID int)
}

// TrafficPoller observes link traffic counters.
type TrafficPoller interface {
	NotifyTraffic(rxPackets, txPackets uint64)
}
