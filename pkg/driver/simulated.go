package driver

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// SimNetwork is a network visible to a Simulated radio.
type SimNetwork struct {
	SSID         string
	BSSID        string
	Security     mode.Security
	Passphrase   string
	RSSI         int
	FrequencyMHz int
	Standard     mode.Standard
}

// SimulatedConfig configures a Simulated radio.
type SimulatedConfig struct {
	Interface    string
	HardwareAddr net.HardwareAddr
	Networks     []SimNetwork
	Capabilities Capabilities

	// AssociateDelay is how long Associate takes.
	AssociateDelay time.Duration
}

// DefaultSimulatedConfig returns a radio with two visible networks.
func DefaultSimulatedConfig() SimulatedConfig {
	return SimulatedConfig{
		Interface:    "wlan0",
		HardwareAddr: net.HardwareAddr{0x02, 0x00, 0x5e, 0x10, 0x00, 0x01},
		Networks: []SimNetwork{
			{SSID: "home", BSSID: "02:00:5e:00:00:01", Security: mode.SecurityWPA2PSK,
				Passphrase: "correct horse", RSSI: -48, FrequencyMHz: 5180, Standard: mode.Standard11AX},
			{SSID: "cafe", BSSID: "02:00:5e:00:00:02", Security: mode.SecurityOpen,
				RSSI: -71, FrequencyMHz: 2437, Standard: mode.Standard11N},
		},
		Capabilities: Capabilities{
			Features: mode.FeatureInfra | mode.FeatureInfra5G | mode.FeatureSoftAP | mode.FeatureP2P |
				mode.FeatureLinkLayerStats | mode.FeatureWPA3SAE | mode.FeatureLowLatency |
				mode.FeatureControlRoaming | mode.FeatureDPP,
			Wiphy: mode.WiphyCapabilities{
				Standards:    []mode.Standard{mode.StandardLegacy, mode.Standard11N, mode.Standard11AC, mode.Standard11AX},
				MaxTxStreams: 2,
				MaxRxStreams: 2,
			},
			Roaming: mode.RoamingCapabilities{MaxBlocklistSize: 16, MaxAllowlistSize: 8},
		},
		AssociateDelay: 50 * time.Millisecond,
	}
}

// Simulated is an in-memory Radio.
type Simulated struct {
	mu sync.Mutex

	iface    string
	hwAddr   net.HardwareAddr
	caps     Capabilities
	networks map[string]SimNetwork
	delay    time.Duration

	up         bool
	assoc      *Association
	powerSave  bool
	lowLatency bool
	country    string
	roaming    mode.RoamingConfig
	ap         *APConfig
	group      *P2PGroup
	stats      mode.LinkLayerStats
	txFates    []mode.TxFateReport
	rxFates    []mode.RxFateReport

	associateErr error
	watchers     map[int]func(LinkEvent)
	nextWatcher  int
	associations int
}

// NewSimulated creates a Simulated radio.
func NewSimulated(cfg SimulatedConfig) *Simulated {
	s := &Simulated{
		iface:    cfg.Interface,
		hwAddr:   cfg.HardwareAddr,
		caps:     cfg.Capabilities,
		networks: make(map[string]SimNetwork),
		delay:    cfg.AssociateDelay,
		watchers: make(map[int]func(LinkEvent)),
	}
	if s.iface == "" {
		s.iface = "wlan0"
	}
	for _, n := range cfg.Networks {
		s.networks[n.SSID] = n
	}
	return s
}

var _ Radio = (*Simulated)(nil)

// Name returns the interface name.
func (s *Simulated) Name() string { return s.iface }

// Capabilities returns the configured capabilities.
func (s *Simulated) Capabilities() Capabilities { return s.caps }

// HardwareAddr returns the configured MAC address.
func (s *Simulated) HardwareAddr() net.HardwareAddr { return s.hwAddr }

// SetUp marks the interface up.
func (s *Simulated) SetUp(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.up = true
	return nil
}

// SetDown marks the interface down and drops any link.
func (s *Simulated) SetDown(ctx context.Context) error {
	s.mu.Lock()
	s.up = false
	hadLink := s.assoc != nil
	s.assoc = nil
	s.ap = nil
	s.group = nil
	s.mu.Unlock()

	if hadLink {
		s.emit(LinkEvent{Type: LinkDown, Reason: "interface down"})
	}
	return nil
}

// Associate joins a visible network after the configured delay.
func (s *Simulated) Associate(ctx context.Context, req AssociateRequest) (Association, error) {
	s.mu.Lock()
	delay := s.delay
	injected := s.associateErr
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Association{}, ctx.Err()
		case <-timer.C:
		}
	}
	if injected != nil {
		return Association{}, injected
	}

	s.mu.Lock()
	if !s.up {
		s.mu.Unlock()
		return Association{}, ErrInterfaceDown
	}
	n, ok := s.networks[req.SSID]
	if !ok || (req.BSSID != "" && !strings.EqualFold(req.BSSID, n.BSSID)) {
		s.mu.Unlock()
		return Association{}, fmt.Errorf("%w: %q", ErrNetworkNotFound, req.SSID)
	}
	if err := checkCredentials(n, req); err != nil {
		s.mu.Unlock()
		return Association{}, err
	}

	assoc := Association{
		BSSID:         n.BSSID,
		FrequencyMHz:  n.FrequencyMHz,
		RSSI:          n.RSSI,
		LinkSpeedMbps: linkSpeed(n.Standard),
		Standard:      n.Standard,
	}
	roamed := s.assoc != nil && s.assoc.BSSID != assoc.BSSID
	s.assoc = &assoc
	s.stats = mode.LinkLayerStats{Timestamp: time.Now()}
	s.associations++
	s.recordHandshake()
	s.mu.Unlock()

	if roamed {
		s.emit(LinkEvent{Type: LinkRoamed, BSSID: assoc.BSSID})
	} else {
		s.emit(LinkEvent{Type: LinkUp, BSSID: assoc.BSSID})
	}
	return assoc, nil
}

func checkCredentials(n SimNetwork, req AssociateRequest) error {
	if req.Security != n.Security {
		return fmt.Errorf("%w: security mismatch", ErrAuthFailed)
	}
	switch n.Security {
	case mode.SecurityWPA2PSK:
		want, err := DerivePSK(n.Passphrase, n.SSID)
		if err != nil {
			return err
		}
		if !bytes.Equal(want, req.PSK) {
			return ErrAuthFailed
		}
	case mode.SecurityWPA3SAE:
		if req.Passphrase != n.Passphrase {
			return ErrAuthFailed
		}
	}
	return nil
}

func linkSpeed(std mode.Standard) int {
	switch std {
	case mode.Standard11BE:
		return 2882
	case mode.Standard11AX:
		return 1201
	case mode.Standard11AC:
		return 866
	case mode.Standard11N:
		return 144
	default:
		return 54
	}
}

// recordHandshake appends the four-way handshake frames to the fate log.
// Must be called with s.mu held.
func (s *Simulated) recordHandshake() {
	now := time.Duration(time.Now().UnixNano())
	s.rxFates = append(s.rxFates,
		mode.RxFateReport{Fate: mode.RxFateSuccess, Timestamp: now, Frame: []byte("EAPOL-1/4")},
		mode.RxFateReport{Fate: mode.RxFateSuccess, Timestamp: now, Frame: []byte("EAPOL-3/4")},
	)
	s.txFates = append(s.txFates,
		mode.TxFateReport{Fate: mode.TxFateAcked, Timestamp: now, Frame: []byte("EAPOL-2/4")},
		mode.TxFateReport{Fate: mode.TxFateAcked, Timestamp: now, Frame: []byte("EAPOL-4/4")},
	)
}

// Disassociate leaves the current network.
func (s *Simulated) Disassociate(ctx context.Context) error {
	s.mu.Lock()
	s.assoc = nil
	s.mu.Unlock()
	return nil
}

// LinkStats returns synthetic counters that grow on every call.
func (s *Simulated) LinkStats() (mode.LinkLayerStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.assoc == nil {
		return mode.LinkLayerStats{}, ErrNotAssociated
	}
	s.stats.Timestamp = time.Now()
	s.stats.RxPackets += 10
	s.stats.TxPackets += 8
	s.stats.RxBytes += 10 * 1500
	s.stats.TxBytes += 8 * 200
	s.stats.BeaconRx++
	s.stats.RSSIMgmt = s.assoc.RSSI
	return s.stats, nil
}

// Probe acknowledges after a fixed delay while associated.
func (s *Simulated) Probe(ctx context.Context, mcs int) (time.Duration, error) {
	s.mu.Lock()
	associated := s.assoc != nil
	s.mu.Unlock()

	if !associated {
		return 0, ErrNotAssociated
	}
	if mcs < -1 || mcs > 11 {
		return 0, ErrProbeUnsupported
	}
	return 2 * time.Millisecond, nil
}

// SetPowerSave records the setting.
func (s *Simulated) SetPowerSave(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.up {
		return ErrInterfaceDown
	}
	s.powerSave = enabled
	return nil
}

// SetLowLatency records the setting if the radio supports it.
func (s *Simulated) SetLowLatency(enabled bool) error {
	if !s.caps.Features.Has(mode.FeatureLowLatency) {
		return ErrUnsupported
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lowLatency = enabled
	return nil
}

// SetCountryCode records a valid country code.
func (s *Simulated) SetCountryCode(code string) error {
	if !ValidCountryCode(code) {
		return ErrInvalidCountry
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.country = code
	return nil
}

// ConfigureRoaming records the roaming lists if they fit the capabilities.
func (s *Simulated) ConfigureRoaming(cfg mode.RoamingConfig) error {
	if !s.caps.Features.Has(mode.FeatureControlRoaming) {
		return ErrUnsupported
	}
	if len(cfg.BlocklistBSSIDs) > s.caps.Roaming.MaxBlocklistSize ||
		len(cfg.AllowlistSSIDs) > s.caps.Roaming.MaxAllowlistSize {
		return fmt.Errorf("%w: roaming list exceeds capability", ErrUnsupported)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roaming = cfg
	return nil
}

// WatchLink registers fn until ctx is done.
func (s *Simulated) WatchLink(ctx context.Context, fn func(LinkEvent)) error {
	s.mu.Lock()
	id := s.nextWatcher
	s.nextWatcher++
	s.watchers[id] = fn
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}()
	return nil
}

// emit delivers ev to all watchers. Must be called without s.mu held.
func (s *Simulated) emit(ev LinkEvent) {
	s.mu.Lock()
	fns := make([]func(LinkEvent), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// StartAP starts a simulated access point.
func (s *Simulated) StartAP(ctx context.Context, cfg APConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.caps.Features.Has(mode.FeatureSoftAP) {
		return ErrUnsupported
	}
	if s.ap != nil {
		return ErrAPActive
	}
	if cfg.Passphrase != "" && (len(cfg.Passphrase) < 8 || len(cfg.Passphrase) > 63) {
		return ErrInvalidPassword
	}
	s.up = true
	s.ap = &cfg
	return nil
}

// StopAP stops the access point.
func (s *Simulated) StopAP(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ap = nil
	return nil
}

// StartP2PGroup starts a simulated group with this radio as owner.
func (s *Simulated) StartP2PGroup(ctx context.Context, cfg P2PConfig) (P2PGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.caps.Features.Has(mode.FeatureP2P) {
		return P2PGroup{}, ErrUnsupported
	}
	if s.group != nil {
		return P2PGroup{}, ErrGroupActive
	}

	name := cfg.DeviceName
	if name == "" {
		name = s.iface
	}
	g := P2PGroup{
		Interface:    "p2p-" + s.iface + "-0",
		SSID:         "DIRECT-" + name,
		Passphrase:   cfg.Passphrase,
		GroupOwner:   cfg.GroupOwnerIntent >= 7,
		FrequencyMHz: 2437,
	}
	s.up = true
	s.group = &g
	return g, nil
}

// StopP2PGroup stops the group.
func (s *Simulated) StopP2PGroup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.group = nil
	return nil
}

// PacketFates returns copies of the recorded fate logs.
func (s *Simulated) PacketFates() ([]mode.TxFateReport, []mode.RxFateReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mode.TxFateReport{}, s.txFates...), append([]mode.RxFateReport{}, s.rxFates...)
}

// Command answers "version" and "status".
func (s *Simulated) Command(ctx context.Context, cmd string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(cmd)) {
	case "version":
		return "simulated-radio 1.0", nil
	case "status":
		st := s.Snapshot()
		return fmt.Sprintf("up=%t bssid=%s country=%s", st.Up, st.BSSID, st.Country), nil
	default:
		return "", ErrUnsupported
	}
}

// SimState is a snapshot of a Simulated radio for tests and the console.
type SimState struct {
	Up           bool
	BSSID        string
	PowerSave    bool
	LowLatency   bool
	Country      string
	Roaming      mode.RoamingConfig
	AP           *APConfig
	Group        *P2PGroup
	Associations int
	Watchers     int
}

// Snapshot returns the current state.
func (s *Simulated) Snapshot() SimState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := SimState{
		Up:           s.up,
		PowerSave:    s.powerSave,
		LowLatency:   s.lowLatency,
		Country:      s.country,
		Roaming:      s.roaming,
		Associations: s.associations,
		Watchers:     len(s.watchers),
	}
	if s.assoc != nil {
		st.BSSID = s.assoc.BSSID
	}
	if s.ap != nil {
		ap := *s.ap
		st.AP = &ap
	}
	if s.group != nil {
		g := *s.group
		st.Group = &g
	}
	return st
}

// SetAssociateError makes subsequent Associate calls fail with err.
// Pass nil to clear.
func (s *Simulated) SetAssociateError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.associateErr = err
}

// SetAssociateDelay changes how long Associate takes.
func (s *Simulated) SetAssociateDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// AddNetwork makes a network visible.
func (s *Simulated) AddNetwork(n SimNetwork) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.networks[n.SSID] = n
}

// RemoveNetwork makes a network invisible. An association with it is not
// dropped; use DropLink for that.
func (s *Simulated) RemoveNetwork(ssid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.networks, ssid)
}

// DropLink simulates loss of the current link.
func (s *Simulated) DropLink(reason string) {
	s.mu.Lock()
	hadLink := s.assoc != nil
	s.assoc = nil
	s.mu.Unlock()

	if hadLink {
		s.emit(LinkEvent{Type: LinkDown, Reason: reason})
	}
}
