package client

import (
	"log/slog"
	"sync"
	"time"

	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// multicastFilter records whether multicast filtering is requested.
type multicastFilter struct {
	mu        sync.Mutex
	filtering bool
}

func (f *multicastFilter) StartFiltering() {
	f.mu.Lock()
	f.filtering = true
	f.mu.Unlock()
}

func (f *multicastFilter) StopFiltering() {
	f.mu.Lock()
	f.filtering = false
	f.mu.Unlock()
}

// Filtering reports whether filtering is on.
func (f *multicastFilter) Filtering() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filtering
}

// SetDHCPResults records the IP configuration obtained by the external IP
// client for the current link. It returns false if there is no link; the
// results are dropped when the link goes down.
func (m *Mode) SetDHCPResults(res mode.DHCPResults) bool {
	if !m.IsConnected() {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.retired || m.connected == nil {
		return false
	}
	res.DNS = append([]string(nil), res.DNS...)
	m.dhcp = res
	return true
}

// FeatureControl

// SetConnectedNetworkScorer registers the scorer. Only one scorer may be
// registered at a time.
func (m *Mode) SetConnectedNetworkScorer(scorer mode.NetworkScorer) bool {
	if scorer == nil {
		return false
	}

	m.mu.Lock()
	if m.retired {
		m.mu.Unlock()
		return m.idle.SetConnectedNetworkScorer(scorer)
	}
	if m.scorer != nil {
		m.mu.Unlock()
		return false
	}
	m.scorer = scorer
	session := m.session
	linked := m.connected != nil
	m.mu.Unlock()

	if linked && m.IsConnected() {
		scorer.OnStart(session)
	}
	return true
}

// ClearConnectedNetworkScorer unregisters the scorer, stopping its session
// if connected.
func (m *Mode) ClearConnectedNetworkScorer() {
	m.mu.Lock()
	scorer := m.scorer
	session := m.session
	linked := m.connected != nil
	m.scorer = nil
	m.mu.Unlock()

	if scorer != nil && linked {
		scorer.OnStop(session)
	}
}

// SetPowerSave reports whether the radio accepted the setting.
func (m *Mode) SetPowerSave(enabled bool) bool {
	if m.Retired() {
		return m.idle.SetPowerSave(enabled)
	}
	if err := m.radio.SetPowerSave(enabled); err != nil {
		m.debugLog("power save rejected", slog.Bool("enabled", enabled), slog.Any("error", err))
		return false
	}
	m.mu.Lock()
	m.powerSave = enabled
	m.mu.Unlock()
	return true
}

// SetLowLatencyMode reports whether the radio accepted the setting.
func (m *Mode) SetLowLatencyMode(enabled bool) bool {
	if m.Retired() {
		return m.idle.SetLowLatencyMode(enabled)
	}
	if err := m.radio.SetLowLatency(enabled); err != nil {
		m.debugLog("low latency rejected", slog.Bool("enabled", enabled), slog.Any("error", err))
		return false
	}
	m.mu.Lock()
	m.lowLatency = enabled
	m.mu.Unlock()
	return true
}

// SetCountryCode reports whether the radio accepted the regulatory domain.
func (m *Mode) SetCountryCode(code string) bool {
	if m.Retired() {
		return m.idle.SetCountryCode(code)
	}
	if err := m.radio.SetCountryCode(code); err != nil {
		m.debugLog("country code rejected", slog.String("code", code), slog.Any("error", err))
		return false
	}
	m.mu.Lock()
	m.country = code
	m.mu.Unlock()
	return true
}

// ConfigureRoaming reports whether the radio accepted the roaming lists.
func (m *Mode) ConfigureRoaming(cfg mode.RoamingConfig) bool {
	if m.Retired() {
		return m.idle.ConfigureRoaming(cfg)
	}
	if err := m.radio.ConfigureRoaming(cfg); err != nil {
		m.debugLog("roaming config rejected", slog.Any("error", err))
		return false
	}
	m.mu.Lock()
	m.roamingCfg = cfg
	m.mu.Unlock()
	return true
}

// SetMBOCellularDataStatus records whether cellular data is available, for
// MBO-capable access points.
func (m *Mode) SetMBOCellularDataStatus(available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mboCellular = available
}

// MulticastFilter returns the mode's multicast filter.
func (m *Mode) MulticastFilter() mode.MulticastFilterController {
	if m.Retired() {
		return m.idle.MulticastFilter()
	}
	return m.multicast
}

// OnBluetoothConnectionStateChanged is informational; coexistence is
// handled by the driver.
func (m *Mode) OnBluetoothConnectionStateChanged() {
	m.debugLog("bluetooth connection state changed")
}

// SetTrafficPoller registers p to observe packet counts read through
// LinkLayerStats. A nil p unregisters.
func (m *Mode) SetTrafficPoller(p mode.TrafficPoller) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poller = p
}

// SendMessage hands msg to Config.OnMessage on a background goroutine.
func (m *Mode) SendMessage(msg mode.Message) {
	m.mu.Lock()
	if m.retired || m.onMessage == nil {
		m.dropped++
		m.mu.Unlock()
		return
	}
	m.handled++
	m.wg.Add(1)
	fn := m.onMessage
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		fn(msg)
	}()
}

// Provisioning

// dpp returns the provisioner for DPP requests.
func (m *Mode) dpp() mode.Provisioning {
	if m.Retired() || !m.caps.Features.Has(mode.FeatureDPP) {
		return m.idle
	}
	return m.prov
}

// passpoint returns the provisioner for ANQP and Passpoint requests.
func (m *Mode) passpoint() mode.Provisioning {
	if m.Retired() || !m.caps.Features.Has(mode.FeaturePasspoint) {
		return m.idle
	}
	return m.prov
}

func (m *Mode) QueryPasspointIcon(bssid uint64, file string) bool {
	return m.passpoint().QueryPasspointIcon(bssid, file)
}

func (m *Mode) StartSubscriptionProvisioning(callingUID int, provider mode.OSUProvider, cb mode.ProvisioningCallback) bool {
	return m.passpoint().StartSubscriptionProvisioning(callingUID, provider, cb)
}

func (m *Mode) RequestANQP(bssid string, anqpIDs, hs20Subtypes []int) bool {
	return m.passpoint().RequestANQP(bssid, anqpIDs, hs20Subtypes)
}

func (m *Mode) RequestVenueURLANQP(bssid string) bool {
	return m.passpoint().RequestVenueURLANQP(bssid)
}

func (m *Mode) RequestIcon(bssid, file string) bool {
	return m.passpoint().RequestIcon(bssid, file)
}

func (m *Mode) DppAddBootstrapQRCode(uri string) int {
	return m.dpp().DppAddBootstrapQRCode(uri)
}

func (m *Mode) DppBootstrapGenerate(cfg mode.DppConfig) int {
	return m.dpp().DppBootstrapGenerate(cfg)
}

func (m *Mode) DppGetURI(bootstrapID int) string {
	return m.dpp().DppGetURI(bootstrapID)
}

func (m *Mode) DppBootstrapRemove(bootstrapID int) int {
	return m.dpp().DppBootstrapRemove(bootstrapID)
}

func (m *Mode) DppListen(frequency string, role mode.DppRole, qrMutual, netRoleAP bool) int {
	return m.dpp().DppListen(frequency, role, qrMutual, netRoleAP)
}

func (m *Mode) DppStopListen() {
	m.dpp().DppStopListen()
}

func (m *Mode) DppConfiguratorAdd(curve, key string, expiry time.Duration) int {
	return m.dpp().DppConfiguratorAdd(curve, key, expiry)
}

func (m *Mode) DppConfiguratorRemove(configuratorID int) int {
	return m.dpp().DppConfiguratorRemove(configuratorID)
}

func (m *Mode) DppStartAuth(cfg mode.DppConfig) int {
	return m.dpp().DppStartAuth(cfg)
}

func (m *Mode) DppConfiguratorGetKey(configuratorID int) string {
	return m.dpp().DppConfiguratorGetKey(configuratorID)
}
