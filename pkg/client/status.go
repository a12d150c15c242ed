package client

import (
	"context"
	"fmt"
	"io"
	"net"
	"sort"
	"strings"

	"github.com/wlanmode/wlanmode-go/pkg/connection"
	"github.com/wlanmode/wlanmode-go/pkg/mode"
)

// supplicantState names the station state the way wpa_supplicant does.
func supplicantState(s connection.State, roaming bool) string {
	switch s {
	case connection.StateConnecting:
		return "ASSOCIATING"
	case connection.StateConnected:
		if roaming {
			return "ASSOCIATING"
		}
		return "COMPLETED"
	case connection.StateReconnecting:
		return "SCANNING"
	case connection.StateClosed:
		return "INTERFACE_DISABLED"
	default:
		return "DISCONNECTED"
	}
}

// StatusQuery

// ConnectionInfo describes the current link, or NoConnection when there is
// none.
func (m *Mode) ConnectionInfo() mode.ConnectionInfo {
	state := m.mgr.State()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.retired {
		return m.idle.ConnectionInfo()
	}

	info := mode.NoConnection()
	info.MACAddress = m.hwAddr
	info.SupplicantState = supplicantState(state, m.roaming)
	if state != connection.StateConnected || m.assoc == nil || m.connected == nil {
		return info
	}

	info.SSID = m.connected.SSID
	info.BSSID = m.assoc.BSSID
	info.NetworkID = m.connected.ID
	info.RSSI = m.assoc.RSSI
	info.LinkSpeedMbps = m.assoc.LinkSpeedMbps
	info.FrequencyMHz = m.assoc.FrequencyMHz
	info.Standard = m.assoc.Standard
	info.IPAddress = dhcpAddress(m.dhcp)
	return info
}

// dhcpAddress parses the leased address, with or without prefix length.
func dhcpAddress(res mode.DHCPResults) net.IP {
	if res.Address == "" {
		return nil
	}
	if ip, _, err := net.ParseCIDR(res.Address); err == nil {
		return ip
	}
	return net.ParseIP(res.Address)
}

// CurrentNetwork returns the connected network, or nil.
func (m *Mode) CurrentNetwork() *mode.Network {
	if !m.IsConnected() {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.connected == nil {
		return nil
	}
	return &mode.Network{ID: m.connected.ID, Interface: m.radio.Name()}
}

// DHCPResults returns the IP configuration reported with SetDHCPResults.
func (m *Mode) DHCPResults() mode.DHCPResults {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := m.dhcp
	res.DNS = append([]string(nil), m.dhcp.DNS...)
	return res
}

// ConnectedConfiguration returns the configuration of the connected
// network, or nil.
func (m *Mode) ConnectedConfiguration() *mode.NetworkConfig {
	if !m.IsConnected() {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.connected == nil {
		return nil
	}
	cfg := *m.connected
	return &cfg
}

// ConnectingConfiguration returns the network being joined, or nil.
func (m *Mode) ConnectingConfiguration() *mode.NetworkConfig {
	if !m.IsConnecting() {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.target == nil {
		return nil
	}
	cfg := *m.target
	return &cfg
}

// ConnectedBSSID returns the BSSID of the current link, or "".
func (m *Mode) ConnectedBSSID() string {
	if !m.IsConnected() {
		return ""
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.assoc == nil {
		return ""
	}
	return m.assoc.BSSID
}

// ConnectingBSSID returns the BSSID being joined, or "" if the radio may
// pick any.
func (m *Mode) ConnectingBSSID() string {
	if !m.IsConnecting() && !m.IsRoaming() {
		return ""
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.targetBSSID
}

// LinkLayerStats returns the radio counters while connected, or nil. A
// registered TrafficPoller is notified with the packet counts.
func (m *Mode) LinkLayerStats() *mode.LinkLayerStats {
	if !m.IsConnected() {
		return nil
	}
	stats, err := m.radio.LinkStats()
	if err != nil {
		return nil
	}

	m.mu.RLock()
	poller := m.poller
	m.mu.RUnlock()
	if poller != nil {
		poller.NotifyTraffic(stats.RxPackets, stats.TxPackets)
	}
	return &stats
}

// IsConnected reports whether the link is up.
func (m *Mode) IsConnected() bool {
	return m.mgr.State() == connection.StateConnected
}

// IsConnecting reports whether a connect or automatic reconnect is running.
func (m *Mode) IsConnecting() bool {
	s := m.mgr.State()
	return s == connection.StateConnecting || s == connection.StateReconnecting
}

// IsRoaming reports whether the link is moving to another access point.
func (m *Mode) IsRoaming() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.roaming && !m.retired
}

// IsDisconnected reports whether there is neither a link nor an attempt to
// establish one.
func (m *Mode) IsDisconnected() bool {
	s := m.mgr.State()
	return s == connection.StateDisconnected || s == connection.StateClosed
}

// IsSupplicantTransientState reports whether the station is between stable
// states.
func (m *Mode) IsSupplicantTransientState() bool {
	return m.IsConnecting() || m.IsRoaming()
}

// FactoryMACAddress returns the radio's MAC address as read at start.
func (m *Mode) FactoryMACAddress() string {
	if m.Retired() {
		return m.idle.FactoryMACAddress()
	}
	return m.hwAddr
}

// SupportedFeatures returns the radio's feature set.
func (m *Mode) SupportedFeatures() mode.FeatureSet {
	if m.Retired() {
		return m.idle.SupportedFeatures()
	}
	return m.caps.Features
}

// IsStandardSupported reports whether the radio supports std.
func (m *Mode) IsStandardSupported(std mode.Standard) bool {
	if m.Retired() {
		return false
	}
	return m.caps.Wiphy.Supports(std)
}

// DeviceWiphyCapabilities returns a copy of the radio capabilities.
func (m *Mode) DeviceWiphyCapabilities() *mode.WiphyCapabilities {
	if m.Retired() {
		return nil
	}
	caps := m.caps.Wiphy
	caps.Standards = append([]mode.Standard(nil), m.caps.Wiphy.Standards...)
	return &caps
}

// RoamingCapabilities returns the firmware roaming limits, or nil if the
// radio does not support controlled roaming.
func (m *Mode) RoamingCapabilities() *mode.RoamingCapabilities {
	if m.Retired() || !m.caps.Features.Has(mode.FeatureControlRoaming) {
		return nil
	}
	caps := m.caps.Roaming
	return &caps
}

// Diagnostics

// Dump writes the mode state to w.
func (m *Mode) Dump(w io.Writer, args []string) {
	if w == nil {
		return
	}
	state := m.mgr.State()
	attempts := m.mgr.BackoffAttempts()

	m.mu.RLock()
	defer m.mu.RUnlock()

	fmt.Fprintf(w, "Client mode %s\n", m.id)
	fmt.Fprintf(w, "  interface:        %s (%s)\n", m.radio.Name(), m.hwAddr)
	fmt.Fprintf(w, "  retired:          %t\n", m.retired)
	fmt.Fprintf(w, "  link state:       %s\n", state)
	fmt.Fprintf(w, "  supplicant state: %s\n", supplicantState(state, m.roaming))
	fmt.Fprintf(w, "  backoff attempts: %d\n", attempts)
	if m.connected != nil && m.assoc != nil {
		fmt.Fprintf(w, "  connected:        %d %q %s rssi=%d freq=%d %s\n",
			m.connected.ID, m.connected.SSID, m.assoc.BSSID, m.assoc.RSSI, m.assoc.FrequencyMHz, m.assoc.Standard)
	}
	if m.target != nil {
		fmt.Fprintf(w, "  target:           %d %q bssid=%q\n", m.target.ID, m.target.SSID, m.targetBSSID)
	}
	if m.pending != nil {
		fmt.Fprintf(w, "  pending connect:  network %d uid %d\n", m.pending.network.ID, m.pending.uid)
	}
	fmt.Fprintf(w, "  work source:      uids=%v tags=%v\n", m.ws.UIDs, m.ws.Tags)
	fmt.Fprintf(w, "  power save:       %t\n", m.powerSave)
	fmt.Fprintf(w, "  low latency:      %t\n", m.lowLatency)
	fmt.Fprintf(w, "  country:          %q\n", m.country)
	fmt.Fprintf(w, "  mbo cellular:     %t\n", m.mboCellular)
	fmt.Fprintf(w, "  multicast filter: %t\n", m.multicast.Filtering())
	fmt.Fprintf(w, "  scorer:           %t\n", m.scorer != nil)
	fmt.Fprintf(w, "  verbose:          %t\n", m.verbose.Load())
	fmt.Fprintf(w, "  messages:         handled=%d dropped=%d\n", m.handled, m.dropped)
	if len(m.tdlsPeers) > 0 {
		peers := make([]string, 0, len(m.tdlsPeers))
		for p := range m.tdlsPeers {
			peers = append(peers, p)
		}
		sort.Strings(peers)
		fmt.Fprintf(w, "  tdls peers:       %s\n", strings.Join(peers, ", "))
	}
}

// DumpIPClient writes the DHCP results to w.
func (m *Mode) DumpIPClient(w io.Writer, args []string) {
	if w == nil {
		return
	}
	res := m.DHCPResults()
	if res.Address == "" {
		fmt.Fprintln(w, "IP client: no lease")
		return
	}
	fmt.Fprintf(w, "IP client: %s gw %s dns %s lease %s mtu %d\n",
		res.Address, res.Gateway, strings.Join(res.DNS, ","), res.Lease, res.ServerMTU)
}

// DumpScoreReport writes the link quality inputs of the network scorer.
func (m *Mode) DumpScoreReport(w io.Writer, args []string) {
	if w == nil {
		return
	}
	info := m.ConnectionInfo()

	m.mu.RLock()
	scorer := m.scorer != nil
	session := m.session
	m.mu.RUnlock()

	fmt.Fprintf(w, "Score report: scorer=%t session=%d\n", scorer, session)
	if !info.Connected() {
		fmt.Fprintln(w, "  not connected")
		return
	}
	fmt.Fprintf(w, "  rssi=%d link=%dMbps freq=%d\n", info.RSSI, info.LinkSpeedMbps, info.FrequencyMHz)
	if stats := m.LinkLayerStats(); stats != nil {
		fmt.Fprintf(w, "  rx=%d tx=%d retries=%d failed=%d\n", stats.RxPackets, stats.TxPackets, stats.TxRetries, stats.TxFailed)
	}
}

// TxPacketFates returns the radio's transmit fate log.
func (m *Mode) TxPacketFates() []mode.TxFateReport {
	if m.Retired() {
		return m.idle.TxPacketFates()
	}
	tx, _ := m.radio.PacketFates()
	if tx == nil {
		return []mode.TxFateReport{}
	}
	return tx
}

// RxPacketFates returns the radio's receive fate log.
func (m *Mode) RxPacketFates() []mode.RxFateReport {
	if m.Retired() {
		return m.idle.RxPacketFates()
	}
	_, rx := m.radio.PacketFates()
	if rx == nil {
		return []mode.RxFateReport{}
	}
	return rx
}

// EnableVerboseLogging raises operational log lines from debug to info.
func (m *Mode) EnableVerboseLogging(verbose bool) {
	m.verbose.Store(verbose)
}

// DriverCommand passes cmd to the radio and returns its reply, or "" on
// failure.
func (m *Mode) DriverCommand(cmd string) string {
	if m.Retired() {
		return m.idle.DriverCommand(cmd)
	}
	ctx, cancel := context.WithTimeout(m.ctx, m.commandTimeout)
	defer cancel()

	out, err := m.radio.Command(ctx, cmd)
	if err != nil {
		m.debugLog("driver command failed", "cmd", cmd, "error", err)
		return ""
	}
	return out
}
