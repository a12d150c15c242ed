package mode

import (
	"io"
	"time"
)

// ScanOnly is the inactive mode. It is used whenever the radio is disabled
// or only scanning.
//
// ScanOnly holds no state. Connects fail with ReasonBusy, saves succeed,
// state predicates report a disconnected radio and every other query returns
// its empty value.
type ScanOnly struct{}

// NewScanOnly returns the inactive mode. The result may be shared freely.
func NewScanOnly() *ScanOnly {
	return &ScanOnly{}
}

var _ Mode = (*ScanOnly)(nil)

// ID returns InactiveID.
func (*ScanOnly) ID() ID { return InactiveID }

// ConnectionControl

// ConnectNetwork fails with ReasonBusy.
func (*ScanOnly) ConnectNetwork(_ NetworkUpdateResult, listener *ListenerWrapper, _ int) {
	listener.SendFailure(ReasonBusy)
}

// SaveNetwork succeeds; there is no connection state to update.
func (*ScanOnly) SaveNetwork(_ NetworkUpdateResult, listener *ListenerWrapper, _ int) {
	listener.SendSuccess()
}

func (*ScanOnly) Disconnect()                            {}
func (*ScanOnly) Reconnect(WorkSource)                   {}
func (*ScanOnly) Reassociate()                           {}
func (*ScanOnly) StartConnectToNetwork(int, int, string) {}
func (*ScanOnly) StartRoamToNetwork(int, string)         {}
func (*ScanOnly) ResetSimAuthNetworks(SimResetReason)    {}
func (*ScanOnly) EnableTDLS(string, bool)                {}

// ProbeLink fails with LinkProbeErrorNotConnected.
func (*ScanOnly) ProbeLink(cb LinkProbeCallback, _ int) {
	if cb != nil {
		cb.OnFailure(LinkProbeErrorNotConnected)
	}
}

// StatusQuery

func (*ScanOnly) ConnectionInfo() ConnectionInfo              { return NoConnection() }
func (*ScanOnly) CurrentNetwork() *Network                    { return nil }
func (*ScanOnly) DHCPResults() DHCPResults                    { return DHCPResults{} }
func (*ScanOnly) ConnectedConfiguration() *NetworkConfig      { return nil }
func (*ScanOnly) ConnectingConfiguration() *NetworkConfig     { return nil }
func (*ScanOnly) ConnectedBSSID() string                      { return "" }
func (*ScanOnly) ConnectingBSSID() string                     { return "" }
func (*ScanOnly) LinkLayerStats() *LinkLayerStats             { return nil }
func (*ScanOnly) IsConnected() bool                           { return false }
func (*ScanOnly) IsConnecting() bool                          { return false }
func (*ScanOnly) IsRoaming() bool                             { return false }
func (*ScanOnly) IsDisconnected() bool                        { return true }
func (*ScanOnly) IsSupplicantTransientState() bool            { return false }
func (*ScanOnly) FactoryMACAddress() string                   { return "" }
func (*ScanOnly) SupportedFeatures() FeatureSet               { return 0 }
func (*ScanOnly) IsStandardSupported(Standard) bool           { return false }
func (*ScanOnly) DeviceWiphyCapabilities() *WiphyCapabilities { return nil }
func (*ScanOnly) RoamingCapabilities() *RoamingCapabilities   { return nil }

// Diagnostics

func (*ScanOnly) Dump(io.Writer, []string)            {}
func (*ScanOnly) DumpIPClient(io.Writer, []string)    {}
func (*ScanOnly) DumpScoreReport(io.Writer, []string) {}
func (*ScanOnly) TxPacketFates() []TxFateReport       { return []TxFateReport{} }
func (*ScanOnly) RxPacketFates() []RxFateReport       { return []RxFateReport{} }
func (*ScanOnly) EnableVerboseLogging(bool)           {}
func (*ScanOnly) DriverCommand(string) string         { return "" }

// Provisioning

func (*ScanOnly) QueryPasspointIcon(uint64, string) bool { return false }
func (*ScanOnly) StartSubscriptionProvisioning(int, OSUProvider, ProvisioningCallback) bool {
	return false
}
func (*ScanOnly) RequestANQP(string, []int, []int) bool                { return false }
func (*ScanOnly) RequestVenueURLANQP(string) bool                      { return false }
func (*ScanOnly) RequestIcon(string, string) bool                      { return false }
func (*ScanOnly) DppAddBootstrapQRCode(string) int                     { return DppFailure }
func (*ScanOnly) DppBootstrapGenerate(DppConfig) int                   { return DppFailure }
func (*ScanOnly) DppGetURI(int) string                                 { return "" }
func (*ScanOnly) DppBootstrapRemove(int) int                           { return DppFailure }
func (*ScanOnly) DppListen(string, DppRole, bool, bool) int            { return DppFailure }
func (*ScanOnly) DppStopListen()                                       {}
func (*ScanOnly) DppConfiguratorAdd(string, string, time.Duration) int { return DppFailure }
func (*ScanOnly) DppConfiguratorRemove(int) int                        { return DppFailure }
func (*ScanOnly) DppStartAuth(DppConfig) int                           { return DppFailure }
func (*ScanOnly) DppConfiguratorGetKey(int) string                     { return "" }

// FeatureControl

// SetConnectedNetworkScorer accepts the scorer without using it, so callers
// need not special-case a disabled radio.
func (*ScanOnly) SetConnectedNetworkScorer(NetworkScorer) bool { return true }

func (*ScanOnly) ClearConnectedNetworkScorer()               {}
func (*ScanOnly) SetPowerSave(bool) bool                     { return false }
func (*ScanOnly) SetLowLatencyMode(bool) bool                { return false }
func (*ScanOnly) SetCountryCode(string) bool                 { return false }
func (*ScanOnly) ConfigureRoaming(RoamingConfig) bool        { return false }
func (*ScanOnly) SetMBOCellularDataStatus(bool)              {}
func (*ScanOnly) MulticastFilter() MulticastFilterController { return NoopMulticastFilter{} }
func (*ScanOnly) OnBluetoothConnectionStateChanged()         {}
func (*ScanOnly) SetTrafficPoller(TrafficPoller)             {}
func (*ScanOnly) SendMessage(Message)                        {}
