package mode

import (
	"io"
	"time"
)

// ConnectionControl drives the connection lifecycle.
//
// ConnectNetwork and SaveNetwork resolve the listener exactly once, either
// before returning or later from another goroutine.
type ConnectionControl interface {
	ConnectNetwork(result NetworkUpdateResult, listener *ListenerWrapper, callingUID int)
	SaveNetwork(result NetworkUpdateResult, listener *ListenerWrapper, callingUID int)
	Disconnect()
	Reconnect(ws WorkSource)
	Reassociate()
	StartConnectToNetwork(networkID, uid int, bssid string)
	StartRoamToNetwork(networkID int, bssid string)
	ProbeLink(cb LinkProbeCallback, mcs int)
	ResetSimAuthNetworks(reason SimResetReason)
	EnableTDLS(remoteMAC string, enable bool)
}

// StatusQuery reads the current link state. All methods return immediately.
type StatusQuery interface {
	ConnectionInfo() ConnectionInfo
	CurrentNetwork() *Network
	DHCPResults() DHCPResults
	ConnectedConfiguration() *NetworkConfig
	ConnectingConfiguration() *NetworkConfig
	ConnectedBSSID() string
	ConnectingBSSID() string
	LinkLayerStats() *LinkLayerStats
	IsConnected() bool
	IsConnecting() bool
	IsRoaming() bool
	IsDisconnected() bool
	IsSupplicantTransientState() bool
	FactoryMACAddress() string
	SupportedFeatures() FeatureSet
	IsStandardSupported(std Standard) bool
	DeviceWiphyCapabilities() *WiphyCapabilities
	RoamingCapabilities() *RoamingCapabilities
}

// Diagnostics exposes dumps and packet-fate logs.
type Diagnostics interface {
	Dump(w io.Writer, args []string)
	DumpIPClient(w io.Writer, args []string)
	DumpScoreReport(w io.Writer, args []string)
	TxPacketFates() []TxFateReport
	RxPacketFates() []RxFateReport
	EnableVerboseLogging(verbose bool)
	DriverCommand(cmd string) string
}

// Provisioning covers DPP, ANQP and Passpoint operations.
//
// Operations returning an identifier or status use DppFailure when they
// cannot be performed. String results are empty on failure.
type Provisioning interface {
	QueryPasspointIcon(bssid uint64, file string) bool
	StartSubscriptionProvisioning(callingUID int, provider OSUProvider, cb ProvisioningCallback) bool
	RequestANQP(bssid string, anqpIDs, hs20Subtypes []int) bool
	RequestVenueURLANQP(bssid string) bool
	RequestIcon(bssid, file string) bool
	DppAddBootstrapQRCode(uri string) int
	DppBootstrapGenerate(cfg DppConfig) int
	DppGetURI(bootstrapID int) string
	DppBootstrapRemove(bootstrapID int) int
	DppListen(frequency string, role DppRole, qrMutual, netRoleAP bool) int
	DppStopListen()
	DppConfiguratorAdd(curve, key string, expiry time.Duration) int
	DppConfiguratorRemove(configuratorID int) int
	DppStartAuth(cfg DppConfig) int
	DppConfiguratorGetKey(configuratorID int) string
}

// FeatureControl negotiates optional behaviour. Boolean results report
// whether the setting was accepted and recorded.
type FeatureControl interface {
	SetConnectedNetworkScorer(scorer NetworkScorer) bool
	ClearConnectedNetworkScorer()
	SetPowerSave(enabled bool) bool
	SetLowLatencyMode(enabled bool) bool
	SetCountryCode(code string) bool
	ConfigureRoaming(cfg RoamingConfig) bool
	SetMBOCellularDataStatus(available bool)
	MulticastFilter() MulticastFilterController
	OnBluetoothConnectionStateChanged()
	SetTrafficPoller(p TrafficPoller)
	SendMessage(msg Message)
}

// Mode is the full operation surface of an operating mode.
//
// Implementations must be safe for concurrent use and total: every method
// answers for every input without panicking or blocking.
type Mode interface {
	ConnectionControl
	StatusQuery
	Diagnostics
	Provisioning
	FeatureControl

	// ID returns the instance identity. It never changes.
	ID() ID
}

// Retirer is implemented by modes that own resources. The controller calls
// Retire once after the mode has been replaced.
//
// A retired mode keeps answering calls, neutrally.
type Retirer interface {
	Retire() error
}

// Activator is implemented by modes that defer radio activity until the
// mode they replace has been retired. The controller calls Activate once,
// after publishing the mode and retiring its predecessor.
type Activator interface {
	Activate()
}
