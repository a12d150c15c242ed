// Package mode defines the operating-mode contract of a managed wireless
// interface.
//
// A mode describes what the radio is presently doing: idle, scanning only,
// connected as a client, serving as an access point, or running a
// peer-to-peer group. Callers never see the concrete variant. They obtain the
// current [Mode] from the controller and invoke it.
//
// # Capability Sets
//
// The operation surface is split into small interfaces that are joined into
// the [Mode] facade:
//
//   - [ConnectionControl]: connect, save, disconnect, reconnect, roam, probe
//   - [StatusQuery]: connection info, BSSIDs, link stats, state predicates
//   - [Diagnostics]: text dumps, packet-fate reports, verbose logging
//   - [Provisioning]: DPP bootstrap/configurator, ANQP and Passpoint
//   - [FeatureControl]: scorer registration, power save, country code, roaming
//
// # Totality
//
// Every operation of every mode is total: it answers for every input, never
// panics and never blocks beyond a bounded local computation. A mode that
// cannot perform an operation returns the neutral value for its result type:
//
//   - pointers: nil
//   - strings: ""
//   - slices: an empty, non-nil slice
//   - DPP identifiers: [DppFailure]
//   - acceptance flags: false
//
// Asynchronous results are delivered through an [ActionListener], wrapped in
// a [ListenerWrapper] so each listener is resolved exactly once.
//
// # Inactive Mode
//
// [ScanOnly] is the null object used whenever the radio is not in client
// duty. It has no fields, so a single instance created with [NewScanOnly] can
// be shared by every caller and reused across activations. Its identity is
// the reserved [InactiveID].
package mode
