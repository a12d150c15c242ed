// Package driver binds operating modes to a physical wireless interface.
//
// [Radio] is the hardware-facing contract the modes consume. Two
// implementations are provided:
//
//   - [Netlink] drives the kernel link (up/down, MAC address, counters and
//     operational-state notifications) over rtnetlink and hands the
//     control-plane work to an attached [Supplicant].
//   - [Simulated] is an in-memory radio with a configurable set of visible
//     networks, used by the daemon's -simulate flag and by tests.
//
// [DerivePSK] maps a WPA2 passphrase to its pre-shared key.
package driver
