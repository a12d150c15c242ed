// Package controller owns the operating mode of a wireless interface.
//
// A [Controller] publishes exactly one [mode.Mode] at a time and replaces it
// on request. Callers fetch the current mode with [Controller.Current] and
// invoke it directly; they never see which variant is behind it.
//
// # States
//
// The interface is in one of five states. [StateDisabled] and
// [StateScanOnly] are served by one shared inactive mode. [StateClient],
// [StateSoftAP] and [StateP2P] are served by modes created by a [Builder]
// registered for the state.
//
// # Transitions
//
// A transition builds the target mode while the previous one keeps
// answering, publishes the new mode with a single atomic store, retires the
// previous mode and then activates the new one:
//
//	DISABLED ──► SCAN_ONLY ──► CLIENT ──► SOFT_AP
//	    ▲                        │
//	    └────────── Close ◄──────┘
//
// Any state may move to any other. A caller that fetched the previous mode
// before the swap keeps a valid reference: retired modes answer neutrally.
// A failed build leaves the previous mode published.
//
// Concurrent requests are queued or rejected according to [Policy].
package controller
