// Package log provides the machine-readable mode trace.
//
// The trace records controller transitions, asynchronous mode operations
// (connect, save, probe) and link state changes as a stream of CBOR events.
// It is separate from operational logging (slog): the trace is meant for
// after-the-fact analysis with the wlanmode-log tool.
//
// # Basic Usage
//
// Components accept a Logger in their configuration:
//
//	// For development: trace to console via slog
//	cfg.Trace = log.NewSlogAdapter(slog.Default())
//
//	// For production: append to a binary file
//	cfg.Trace, _ = log.NewFileLogger("/var/log/wlanmode/wlan0.wlog")
//
//	// Both: use MultiLogger
//	cfg.Trace = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - Transition: one controller transition attempt (TransitionEvent)
//   - Operation: a connect, save or probe and its outcome (OperationEvent)
//   - State: link, access point or group lifecycle (StateChangeEvent)
//   - Error: failures inside a component (ErrorEventData)
//
// # File Format
//
// Trace files are a concatenation of CBOR-encoded events with integer keys,
// conventionally named with the .wlog extension.
package log
