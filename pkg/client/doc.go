// Package client implements the client operating mode: a wireless station
// that connects to saved networks.
//
// A Mode drives one driver.Radio. Network IDs are resolved through a
// netstore.Store, WPA2-PSK passphrases are turned into keys with
// driver.DerivePSK, and the link lifecycle is tracked by a
// connection.Manager that re-establishes the link with exponential backoff
// after the radio reports loss.
//
// # Asynchronous Requests
//
// ConnectNetwork returns immediately and resolves its listener from a
// background goroutine. A newer connect request supersedes an older one; the
// older listener receives ReasonBusy. Every listener is resolved exactly
// once, including when the mode is retired with a request in flight.
//
// # Retirement
//
// Retire cancels background work, disassociates, and stops the reconnect
// loop. A retired Mode keeps answering every call with the same neutral
// values as mode.ScanOnly; only ID still reports the client identity.
package client
