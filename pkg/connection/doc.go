// Package connection tracks the lifecycle of a client link.
//
// This package handles:
//   - Link state tracking
//   - Automatic re-establishment after link loss
//   - Exponential backoff with jitter between attempts
//
// # Reconnection Strategy
//
// When the link is lost (beacon loss, deauthentication), the manager retries
// with exponential backoff:
//
//  1. Initial delay: 1 second
//  2. Exponential increase: 2s, 4s, 8s, 16s, 32s
//  3. Maximum delay: 60 seconds
//  4. Continue at 60s until successful
//  5. Reset to 1s once the link is up
//
// An explicit Disconnect or a new Connect abandons any pending reconnection.
//
// # Jitter
//
// To keep many stations from re-associating in lockstep after an AP
// restart:
//
//	actual_delay = base_delay + random(0, base_delay * 0.25)
package connection
