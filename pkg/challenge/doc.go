// Package challenge provides the short-lived, single-use nonce store backing
// the biometric registration and authentication round trips.
//
// A Store is injected state with an explicit lifecycle: construct it on
// startup (or per test case), let its background sweep evict abandoned
// entries, and Close it on shutdown. This replaces the ambient
// global-map-with-a-timer pattern so tests can run isolated stores
// side by side.
//
// Issue creates a nonce keyed by account or pending-login identifier;
// Consume removes it exactly once. Consumption happens before verification
// and regardless of outcome, which is what makes replaying a finish request
// with a previously seen challenge impossible.
package challenge
