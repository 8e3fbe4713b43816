// Package backupcode issues and checks single-use recovery codes that stand
// in for a time-based code when the authenticator device is unavailable.
//
// Codes are short human-typable strings ("AB12-CD34", 32 random bits each)
// persisted only as SHA-256 hashes. Verify performs constant-time membership
// checks against the stored hash set; Consume removes the matching hash so a
// code can never be accepted twice.
//
// Verification results are booleans rather than errors: a wrong code is an
// expected outcome that callers branch on, and any lockout or backoff policy
// belongs to the caller.
package backupcode
