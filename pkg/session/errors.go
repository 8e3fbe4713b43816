package session

import "errors"

var (
	// ErrInvalidSession is the single failure mode for Verify. Expiry,
	// malformed input, and bad signatures are deliberately
	// indistinguishable to callers.
	ErrInvalidSession = errors.New("invalid session token")

	ErrMissingSubject = errors.New("missing subject identifier")

	// Configuration errors
	ErrMissingSigningKey  = errors.New("session signing key not set")
	ErrSigningKeyTooShort = errors.New("session signing key must be at least 32 bytes")
	ErrInvalidTTL         = errors.New("session TTL must be positive")
)
