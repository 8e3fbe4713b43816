package challenge

import "errors"

var (
	ErrFailedToIssue = errors.New("failed to issue challenge")

	// ErrExpiredOrConsumed deliberately covers "never issued", "expired",
	// and "already used" alike, so a caller probing the store learns
	// nothing about which case occurred.
	ErrExpiredOrConsumed = errors.New("challenge expired or already consumed")
)
