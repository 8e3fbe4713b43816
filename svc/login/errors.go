package login

import "errors"

var (
	// Construction errors
	ErrMissingSessionService       = errors.New("missing session service")
	ErrMissingAuthenticatorService = errors.New("missing authenticator service")
	ErrMissingChallengeStore       = errors.New("missing challenge store")

	// Primary path
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate verification token")

	// Second factor
	ErrInvalidTwoFactorCode = errors.New("invalid two-factor code")
	ErrLoginTicketExpired   = errors.New("login ticket expired or unknown")

	// Biometric path
	ErrCredentialAlreadyRegistered = errors.New("authenticator already registered for this account")
	ErrUnknownCredential           = errors.New("no matching registered authenticator")
)
