package webauthn

import "errors"

// Top-level verification outcomes. Callers branch on these two; the finer
// sentinels below are joined in for diagnostics and tests.
var (
	ErrRegistrationFailed   = errors.New("registration verification failed")
	ErrAuthenticationFailed = errors.New("authentication verification failed")
)

// Configuration errors
var (
	ErrMissingRPID   = errors.New("missing relying party ID")
	ErrMissingRPName = errors.New("missing relying party name")
	ErrMissingOrigin = errors.New("missing relying party origin")
)

// Verification failure causes. Messages carry no key bytes, nonces, or
// counter values.
var (
	ErrIncompleteResponse   = errors.New("response is missing required fields")
	ErrCeremonyMismatch     = errors.New("client data type does not match ceremony")
	ErrChallengeMismatch    = errors.New("challenge does not match")
	ErrOriginMismatch       = errors.New("origin does not match relying party")
	ErrUnknownCredential    = errors.New("credential does not match registration")
	ErrSignatureInvalid     = errors.New("signature verification failed")
	ErrCounterNotIncreasing = errors.New("signature counter did not increase")
	ErrUnsupportedPublicKey = errors.New("unsupported public key format")
)
