// Package totp implements the time-based one-time password second factor:
// shared-secret generation, provisioning URIs for authenticator apps, and
// RFC 6238 code validation with a fixed clock-drift window.
//
// The package is deliberately self-contained (RFC 4226 HOTP plus the RFC
// 6238 time binding, about a hundred lines) rather than pulling in a
// third-party OTP dependency.
//
// # Usage
//
//	secret, _ := totp.GenerateSecretKey()
//
//	uri, _ := totp.ProvisioningURI(totp.Params{
//	    Secret:      secret,
//	    AccountName: "alice@example.com",
//	    Issuer:      "EterBox",
//	})
//	// render uri as a QR code and show it to the user
//
//	ok, err := totp.Validate(secret, submittedCode)
//
// Validate accepts codes from the current 30-second step and up to
// DefaultWindow steps on either side. A wrong-but-well-formed code returns
// (false, nil); errors are reserved for malformed secrets and inputs.
//
// # Enrollment lifecycle
//
// This package is stateless. The Disabled → PendingVerification → Enabled
// transition, and the rule that a secret only becomes live after its first
// successful validation, are the calling service's bookkeeping (see
// svc/login).
package totp
