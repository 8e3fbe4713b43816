// Package webauthn implements the challenge-response ceremonies for
// platform and hardware authenticators: registration (enrolling a device's
// public key) and authentication (verifying an assertion against it).
//
// The Service is pure over its explicit inputs. Challenges are issued and
// consumed by the caller through pkg/challenge — consume first, verify
// second, regardless of outcome — and registration records live in the
// caller's store. Responses are typed structs validated at the boundary,
// not free-form payloads.
//
// Signatures are ECDSA P-256 over SHA-256; public keys travel PKIX/DER
// encoded. An authentication signature additionally covers the reported
// signature counter, and FinishAuthentication requires that counter to be
// strictly greater than the stored one. That monotonicity check is the
// primary defense against cloned authenticators and is never skipped: a
// response with a valid signature but a stale counter is rejected.
//
// # Usage
//
//	svc, _ := webauthn.New(cfg)
//
//	// registration
//	ch, _ := challenges.Issue(accountID, challenge.PurposeRegistration)
//	opts := svc.BeginRegistration(ch.Nonce, accountID, email, name, existing)
//	// ... client ceremony ...
//	ch, err := challenges.Consume(accountID, challenge.PurposeRegistration)
//	if err == nil {
//	    reg, err := svc.FinishRegistration(resp, ch.Nonce)
//	    // persist reg
//	}
//
// Authentication follows the same shape with BeginAuthentication /
// FinishAuthentication; the returned counter must be persisted before
// access is granted.
package webauthn
