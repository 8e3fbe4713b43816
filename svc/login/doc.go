// Package login orchestrates the vault's authentication paths on top of
// the leaf packages: bcrypt primary-credential checks, the TOTP/backup-code
// second factor, the biometric challenge-response flows, and session
// minting. It owns no account storage — the identity store fetches records
// and persists whatever the service returns.
//
// # Login ordering
//
// For accounts with a second factor enrolled, PasswordLogin returns a
// single-use pending ticket instead of a token. CompleteTwoFactorLogin only
// evaluates a code against a live ticket, and tickets only exist because a
// password check succeeded moments earlier — so second-factor codes cannot
// be probed without the password, and the two checks cannot be raced or
// reordered.
//
// # Two-factor lifecycle
//
// SetupTwoFactor generates enrollment material (secret, provisioning QR,
// backup codes) without making anything live. EnableTwoFactor gates
// activation on a first valid code; only then does the identity store
// persist the secret and backup hashes. Disablement must wipe both.
//
// # Biometric flows
//
// Begin/Finish pairs wrap pkg/webauthn verification with single-use
// challenges from the injected pkg/challenge store. Finish always consumes
// the challenge first, regardless of the verification outcome.
package login
