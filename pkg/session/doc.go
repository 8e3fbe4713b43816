// Package session issues and verifies the short-lived proof-of-identity
// tokens every protected operation presents.
//
// Tokens are compact JWTs (HMAC-SHA256) carrying subject, role, issue time,
// and expiry. Nothing is stored server-side: Verify is a pure function of
// the token and the signing key, cheap enough to run on every request.
//
// All verification failures collapse into the single ErrInvalidSession
// sentinel. Distinguishing "expired" from "forged" would hand an attacker a
// probe, so callers only learn that the token is not acceptable.
//
//	svc, _ := session.New(cfg)
//	token, _ := svc.Issue(userID, "user", 0) // 0 = configured default TTL
//
//	claims, err := svc.Verify(token)
//	if err != nil {
//	    // reject the request
//	}
package session
