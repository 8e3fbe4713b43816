package login

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a primary password with bcrypt at the configured
// cost. The result is safe to persist.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func (s *Service) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordLoginResult is the outcome of the primary-credential step. When
// the account has a second factor enrolled, Token is empty and the caller
// must route the user through CompleteTwoFactorLogin with the ticket.
type PasswordLoginResult struct {
	Token                string
	RequiresSecondFactor bool
	TwoFactorTicket      string
}

// PasswordLogin runs the primary-credential check for an account record the
// identity store already fetched. For accounts without a second factor it
// mints a session immediately; for enrolled accounts it records a pending
// login and returns the ticket gating the second-factor step.
//
// The second factor is evaluated only through that ticket, which only
// exists because this check succeeded — it cannot be reached in parallel
// with, or instead of, the password check.
func (s *Service) PasswordLogin(subjectID, role, password, passwordHash string, twoFactorEnrolled bool) (*PasswordLoginResult, error) {
	if !s.VerifyPassword(password, passwordHash) {
		return nil, ErrInvalidCredentials
	}

	if twoFactorEnrolled {
		ticket := s.pending.create(subjectID, role)
		s.log.Debug("primary check passed, awaiting second factor", "subject", subjectID)
		return &PasswordLoginResult{
			RequiresSecondFactor: true,
			TwoFactorTicket:      ticket,
		}, nil
	}

	token, err := s.sessions.Issue(subjectID, role, 0)
	if err != nil {
		return nil, err
	}

	s.log.Info("password login succeeded", "subject", subjectID)
	return &PasswordLoginResult{Token: token}, nil
}

// verificationTokenSize is the entropy of email-verification and
// password-reset tokens.
const verificationTokenSize = 32

// GenerateVerificationToken creates a random single-purpose token for
// password-reset or email-verification mail. The plaintext goes to the
// user; only its hash is persisted.
func GenerateVerificationToken() (string, error) {
	raw := make([]byte, verificationTokenSize)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Join(ErrFailedToGenerateToken, err)
	}
	return hex.EncodeToString(raw), nil
}

// HashVerificationToken returns the SHA-256 hex digest under which a
// verification token is stored and looked up.
func HashVerificationToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
