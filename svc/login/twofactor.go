package login

import (
	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/backupcode"
	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/qrcode"
	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/totp"
)

// TwoFactorMethod names which second factor satisfied a verification.
type TwoFactorMethod string

const (
	MethodTOTP       TwoFactorMethod = "totp"
	MethodBackupCode TwoFactorMethod = "backup_code"
)

// TwoFactorEnrollment is everything SetupTwoFactor hands back for a fresh
// enrollment. Nothing here is live yet: the identity store must persist the
// secret and hashes only after EnableTwoFactor confirms the user's
// authenticator produces valid codes. The plaintext backup codes are shown
// to the user exactly once and never stored.
type TwoFactorEnrollment struct {
	Secret           string
	ProvisioningURI  string
	QRCode           string // data:image/png;base64 URI for direct embedding
	BackupCodes      []string
	BackupCodeHashes []string
}

// SetupTwoFactor generates a fresh enrollment for the account: shared
// secret, scannable provisioning QR, and a set of single-use backup codes.
// The account transitions to pending-verification in the caller's
// bookkeeping; the enrollment goes live only via EnableTwoFactor.
func (s *Service) SetupTwoFactor(accountName string) (*TwoFactorEnrollment, error) {
	secret, err := totp.GenerateSecretKey()
	if err != nil {
		return nil, err
	}

	uri, err := totp.ProvisioningURI(totp.Params{
		Secret:      secret,
		AccountName: accountName,
		Issuer:      s.issuer,
	})
	if err != nil {
		return nil, err
	}

	qr, err := qrcode.GenerateDataURI(uri, 0)
	if err != nil {
		return nil, err
	}

	codes, err := backupcode.Generate(backupcode.DefaultCount)
	if err != nil {
		return nil, err
	}

	s.log.Debug("two-factor enrollment generated", "account", accountName)
	return &TwoFactorEnrollment{
		Secret:           secret,
		ProvisioningURI:  uri,
		QRCode:           qr,
		BackupCodes:      codes,
		BackupCodeHashes: backupcode.HashAll(codes),
	}, nil
}

// EnableTwoFactor confirms a pending enrollment by checking a code from the
// user's freshly provisioned authenticator. Only after this returns nil may
// the identity store persist the secret and backup-code hashes and mark the
// account enabled. Disablement is the mirror contract: the caller must
// delete the secret and every backup-code hash, so no enrollment material
// survives.
func (s *Service) EnableTwoFactor(secret, code string) error {
	ok, err := totp.Validate(secret, code)
	if err != nil || !ok {
		return ErrInvalidTwoFactorCode
	}
	return nil
}

// TwoFactorResult reports a successful second-factor verification. When a
// backup code was used, RemainingHashes is the shrunken set the identity
// store must persist — the consumed code can never be accepted again.
type TwoFactorResult struct {
	Method          TwoFactorMethod
	RemainingHashes []string
}

// VerifySecondFactor tries the submitted code as a TOTP first, then as a
// backup code, mirroring the login UI which has a single input field. It is
// also the confirmation check for sensitive account changes, disabling the
// second factor included.
func (s *Service) VerifySecondFactor(secret, code string, backupHashes []string) (*TwoFactorResult, bool) {
	if ok, err := totp.Validate(secret, code); err == nil && ok {
		return &TwoFactorResult{Method: MethodTOTP, RemainingHashes: backupHashes}, true
	}

	if backupcode.Verify(code, backupHashes) {
		return &TwoFactorResult{
			Method:          MethodBackupCode,
			RemainingHashes: backupcode.Consume(code, backupHashes),
		}, true
	}

	return nil, false
}

// TwoFactorLoginResult is the terminal outcome of a second-factor login.
type TwoFactorLoginResult struct {
	Token           string
	SubjectID       string
	Method          TwoFactorMethod
	RemainingHashes []string
}

// CompleteTwoFactorLogin finishes a login started by PasswordLogin. The
// ticket proves the primary check already succeeded; an expired or unknown
// ticket fails before any code is evaluated. A wrong code leaves the ticket
// standing (retries until expiry are the caller's policy to limit), a
// correct one consumes it and mints the session.
func (s *Service) CompleteTwoFactorLogin(ticket, code, secret string, backupHashes []string) (*TwoFactorLoginResult, error) {
	entry, ok := s.pending.get(ticket)
	if !ok {
		return nil, ErrLoginTicketExpired
	}

	result, ok := s.VerifySecondFactor(secret, code, backupHashes)
	if !ok {
		s.log.Debug("second-factor verification failed", "subject", entry.subjectID)
		return nil, ErrInvalidTwoFactorCode
	}

	s.pending.take(ticket)

	token, err := s.sessions.Issue(entry.subjectID, entry.role, 0)
	if err != nil {
		return nil, err
	}

	s.log.Info("two-factor login succeeded", "subject", entry.subjectID, "method", string(result.Method))
	return &TwoFactorLoginResult{
		Token:           token,
		SubjectID:       entry.subjectID,
		Method:          result.Method,
		RemainingHashes: result.RemainingHashes,
	}, nil
}
