package login_test

import (
	"strings"
	"testing"
	"time"

	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/backupcode"
	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/totp"
	"github.com/georgemontilva-crypto/eterbox-sub001/svc/login"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTwoFactorLogin enrolls an account, runs the password step, and hands
// back the pending ticket plus enrollment material.
func startTwoFactorLogin(t *testing.T, stack *testStack) (ticket string, enrollment *login.TwoFactorEnrollment) {
	t.Helper()

	enrollment, err := stack.svc.SetupTwoFactor("alice@example.com")
	require.NoError(t, err)

	hash, err := stack.svc.HashPassword("s3cret")
	require.NoError(t, err)

	result, err := stack.svc.PasswordLogin("user-1", "user", "s3cret", hash, true)
	require.NoError(t, err)
	require.True(t, result.RequiresSecondFactor)

	return result.TwoFactorTicket, enrollment
}

func TestSetupTwoFactor(t *testing.T) {
	stack := newTestStack(t)

	enrollment, err := stack.svc.SetupTwoFactor("alice@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, enrollment.Secret)
	assert.Contains(t, enrollment.ProvisioningURI, "otpauth://totp/")
	assert.Contains(t, enrollment.ProvisioningURI, "alice@example.com")
	assert.True(t, strings.HasPrefix(enrollment.QRCode, "data:image/png;base64,"))
	assert.Len(t, enrollment.BackupCodes, backupcode.DefaultCount)
	assert.Len(t, enrollment.BackupCodeHashes, backupcode.DefaultCount)

	// Two setups never share material
	other, err := stack.svc.SetupTwoFactor("alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, enrollment.Secret, other.Secret)
	assert.NotEqual(t, enrollment.BackupCodes, other.BackupCodes)
}

func TestEnableTwoFactor(t *testing.T) {
	stack := newTestStack(t)

	secret, err := totp.GenerateSecretKey()
	require.NoError(t, err)

	code, err := totp.Generate(secret)
	require.NoError(t, err)

	assert.NoError(t, stack.svc.EnableTwoFactor(secret, code))
	assert.ErrorIs(t, stack.svc.EnableTwoFactor(secret, "000000"), login.ErrInvalidTwoFactorCode)
}

func TestVerifySecondFactor(t *testing.T) {
	stack := newTestStack(t)

	enrollment, err := stack.svc.SetupTwoFactor("alice@example.com")
	require.NoError(t, err)

	code, err := totp.Generate(enrollment.Secret)
	require.NoError(t, err)

	result, ok := stack.svc.VerifySecondFactor(enrollment.Secret, code, enrollment.BackupCodeHashes)
	require.True(t, ok)
	assert.Equal(t, login.MethodTOTP, result.Method)

	result, ok = stack.svc.VerifySecondFactor(enrollment.Secret, enrollment.BackupCodes[0], enrollment.BackupCodeHashes)
	require.True(t, ok)
	assert.Equal(t, login.MethodBackupCode, result.Method)
	assert.Len(t, result.RemainingHashes, backupcode.DefaultCount-1)

	_, ok = stack.svc.VerifySecondFactor(enrollment.Secret, "not-a-code", enrollment.BackupCodeHashes)
	assert.False(t, ok)
}

func TestCompleteTwoFactorLoginWithTOTP(t *testing.T) {
	stack := newTestStack(t)
	ticket, enrollment := startTwoFactorLogin(t, stack)

	code, err := totp.Generate(enrollment.Secret)
	require.NoError(t, err)

	result, err := stack.svc.CompleteTwoFactorLogin(ticket, code, enrollment.Secret, enrollment.BackupCodeHashes)
	require.NoError(t, err)
	assert.Equal(t, login.MethodTOTP, result.Method)
	assert.Equal(t, "user-1", result.SubjectID)
	// A TOTP login leaves the backup set untouched
	assert.Equal(t, enrollment.BackupCodeHashes, result.RemainingHashes)

	claims, err := stack.sessions.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestCompleteTwoFactorLoginWithBackupCode(t *testing.T) {
	stack := newTestStack(t)
	ticket, enrollment := startTwoFactorLogin(t, stack)

	result, err := stack.svc.CompleteTwoFactorLogin(ticket, enrollment.BackupCodes[3], enrollment.Secret, enrollment.BackupCodeHashes)
	require.NoError(t, err)
	assert.Equal(t, login.MethodBackupCode, result.Method)
	assert.Len(t, result.RemainingHashes, backupcode.DefaultCount-1)

	// The consumed code is gone from the surviving set
	assert.False(t, backupcode.Verify(enrollment.BackupCodes[3], result.RemainingHashes))
	assert.True(t, backupcode.Verify(enrollment.BackupCodes[7], result.RemainingHashes))
}

func TestCompleteTwoFactorLoginWrongCodeKeepsTicket(t *testing.T) {
	stack := newTestStack(t)
	ticket, enrollment := startTwoFactorLogin(t, stack)

	_, err := stack.svc.CompleteTwoFactorLogin(ticket, "000000", enrollment.Secret, enrollment.BackupCodeHashes)
	assert.ErrorIs(t, err, login.ErrInvalidTwoFactorCode)

	// The ticket survives a wrong code; a correct retry still works
	code, err := totp.Generate(enrollment.Secret)
	require.NoError(t, err)

	result, err := stack.svc.CompleteTwoFactorLogin(ticket, code, enrollment.Secret, enrollment.BackupCodeHashes)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestCompleteTwoFactorLoginTicketSingleUse(t *testing.T) {
	stack := newTestStack(t)
	ticket, enrollment := startTwoFactorLogin(t, stack)

	code, err := totp.Generate(enrollment.Secret)
	require.NoError(t, err)

	_, err = stack.svc.CompleteTwoFactorLogin(ticket, code, enrollment.Secret, enrollment.BackupCodeHashes)
	require.NoError(t, err)

	// Success consumed the ticket; replaying it fails before any code check
	_, err = stack.svc.CompleteTwoFactorLogin(ticket, code, enrollment.Secret, enrollment.BackupCodeHashes)
	assert.ErrorIs(t, err, login.ErrLoginTicketExpired)
}

func TestCompleteTwoFactorLoginTicketExpiry(t *testing.T) {
	stack := newTestStack(t, login.WithPendingTTL(10*time.Millisecond))
	ticket, enrollment := startTwoFactorLogin(t, stack)

	time.Sleep(20 * time.Millisecond)

	code, err := totp.Generate(enrollment.Secret)
	require.NoError(t, err)

	_, err = stack.svc.CompleteTwoFactorLogin(ticket, code, enrollment.Secret, enrollment.BackupCodeHashes)
	assert.ErrorIs(t, err, login.ErrLoginTicketExpired)
}

func TestCompleteTwoFactorLoginUnknownTicket(t *testing.T) {
	stack := newTestStack(t)
	_, enrollment := startTwoFactorLogin(t, stack)

	code, err := totp.Generate(enrollment.Secret)
	require.NoError(t, err)

	_, err = stack.svc.CompleteTwoFactorLogin("never-issued", code, enrollment.Secret, enrollment.BackupCodeHashes)
	assert.ErrorIs(t, err, login.ErrLoginTicketExpired)
}
