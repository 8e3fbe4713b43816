package login_test

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/challenge"
	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/session"
	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/webauthn"
	"github.com/georgemontilva-crypto/eterbox-sub001/svc/login"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:3000"

type testStack struct {
	svc        *login.Service
	sessions   *session.Service
	challenges *challenge.Store
}

func newTestStack(t *testing.T, opts ...login.Option) *testStack {
	t.Helper()

	sessions, err := session.New(session.Config{
		SigningKey: "0123456789abcdef0123456789abcdef",
		TTL:        time.Hour,
	})
	require.NoError(t, err)

	authenticators, err := webauthn.New(webauthn.Config{
		RPID:   "localhost",
		RPName: "EterBox Test",
		Origin: testOrigin,
	})
	require.NoError(t, err)

	challenges := challenge.New(0)
	t.Cleanup(func() { _ = challenges.Close() })

	// Min bcrypt cost keeps the suite fast; production uses the default
	opts = append([]login.Option{login.WithBcryptCost(bcrypt.MinCost)}, opts...)
	svc, err := login.New(sessions, authenticators, challenges, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	return &testStack{svc: svc, sessions: sessions, challenges: challenges}
}

func TestNewRequiresDependencies(t *testing.T) {
	stack := newTestStack(t)

	_, err := login.New(nil, nil, nil)
	assert.ErrorIs(t, err, login.ErrMissingSessionService)

	_, err = login.New(stack.sessions, nil, nil)
	assert.ErrorIs(t, err, login.ErrMissingAuthenticatorService)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	stack := newTestStack(t)

	hash, err := stack.svc.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, stack.svc.VerifyPassword("correct horse battery staple", hash))
	assert.False(t, stack.svc.VerifyPassword("wrong password", hash))
}

func TestPasswordLoginWithoutSecondFactor(t *testing.T) {
	stack := newTestStack(t)

	hash, err := stack.svc.HashPassword("s3cret")
	require.NoError(t, err)

	result, err := stack.svc.PasswordLogin("user-1", "user", "s3cret", hash, false)
	require.NoError(t, err)
	assert.False(t, result.RequiresSecondFactor)
	assert.Empty(t, result.TwoFactorTicket)

	claims, err := stack.sessions.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "user", claims.Role)
}

func TestPasswordLoginWrongPassword(t *testing.T) {
	stack := newTestStack(t)

	hash, err := stack.svc.HashPassword("s3cret")
	require.NoError(t, err)

	result, err := stack.svc.PasswordLogin("user-1", "user", "not-it", hash, false)
	assert.ErrorIs(t, err, login.ErrInvalidCredentials)
	assert.Nil(t, result)
}

func TestPasswordLoginDefersToSecondFactor(t *testing.T) {
	stack := newTestStack(t)

	hash, err := stack.svc.HashPassword("s3cret")
	require.NoError(t, err)

	result, err := stack.svc.PasswordLogin("user-1", "admin", "s3cret", hash, true)
	require.NoError(t, err)
	assert.True(t, result.RequiresSecondFactor)
	assert.NotEmpty(t, result.TwoFactorTicket)

	// No token until the second factor clears
	assert.Empty(t, result.Token)
}

func TestGenerateVerificationToken(t *testing.T) {
	token, err := login.GenerateVerificationToken()
	require.NoError(t, err)
	assert.Len(t, token, 64) // 32 bytes hex-encoded

	other, err := login.GenerateVerificationToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	hash := login.HashVerificationToken(token)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, login.HashVerificationToken(token))
	assert.NotEqual(t, hash, login.HashVerificationToken(other))
}
