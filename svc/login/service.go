package login

import (
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/challenge"
	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/session"
	"github.com/georgemontilva-crypto/eterbox-sub001/pkg/webauthn"
)

const (
	// DefaultIssuer is the issuer label shown in authenticator apps.
	DefaultIssuer = "EterBox"

	// DefaultBcryptCost for primary password hashing.
	DefaultBcryptCost = 12

	// DefaultPendingTTL bounds how long a login may sit between a
	// successful primary check and the second-factor submission.
	DefaultPendingTTL = 5 * time.Minute

	// DefaultPendingSweepInterval is how often abandoned pending logins
	// are evicted.
	DefaultPendingSweepInterval = 5 * time.Minute
)

// Service orchestrates the authentication paths: primary password check,
// conditional second factor, and the biometric alternate path. Every
// successful path terminates by minting a session token.
//
// The service holds no account data. The identity store fetches records and
// persists what the service hands back (enrollment secrets, backup-code
// hashes, authenticator registrations, updated signature counters).
type Service struct {
	sessions       *session.Service
	authenticators *webauthn.Service
	challenges     *challenge.Store
	pending        *pendingStore

	issuer     string
	bcryptCost int
	log        *slog.Logger
}

// Option configures the login service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithIssuer overrides the issuer label used in provisioning URIs.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		if issuer != "" {
			s.issuer = issuer
		}
	}
}

// WithBcryptCost overrides the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

// WithPendingTTL overrides how long a pending two-factor login stays valid.
func WithPendingTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.pending.ttl = ttl
		}
	}
}

// New creates the login service. The challenge store is injected so tests
// and deployments control its lifecycle; the pending-login ledger is owned
// by the service and torn down by Close.
func New(sessions *session.Service, authenticators *webauthn.Service, challenges *challenge.Store, opts ...Option) (*Service, error) {
	if sessions == nil {
		return nil, ErrMissingSessionService
	}
	if authenticators == nil {
		return nil, ErrMissingAuthenticatorService
	}
	if challenges == nil {
		return nil, ErrMissingChallengeStore
	}

	s := &Service{
		sessions:       sessions,
		authenticators: authenticators,
		challenges:     challenges,
		pending:        newPendingStore(DefaultPendingTTL, DefaultPendingSweepInterval),
		issuer:         DefaultIssuer,
		bcryptCost:     DefaultBcryptCost,
		log:            slog.Default().With("component", "login"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close stops the pending-login sweep goroutine.
func (s *Service) Close() error {
	return s.pending.close()
}
