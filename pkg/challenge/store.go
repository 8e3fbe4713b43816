package challenge

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"
)

// Purpose separates registration challenges from authentication challenges:
// a nonce issued for one flow can never be consumed by the other.
type Purpose string

const (
	PurposeRegistration   Purpose = "registration"
	PurposeAuthentication Purpose = "authentication"
)

const (
	// NonceSize is the entropy of a challenge nonce in bytes.
	NonceSize = 32

	// DefaultTTL bounds how long a pending challenge stays valid.
	DefaultTTL = 5 * time.Minute

	// DefaultSweepInterval is how often the background sweep evicts
	// expired entries that were never consumed.
	DefaultSweepInterval = 5 * time.Minute
)

// Challenge is a single-use nonce binding one begin/finish round trip.
// Expired challenges are indistinguishable from ones that never existed.
type Challenge struct {
	Nonce     string
	Purpose   Purpose
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its deadline.
func (c Challenge) Expired() bool {
	return time.Now().After(c.ExpiresAt)
}

// Store holds pending challenges keyed by account (or pending-login)
// identifier. It is safe for concurrent use; a background sweep evicts
// entries past expiry so abandoned flows do not accumulate.
//
// Construct one per process (or per test) with New and stop it with Close.
type Store struct {
	mu      sync.RWMutex
	pending map[string]Challenge
	ttl     time.Duration
	ticker  *time.Ticker
	done    chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the challenge lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New creates a challenge store and starts its sweep goroutine.
// A non-positive sweepInterval disables the sweep; expired entries are then
// only dropped lazily on Consume.
func New(sweepInterval time.Duration, opts ...Option) *Store {
	s := &Store{
		pending: make(map[string]Challenge),
		ttl:     DefaultTTL,
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if sweepInterval > 0 {
		s.ticker = time.NewTicker(sweepInterval)
		go s.sweepLoop()
	}

	return s
}

// Issue creates a fresh challenge for the key, replacing any pending one.
// Re-issuing invalidates the previous nonce: only the most recent challenge
// for a key can ever be consumed.
func (s *Store) Issue(key string, purpose Purpose) (Challenge, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return Challenge{}, errors.Join(ErrFailedToIssue, err)
	}

	ch := Challenge{
		Nonce:     base64.RawURLEncoding.EncodeToString(nonce),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	s.mu.Lock()
	s.pending[storeKey(key, purpose)] = ch
	s.mu.Unlock()

	return ch, nil
}

// Consume removes and returns the pending challenge for the key. It must be
// called exactly once per begin/finish round trip, before any verification
// and regardless of the verification outcome.
//
// A missing, expired, or purpose-mismatched challenge fails with
// ErrExpiredOrConsumed; the entry (if any) is removed either way.
func (s *Store) Consume(key string, purpose Purpose) (Challenge, error) {
	k := storeKey(key, purpose)

	s.mu.Lock()
	ch, ok := s.pending[k]
	if ok {
		delete(s.pending, k)
	}
	s.mu.Unlock()

	if !ok || ch.Expired() {
		return Challenge{}, ErrExpiredOrConsumed
	}
	return ch, nil
}

// Len reports the number of pending challenges, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending)
}

// Close stops the sweep goroutine. The store remains usable afterwards but
// no longer evicts in the background.
func (s *Store) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
	}
	return nil
}

func (s *Store) sweepLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.evictExpired()
		case <-s.done:
			return
		}
	}
}

func (s *Store) evictExpired() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ch := range s.pending {
		if now.After(ch.ExpiresAt) {
			delete(s.pending, k)
		}
	}
}

// storeKey namespaces entries by purpose so concurrent registration and
// authentication flows for the same account cannot clobber each other.
func storeKey(key string, purpose Purpose) string {
	return string(purpose) + ":" + key
}
