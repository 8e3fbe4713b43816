package login

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// pendingLogin records a primary-credential success that is waiting for its
// second factor. The ticket is the only way to reach the second-factor
// check, which makes the ordering structural: no ticket, no code probe.
type pendingLogin struct {
	subjectID string
	role      string
	expiresAt time.Time
}

// pendingStore is the in-memory ledger of half-finished logins, keyed by
// ticket ID. Same locking and sweep discipline as pkg/challenge.
type pendingStore struct {
	mu      sync.RWMutex
	entries map[string]pendingLogin
	ttl     time.Duration
	ticker  *time.Ticker
	done    chan struct{}
}

func newPendingStore(ttl, sweepInterval time.Duration) *pendingStore {
	p := &pendingStore{
		entries: make(map[string]pendingLogin),
		ttl:     ttl,
		done:    make(chan struct{}),
	}

	if sweepInterval > 0 {
		p.ticker = time.NewTicker(sweepInterval)
		go p.sweepLoop()
	}

	return p
}

// create mints a new single-use ticket for the subject.
func (p *pendingStore) create(subjectID, role string) string {
	ticket := uuid.NewString()

	p.mu.Lock()
	p.entries[ticket] = pendingLogin{
		subjectID: subjectID,
		role:      role,
		expiresAt: time.Now().Add(p.ttl),
	}
	p.mu.Unlock()

	return ticket
}

// get returns the live entry for a ticket without consuming it, so a wrong
// code does not force the user back to the password step. Expiry bounds the
// probe window; lockout policy is the caller's.
func (p *pendingStore) get(ticket string) (pendingLogin, bool) {
	p.mu.RLock()
	entry, ok := p.entries[ticket]
	p.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return pendingLogin{}, false
	}
	return entry, true
}

// take removes the ticket after a successful second factor.
func (p *pendingStore) take(ticket string) {
	p.mu.Lock()
	delete(p.entries, ticket)
	p.mu.Unlock()
}

func (p *pendingStore) len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

func (p *pendingStore) close() error {
	if p.ticker != nil {
		p.ticker.Stop()
		close(p.done)
	}
	return nil
}

func (p *pendingStore) sweepLoop() {
	for {
		select {
		case <-p.ticker.C:
			p.evictExpired()
		case <-p.done:
			return
		}
	}
}

func (p *pendingStore) evictExpired() {
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	for ticket, entry := range p.entries {
		if now.After(entry.expiresAt) {
			delete(p.entries, ticket)
		}
	}
}
