package usage

import (
	"sync"

	"github.com/bryanwahyu/vision-analyzer/internal/domain/identity"
)

// Ledger tracks how many analyses each user has consumed. State is
// in-memory only and resets on restart; that is a scoping choice of the
// service, not an oversight.
type Ledger struct {
	mu     sync.RWMutex
	limit  int
	counts map[string]int
}

// NewLedger creates a ledger with the given free-tier limit.
func NewLedger(freeLimit int) *Ledger {
	return &Ledger{
		limit:  freeLimit,
		counts: make(map[string]int),
	}
}

// TryConsume records one analysis for a free-tier user. Premium users are
// unmetered: always allowed, never recorded. The check and the increment
// happen under one lock so two concurrent free requests from the same user
// cannot both pass.
func (l *Ledger) TryConsume(userID string, tier identity.Tier) bool {
	if tier == identity.TierPremium {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.counts[userID] >= l.limit {
		return false
	}
	l.counts[userID]++
	return true
}

// Peek returns the current count for a user without mutating anything.
func (l *Ledger) Peek(userID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.counts[userID]
}

// Limit returns the free-tier limit.
func (l *Ledger) Limit() int {
	return l.limit
}
