package history

import "sync"

// Entry is one finished analysis. Immutable once appended.
type Entry struct {
	Filename    string   `json:"filename"`
	Timestamp   string   `json:"timestamp"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Log keeps the most recent analyses per user, capped at a fixed capacity.
// Like the usage ledger, it is volatile by design.
type Log struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string][]Entry
}

// NewLog creates a log keeping the last capacity entries per user.
func NewLog(capacity int) *Log {
	return &Log{
		capacity: capacity,
		entries:  make(map[string][]Entry),
	}
}

// Append adds an entry for the user, dropping the oldest entries once the
// capacity is exceeded.
func (l *Log) Append(userID string, e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	list := append(l.entries[userID], e)
	if len(list) > l.capacity {
		list = list[len(list)-l.capacity:]
	}
	l.entries[userID] = list
}

// Get returns a copy of the user's history, oldest first. Unknown users get
// an empty slice.
func (l *Log) Get(userID string) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	list := l.entries[userID]
	out := make([]Entry, len(list))
	copy(out, list)
	return out
}

// Count returns how many entries the user currently has.
func (l *Log) Count(userID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries[userID])
}
