// internal/poller/types.go
package poller

import (
	"sync"
	"time"

	"github.com/tamzrod/smartheater/internal/status"
)

// Snapshot is the result of one poll cycle.
type Snapshot struct {
	At time.Time `json:"at"`

	// Values maps attribute name to decoded value.
	// Empty when the cycle failed.
	Values map[string]any `json:"values,omitempty"`

	// Status is the classified outcome of the failing transaction, or Success.
	Status status.Code `json:"status"`

	Err error `json:"-"` // non-nil means the poll cycle failed
}

// Latest keeps the most recent snapshot for concurrent readers.
type Latest struct {
	mu   sync.RWMutex
	snap Snapshot
	ok   bool
}

// Store replaces the held snapshot.
func (l *Latest) Store(s Snapshot) {
	l.mu.Lock()
	l.snap = s
	l.ok = true
	l.mu.Unlock()
}

// Load returns the held snapshot; ok is false until the first Store.
func (l *Latest) Load() (Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap, l.ok
}
