package impl

import (
	"sync"

	"github.com/google/uuid"
)

// AggregateLocks serializes orchestration calls per aggregate ID. A single
// instance is shared by every service, so all critical sections keyed by the
// same product (listing edits, order creation, receipt, cancellation) take
// the same mutex and the sequence "mutate order and product, adjust
// reputation, notify" is atomic relative to concurrent attempts.
type AggregateLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewAggregateLocks creates the shared lock table.
func NewAggregateLocks() *AggregateLocks {
	return &AggregateLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex for the given aggregate ID and returns its unlock
// function. Lock entries are kept for the process lifetime, matching the
// lifetime of the entities they guard.
func (l *AggregateLocks) Lock(id uuid.UUID) func() {
	l.mu.Lock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	l.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}
