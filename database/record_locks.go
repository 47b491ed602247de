package database

import (
	"sync"

	"github.com/google/uuid"
)

// recordLocks serialises writers per record id. Entries are dropped once no
// goroutine holds or waits for them.
type recordLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*recordLock
}

type recordLock struct {
	mu   sync.Mutex
	refs int
}

func newRecordLocks() *recordLocks {
	return &recordLocks{locks: make(map[uuid.UUID]*recordLock)}
}

// Lock blocks until the caller owns id and returns the matching unlock.
func (l *recordLocks) Lock(id uuid.UUID) (unlock func()) {
	l.mu.Lock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &recordLock{}
		l.locks[id] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *recordLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
