package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrNotAcquired = errors.New("lock is held by another holder")

// Locker grants exclusive, expiring ownership of a key. The returned release
// func is safe to call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

type memoryEntry struct {
	token   uint64
	expires time.Time
}

// MemoryLocker is a process-local Locker used when Redis is not configured.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]memoryEntry
	next uint64
	now  func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.held[key]; ok && now.Before(e.expires) {
		return nil, ErrNotAcquired
	}

	m.next++
	token := m.next
	m.held[key] = memoryEntry{token: token, expires: now.Add(ttl)}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			// an expired lock may already belong to someone else
			if e, ok := m.held[key]; ok && e.token == token {
				delete(m.held, key)
			}
		})
	}, nil
}
