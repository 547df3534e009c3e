package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const sweepThreshold = 1024

type heldLock struct {
	token     string
	expiresAt time.Time
}

// MemoryLocker gives the same guarantees as RedisLocker within one process.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]heldLock
	now   func() time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]heldLock), now: time.Now}
}

// WithNow overrides the time source, for tests.
func (l *MemoryLocker) WithNow(now func() time.Time) *MemoryLocker {
	l.now = now
	return l
}

func (l *MemoryLocker) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.locks) >= sweepThreshold {
		for k, held := range l.locks {
			if !now.Before(held.expiresAt) {
				delete(l.locks, k)
			}
		}
	}
	if held, ok := l.locks[key]; ok && now.Before(held.expiresAt) {
		return "", false, nil
	}
	token := uuid.NewString()
	l.locks[key] = heldLock{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

func (l *MemoryLocker) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[key]; ok && held.token == token {
		delete(l.locks, key)
	}
	return nil
}

// Len reports held entries, expired ones included until they are replaced.
func (l *MemoryLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
