package repository

import (
	"context"
	"sync"
	"time"
)

type windowCounter struct {
	count     int
	expiresAt time.Time
}

// MemoryRateLimiter counts hits per key in fixed windows inside this process.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
	now      func() time.Time
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		counters: make(map[string]*windowCounter),
		now:      time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.counters[key]
	if !ok || !now.Before(entry.expiresAt) {
		entry = &windowCounter{expiresAt: now.Add(window)}
		l.counters[key] = entry
		l.sweepLocked(now)
	}
	entry.count++

	return entry.count <= limit, nil
}

// sweepLocked drops expired windows so idle keys do not accumulate.
func (l *MemoryRateLimiter) sweepLocked(now time.Time) {
	for key, entry := range l.counters {
		if !now.Before(entry.expiresAt) {
			delete(l.counters, key)
		}
	}
}
