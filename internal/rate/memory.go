package rate

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryLimiter es el equivalente in-process de RedisLimiter. Cuenta por
// réplica, así que con N réplicas el límite efectivo es N*Max.
type MemoryLimiter struct {
	c      *gocache.Cache
	Max    int64
	Window time.Duration
	Now    func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		c:      gocache.New(window, window),
		Max:    int64(max),
		Window: window,
		Now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.Now()
	start := windowStart(now, l.Window)
	k := fmt.Sprintf("%s:%d", key, start.Unix())

	// Add falla si la clave existe; en ese caso incrementamos
	if err := l.c.Add(k, int64(1), l.Window); err == nil {
		return result(1, l.Max, start.Add(l.Window).Sub(now)), nil
	}
	hits, err := l.c.IncrementInt64(k, 1)
	if err != nil {
		// expiró entre Add e Increment: arranca ventana nueva
		l.c.Set(k, int64(1), l.Window)
		hits = 1
	}
	return result(hits, l.Max, start.Add(l.Window).Sub(now)), nil
}
