// Package cache provee un cache clave/valor con dos backends:
//
//   - memory: in-process sobre patrickmn/go-cache (dev, una sola réplica).
//   - redis: compartido entre réplicas sobre go-redis.
//
// Los valores son []byte; quien cachea decide el encoding.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound: la clave no existe o expiró.
var ErrNotFound = errors.New("cache: key not found")

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// Client define las operaciones de cache.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set guarda value. ttl 0 usa el TTL por defecto del backend.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

func prefixed(prefix, k string) string {
	if prefix == "" {
		return k
	}
	return prefix + ":" + k
}
