package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/hellopos/internal/cache"
	"github.com/dropDatabas3/hellopos/internal/store/cached"
)

func TestOpenMemory(t *testing.T) {
	repos, err := Open(context.Background(), Config{Driver: "memory"})
	require.NoError(t, err)
	defer repos.Close()

	assert.Nil(t, repos.Pool)
	assert.NoError(t, repos.Ping(context.Background()))
}

func TestOpenWrapsUsersWithCache(t *testing.T) {
	c := cache.NewMemory("t", time.Minute)
	repos, err := Open(context.Background(), Config{Driver: "memory", Cache: c, CacheTTL: time.Minute})
	require.NoError(t, err)

	_, ok := repos.Users.(*cached.Users)
	assert.True(t, ok)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "mongo"})
	assert.Error(t, err)
}
