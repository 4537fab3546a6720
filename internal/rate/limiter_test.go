package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 10, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.Now = func() time.Time { return now }
	ctx := context.Background()

	r1, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, r1.Allowed)
	assert.Equal(t, int64(1), r1.Remaining)
	assert.Equal(t, 50*time.Second, r1.WindowTTL)

	r2, _ := l.Allow(ctx, "1.2.3.4")
	assert.True(t, r2.Allowed)
	assert.Equal(t, int64(0), r2.Remaining)

	r3, _ := l.Allow(ctx, "1.2.3.4")
	assert.False(t, r3.Allowed)
	assert.Equal(t, 50*time.Second, r3.RetryAfter)

	other, _ := l.Allow(ctx, "5.6.7.8")
	assert.True(t, other.Allowed, "las claves no comparten contador")

	now = now.Add(time.Minute)
	r4, _ := l.Allow(ctx, "1.2.3.4")
	assert.True(t, r4.Allowed, "ventana nueva")
	assert.Equal(t, int64(1), r4.CurrentHits)
}
