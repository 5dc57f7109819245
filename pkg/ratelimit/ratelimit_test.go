package ratelimit

import (
	"testing"
	"time"

	pkgredis "pasahero-backend/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return NewLimiter(pkgredis.NewClientFromAddr(mr.Addr()), "otp:", limit, window), mr
}

func TestLimiter_AllowsWithinLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow("user@test.com")
		require.NoError(t, err)
		assert.True(t, allowed, "hit %d should be allowed", i+1)
	}
}

func TestLimiter_DeniesOverLimit(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)

	limiter.Allow("user@test.com")
	limiter.Allow("user@test.com")

	allowed, retryAfter, err := limiter.Allow("user@test.com")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)

	limiter.Allow("first@test.com")

	allowed, _, err := limiter.Allow("second@test.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_WindowResets(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)

	limiter.Allow("user@test.com")
	allowed, _, _ := limiter.Allow("user@test.com")
	assert.False(t, allowed)

	mr.FastForward(61 * time.Second)

	allowed, _, err := limiter.Allow("user@test.com")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestLimiter_FailsOpenOnRedisError(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	allowed, _, err := limiter.Allow("user@test.com")
	assert.Error(t, err)
	assert.True(t, allowed)
}
