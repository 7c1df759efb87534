package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLimiterConsumes(t *testing.T) {
	l := NewTokenLimiter(100)

	require.NoError(t, l.Wait(context.Background(), 30))
	assert.Equal(t, 70, l.GetRemaining())

	require.NoError(t, l.Wait(context.Background(), 70))
	assert.Equal(t, 0, l.GetRemaining())
}

func TestTokenLimiterOversizedRequest(t *testing.T) {
	l := NewTokenLimiter(10)

	// A request larger than the whole budget passes on a fresh window
	// instead of blocking forever.
	require.NoError(t, l.Wait(context.Background(), 50))
	assert.Equal(t, 0, l.GetRemaining())
}

func TestTokenLimiterContextCancel(t *testing.T) {
	l := NewTokenLimiter(10)
	require.NoError(t, l.Wait(context.Background(), 10))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
