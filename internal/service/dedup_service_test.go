package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDedupKey_NormalizesParts(t *testing.T) {
	a := DedupKey("feedback", "Asha@Example.com", "c1", "4", "Great service ")
	b := DedupKey("feedback", "asha@example.com", "C1", "4", "great service")
	c := DedupKey("feedback", "asha@example.com", "c1", "5", "great service")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "dedup:feedback:")
}

func TestDedupService_ClaimCommitDuplicate(t *testing.T) {
	_, client := setupTestRedis(t)
	svc := NewDedupService(client, quietLogger(), 30*time.Second)
	ctx := context.Background()
	key := DedupKey("order", "c1", "Pizza", "2")

	first, err := svc.Claim(ctx, key)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	inFlight, err := svc.Claim(ctx, key)
	require.NoError(t, err)
	assert.True(t, inFlight.Duplicate)
	assert.Empty(t, inFlight.ExistingID)

	require.NoError(t, svc.Commit(ctx, first, "ORD-ABCDEF"))

	second, err := svc.Claim(ctx, key)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, "ORD-ABCDEF", second.ExistingID)
}

func TestDedupService_WindowExpires(t *testing.T) {
	mr, client := setupTestRedis(t)
	svc := NewDedupService(client, quietLogger(), 30*time.Second)
	ctx := context.Background()
	key := DedupKey("appointment", "h1", "2025-03-01", "10:00")

	first, err := svc.Claim(ctx, key)
	require.NoError(t, err)
	require.NoError(t, svc.Commit(ctx, first, "a1"))
	assert.True(t, mr.TTL(key) > 0)

	mr.FastForward(31 * time.Second)

	again, err := svc.Claim(ctx, key)
	require.NoError(t, err)
	assert.False(t, again.Duplicate)
}

func TestDedupService_Release(t *testing.T) {
	_, client := setupTestRedis(t)
	svc := NewDedupService(client, quietLogger(), 30*time.Second)
	ctx := context.Background()
	key := DedupKey("feedback", "x")

	first, err := svc.Claim(ctx, key)
	require.NoError(t, err)
	require.NoError(t, svc.Release(ctx, first))

	again, err := svc.Claim(ctx, key)
	require.NoError(t, err)
	assert.False(t, again.Duplicate)
}

func TestDedupService_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	svc := NewDedupService(client, quietLogger(), 30*time.Second)
	mr.Close()

	_, err := svc.Claim(context.Background(), DedupKey("order", "c1"))
	assert.Error(t, err)
}
