package cache

import (
	"context"
	"io"
	"testing"

	"ai-calling-agent/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	client, err := NewRedisClient(config.RedisConfig{Host: mr.Host(), Port: mr.Port()}, log)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port := mr.Host(), mr.Port()
	mr.Close()

	log := logrus.New()
	log.SetOutput(io.Discard)

	_, err := NewRedisClient(config.RedisConfig{Host: host, Port: port}, log)
	assert.Error(t, err)
}
