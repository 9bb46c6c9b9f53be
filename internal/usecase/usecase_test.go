package usecase

import (
	"io"
	"testing"
	"time"

	"ai-calling-agent/config"
	"ai-calling-agent/internal/agent/tools"
	domainRepo "ai-calling-agent/internal/domain/repository"
	"ai-calling-agent/internal/infrastructure/database"
	"ai-calling-agent/internal/repository"
	"ai-calling-agent/internal/service"
	"ai-calling-agent/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestStore(t *testing.T) *domainRepo.Store {
	t.Helper()
	db, err := database.NewSQLiteConnection(":memory:", quietLogger())
	require.NoError(t, err)
	return repository.NewGormStore(db)
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func newTestJWT() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour, RefreshExpiry: 24 * time.Hour})
}

// newTestGuard is a write guard over a fresh miniredis, without a mirror.
func newTestGuard(t *testing.T) *tools.WriteGuard {
	t.Helper()
	_, client := setupTestRedis(t)
	return tools.NewWriteGuard(service.NewDedupService(client, quietLogger(), 30*time.Second), nil, quietLogger())
}
