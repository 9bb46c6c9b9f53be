package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// RedisDedupKeyPrefix namespaces the suppression window keys
	RedisDedupKeyPrefix = "dedup:"

	// pendingMarker holds a claimed key until the write returns its id
	pendingMarker = "pending"

	// Timeout for individual Redis operations
	redisDedupTimeout = 2 * time.Second
)

// claimScript sets the key only if absent and otherwise returns what the
// first caller stored, in one round trip.
//
// Returns {1, marker} when claimed, {0, existing} for a duplicate.
var claimScript = redis.NewScript(`
	if redis.call('SET', KEYS[1], ARGV[1], 'NX', 'PX', ARGV[2]) then
		return {1, ARGV[1]}
	end
	local existing = redis.call('GET', KEYS[1])
	if not existing then
		existing = ''
	end
	return {0, existing}
`)

// =============================================================================
// Types
// =============================================================================

// DedupClaim is the outcome of claiming a composite key.
type DedupClaim struct {
	Key        string
	Duplicate  bool
	ExistingID string // empty while the first write is still in flight
}

// DedupService is the duplicate-suppression window: the same booking, order
// or feedback submitted twice within the window is written once.
type DedupService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	window      time.Duration
}

func NewDedupService(redisClient *redis.Client, log *logrus.Logger, window time.Duration) *DedupService {
	return &DedupService{
		redisClient: redisClient,
		log:         log,
		window:      window,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// DedupKey builds a stable key from the kind of write and its identifying
// fields. Fields are trimmed and lower-cased before hashing.
func DedupKey(kind string, parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	sum := sha256.Sum256([]byte(strings.Join(normalized, "\x1f")))
	return RedisDedupKeyPrefix + kind + ":" + hex.EncodeToString(sum[:16])
}

// Claim reserves key for the window. A second claim of the same key inside
// the window reports Duplicate with the id the first caller committed.
func (s *DedupService) Claim(ctx context.Context, key string) (*DedupClaim, error) {
	ctx, cancel := context.WithTimeout(ctx, redisDedupTimeout)
	defer cancel()

	res, err := claimScript.Run(ctx, s.redisClient, []string{key}, pendingMarker, s.window.Milliseconds()).Slice()
	if err != nil {
		s.log.Warnf("Failed to claim dedup key %s: %+v", key, err)
		return nil, fmt.Errorf("claim dedup key: %w", err)
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("claim dedup key: unexpected reply %v", res)
	}

	claimed, _ := res[0].(int64)
	existing, _ := res[1].(string)
	if claimed == 1 {
		return &DedupClaim{Key: key}, nil
	}
	if existing == pendingMarker {
		existing = ""
	}
	return &DedupClaim{Key: key, Duplicate: true, ExistingID: existing}, nil
}

// Commit records the id the write produced, keeping the original expiry.
func (s *DedupService) Commit(ctx context.Context, claim *DedupClaim, id string) error {
	ctx, cancel := context.WithTimeout(ctx, redisDedupTimeout)
	defer cancel()

	err := s.redisClient.SetArgs(ctx, claim.Key, id, redis.SetArgs{Mode: "XX", KeepTTL: true}).Err()
	if err != nil && err != redis.Nil {
		s.log.Warnf("Failed to commit dedup key %s: %+v", claim.Key, err)
		return err
	}
	return nil
}

// Release drops a claim whose write failed so the caller can retry at once.
func (s *DedupService) Release(ctx context.Context, claim *DedupClaim) error {
	ctx, cancel := context.WithTimeout(ctx, redisDedupTimeout)
	defer cancel()

	if err := s.redisClient.Del(ctx, claim.Key).Err(); err != nil {
		s.log.Warnf("Failed to release dedup key %s: %+v", claim.Key, err)
		return err
	}
	return nil
}
