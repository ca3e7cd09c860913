package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// entry is what we keep per idempotency key: a provisional marker while the
// handler runs, then the final response for replay.
type entry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type store struct {
	rdb *redis.Client
	// provisional entries expire on their own if the process dies mid-request
	provisionalTTL time.Duration
	ttl            time.Duration
}

func storeKey(method, route, clientID, requestID string) string {
	return strings.Join([]string{"idemp", "ax", strings.ToLower(method), route, clientID, requestID}, ":")
}

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

// reserve stores e only if key is free.
func (s *store) reserve(ctx context.Context, key string, e entry) (bool, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, s.provisionalTTL).Result()
}

func (s *store) load(ctx context.Context, key string) (entry, error) {
	var e entry
	v, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return e, nil
		}
		return e, err
	}
	err = json.Unmarshal(v, &e)
	return e, err
}

func (s *store) finish(ctx context.Context, key string, e entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, s.ttl).Err()
}
