package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wellgym/wellgym-backend/internal/domain"
)

// Key names mirror the browser client's sessionStorage keys.
const (
	loadedKeyPrefix = "wellgym:profile:loaded:v1:"
	cacheKeyPrefix  = "wellgym:profile:cache:v1:"
)

// RedisStore keeps one loaded flag and one JSON snapshot per user session.
// Keys expire with the session TTL; there is no other invalidation.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func (s *RedisStore) Read(ctx context.Context, userID string) (*domain.Profile, bool) {
	raw, err := s.client.Get(ctx, cacheKeyPrefix+userID).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("session cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, false
	}

	var p domain.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("session cache holds malformed snapshot", zap.String("user_id", userID), zap.Error(err))
		return nil, false
	}
	return &p, true
}

func (s *RedisStore) Write(ctx context.Context, userID string, p *domain.Profile) {
	raw, err := json.Marshal(p)
	if err != nil {
		s.logger.Warn("session cache marshal failed", zap.String("user_id", userID), zap.Error(err))
		return
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, loadedKeyPrefix+userID, "1", s.ttl)
	pipe.Set(ctx, cacheKeyPrefix+userID, raw, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("session cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *RedisStore) Patch(ctx context.Context, userID, column string, value interface{}) {
	p, ok := s.Read(ctx, userID)
	if !ok {
		p = &domain.Profile{ID: userID}
	}
	if err := p.ApplyField(column, value); err != nil {
		s.logger.Warn("session cache patch skipped", zap.String("column", column), zap.Error(err))
		return
	}
	s.Write(ctx, userID, p)
}
