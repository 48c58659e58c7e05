package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"haphuong/pkg/logger"
)

// CacheService is the read-through cache the repositories lean on. All
// implementations must be safe for concurrent use; repositories treat a
// nil CacheService as "caching disabled".
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Ping(ctx context.Context) error
}

// RedisClient is the subset of the redis wrapper the cache service needs.
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, keys ...string) (int64, error)
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	Ping(ctx context.Context) error
}

type cacheService struct {
	redisClient RedisClient
	logger      *logger.Logger
	defaultTTL  time.Duration
	keyPrefix   string
}

func NewCacheService(redisClient RedisClient, log *logger.Logger) CacheService {
	return &cacheService{
		redisClient: redisClient,
		logger:      log,
		defaultTTL:  15 * time.Minute,
		keyPrefix:   "haphuong:",
	}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.redisClient.Get(ctx, s.buildKey(key))
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached value: %w", err)
	}
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration == 0 {
		expiration = s.defaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for cache: %w", err)
	}

	if err := s.redisClient.Set(ctx, s.buildKey(key), data, expiration); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Failed to set cache key")
		return err
	}
	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.buildKey(key)
	}

	if err := s.redisClient.Del(ctx, prefixed...); err != nil {
		s.logger.WithError(err).Warn("Failed to delete cache keys")
		return err
	}
	return nil
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	count, err := s.redisClient.Exists(ctx, s.buildKey(key))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *cacheService) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if expiration == 0 {
		expiration = s.defaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to marshal value for cache: %w", err)
	}
	return s.redisClient.SetNX(ctx, s.buildKey(key), data, expiration)
}

func (s *cacheService) Ping(ctx context.Context) error {
	return s.redisClient.Ping(ctx)
}

func (s *cacheService) buildKey(key string) string {
	return s.keyPrefix + key
}
