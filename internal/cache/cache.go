package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// Store is the key/value contract consumed by the listing path. The cache is
// a best-effort accelerator: Get and Set absorb backend failures, while
// DeleteByPrefix reports them because cache clearing is an explicit
// administrative action.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
}

const scanBatchSize = 100

// RedisStore backs Store with a shared go-redis client. The client is safe
// for concurrent use and is created once at process start.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg *config.Config) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &RedisStore{client: client}
}

// Get returns the cached value. Any backend failure is logged and reported
// as a miss so the caller falls through to the database.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache get failed for %s: %v", key, err)
			cacheErrorsTotal.WithLabelValues("get").Inc()
		}
		cacheMissesTotal.Inc()
		return "", false
	}
	cacheHitsTotal.Inc()
	return val, true
}

// Set stores the value with a TTL. Failures are logged and swallowed; the
// response this entry was built from has already been served.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("cache set failed for %s: %v", key, err)
		cacheErrorsTotal.WithLabelValues("set").Inc()
	}
}

// DeleteByPrefix removes every key starting with prefix using cursor-based
// SCAN rather than KEYS, so it stays safe against large keyspaces.
func (s *RedisStore) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	var deleted int64
	batch := make([]string, 0, scanBatchSize)

	iter := s.client.Scan(ctx, 0, prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			n, err := s.client.Del(ctx, batch...).Result()
			deleted += n
			if err != nil {
				return deleted, err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}

	if len(batch) > 0 {
		n, err := s.client.Del(ctx, batch...).Result()
		deleted += n
		if err != nil {
			return deleted, err
		}
	}

	return deleted, nil
}

// Ping checks the backend connection, used by the readiness probe.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
