package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/akau-shop/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// RedisSessionStore implements SessionStore using Redis. Sessions survive
// process restarts and are shared across instances.
type RedisSessionStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisSessionStore creates a new Redis-backed session store
func NewRedisSessionStore(cfg RedisConfig) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSessionStore{
		client:    client,
		keyPrefix: "admin:session:",
	}, nil
}

// NewRedisSessionStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisSessionStoreWithClient(client *redis.Client, keyPrefix string) *RedisSessionStore {
	if keyPrefix == "" {
		keyPrefix = "admin:session:"
	}
	return &RedisSessionStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Put records a session ID with a TTL; Redis expires it automatically
func (s *RedisSessionStore) Put(ctx context.Context, id string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+id, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Exists reports whether a session ID is still active
func (s *RedisSessionStore) Exists(ctx context.Context, id string) (bool, error) {
	exists, err := s.client.Exists(ctx, s.keyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return exists > 0, nil
}

// Revoke removes a session ID
func (s *RedisSessionStore) Revoke(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisSessionStore) Close() error {
	return s.client.Close()
}

var _ shared.SessionStore = (*RedisSessionStore)(nil)
