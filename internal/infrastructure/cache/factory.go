package cache

import (
	"fmt"

	"github.com/akau-shop/backend/internal/domain/shared"
	"github.com/akau-shop/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SessionStoreFactory creates session stores based on configuration
type SessionStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SessionStoreFactoryOption is a functional option for configuring the factory
type SessionStoreFactoryOption func(*SessionStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SessionStoreFactoryOption {
	return func(f *SessionStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory store
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SessionStoreFactoryOption {
	return func(f *SessionStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSessionStoreFactory creates a new factory
func NewSessionStoreFactory(cfg config.RedisConfig, opts ...SessionStoreFactoryOption) *SessionStoreFactory {
	f := &SessionStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-based session store
func (f *SessionStoreFactory) CreateRedisStore() (shared.SessionStore, error) {
	store, err := NewRedisSessionStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis session store: %w", err)
	}
	return store, nil
}

// CreateInMemoryStore creates an in-memory session store
func (f *SessionStoreFactory) CreateInMemoryStore() shared.SessionStore {
	return NewInMemorySessionStore()
}

// CreateStore tries Redis first and falls back to an in-memory store when
// Redis is unavailable and fallback is allowed. With the in-memory store
// admin logins do not survive a restart.
func (f *SessionStoreFactory) CreateStore() (shared.SessionStore, error) {
	store, err := f.CreateRedisStore()
	if err == nil {
		f.logger.Info("using Redis session store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for sessions but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory session store. "+
		"Admin logins will not survive a restart and are not shared across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
