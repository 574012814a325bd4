package storage

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// StoreType names a storage driver.
type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeFile   StoreType = "file"
	StoreTypeSQLite StoreType = "sqlite"
	StoreTypeRedis  StoreType = "redis"
)

// StoreOption configures NewStore.
type StoreOption func(*storeConfig)

type storeConfig struct {
	path        string
	redisClient *redis.Client
	redisPrefix string
	redisTTL    time.Duration
}

// WithPath sets the directory (file driver) or database file (sqlite driver).
func WithPath(path string) StoreOption {
	return func(c *storeConfig) {
		c.path = path
	}
}

// WithRedisClient sets the client used by the redis driver.
func WithRedisClient(client *redis.Client) StoreOption {
	return func(c *storeConfig) {
		c.redisClient = client
	}
}

// WithRedisPrefix namespaces every key written by the redis driver.
func WithRedisPrefix(prefix string) StoreOption {
	return func(c *storeConfig) {
		c.redisPrefix = prefix
	}
}

// WithRedisTTL expires redis keys after ttl; zero keeps them forever.
func WithRedisTTL(ttl time.Duration) StoreOption {
	return func(c *storeConfig) {
		c.redisTTL = ttl
	}
}

// NewStore creates a Store for the given driver.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	cfg := &storeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	switch storeType {
	case StoreTypeMemory:
		return NewMemoryStore(), nil
	case StoreTypeFile:
		if cfg.path == "" {
			return nil, ErrInvalidConfig
		}
		return NewFileStore(cfg.path)
	case StoreTypeSQLite:
		if cfg.path == "" {
			return nil, ErrInvalidConfig
		}
		return NewSQLiteStore(cfg.path)
	case StoreTypeRedis:
		if cfg.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return NewRedisStore(cfg.redisClient, cfg.redisPrefix, cfg.redisTTL), nil
	default:
		return nil, ErrInvalidStoreType
	}
}
