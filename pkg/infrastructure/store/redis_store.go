package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vsinha/importdesk/pkg/config"
)

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
}

// RedisStore keeps each collection under a namespaced redis string key
type RedisStore struct {
	client    cmdable
	raw       *redis.Client
	namespace string
}

// NewRedisStore connects to redis and verifies connectivity
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, namespace string) (*RedisStore, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: raw, raw: raw, namespace: namespace}, nil
}

func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

var _ Store = (*RedisStore)(nil)

// Key returns the fully qualified redis key for a collection
func (s *RedisStore) Key(key string) string {
	return namespacedKey(s.namespace, key)
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, errors.New("redis client not initialized")
	}
	value, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if s.client == nil {
		return errors.New("redis client not initialized")
	}
	if err := s.client.Set(ctx, s.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s.raw == nil {
		return nil
	}
	return s.raw.Close()
}
