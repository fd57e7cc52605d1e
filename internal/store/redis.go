package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/GoRBAC-Admin/GoRBAC-Admin/internal/config"
)

const defaultRedisTimeout = 3 * time.Second

// Ensure RedisStorage implements the fiber.Storage interface.
var _ fiber.Storage = (*RedisStorage)(nil)

// RedisStorage keeps values as plain redis strings.
type RedisStorage struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedis connects to redis and verifies the connection with a ping.
func NewRedis(cfg config.Redis) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	s := NewRedisClient(client, cfg.Timeout)

	ctx, cancel := s.context()
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return s, nil
}

// NewRedisClient wraps an existing client. A zero timeout uses the default.
func NewRedisClient(client *redis.Client, timeout time.Duration) *RedisStorage {
	if timeout <= 0 {
		timeout = defaultRedisTimeout
	}

	return &RedisStorage{client: client, timeout: timeout}
}

func (s *RedisStorage) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get returns the value for key, or nil when absent.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	ctx, cancel := s.context()
	defer cancel()

	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	return val, err
}

// Set overwrites the value for key. A zero exp keeps it forever.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	ctx, cancel := s.context()
	defer cancel()

	return s.client.Set(ctx, key, val, exp).Err()
}

// Delete removes key.
func (s *RedisStorage) Delete(key string) error {
	ctx, cancel := s.context()
	defer cancel()

	return s.client.Del(ctx, key).Err()
}

// Reset removes the collection keys. Other keys in the database are left alone.
func (s *RedisStorage) Reset() error {
	ctx, cancel := s.context()
	defer cancel()

	return s.client.Del(ctx, Keys...).Err()
}

// Close closes the client.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
