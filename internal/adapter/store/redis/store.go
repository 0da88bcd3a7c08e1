// Package redis stores keys in Redis, retrying transient failures with backoff.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store implements usecase.KeyValueStore using Redis.
type Store struct {
	client     *redis.Client
	prefix     string
	maxRetries uint64
	logger     zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithMaxRetries sets how often a failed command is retried.
func WithMaxRetries(n int) Option {
	return func(s *Store) {
		if n >= 0 {
			s.maxRetries = uint64(n)
		}
	}
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New creates a new Store. Every key is stored under prefix.
func New(client *redis.Client, prefix string, opts ...Option) *Store {
	s := &Store{
		client:     client,
		prefix:     prefix,
		maxRetries: 3,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) retry(ctx context.Context, op string, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 5 * time.Second

	attempt := 0
	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		attempt++
		s.logger.Warn().Err(err).Str("op", op).Int("retry", attempt).Msg("redis command failed, retrying")
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, s.maxRetries), ctx))
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.retry(ctx, "get", func() error {
		var err error
		value, err = s.client.Get(ctx, s.prefix+key).Result()
		return err
	})
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores a value without expiry.
func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.retry(ctx, "set", func() error {
		return s.client.Set(ctx, s.prefix+key, value, 0).Err()
	})
}

// Remove removes a key.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.retry(ctx, "del", func() error {
		return s.client.Del(ctx, s.prefix+key).Err()
	})
}
