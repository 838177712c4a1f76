// Package redisstore backs the credential store with Redis, for deployments
// where the console core runs server-side and sessions must be shared across
// instances.
package redisstore

import (
	"context"

	"github.com/devicepulse/console/storage"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	client *redis.Client
	prefix string
}

// New wraps an injected Redis client. prefix namespaces the credential keys,
// e.g. "console:session:".
func New(client *redis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[redisstore.Get] redis get")
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errors.Wrap(err, "[redisstore.Set] redis set")
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Wrap(err, "[redisstore.Remove] redis del")
	}
	return nil
}
