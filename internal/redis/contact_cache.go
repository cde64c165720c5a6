package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sosAlert/internal/domain"
	"sosAlert/pkg/e"

	goredis "github.com/redis/go-redis/v9"
)

type ContactCache struct {
	client *goredis.Client
	prefix string
}

func NewContactCache(r *Redis) *ContactCache {
	return &ContactCache{
		client: r.Client,
		prefix: "users:profile:",
	}
}

func (c *ContactCache) key(userID string) string {
	return c.prefix + userID
}

// Get returns e.ErrCacheMiss when no profile is cached for the user.
func (c *ContactCache) Get(ctx context.Context, userID string) (*domain.User, error) {
	const op = "redis.ContactCache.Get"

	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrCacheMiss)
		}
		return nil, e.Wrap(op, err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, e.Wrap(op, err)
	}

	return &user, nil
}

func (c *ContactCache) Set(ctx context.Context, user *domain.User, ttl time.Duration) error {
	const op = "redis.ContactCache.Set"

	b, err := json.Marshal(user)
	if err != nil {
		return e.Wrap(op, err)
	}
	if err := c.client.Set(ctx, c.key(user.ID), b, ttl).Err(); err != nil {
		return e.Wrap(op, err)
	}
	return nil
}
