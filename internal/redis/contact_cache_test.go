package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sosAlert/internal/domain"
	"sosAlert/pkg/e"
)

func newTestCache(t *testing.T) (*ContactCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewContactCache(&Redis{Client: client}), mr
}

func TestContactCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	user := &domain.User{
		ID:   "user-1",
		Name: "Alice",
		EmergencyContacts: []domain.Contact{
			{PushToken: "tok1"},
			{Phone: "+15551234567"},
		},
	}
	require.NoError(t, cache.Set(ctx, user, time.Minute))

	got, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestContactCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrCacheMiss))
}

func TestContactCache_Expires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{ID: "user-1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "user-1")
	assert.True(t, errors.Is(err, e.ErrCacheMiss))
}

func TestContactCache_CorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t)

	require.NoError(t, mr.Set("users:profile:user-1", "{not json"))

	_, err := cache.Get(context.Background(), "user-1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, e.ErrCacheMiss))
}
