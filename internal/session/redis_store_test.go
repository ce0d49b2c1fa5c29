package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore_SessionLifecycle(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	m := NewManager(store, time.Minute, zap.NewNop().Sugar())
	s, err := m.Create(ctx, "127.0.0.1")
	require.NoError(t, err)

	// Срок жизни ключа берётся из ExpiresAt.
	ttl := mr.TTL(redisKey(s.ID))
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)

	got, err := m.Validate(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "127.0.0.1", got.IP)
	assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, m.Destroy(ctx, s.ID))
	assert.False(t, mr.Exists(redisKey(s.ID)))
	_, err = m.Validate(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_KeyExpires(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	m := NewManager(store, time.Minute, zap.NewNop().Sugar())
	s, err := m.Create(ctx, "127.0.0.1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_GetUnknown(t *testing.T) {
	store, _ := newTestRedisStore(t)

	_, err := store.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_SaveExpiredSession(t *testing.T) {
	store, mr := newTestRedisStore(t)
	now := time.Now()
	s := Session{ID: uuid.NewString(), CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}

	err := store.Save(context.Background(), s)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, mr.Exists(redisKey(s.ID)))
}

func TestRedisStore_Ping(t *testing.T) {
	store, _ := newTestRedisStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}
