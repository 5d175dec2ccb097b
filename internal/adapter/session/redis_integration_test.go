//go:build integration

package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

func TestRedisStore_SessionLifecycle(t *testing.T) {
	addr := os.Getenv("INVESTFOLIO_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	store := NewRedisStore(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	m := NewManager(JWT{Secret: []byte("integration"), TokenTTL: time.Minute}, store, "investfolio:test:session:", zap.NewNop())

	token, _, err := m.Issue(ctx, &domain.AppUser{ID: "it-user", UserName: "it"}, nil)
	require.NoError(t, err)

	s, err := m.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "it-user", s.UserID)

	ttl, err := store.Client.TTL(ctx, m.key(s.ID)).Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)

	require.NoError(t, m.Revoke(ctx, s.ID))
	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
