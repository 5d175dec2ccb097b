package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

func newTestManager() *Manager {
	return NewManager(
		JWT{Secret: []byte("test-secret"), TokenTTL: time.Hour, Issuer: "investfolio-test"},
		NewMemoryStore(),
		"test:session:",
		zap.NewNop(),
	)
}

func TestJWT_SignAndVerify(t *testing.T) {
	j := JWT{Secret: []byte("secret"), TokenTTL: time.Minute, Issuer: "investfolio"}

	token, expiresAt, err := j.Sign(Claims{UserName: "jdoe", RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ID: "s1"}})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 5*time.Second)

	claims, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", claims.UserName)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "s1", claims.ID)
	assert.Equal(t, "investfolio", claims.Issuer)
}

func TestJWT_Verify_Rejects(t *testing.T) {
	j := JWT{Secret: []byte("secret"), TokenTTL: time.Minute}
	other := JWT{Secret: []byte("other"), TokenTTL: time.Minute}
	expired := JWT{Secret: []byte("secret"), TokenTTL: -time.Minute}

	foreign, _, err := other.Sign(Claims{UserName: "jdoe"})
	require.NoError(t, err)
	stale, _, err := expired.Sign(Claims{UserName: "jdoe"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "Garbage", token: "not-a-token"},
		{name: "Wrong secret", token: foreign},
		{name: "Expired", token: stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestManager_IssueValidateRevoke(t *testing.T) {
	// Setup
	ctx := context.Background()
	m := newTestManager()
	user := &domain.AppUser{ID: "user-1", UserName: "jdoe"}

	// Execute
	token, expiresAt, err := m.Issue(ctx, user, []string{domain.RoleBasic})
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	s, err := m.Validate(ctx, token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "user-1", s.UserID)
	assert.Equal(t, "jdoe", s.UserName)
	assert.Equal(t, []string{domain.RoleBasic}, s.Roles)
	assert.NotEmpty(t, s.ID)

	require.NoError(t, m.Revoke(ctx, s.ID))
	_, err = m.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestManager_Validate_InvalidToken(t *testing.T) {
	_, err := newTestManager().Validate(context.Background(), "bogus")

	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(time.Hour)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 50*time.Millisecond))
	require.NoError(t, store.Set(ctx, "forever", []byte("v"), 0))

	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	assert.Eventually(t, func() bool {
		_, ok, _ := store.Get(ctx, "k")
		return !ok
	}, time.Second, 10*time.Millisecond)

	_, ok, err = store.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_SweepsUnreadSessions(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(10 * time.Millisecond)

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, store.Set(ctx, key, []byte("v"), 20*time.Millisecond))
	}
	require.Equal(t, 3, store.items.ItemCount())

	assert.Eventually(t, func() bool {
		return store.items.ItemCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestContext_RoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), Session{ID: "s1", UserID: "u1"})
	s, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", s.UserID)
}
