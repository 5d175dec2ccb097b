// Package session issues bearer tokens and tracks the sessions behind them.
//
// A token is an HS256 JWT whose jti names a session record in a Store.
// Revoking the record invalidates the token before it expires.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

// ErrInvalidSession is returned for unparseable, expired or revoked tokens
var ErrInvalidSession = errors.New("invalid session")

// Session is the record stored for an open session
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Manager struct {
	JWT       JWT
	Store     Store
	KeyPrefix string
	Logger    *zap.Logger
}

// NewManager creates a new session Manager
func NewManager(j JWT, store Store, keyPrefix string, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		JWT:       j,
		Store:     store,
		KeyPrefix: keyPrefix,
		Logger:    logger.Named("session"),
	}
}

// Issue opens a session for user and returns its signed token
func (m *Manager) Issue(ctx context.Context, user *domain.AppUser, roles []string) (string, time.Time, error) {
	sid := uuid.NewString()
	token, expiresAt, err := m.JWT.Sign(Claims{
		UserName: user.UserName,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID,
			ID:      sid,
		},
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	record, err := json.Marshal(Session{
		ID:        sid,
		UserID:    user.ID,
		UserName:  user.UserName,
		Roles:     roles,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := m.Store.Set(ctx, m.key(sid), record, time.Until(expiresAt)); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store session: %w", err)
	}

	m.Logger.Info("session opened", zap.String("user_id", user.ID), zap.String("session_id", sid))
	return token, expiresAt, nil
}

// Validate returns the open session behind token
func (m *Manager) Validate(ctx context.Context, token string) (Session, error) {
	claims, err := m.JWT.Verify(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	raw, ok, err := m.Store.Get(ctx, m.key(claims.ID))
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return Session{}, fmt.Errorf("%w: session revoked", ErrInvalidSession)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return s, nil
}

// Revoke closes the session identified by sessionID
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if err := m.Store.Delete(ctx, m.key(sessionID)); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	m.Logger.Info("session closed", zap.String("session_id", sessionID))
	return nil
}

func (m *Manager) key(sessionID string) string {
	return m.KeyPrefix + sessionID
}

type ctxKey int

const sessionKey ctxKey = 1

// WithSession attaches s to ctx
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session attached to ctx
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}
