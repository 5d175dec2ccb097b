package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/adapter/session"
	"github.com/simaogato/investfolio-backend/internal/domain"
)

// SignInManager implements domain.SignInManager over the user store and
// the session manager
type SignInManager struct {
	Users    *UserManager
	Sessions *session.Manager
	Logger   *zap.Logger
}

// NewSignInManager creates a new SignInManager instance
func NewSignInManager(users *UserManager, sessions *session.Manager, logger *zap.Logger) *SignInManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignInManager{
		Users:    users,
		Sessions: sessions,
		Logger:   logger.Named("sign_in"),
	}
}

func (s *SignInManager) FindByUserName(ctx context.Context, userName string) (*domain.AppUser, error) {
	return s.Users.FindByUserName(ctx, userName)
}

// PasswordSignIn checks the password with lockout tracking and opens a
// session when it matches
func (s *SignInManager) PasswordSignIn(ctx context.Context, userName, password string) (domain.SignInResult, error) {
	user, err := s.Users.FindByUserName(ctx, userName)
	if err != nil {
		return domain.SignInResult{}, err
	}
	if user == nil {
		return domain.SignInResult{}, nil
	}

	ok, lockedOut, err := s.Users.CheckPassword(ctx, user, password)
	if err != nil {
		return domain.SignInResult{}, err
	}
	if !ok {
		return domain.SignInResult{IsLockedOut: lockedOut}, nil
	}

	roles, err := s.GetRoles(ctx, user)
	if err != nil {
		return domain.SignInResult{}, err
	}
	token, expiresAt, err := s.Sessions.Issue(ctx, user, roles)
	if err != nil {
		return domain.SignInResult{}, err
	}

	return domain.SignInResult{
		Succeeded:    true,
		SessionToken: token,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *SignInManager) GetRoles(_ context.Context, user *domain.AppUser) ([]string, error) {
	roles := make([]string, len(user.Roles))
	copy(roles, user.Roles)
	return roles, nil
}

// SignOut revokes the session attached to ctx. Without one it does nothing.
func (s *SignInManager) SignOut(ctx context.Context) error {
	current, ok := session.FromContext(ctx)
	if !ok {
		return nil
	}
	return s.Sessions.Revoke(ctx, current.ID)
}
