// Package account implements the login and logout flow on top of a
// domain.SignInManager.
package account

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/dto"
)

const defaultLockoutWindow = 10 * time.Minute

// Service authenticates accounts. Expected failures are reported inside the
// response, never as an error.
type Service struct {
	SignIn        domain.SignInManager
	LockoutWindow time.Duration
	Logger        *zap.Logger
}

// NewService creates a new Service instance
func NewService(signIn domain.SignInManager, lockoutWindow time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lockoutWindow <= 0 {
		lockoutWindow = defaultLockoutWindow
	}
	return &Service{
		SignIn:        signIn,
		LockoutWindow: lockoutWindow,
		Logger:        logger.Named("account_service"),
	}
}

// Authenticate runs the login checks in order and stops at the first failure:
//  1. the user name must be registered
//  2. the email must be confirmed
//  3. the password must match while the account is not locked out
func (s *Service) Authenticate(ctx context.Context, login dto.LoginDTO) dto.LoginResponseDTO {
	user, err := s.SignIn.FindByUserName(ctx, login.UserName)
	if err != nil {
		return s.unexpected(login.UserName, "find_user", err)
	}
	if user == nil {
		return failure(login.UserName, fmt.Sprintf("There is no account registered with this username: %s", login.UserName))
	}

	if !user.EmailConfirmed {
		return failure(login.UserName, fmt.Sprintf("This account %s is not active, you should check your email", login.UserName))
	}

	result, err := s.SignIn.PasswordSignIn(ctx, login.UserName, login.Password)
	if err != nil {
		return s.unexpected(login.UserName, "password_sign_in", err)
	}
	if !result.Succeeded {
		if result.IsLockedOut {
			s.Logger.Warn("account locked out", zap.String("user_name", login.UserName))
			return failure(login.UserName, s.lockoutMessage(login.UserName))
		}
		return failure(login.UserName, fmt.Sprintf("these credentials are invalid for this user: %s", login.UserName))
	}

	roles, err := s.SignIn.GetRoles(ctx, user)
	if err != nil {
		return s.unexpected(login.UserName, "get_roles", err)
	}

	resp := dto.LoginResponseFromUser(*user, roles)
	resp.Token = result.SessionToken
	if !result.ExpiresAt.IsZero() {
		expiresAt := result.ExpiresAt
		resp.ExpiresAt = &expiresAt
	}
	s.Logger.Info("user signed in", zap.String("user_id", user.ID))
	return resp
}

// SignOut closes the caller's session. Failures are logged only.
func (s *Service) SignOut(ctx context.Context) {
	if err := s.SignIn.SignOut(ctx); err != nil {
		s.Logger.Error("sign out failed", zap.Error(err))
	}
}

func (s *Service) lockoutMessage(userName string) string {
	minutes := int(s.LockoutWindow.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("Your account %s has been locked due to multiple failed attempts. "+
		"Please try again in %d minutes. If you don’t remember your password, "+
		"you can go through the password reset process.", userName, minutes)
}

func (s *Service) unexpected(userName, op string, err error) dto.LoginResponseDTO {
	s.Logger.Error("sign in failed", zap.String("op", op), zap.String("user_name", userName), zap.Error(err))
	return failure(userName, "An unexpected error occurred while signing in")
}

func failure(userName, message string) dto.LoginResponseDTO {
	return dto.LoginResponseDTO{
		UserName: userName,
		Roles:    []string{},
		HasError: true,
		Errors:   []string{message},
	}
}
