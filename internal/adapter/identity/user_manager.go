// Package identity stores application users and verifies their credentials.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simaogato/investfolio-backend/internal/adapter/repository/gormrepo"
	"github.com/simaogato/investfolio-backend/internal/config"
	"github.com/simaogato/investfolio-backend/internal/domain"
)

// NewUser describes an account to register
type NewUser struct {
	UserName       string
	Email          string
	Name           string
	LastName       string
	Password       string
	Roles          []string
	EmailConfirmed bool
}

// UserManager persists accounts and enforces the failed-attempt lockout policy.
// MaxFailedAttempts consecutive failures lock the account for LockoutDuration.
type UserManager struct {
	DB                *gorm.DB
	MaxFailedAttempts int
	LockoutDuration   time.Duration
	HashCost          int
	Now               func() time.Time
	Logger            *zap.Logger
}

// NewUserManager creates a new UserManager instance
func NewUserManager(db *gormrepo.DB, cfg config.AuthConfig, logger *zap.Logger) *UserManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserManager{
		DB:                db.Gorm,
		MaxFailedAttempts: cfg.MaxFailedAttempts,
		LockoutDuration:   cfg.LockoutDuration,
		HashCost:          bcrypt.DefaultCost,
		Now:               time.Now,
		Logger:            logger.Named("user_manager"),
	}
}

// FindByUserName returns the account registered under userName, or nil
func (m *UserManager) FindByUserName(ctx context.Context, userName string) (*domain.AppUser, error) {
	var user domain.AppUser
	err := m.DB.WithContext(ctx).Where("user_name = ?", userName).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by name: %w", err)
	}
	return &user, nil
}

// CreateUser registers an account with a bcrypt password hash
func (m *UserManager) CreateUser(ctx context.Context, in NewUser) (*domain.AppUser, error) {
	if in.UserName == "" {
		return nil, errors.New("user name cannot be empty")
	}
	if in.Password == "" {
		return nil, errors.New("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), m.HashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{domain.RoleBasic}
	}

	user := &domain.AppUser{
		ID:             uuid.NewString(),
		UserName:       in.UserName,
		Email:          in.Email,
		Name:           in.Name,
		LastName:       in.LastName,
		EmailConfirmed: in.EmailConfirmed,
		PasswordHash:   string(hash),
		LockoutEnabled: true,
		Roles:          roles,
	}
	if err := m.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	m.Logger.Info("user created", zap.String("user_id", user.ID), zap.String("user_name", user.UserName))
	return user, nil
}

// CreateAdmin registers a confirmed account holding the Admin and Basic roles
func (m *UserManager) CreateAdmin(ctx context.Context, userName, email, password string) (*domain.AppUser, error) {
	return m.CreateUser(ctx, NewUser{
		UserName:       userName,
		Email:          email,
		Password:       password,
		Roles:          []string{domain.RoleAdmin, domain.RoleBasic},
		EmailConfirmed: true,
	})
}

// CheckPassword verifies password against user with lockout tracking.
// Logic:
//   - A locked account fails without checking the password
//   - A match clears the failure count
//   - A mismatch counts a failure against the stored row; reaching
//     MaxFailedAttempts locks the account for LockoutDuration and restarts
//     the count
//
// user is refreshed with the stored lockout state.
func (m *UserManager) CheckPassword(ctx context.Context, user *domain.AppUser, password string) (succeeded, lockedOut bool, err error) {
	now := m.Now()
	if user.IsLockedOut(now) {
		return false, true, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err == nil {
		if err := m.resetLockout(ctx, user); err != nil {
			return false, false, err
		}
		return true, false, nil
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, false, fmt.Errorf("failed to verify password: %w", err)
	}

	if !user.LockoutEnabled {
		return false, false, nil
	}

	lockedOut, err = m.recordFailure(ctx, user, now)
	if err != nil {
		return false, false, err
	}
	return false, lockedOut, nil
}

// recordFailure increments the failure count under a row lock so parallel
// attempts cannot read the same count.
func (m *UserManager) recordFailure(ctx context.Context, user *domain.AppUser, now time.Time) (bool, error) {
	var stored domain.AppUser
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", user.ID).
			First(&stored).Error
		if err != nil {
			return err
		}
		if stored.IsLockedOut(now) {
			return nil
		}

		stored.AccessFailedCount++
		if stored.AccessFailedCount >= m.MaxFailedAttempts {
			end := now.Add(m.LockoutDuration)
			stored.LockoutEnd = &end
			stored.AccessFailedCount = 0
			m.Logger.Warn("user locked out",
				zap.String("user_id", stored.ID),
				zap.Time("lockout_end", end),
			)
		}
		return tx.Model(&stored).
			Select("access_failed_count", "lockout_end").
			Updates(&stored).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to save lockout state: %w", err)
	}

	user.AccessFailedCount = stored.AccessFailedCount
	user.LockoutEnd = stored.LockoutEnd
	return stored.IsLockedOut(now), nil
}

// resetLockout clears the failure count and any expired lockout
func (m *UserManager) resetLockout(ctx context.Context, user *domain.AppUser) error {
	err := m.DB.WithContext(ctx).
		Model(&domain.AppUser{}).
		Where("id = ? AND (access_failed_count > 0 OR lockout_end IS NOT NULL)", user.ID).
		Updates(map[string]any{"access_failed_count": 0, "lockout_end": nil}).Error
	if err != nil {
		return fmt.Errorf("failed to save lockout state: %w", err)
	}
	user.AccessFailedCount = 0
	user.LockoutEnd = nil
	return nil
}
