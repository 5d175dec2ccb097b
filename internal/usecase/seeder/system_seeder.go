package seeder

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

// DefaultAssetTypes are the reference asset types every installation starts with
var DefaultAssetTypes = []domain.AssetType{
	{Name: "Stocks", Description: "Shares of publicly traded companies"},
	{Name: "Crypto", Description: "Cryptocurrencies and digital tokens"},
	{Name: "ETF", Description: "Exchange traded funds"},
	{Name: "Bonds", Description: "Government and corporate debt"},
}

// AccountStore creates the bootstrap administrator
type AccountStore interface {
	FindByUserName(ctx context.Context, userName string) (*domain.AppUser, error)
	CreateAdmin(ctx context.Context, userName, email, password string) (*domain.AppUser, error)
}

// AdminAccount describes the administrator to create when missing
type AdminAccount struct {
	UserName string
	Email    string
	Password string
}

// SystemSeeder handles seeding of reference data
type SystemSeeder struct {
	// AssetTypes enables seeding of DefaultAssetTypes
	AssetTypes bool

	repo     domain.Repository[domain.AssetType]
	accounts AccountStore
	admin    *AdminAccount
	logger   *zap.Logger
}

// NewSystemSeeder creates a new SystemSeeder instance.
// accounts and admin may be nil, in which case no account is seeded.
func NewSystemSeeder(repo domain.Repository[domain.AssetType], accounts AccountStore, admin *AdminAccount, logger *zap.Logger) *SystemSeeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemSeeder{
		AssetTypes: true,
		repo:       repo,
		accounts:   accounts,
		admin:      admin,
		logger:     logger.Named("seeder"),
	}
}

// Seed ensures the default asset types exist, matching names case-insensitively,
// and creates the administrator account if configured and missing
func (s *SystemSeeder) Seed(ctx context.Context) error {
	if s.AssetTypes {
		if err := s.seedAssetTypes(ctx); err != nil {
			return err
		}
	}
	return s.seedAdmin(ctx)
}

func (s *SystemSeeder) seedAssetTypes(ctx context.Context) error {
	existing, err := s.repo.GetAllList(ctx)
	if err != nil {
		return fmt.Errorf("failed to list asset types: %w", err)
	}

	present := make(map[string]bool, len(existing))
	for _, at := range existing {
		present[strings.ToLower(at.Name)] = true
	}

	var missing []domain.AssetType
	for _, at := range DefaultAssetTypes {
		if !present[strings.ToLower(at.Name)] {
			missing = append(missing, at)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if _, err := s.repo.AddRange(ctx, missing); err != nil {
		return fmt.Errorf("failed to seed asset types: %w", err)
	}
	s.logger.Info("seeded asset types", zap.Int("count", len(missing)))
	return nil
}

func (s *SystemSeeder) seedAdmin(ctx context.Context) error {
	if s.accounts == nil || s.admin == nil || s.admin.UserName == "" || s.admin.Password == "" {
		return nil
	}

	user, err := s.accounts.FindByUserName(ctx, s.admin.UserName)
	if err != nil {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}
	if user != nil {
		return nil
	}

	if _, err := s.accounts.CreateAdmin(ctx, s.admin.UserName, s.admin.Email, s.admin.Password); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	s.logger.Info("seeded admin account", zap.String("user_name", s.admin.UserName))
	return nil
}
