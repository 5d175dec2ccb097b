package gormrepo

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

// AutoMigrate creates or updates the schema of every persisted entity
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	if err := db.AutoMigrate(
		&domain.AssetType{},
		&domain.Asset{},
		&domain.AssetHistory{},
		&domain.InvestmentPortfolio{},
		&domain.InvestmentAssets{},
		&domain.AppUser{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
