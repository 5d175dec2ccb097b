package domain

import "errors"

// InvestmentPortfolio is a named set of assets owned by a single user
type InvestmentPortfolio struct {
	ID          int    `gorm:"primaryKey"`
	Name        string `gorm:"size:150;not null"`
	Description string `gorm:"size:500"`
	UserID      string `gorm:"size:64;not null;index"`
}

// Validate ensures the portfolio has a name and an owner
func (p *InvestmentPortfolio) Validate() error {
	if p.Name == "" {
		return errors.New("portfolio name cannot be empty")
	}
	if p.UserID == "" {
		return errors.New("portfolio must belong to a user")
	}
	return nil
}

// InvestmentAssets associates an Asset with an InvestmentPortfolio.
// A row is only visible to the owner of its portfolio and goes away with
// either side of the link.
type InvestmentAssets struct {
	ID                    int                  `gorm:"primaryKey"`
	AssetID               int                  `gorm:"not null;index"`
	Asset                 *Asset               `gorm:"foreignKey:AssetID"`
	InvestmentPortfolioID int                  `gorm:"not null;index"`
	InvestmentPortfolio   *InvestmentPortfolio `gorm:"foreignKey:InvestmentPortfolioID;constraint:OnDelete:CASCADE"`
}

// OwnedBy reports whether the loaded portfolio belongs to userID
func (ia *InvestmentAssets) OwnedBy(userID string) bool {
	return ia.InvestmentPortfolio != nil && ia.InvestmentPortfolio.UserID == userID
}

func (InvestmentPortfolio) TableName() string { return "investment_portfolios" }
func (InvestmentAssets) TableName() string    { return "investment_assets" }
