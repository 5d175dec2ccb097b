package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AssetType groups assets by category (stock, crypto, bond...)
type AssetType struct {
	ID          int     `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null"`
	Description string  `gorm:"size:500"`
	Assets      []Asset `gorm:"foreignKey:AssetTypeID"`
}

// Asset represents a tradable instrument tracked by the application
// Name and Symbol are never NULL, an absent value is stored as "".
// Deleting an asset removes its history and its portfolio links.
type Asset struct {
	ID               int                `gorm:"primaryKey"`
	Name             string             `gorm:"size:150;not null"`
	Description      *string            `gorm:"size:500"`
	Symbol           string             `gorm:"size:20;not null"`
	AssetTypeID      int                `gorm:"not null;index"`
	AssetType        *AssetType         `gorm:"foreignKey:AssetTypeID"`
	AssetHistories   []AssetHistory     `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	InvestmentAssets []InvestmentAssets `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// LatestHistory returns the history entry with the most recent value date.
// Entries sharing a date are resolved by the highest ID. Returns nil when the
// asset has no loaded history.
func (a *Asset) LatestHistory() *AssetHistory {
	var latest *AssetHistory
	for i := range a.AssetHistories {
		h := &a.AssetHistories[i]
		if latest == nil ||
			h.HistoryValueDate.After(latest.HistoryValueDate) ||
			(h.HistoryValueDate.Equal(latest.HistoryValueDate) && h.ID > latest.ID) {
			latest = h
		}
	}
	return latest
}

// CurrentValue is the value of the latest history entry, zero without history
func (a *Asset) CurrentValue() decimal.Decimal {
	if latest := a.LatestHistory(); latest != nil {
		return latest.Value
	}
	return decimal.Zero
}

// AssetHistory records the value of an asset at a given date.
// HistoryValueDate is immutable once persisted.
type AssetHistory struct {
	ID               int             `gorm:"primaryKey"`
	AssetID          int             `gorm:"not null;index"`
	Asset            *Asset          `gorm:"foreignKey:AssetID"`
	HistoryValueDate time.Time       `gorm:"not null"`
	Value            decimal.Decimal `gorm:"type:numeric(18,4);not null"`
}

// Validate ensures the history entry references an asset and carries a date
func (h *AssetHistory) Validate() error {
	if h.AssetID <= 0 {
		return errors.New("asset history must reference an asset")
	}
	if h.HistoryValueDate.IsZero() {
		return errors.New("asset history value date cannot be empty")
	}
	return nil
}

func (AssetType) TableName() string    { return "asset_types" }
func (Asset) TableName() string        { return "assets" }
func (AssetHistory) TableName() string { return "asset_histories" }
