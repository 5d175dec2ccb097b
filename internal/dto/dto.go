// Package dto holds the transfer objects exchanged at the service boundary
// and the pure functions that map them to and from domain entities.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetTypeDTO struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Assets      []AssetDTO `json:"assets,omitempty"`
}

type AssetDTO struct {
	ID             int               `json:"id"`
	Name           string            `json:"name"`
	Description    *string           `json:"description,omitempty"`
	Symbol         string            `json:"symbol"`
	AssetTypeID    int               `json:"assetTypeId"`
	AssetType      *AssetTypeDTO     `json:"assetType,omitempty"`
	AssetHistories []AssetHistoryDTO `json:"assetHistories,omitempty"`
}

type AssetHistoryDTO struct {
	ID               int             `json:"id"`
	AssetID          int             `json:"assetId"`
	HistoryValueDate time.Time       `json:"historyValueDate"`
	Value            decimal.Decimal `json:"value"`
	Asset            *AssetDTO       `json:"asset,omitempty"`
}

// AssetForPortfolioDTO is the flattened asset shape listed inside a portfolio
type AssetForPortfolioDTO struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Symbol        string          `json:"symbol"`
	AssetTypeID   int             `json:"assetTypeId"`
	AssetTypeName string          `json:"assetTypeName"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
}

type InvestmentPortfolioDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
}

type InvestmentAssetsDTO struct {
	ID                    int                     `json:"id"`
	AssetID               int                     `json:"assetId"`
	InvestmentPortfolioID int                     `json:"investmentPortfolioId"`
	Asset                 *AssetDTO               `json:"asset,omitempty"`
	InvestmentPortfolio   *InvestmentPortfolioDTO `json:"investmentPortfolio,omitempty"`
}

type LoginDTO struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponseDTO reports the outcome of a login attempt.
// HasError is set with a non-empty Errors list for every failed attempt.
type LoginResponseDTO struct {
	ID         string     `json:"id,omitempty"`
	Email      string     `json:"email,omitempty"`
	UserName   string     `json:"userName"`
	Name       string     `json:"name,omitempty"`
	LastName   string     `json:"lastName,omitempty"`
	IsVerified bool       `json:"isVerified"`
	Roles      []string   `json:"roles"`
	HasError   bool       `json:"hasError"`
	Errors     []string   `json:"errors"`
	Token      string     `json:"token,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// PortfolioValuationDTO summarises the current value of a portfolio
type PortfolioValuationDTO struct {
	PortfolioID int                     `json:"portfolioId"`
	AssetCount  int                     `json:"assetCount"`
	TotalValue  decimal.Decimal         `json:"totalValue"`
	ByAssetType []AssetTypeValuationDTO `json:"byAssetType"`
}

type AssetTypeValuationDTO struct {
	AssetTypeID   int             `json:"assetTypeId"`
	AssetTypeName string          `json:"assetTypeName"`
	Value         decimal.Decimal `json:"value"`
}
