package valuation

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/dto"
)

const entityPortfolio = "Investment Portfolio"

// ValuationService values portfolios from the latest recorded asset prices
type ValuationService struct {
	PortfolioRepo        domain.Repository[domain.InvestmentPortfolio]
	InvestmentAssetsRepo domain.Repository[domain.InvestmentAssets]
	AssetRepo            domain.Repository[domain.Asset]
	Logger               *zap.Logger
}

// NewValuationService creates a new ValuationService instance
func NewValuationService(
	portfolioRepo domain.Repository[domain.InvestmentPortfolio],
	investmentAssetsRepo domain.Repository[domain.InvestmentAssets],
	assetRepo domain.Repository[domain.Asset],
	logger *zap.Logger,
) *ValuationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValuationService{
		PortfolioRepo:        portfolioRepo,
		InvestmentAssetsRepo: investmentAssetsRepo,
		AssetRepo:            assetRepo,
		Logger:               logger.Named("valuation_service"),
	}
}

// GetPortfolioValuation calculates the current value of a portfolio owned by userID
// Logic:
//   - A missing or foreign portfolio is a 404
//   - Each held asset contributes the value of its latest history entry
//     (assets without history count as zero)
//   - Total: sum over all held assets, also broken down per asset type
func (s *ValuationService) GetPortfolioValuation(ctx context.Context, portfolioID int, userID string) (*dto.PortfolioValuationDTO, error) {
	// 1. Ownership
	portfolio, err := s.PortfolioRepo.GetAllQuery().
		Where("id = ? AND user_id = ?", portfolioID, userID).
		FirstOrDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	if portfolio == nil {
		return nil, domain.NotFoundError(entityPortfolio)
	}

	result := &dto.PortfolioValuationDTO{
		PortfolioID: portfolio.ID,
		TotalValue:  decimal.Zero,
		ByAssetType: []dto.AssetTypeValuationDTO{},
	}

	// 2. Held assets
	assetIDs, err := s.InvestmentAssetsRepo.GetAllQuery().
		Where("investment_portfolio_id = ?", portfolio.ID).
		PluckInts(ctx, "asset_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio assets: %w", err)
	}
	if len(assetIDs) == 0 {
		return result, nil
	}

	assets, err := s.AssetRepo.GetAllQueryWithInclude("AssetType", "AssetHistories").
		Where("id IN ?", assetIDs).
		ToList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	// 3. Sum per asset type
	byType := make(map[int]*dto.AssetTypeValuationDTO)
	for i := range assets {
		asset := &assets[i]
		value := asset.CurrentValue()
		result.TotalValue = result.TotalValue.Add(value)

		entry, ok := byType[asset.AssetTypeID]
		if !ok {
			entry = &dto.AssetTypeValuationDTO{AssetTypeID: asset.AssetTypeID, Value: decimal.Zero}
			if asset.AssetType != nil {
				entry.AssetTypeName = asset.AssetType.Name
			}
			byType[asset.AssetTypeID] = entry
		}
		entry.Value = entry.Value.Add(value)
	}
	result.AssetCount = len(assets)

	for _, entry := range byType {
		result.ByAssetType = append(result.ByAssetType, *entry)
	}
	slices.SortFunc(result.ByAssetType, func(a, b dto.AssetTypeValuationDTO) int {
		return strings.Compare(a.AssetTypeName, b.AssetTypeName)
	})

	s.Logger.Debug("portfolio valued",
		zap.Int("portfolio_id", portfolio.ID),
		zap.Int("asset_count", result.AssetCount),
		zap.String("total", result.TotalValue.String()))
	return result, nil
}
