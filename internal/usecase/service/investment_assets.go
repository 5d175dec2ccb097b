package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/dto"
)

// InvestmentAssetsService handles portfolio/asset associations.
// A row is only visible through the user-scoped reads to the owner of its portfolio.
type InvestmentAssetsService struct {
	*GenericService[domain.InvestmentAssets, dto.InvestmentAssetsDTO]
	PortfolioRepo domain.Repository[domain.InvestmentPortfolio]
}

// NewInvestmentAssetsService creates a new InvestmentAssetsService instance
func NewInvestmentAssetsService(
	repo domain.Repository[domain.InvestmentAssets],
	portfolioRepo domain.Repository[domain.InvestmentPortfolio],
	logger *zap.Logger,
) *InvestmentAssetsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvestmentAssetsService{
		GenericService: NewGenericService(repo, dto.InvestmentAssetsMapper, logger.Named("investment_assets_service")),
		PortfolioRepo:  portfolioRepo,
	}
}

// GetByAssetAndPortfolio returns the association of assetID with portfolioID,
// provided the portfolio belongs to userID
func (s *InvestmentAssetsService) GetByAssetAndPortfolio(ctx context.Context, assetID, portfolioID int, userID string) *dto.InvestmentAssetsDTO {
	out, _ := run(s.Logger, "get_by_asset_and_portfolio", func() (*dto.InvestmentAssetsDTO, error) {
		q := s.Repo.GetAllQueryWithInclude("Asset").
			Where("asset_id = ? AND investment_portfolio_id = ?", assetID, portfolioID).
			Where("investment_portfolio_id IN (?)", s.ownedPortfolioIDs(userID))
		return first(ctx, q, dto.InvestmentAssetsToDTO)
	})
	if out == nil {
		s.Logger.Debug("investment asset not found",
			zap.Int("asset_id", assetID),
			zap.Int("portfolio_id", portfolioID),
			zap.String("user_id", userID),
		)
	}
	return out
}

// GetByIDForUser returns the association identified by id when userID owns its portfolio
func (s *InvestmentAssetsService) GetByIDForUser(ctx context.Context, id int, userID string) *dto.InvestmentAssetsDTO {
	out, _ := run(s.Logger, "get_by_id_for_user", func() (*dto.InvestmentAssetsDTO, error) {
		q := s.Repo.GetAllQueryWithInclude("Asset", "InvestmentPortfolio").
			Where("id = ?", id).
			Where("investment_portfolio_id IN (?)", s.ownedPortfolioIDs(userID))
		return first(ctx, q, dto.InvestmentAssetsToDTO)
	})
	return out
}

// GetAllWithInclude lists the associations in portfolios owned by userID
func (s *InvestmentAssetsService) GetAllWithInclude(ctx context.Context, userID string) []dto.InvestmentAssetsDTO {
	return runList(s.Logger, "get_all_with_include", func() ([]dto.InvestmentAssetsDTO, error) {
		q := s.Repo.GetAllQueryWithInclude("Asset", "InvestmentPortfolio").
			Where("investment_portfolio_id IN (?)", s.ownedPortfolioIDs(userID))
		return list(ctx, q, dto.InvestmentAssetsToDTO)
	})
}

func (s *InvestmentAssetsService) ownedPortfolioIDs(userID string) domain.Query[domain.InvestmentPortfolio] {
	return ownedPortfolios(s.PortfolioRepo, userID).Select("id")
}
