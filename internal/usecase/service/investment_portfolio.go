package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/dto"
)

// InvestmentPortfolioService handles portfolios. Reads taking a user id only
// see portfolios owned by that user; a foreign portfolio reads as not found.
type InvestmentPortfolioService struct {
	*GenericService[domain.InvestmentPortfolio, dto.InvestmentPortfolioDTO]
}

// NewInvestmentPortfolioService creates a new InvestmentPortfolioService instance
func NewInvestmentPortfolioService(repo domain.Repository[domain.InvestmentPortfolio], logger *zap.Logger) *InvestmentPortfolioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvestmentPortfolioService{
		GenericService: NewGenericService(repo, dto.InvestmentPortfolioMapper, logger.Named("portfolio_service")),
	}
}

// GetByID returns the portfolio regardless of its owner
func (s *InvestmentPortfolioService) GetByID(ctx context.Context, id int) *dto.InvestmentPortfolioDTO {
	out, _ := run(s.Logger, "get_by_id", func() (*dto.InvestmentPortfolioDTO, error) {
		return first(ctx, s.Repo.GetAllQuery().Where("id = ?", id), dto.InvestmentPortfolioToDTO)
	})
	return out
}

// GetByIDForUser returns the portfolio only when userID owns it
func (s *InvestmentPortfolioService) GetByIDForUser(ctx context.Context, id int, userID string) *dto.InvestmentPortfolioDTO {
	out, _ := run(s.Logger, "get_by_id_for_user", func() (*dto.InvestmentPortfolioDTO, error) {
		q := s.Repo.GetAllQuery().Where("id = ? AND user_id = ?", id, userID)
		return first(ctx, q, dto.InvestmentPortfolioToDTO)
	})
	if out == nil {
		s.Logger.Debug("portfolio not visible", zap.Int("id", id), zap.String("user_id", userID))
	}
	return out
}

// GetAllWithIncludeByUser lists the portfolios owned by userID, by name
func (s *InvestmentPortfolioService) GetAllWithIncludeByUser(ctx context.Context, userID string) []dto.InvestmentPortfolioDTO {
	return runList(s.Logger, "get_all_by_user", func() ([]dto.InvestmentPortfolioDTO, error) {
		return list(ctx, ownedPortfolios(s.Repo, userID).OrderBy("name"), dto.InvestmentPortfolioToDTO)
	})
}

// ownedPortfolios is the deferred query of the portfolios owned by userID
func ownedPortfolios(repo domain.Repository[domain.InvestmentPortfolio], userID string) domain.Query[domain.InvestmentPortfolio] {
	return repo.GetAllQuery().Where("user_id = ?", userID)
}
