package service

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/dto"
)

// AssetOrder selects the ordering of a portfolio asset listing
type AssetOrder int

const (
	// AssetOrderByName sorts by name ascending using locale-independent
	// collation, so case does not split the alphabet. Unknown codes fall back to it.
	AssetOrderByName AssetOrder = 0
	// AssetOrderByCurrentValue sorts by current value descending
	AssetOrderByCurrentValue AssetOrder = 1
)

// PortfolioAssetFilter narrows GetAllAssetsByPortfolioID.
// An empty Name and a nil AssetTypeID disable the respective filter.
type PortfolioAssetFilter struct {
	Name        string
	AssetTypeID *int
	OrderBy     AssetOrder
}

// AssetService handles asset reads, including per-portfolio listings
type AssetService struct {
	*GenericService[domain.Asset, dto.AssetDTO]
	InvestmentAssetsRepo domain.Repository[domain.InvestmentAssets]
}

// NewAssetService creates a new AssetService instance
func NewAssetService(
	assetRepo domain.Repository[domain.Asset],
	investmentAssetsRepo domain.Repository[domain.InvestmentAssets],
	logger *zap.Logger,
) *AssetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetService{
		GenericService:       NewGenericService(assetRepo, dto.AssetMapper, logger.Named("asset_service")),
		InvestmentAssetsRepo: investmentAssetsRepo,
	}
}

// GetByID returns the asset with its type
func (s *AssetService) GetByID(ctx context.Context, id int) *dto.AssetDTO {
	out, _ := run(s.Logger, "get_by_id", func() (*dto.AssetDTO, error) {
		q := s.Repo.GetAllQueryWithInclude("AssetType").Where("id = ?", id)
		return first(ctx, q, dto.AssetToDTO)
	})
	if out == nil {
		s.Logger.Debug("asset not found", zap.Int("id", id))
	}
	return out
}

// GetAllWithInclude returns every asset with its type and value history
func (s *AssetService) GetAllWithInclude(ctx context.Context) []dto.AssetDTO {
	return runList(s.Logger, "get_all_with_include", func() ([]dto.AssetDTO, error) {
		return list(ctx, s.Repo.GetAllQueryWithInclude("AssetType", "AssetHistories"), dto.AssetToDTO)
	})
}

// GetAllAssetsByPortfolioID lists the assets held by a portfolio.
// Logic:
//   - Resolve the asset ids linked to the portfolio; none means an empty result
//     without querying assets
//   - Load those assets with type and history, filtering by type at the store
//   - Filter by name substring (case-insensitive) after projection
//   - Order by name ascending, or by current value descending
func (s *AssetService) GetAllAssetsByPortfolioID(ctx context.Context, portfolioID int, filter PortfolioAssetFilter) []dto.AssetForPortfolioDTO {
	return runList(s.Logger, "get_all_assets_by_portfolio", func() ([]dto.AssetForPortfolioDTO, error) {
		// 1. Asset ids linked to the portfolio
		assetIDs, err := s.InvestmentAssetsRepo.GetAllQuery().
			Where("investment_portfolio_id = ?", portfolioID).
			PluckInts(ctx, "asset_id")
		if err != nil {
			return nil, err
		}
		if len(assetIDs) == 0 {
			return []dto.AssetForPortfolioDTO{}, nil
		}

		// 2. Load and project
		q := s.Repo.GetAllQueryWithInclude("AssetType", "AssetHistories").Where("id IN ?", assetIDs)
		if filter.AssetTypeID != nil {
			q = q.Where("asset_type_id = ?", *filter.AssetTypeID)
		}
		assets, err := list(ctx, q, dto.AssetToPortfolioDTO)
		if err != nil {
			return nil, err
		}

		// 3. Name filter
		if strings.TrimSpace(filter.Name) != "" {
			needle := strings.ToLower(filter.Name)
			assets = slices.DeleteFunc(assets, func(a dto.AssetForPortfolioDTO) bool {
				return !strings.Contains(strings.ToLower(a.Name), needle)
			})
		}

		// 4. Ordering
		sortPortfolioAssets(assets, filter.OrderBy)
		return assets, nil
	})
}

func sortPortfolioAssets(assets []dto.AssetForPortfolioDTO, order AssetOrder) {
	switch order {
	case AssetOrderByCurrentValue:
		slices.SortStableFunc(assets, func(a, b dto.AssetForPortfolioDTO) int {
			return b.CurrentValue.Cmp(a.CurrentValue)
		})
	default:
		// Collator is not safe for concurrent use
		c := collate.New(language.Und)
		slices.SortStableFunc(assets, func(a, b dto.AssetForPortfolioDTO) int {
			return c.CompareString(a.Name, b.Name)
		})
	}
}
