package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/dto"
)

// AssetHistoryService handles asset value history.
// The value date of a persisted entry never changes.
type AssetHistoryService struct {
	*GenericService[domain.AssetHistory, dto.AssetHistoryDTO]
}

// NewAssetHistoryService creates a new AssetHistoryService instance
func NewAssetHistoryService(repo domain.Repository[domain.AssetHistory], logger *zap.Logger) *AssetHistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetHistoryService{
		GenericService: NewGenericService(repo, dto.AssetHistoryMapper, logger.Named("asset_history_service")),
	}
}

// Update overwrites the entry but keeps its persisted HistoryValueDate
func (s *AssetHistoryService) Update(ctx context.Context, d dto.AssetHistoryDTO, id int) *dto.AssetHistoryDTO {
	existing := s.GetByID(ctx, id)
	if existing == nil {
		return nil
	}

	d.HistoryValueDate = existing.HistoryValueDate
	return s.GenericService.Update(ctx, d, id)
}

// GetByID returns the entry with its asset
func (s *AssetHistoryService) GetByID(ctx context.Context, id int) *dto.AssetHistoryDTO {
	out, _ := run(s.Logger, "get_by_id", func() (*dto.AssetHistoryDTO, error) {
		return first(ctx, s.Repo.GetAllQueryWithInclude("Asset").Where("id = ?", id), dto.AssetHistoryToDTO)
	})
	return out
}

func (s *AssetHistoryService) GetAllWithInclude(ctx context.Context) []dto.AssetHistoryDTO {
	return runList(s.Logger, "get_all_with_include", func() ([]dto.AssetHistoryDTO, error) {
		return list(ctx, s.Repo.GetAllQueryWithInclude("Asset"), dto.AssetHistoryToDTO)
	})
}
