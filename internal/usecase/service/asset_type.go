package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/dto"
)

// assetTypeBatchSize bounds how many asset types are loaded per round trip
const assetTypeBatchSize = 100

// AssetTypeService handles asset type reads and writes
type AssetTypeService struct {
	*GenericService[domain.AssetType, dto.AssetTypeDTO]
}

// NewAssetTypeService creates a new AssetTypeService instance
func NewAssetTypeService(repo domain.Repository[domain.AssetType], logger *zap.Logger) *AssetTypeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetTypeService{
		GenericService: NewGenericService(repo, dto.AssetTypeMapper, logger.Named("asset_type_service")),
	}
}

// GetAllWithInclude streams every asset type with its assets, mapping batch by batch
func (s *AssetTypeService) GetAllWithInclude(ctx context.Context) []dto.AssetTypeDTO {
	return runList(s.Logger, "get_all_with_include", func() ([]dto.AssetTypeDTO, error) {
		out := make([]dto.AssetTypeDTO, 0)
		err := s.Repo.GetAllQueryWithInclude("Assets").Each(ctx, assetTypeBatchSize, func(e domain.AssetType) error {
			out = append(out, dto.AssetTypeToDTO(e))
			return nil
		})
		if err != nil {
			return nil, err
		}
		return out, nil
	})
}
