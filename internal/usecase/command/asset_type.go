package command

import (
	"context"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

type CreateAssetTypeCommand struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateAssetTypeCommand struct {
	ID          int    `json:"-"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type DeleteAssetTypeCommand struct {
	ID int
}

// AssetTypeHandler handles asset type commands
type AssetTypeHandler struct {
	Repo   domain.Repository[domain.AssetType]
	Logger *zap.Logger
}

// NewAssetTypeHandler creates a new AssetTypeHandler instance
func NewAssetTypeHandler(repo domain.Repository[domain.AssetType], logger *zap.Logger) *AssetTypeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetTypeHandler{Repo: repo, Logger: logger.Named("asset_type_commands")}
}

func (h *AssetTypeHandler) Create(ctx context.Context, cmd CreateAssetTypeCommand) (int, error) {
	entity := &domain.AssetType{Name: cmd.Name, Description: cmd.Description}
	return create(ctx, h.Repo, h.Logger, entity, func(e *domain.AssetType) int { return e.ID }, "Error creating asset type")
}

func (h *AssetTypeHandler) Update(ctx context.Context, cmd UpdateAssetTypeCommand) error {
	entity := &domain.AssetType{ID: cmd.ID, Name: cmd.Name, Description: cmd.Description}
	return update(ctx, h.Repo, h.Logger, entityAssetType, cmd.ID, entity)
}

func (h *AssetTypeHandler) Delete(ctx context.Context, cmd DeleteAssetTypeCommand) error {
	return remove(ctx, h.Repo, h.Logger, entityAssetType, cmd.ID)
}
