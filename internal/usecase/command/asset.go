package command

import (
	"context"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

// CreateAssetCommand creates an asset. A missing Name or Symbol is stored as "".
type CreateAssetCommand struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Symbol      *string `json:"symbol"`
	AssetTypeID int     `json:"assetTypeId"`
}

type UpdateAssetCommand struct {
	ID          int     `json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Symbol      *string `json:"symbol"`
	AssetTypeID int     `json:"assetTypeId"`
}

type DeleteAssetCommand struct {
	ID int
}

// AssetHandler handles asset commands
type AssetHandler struct {
	Repo   domain.Repository[domain.Asset]
	Logger *zap.Logger
}

// NewAssetHandler creates a new AssetHandler instance
func NewAssetHandler(repo domain.Repository[domain.Asset], logger *zap.Logger) *AssetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetHandler{Repo: repo, Logger: logger.Named("asset_commands")}
}

func (h *AssetHandler) Create(ctx context.Context, cmd CreateAssetCommand) (int, error) {
	entity := &domain.Asset{
		Name:        valueOr(cmd.Name, ""),
		Description: cmd.Description,
		Symbol:      valueOr(cmd.Symbol, ""),
		AssetTypeID: cmd.AssetTypeID,
	}
	h.Logger.Info("creating asset",
		zap.String("name", entity.Name),
		zap.String("symbol", entity.Symbol),
		zap.Int("asset_type_id", entity.AssetTypeID),
	)
	return create(ctx, h.Repo, h.Logger, entity, func(e *domain.Asset) int { return e.ID }, "Error creating asset")
}

func (h *AssetHandler) Update(ctx context.Context, cmd UpdateAssetCommand) error {
	entity := &domain.Asset{
		ID:          cmd.ID,
		Name:        valueOr(cmd.Name, ""),
		Description: cmd.Description,
		Symbol:      valueOr(cmd.Symbol, ""),
		AssetTypeID: cmd.AssetTypeID,
	}
	return update(ctx, h.Repo, h.Logger, entityAsset, cmd.ID, entity)
}

func (h *AssetHandler) Delete(ctx context.Context, cmd DeleteAssetCommand) error {
	return remove(ctx, h.Repo, h.Logger, entityAsset, cmd.ID)
}
