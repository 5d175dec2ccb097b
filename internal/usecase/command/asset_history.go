package command

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

// CreateAssetHistoryCommand records a value of an asset.
// A nil HistoryValueDate records the value for the current UTC day.
type CreateAssetHistoryCommand struct {
	AssetID          int             `json:"assetId" binding:"required"`
	HistoryValueDate *time.Time      `json:"historyValueDate"`
	Value            decimal.Decimal `json:"value"`
}

// UpdateAssetHistoryCommand replaces the value of an entry. Its date is kept.
type UpdateAssetHistoryCommand struct {
	ID      int             `json:"-"`
	AssetID int             `json:"assetId" binding:"required"`
	Value   decimal.Decimal `json:"value"`
}

type DeleteAssetHistoryCommand struct {
	ID int
}

// AssetHistoryHandler handles asset history commands
type AssetHistoryHandler struct {
	Repo      domain.Repository[domain.AssetHistory]
	AssetRepo domain.Repository[domain.Asset]
	Logger    *zap.Logger
	Now       func() time.Time
}

// NewAssetHistoryHandler creates a new AssetHistoryHandler instance
func NewAssetHistoryHandler(
	repo domain.Repository[domain.AssetHistory],
	assetRepo domain.Repository[domain.Asset],
	logger *zap.Logger,
) *AssetHistoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetHistoryHandler{
		Repo:      repo,
		AssetRepo: assetRepo,
		Logger:    logger.Named("asset_history_commands"),
		Now:       time.Now,
	}
}

func (h *AssetHistoryHandler) Create(ctx context.Context, cmd CreateAssetHistoryCommand) (int, error) {
	if _, err := mustExist(ctx, h.AssetRepo, h.Logger, entityAsset, cmd.AssetID); err != nil {
		return 0, err
	}

	date := h.Now().UTC().Truncate(24 * time.Hour)
	if cmd.HistoryValueDate != nil {
		date = cmd.HistoryValueDate.UTC()
	}

	entity := &domain.AssetHistory{
		AssetID:          cmd.AssetID,
		HistoryValueDate: date,
		Value:            cmd.Value,
	}
	if err := entity.Validate(); err != nil {
		return 0, badRequest(err)
	}

	return create(ctx, h.Repo, h.Logger, entity, func(e *domain.AssetHistory) int { return e.ID }, "Error creating asset history")
}

// Update replaces the value and asset of an entry, preserving its value date
func (h *AssetHistoryHandler) Update(ctx context.Context, cmd UpdateAssetHistoryCommand) error {
	existing, err := mustExist(ctx, h.Repo, h.Logger, entityAssetHistory, cmd.ID)
	if err != nil {
		return err
	}

	entity := &domain.AssetHistory{
		ID:               cmd.ID,
		AssetID:          cmd.AssetID,
		HistoryValueDate: existing.HistoryValueDate,
		Value:            cmd.Value,
	}
	if err := entity.Validate(); err != nil {
		return badRequest(err)
	}

	return update(ctx, h.Repo, h.Logger, entityAssetHistory, cmd.ID, entity)
}

func (h *AssetHistoryHandler) Delete(ctx context.Context, cmd DeleteAssetHistoryCommand) error {
	return remove(ctx, h.Repo, h.Logger, entityAssetHistory, cmd.ID)
}
