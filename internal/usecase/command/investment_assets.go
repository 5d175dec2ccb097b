package command

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

type CreateInvestmentAssetsCommand struct {
	AssetID               int    `json:"assetId" binding:"required"`
	InvestmentPortfolioID int    `json:"investmentPortfolioId" binding:"required"`
	UserID                string `json:"-"`
}

type UpdateInvestmentAssetsCommand struct {
	ID                    int    `json:"-"`
	AssetID               int    `json:"assetId" binding:"required"`
	InvestmentPortfolioID int    `json:"investmentPortfolioId" binding:"required"`
	UserID                string `json:"-"`
}

type DeleteInvestmentAssetsCommand struct {
	ID     int
	UserID string
}

// InvestmentAssetsHandler adds assets to and removes them from portfolios
// owned by the command's UserID
type InvestmentAssetsHandler struct {
	Repo          domain.Repository[domain.InvestmentAssets]
	AssetRepo     domain.Repository[domain.Asset]
	PortfolioRepo domain.Repository[domain.InvestmentPortfolio]
	Logger        *zap.Logger
}

// NewInvestmentAssetsHandler creates a new InvestmentAssetsHandler instance
func NewInvestmentAssetsHandler(
	repo domain.Repository[domain.InvestmentAssets],
	assetRepo domain.Repository[domain.Asset],
	portfolioRepo domain.Repository[domain.InvestmentPortfolio],
	logger *zap.Logger,
) *InvestmentAssetsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvestmentAssetsHandler{
		Repo:          repo,
		AssetRepo:     assetRepo,
		PortfolioRepo: portfolioRepo,
		Logger:        logger.Named("investment_assets_commands"),
	}
}

// Create links an asset to a portfolio. Linking the same pair twice is a 400.
func (h *InvestmentAssetsHandler) Create(ctx context.Context, cmd CreateInvestmentAssetsCommand) (int, error) {
	if err := h.checkTargets(ctx, cmd.AssetID, cmd.InvestmentPortfolioID, cmd.UserID); err != nil {
		return 0, err
	}
	if err := h.rejectDuplicate(ctx, cmd.AssetID, cmd.InvestmentPortfolioID, 0); err != nil {
		return 0, err
	}

	entity := &domain.InvestmentAssets{AssetID: cmd.AssetID, InvestmentPortfolioID: cmd.InvestmentPortfolioID}
	return create(ctx, h.Repo, h.Logger, entity, func(e *domain.InvestmentAssets) int { return e.ID }, "Error adding asset to portfolio")
}

func (h *InvestmentAssetsHandler) Update(ctx context.Context, cmd UpdateInvestmentAssetsCommand) error {
	if _, err := h.owned(ctx, cmd.ID, cmd.UserID); err != nil {
		return err
	}
	if err := h.checkTargets(ctx, cmd.AssetID, cmd.InvestmentPortfolioID, cmd.UserID); err != nil {
		return err
	}
	if err := h.rejectDuplicate(ctx, cmd.AssetID, cmd.InvestmentPortfolioID, cmd.ID); err != nil {
		return err
	}

	entity := &domain.InvestmentAssets{ID: cmd.ID, AssetID: cmd.AssetID, InvestmentPortfolioID: cmd.InvestmentPortfolioID}
	return update(ctx, h.Repo, h.Logger, entityInvestmentAssets, cmd.ID, entity)
}

func (h *InvestmentAssetsHandler) Delete(ctx context.Context, cmd DeleteInvestmentAssetsCommand) error {
	if _, err := h.owned(ctx, cmd.ID, cmd.UserID); err != nil {
		return err
	}
	return remove(ctx, h.Repo, h.Logger, entityInvestmentAssets, cmd.ID)
}

// checkTargets verifies the asset exists and the portfolio belongs to userID
func (h *InvestmentAssetsHandler) checkTargets(ctx context.Context, assetID, portfolioID int, userID string) error {
	portfolio, err := mustExist(ctx, h.PortfolioRepo, h.Logger, entityPortfolio, portfolioID)
	if err != nil {
		return err
	}
	if portfolio.UserID != userID {
		return domain.NotFoundError(entityPortfolio)
	}
	_, err = mustExist(ctx, h.AssetRepo, h.Logger, entityAsset, assetID)
	return err
}

// rejectDuplicate fails when another row already links assetID to portfolioID
func (h *InvestmentAssetsHandler) rejectDuplicate(ctx context.Context, assetID, portfolioID, exceptID int) error {
	n, err := h.Repo.GetAllQuery().
		Where("asset_id = ? AND investment_portfolio_id = ?", assetID, portfolioID).
		Where("id <> ?", exceptID).
		Count(ctx)
	if err != nil {
		return storeFailure(h.Logger, "Error checking portfolio assets", err)
	}
	if n > 0 {
		return domain.NewAPIError("This asset is already part of the portfolio", http.StatusBadRequest)
	}
	return nil
}

// owned loads the association with its portfolio and hides it from non-owners
func (h *InvestmentAssetsHandler) owned(ctx context.Context, id int, userID string) (*domain.InvestmentAssets, error) {
	existing, err := h.Repo.GetAllQueryWithInclude("InvestmentPortfolio").Where("id = ?", id).FirstOrDefault(ctx)
	if err != nil {
		return nil, storeFailure(h.Logger, "Error loading "+entityInvestmentAssets, err)
	}
	if existing == nil || !existing.OwnedBy(userID) {
		return nil, domain.NotFoundError(entityInvestmentAssets)
	}
	return existing, nil
}
