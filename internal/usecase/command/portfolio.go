package command

import (
	"context"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

type CreateInvestmentPortfolioCommand struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UserID      string `json:"-"`
}

type UpdateInvestmentPortfolioCommand struct {
	ID          int    `json:"-"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	UserID      string `json:"-"`
}

type DeleteInvestmentPortfolioCommand struct {
	ID     int
	UserID string
}

// PortfolioHandler handles portfolio commands. Update and Delete only reach
// portfolios owned by the command's UserID; any other target is a 404.
type PortfolioHandler struct {
	Repo   domain.Repository[domain.InvestmentPortfolio]
	Logger *zap.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler instance
func NewPortfolioHandler(repo domain.Repository[domain.InvestmentPortfolio], logger *zap.Logger) *PortfolioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortfolioHandler{Repo: repo, Logger: logger.Named("portfolio_commands")}
}

func (h *PortfolioHandler) Create(ctx context.Context, cmd CreateInvestmentPortfolioCommand) (int, error) {
	entity := &domain.InvestmentPortfolio{Name: cmd.Name, Description: cmd.Description, UserID: cmd.UserID}
	if err := entity.Validate(); err != nil {
		return 0, badRequest(err)
	}
	return create(ctx, h.Repo, h.Logger, entity, func(e *domain.InvestmentPortfolio) int { return e.ID }, "Error creating investment portfolio")
}

func (h *PortfolioHandler) Update(ctx context.Context, cmd UpdateInvestmentPortfolioCommand) error {
	if _, err := h.owned(ctx, cmd.ID, cmd.UserID); err != nil {
		return err
	}

	entity := &domain.InvestmentPortfolio{ID: cmd.ID, Name: cmd.Name, Description: cmd.Description, UserID: cmd.UserID}
	if err := entity.Validate(); err != nil {
		return badRequest(err)
	}
	return update(ctx, h.Repo, h.Logger, entityPortfolio, cmd.ID, entity)
}

func (h *PortfolioHandler) Delete(ctx context.Context, cmd DeleteInvestmentPortfolioCommand) error {
	if _, err := h.owned(ctx, cmd.ID, cmd.UserID); err != nil {
		return err
	}
	return remove(ctx, h.Repo, h.Logger, entityPortfolio, cmd.ID)
}

// owned loads the portfolio and hides it unless userID owns it
func (h *PortfolioHandler) owned(ctx context.Context, id int, userID string) (*domain.InvestmentPortfolio, error) {
	existing, err := mustExist(ctx, h.Repo, h.Logger, entityPortfolio, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		h.Logger.Warn("portfolio access by non-owner", zap.Int("id", id), zap.String("user_id", userID))
		return nil, domain.NotFoundError(entityPortfolio)
	}
	return existing, nil
}
