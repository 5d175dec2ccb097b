package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/usecase/command"
	"github.com/simaogato/investfolio-backend/internal/usecase/service"
	"github.com/simaogato/investfolio-backend/internal/usecase/valuation"
)

// PortfolioHandler serves the portfolios of the signed-in user
type PortfolioHandler struct {
	Service   *service.InvestmentPortfolioService
	Assets    *service.AssetService
	Valuation *valuation.ValuationService
	Commands  *command.PortfolioHandler
	Logger    *zap.Logger
}

func (h *PortfolioHandler) Register(r *gin.RouterGroup) {
	group := r.Group("/portfolios")
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.GET("/:id/assets", h.listAssets)
	group.GET("/:id/valuation", h.valuation)
	group.POST("", h.create)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

func (h *PortfolioHandler) list(c *gin.Context) {
	Ok(c, http.StatusOK, h.Service.GetAllWithIncludeByUser(c.Request.Context(), currentUserID(c)))
}

func (h *PortfolioHandler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item := h.Service.GetByIDForUser(c.Request.Context(), id, currentUserID(c))
	if item == nil {
		notFound(c, "Investment Portfolio")
		return
	}
	Ok(c, http.StatusOK, item)
}

// listAssets supports ?name=&assetTypeId=&orderBy= where orderBy 1 sorts by
// current value and anything else by name
func (h *PortfolioHandler) listAssets(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	typeID, ok := intQuery(c, "assetTypeId")
	if !ok {
		return
	}
	orderBy, ok := intQuery(c, "orderBy")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if h.Service.GetByIDForUser(ctx, id, currentUserID(c)) == nil {
		notFound(c, "Investment Portfolio")
		return
	}

	filter := service.PortfolioAssetFilter{Name: c.Query("name"), AssetTypeID: typeID}
	if orderBy != nil {
		filter.OrderBy = service.AssetOrder(*orderBy)
	}
	Ok(c, http.StatusOK, h.Assets.GetAllAssetsByPortfolioID(ctx, id, filter))
}

func (h *PortfolioHandler) valuation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := h.Valuation.GetPortfolioValuation(c.Request.Context(), id, currentUserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, http.StatusOK, result)
}

func (h *PortfolioHandler) create(c *gin.Context) {
	var cmd command.CreateInvestmentPortfolioCommand
	if !bind(c, &cmd) {
		return
	}
	cmd.UserID = currentUserID(c)
	id, err := h.Commands.Create(c.Request.Context(), cmd)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, http.StatusCreated, gin.H{"id": id})
}

func (h *PortfolioHandler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var cmd command.UpdateInvestmentPortfolioCommand
	if !bind(c, &cmd) {
		return
	}
	cmd.ID = id
	cmd.UserID = currentUserID(c)
	if err := h.Commands.Update(c.Request.Context(), cmd); err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, http.StatusOK, nil)
}

func (h *PortfolioHandler) delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cmd := command.DeleteInvestmentPortfolioCommand{ID: id, UserID: currentUserID(c)}
	if err := h.Commands.Delete(c.Request.Context(), cmd); err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, http.StatusOK, nil)
}
