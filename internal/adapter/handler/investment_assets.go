package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/usecase/command"
	"github.com/simaogato/investfolio-backend/internal/usecase/service"
)

// InvestmentAssetsHandler serves the asset/portfolio links of the signed-in user
type InvestmentAssetsHandler struct {
	Service  *service.InvestmentAssetsService
	Commands *command.InvestmentAssetsHandler
	Logger   *zap.Logger
}

func (h *InvestmentAssetsHandler) Register(r *gin.RouterGroup) {
	group := r.Group("/investment-assets")
	group.GET("", h.list)
	group.GET("/lookup", h.lookup)
	group.GET("/:id", h.get)
	group.POST("", h.create)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

func (h *InvestmentAssetsHandler) list(c *gin.Context) {
	Ok(c, http.StatusOK, h.Service.GetAllWithInclude(c.Request.Context(), currentUserID(c)))
}

func (h *InvestmentAssetsHandler) lookup(c *gin.Context) {
	assetID, ok := intQuery(c, "assetId")
	if !ok {
		return
	}
	portfolioID, ok := intQuery(c, "portfolioId")
	if !ok {
		return
	}
	if assetID == nil || portfolioID == nil {
		Error(c, http.StatusBadRequest, "assetId and portfolioId are required")
		return
	}
	item := h.Service.GetByAssetAndPortfolio(c.Request.Context(), *assetID, *portfolioID, currentUserID(c))
	if item == nil {
		notFound(c, "Investment asset")
		return
	}
	Ok(c, http.StatusOK, item)
}

func (h *InvestmentAssetsHandler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item := h.Service.GetByIDForUser(c.Request.Context(), id, currentUserID(c))
	if item == nil {
		notFound(c, "Investment asset")
		return
	}
	Ok(c, http.StatusOK, item)
}

func (h *InvestmentAssetsHandler) create(c *gin.Context) {
	var cmd command.CreateInvestmentAssetsCommand
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

func (h *InvestmentAssetsHandler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var cmd command.UpdateInvestmentAssetsCommand
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

func (h *InvestmentAssetsHandler) delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cmd := command.DeleteInvestmentAssetsCommand{ID: id, UserID: currentUserID(c)}
	if err := h.Commands.Delete(c.Request.Context(), cmd); err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, http.StatusOK, nil)
}
