package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/usecase/command"
	"github.com/simaogato/investfolio-backend/internal/usecase/service"
)

type AssetHistoryHandler struct {
	Service  *service.AssetHistoryService
	Commands *command.AssetHistoryHandler
	Logger   *zap.Logger
}

func (h *AssetHistoryHandler) Register(r *gin.RouterGroup) {
	group := r.Group("/asset-histories")
	group.GET("", h.list)
	group.GET("/with-assets", h.listWithAssets)
	group.GET("/:id", h.get)
	group.POST("", h.create)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

func (h *AssetHistoryHandler) list(c *gin.Context) {
	Ok(c, http.StatusOK, h.Service.GetAll(c.Request.Context()))
}

func (h *AssetHistoryHandler) listWithAssets(c *gin.Context) {
	Ok(c, http.StatusOK, h.Service.GetAllWithInclude(c.Request.Context()))
}

func (h *AssetHistoryHandler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item := h.Service.GetByID(c.Request.Context(), id)
	if item == nil {
		notFound(c, "Asset history")
		return
	}
	Ok(c, http.StatusOK, item)
}

func (h *AssetHistoryHandler) create(c *gin.Context) {
	var cmd command.CreateAssetHistoryCommand
	if !bind(c, &cmd) {
		return
	}
	id, err := h.Commands.Create(c.Request.Context(), cmd)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, http.StatusCreated, gin.H{"id": id})
}

func (h *AssetHistoryHandler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var cmd command.UpdateAssetHistoryCommand
	if !bind(c, &cmd) {
		return
	}
	cmd.ID = id
	if err := h.Commands.Update(c.Request.Context(), cmd); err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, http.StatusOK, nil)
}

func (h *AssetHistoryHandler) delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Commands.Delete(c.Request.Context(), command.DeleteAssetHistoryCommand{ID: id}); err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, http.StatusOK, nil)
}
