package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/usecase/command"
	"github.com/simaogato/investfolio-backend/internal/usecase/service"
)

type AssetTypeHandler struct {
	Service  *service.AssetTypeService
	Commands *command.AssetTypeHandler
	Logger   *zap.Logger
}

func (h *AssetTypeHandler) Register(r *gin.RouterGroup) {
	group := r.Group("/asset-types")
	group.GET("", h.list)
	group.GET("/with-assets", h.listWithAssets)
	group.GET("/:id", h.get)
	group.POST("", h.create)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

func (h *AssetTypeHandler) list(c *gin.Context) {
	Ok(c, http.StatusOK, h.Service.GetAll(c.Request.Context()))
}

func (h *AssetTypeHandler) listWithAssets(c *gin.Context) {
	Ok(c, http.StatusOK, h.Service.GetAllWithInclude(c.Request.Context()))
}

func (h *AssetTypeHandler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item := h.Service.GetByID(c.Request.Context(), id)
	if item == nil {
		notFound(c, "Asset type")
		return
	}
	Ok(c, http.StatusOK, item)
}

func (h *AssetTypeHandler) create(c *gin.Context) {
	var cmd command.CreateAssetTypeCommand
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

func (h *AssetTypeHandler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var cmd command.UpdateAssetTypeCommand
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

func (h *AssetTypeHandler) delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Commands.Delete(c.Request.Context(), command.DeleteAssetTypeCommand{ID: id}); err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, http.StatusOK, nil)
}
