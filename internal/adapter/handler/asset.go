package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/usecase/command"
	"github.com/simaogato/investfolio-backend/internal/usecase/service"
)

type AssetHandler struct {
	Service  *service.AssetService
	Commands *command.AssetHandler
	Logger   *zap.Logger
}

func (h *AssetHandler) Register(r *gin.RouterGroup) {
	group := r.Group("/assets")
	group.GET("", h.list)
	group.GET("/with-details", h.listWithDetails)
	group.GET("/:id", h.get)
	group.POST("", h.create)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

func (h *AssetHandler) list(c *gin.Context) {
	Ok(c, http.StatusOK, h.Service.GetAll(c.Request.Context()))
}

func (h *AssetHandler) listWithDetails(c *gin.Context) {
	Ok(c, http.StatusOK, h.Service.GetAllWithInclude(c.Request.Context()))
}

func (h *AssetHandler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item := h.Service.GetByID(c.Request.Context(), id)
	if item == nil {
		notFound(c, "Asset")
		return
	}
	Ok(c, http.StatusOK, item)
}

func (h *AssetHandler) create(c *gin.Context) {
	var cmd command.CreateAssetCommand
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

func (h *AssetHandler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var cmd command.UpdateAssetCommand
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

func (h *AssetHandler) delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Commands.Delete(c.Request.Context(), command.DeleteAssetCommand{ID: id}); err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, http.StatusOK, nil)
}
