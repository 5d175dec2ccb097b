package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simaogato/investfolio-backend/internal/dto"
	"github.com/simaogato/investfolio-backend/internal/usecase/account"
)

type AccountHandler struct {
	Service *account.Service
}

// RegisterPublic adds the routes reachable without a session
func (h *AccountHandler) RegisterPublic(r *gin.RouterGroup) {
	r.POST("/account/login", h.login)
}

func (h *AccountHandler) Register(r *gin.RouterGroup) {
	r.POST("/account/logout", h.logout)
}

func (h *AccountHandler) login(c *gin.Context) {
	var req dto.LoginDTO
	if !bind(c, &req) {
		return
	}

	resp := h.Service.Authenticate(c.Request.Context(), req)
	if resp.HasError {
		message := "login failed"
		if len(resp.Errors) > 0 {
			message = resp.Errors[0]
		}
		c.JSON(http.StatusBadRequest, apiResponse{Code: http.StatusBadRequest, Message: message, Data: resp})
		return
	}
	Ok(c, http.StatusOK, resp)
}

func (h *AccountHandler) logout(c *gin.Context) {
	h.Service.SignOut(c.Request.Context())
	Ok(c, http.StatusOK, nil)
}
