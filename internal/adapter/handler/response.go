// Package handler exposes the services and commands over HTTP with gin.
package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

type apiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func Ok(c *gin.Context, status int, data any) {
	c.JSON(status, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
	})
}

// fail renders err, using the status of an APIError and 500 otherwise
func fail(c *gin.Context, logger *zap.Logger, err error) {
	if apiErr, ok := domain.AsAPIError(err); ok {
		Error(c, apiErr.StatusCode, apiErr.Message)
		return
	}
	logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	Error(c, http.StatusInternalServerError, "internal error")
}

// notFound renders the message used when a read returned nothing
func notFound(c *gin.Context, entity string) {
	Error(c, http.StatusNotFound, entity+" not found with this id")
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		Error(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// intQuery parses an optional integer query parameter
func intQuery(c *gin.Context, key string) (*int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		Error(c, http.StatusBadRequest, "invalid "+key)
		return nil, false
	}
	return &v, true
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Error(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
