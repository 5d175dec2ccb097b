package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/adapter/session"
)

const (
	headerRequestID = "X-Request-ID"
	ctxKeySession   = "session"
)

// SessionValidator resolves a bearer token to an open session
type SessionValidator interface {
	Validate(ctx context.Context, token string) (session.Session, error)
}

// RequestLogger logs one line per request and tags it with a request id
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(headerRequestID, requestID)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("http request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("http request", fields...)
		default:
			logger.Info("http request", fields...)
		}
	}
}

// Recovery turns a panic into a 500 response
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", zap.String("path", c.Request.URL.Path), zap.Any("panic", recovered))
		Error(c, http.StatusInternalServerError, "internal error")
		c.Abort()
	})
}

// RequireSession validates the bearer token and attaches the session to the
// request context
func RequireSession(validator SessionValidator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(auth, "Bearer ") {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

		s, err := validator.Validate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, session.ErrInvalidSession) {
				abortUnauthorized(c, "invalid token")
				return
			}
			logger.Error("session validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, apiResponse{Code: http.StatusInternalServerError, Message: "internal error"})
			return
		}

		c.Set(ctxKeySession, s)
		c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), s))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, apiResponse{Code: http.StatusUnauthorized, Message: message})
}

// currentUserID returns the owner of the request's session
func currentUserID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeySession); ok {
		if s, ok := v.(session.Session); ok {
			return s.UserID
		}
	}
	return ""
}
