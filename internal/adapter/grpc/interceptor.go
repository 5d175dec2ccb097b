package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/investfolio-backend/internal/adapter/session"
)

// SessionValidator resolves a token to an open session
type SessionValidator interface {
	Validate(ctx context.Context, token string) (session.Session, error)
}

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the session token from the "authorization" metadata, with or without a
// "Bearer " prefix. Methods listed in publicMethods skip the check.
// On success the session is attached to the handler's context.
func AuthInterceptor(validator SessionValidator, publicMethods ...string) grpc.UnaryServerInterceptor {
	public := make(map[string]bool, len(publicMethods))
	for _, m := range publicMethods {
		public[m] = true
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		if public[info.FullMethod] {
			return handler(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeaders[0], "Bearer "))

		s, err := validator.Validate(ctx, token)
		if err != nil {
			if errors.Is(err, session.ErrInvalidSession) {
				return nil, status.Error(codes.Unauthenticated, "invalid token")
			}
			return nil, status.Error(codes.Internal, "session lookup failed")
		}

		return handler(session.WithSession(ctx, s), req)
	}
}

// LoggingInterceptor logs every unary call with its status code and duration
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		if code == codes.Internal || code == codes.Unknown {
			logger.Error("grpc call", append(fields, zap.Error(err))...)
		} else {
			logger.Info("grpc call", fields...)
		}
		return resp, err
	}
}
