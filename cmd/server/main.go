package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/adapter/grpc"
	"github.com/simaogato/investfolio-backend/internal/adapter/repository/gormrepo"
	"github.com/simaogato/investfolio-backend/internal/adapter/session"
	"github.com/simaogato/investfolio-backend/internal/app"
	"github.com/simaogato/investfolio-backend/internal/config"
	"github.com/simaogato/investfolio-backend/internal/logger"
)

const (
	dbConnectAttempts = 5
	dbRetryDelay      = 2 * time.Second
	readinessInterval = 15 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// 1. Configuration and logging
	_, statErr := os.Stat(*configPath)
	cfg, err := config.Load(*configPath, errors.Is(statErr, os.ErrNotExist))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = randomSecret()
		zl.Warn("auth.jwt_secret not set, using a random secret; sessions will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 2. Setup Database
	db, err := connect(ctx, cfg.DB, zl)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		if err := gormrepo.AutoMigrate(db.Gorm); err != nil {
			zl.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// 3. Sessions
	store, closeStore, err := newSessionStore(ctx, cfg.Session)
	if err != nil {
		zl.Fatal("Failed to open session store", zap.Error(err))
	}
	defer closeStore()
	sessions := session.NewManager(session.JWT{
		Secret:   []byte(cfg.Auth.JWTSecret),
		TokenTTL: cfg.Auth.TokenTTL,
		Issuer:   cfg.Auth.Issuer,
	}, store, cfg.Session.KeyPrefix, zl)

	// 4. Application and reference data
	application := app.New(db, sessions, cfg, zl)
	if err := application.Seeder.Seed(ctx); err != nil {
		zl.Fatal("Failed to seed reference data", zap.Error(err))
	}

	// 5. Start servers
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           application.Router.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zl.Info("HTTP server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	grpcServer := grpc.NewServer(sessions, zl)
	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		zl.Fatal("Failed to listen", zap.String("addr", cfg.Server.GRPCAddr), zap.Error(err))
	}
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			zl.Fatal("Failed to serve gRPC", zap.Error(err))
		}
	}()
	go grpcServer.WatchReadiness(ctx, db, readinessInterval)

	// Graceful shutdown
	<-ctx.Done()
	zl.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zl.Error("HTTP shutdown failed", zap.Error(err))
	}
	grpcServer.Stop()
}

// connect opens the database, retrying while it is still starting up
func connect(ctx context.Context, cfg config.DBConfig, zl *zap.Logger) (*gormrepo.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= dbConnectAttempts; attempt++ {
		db, err := gormrepo.Open(ctx, cfg, zl)
		if err == nil {
			return db, nil
		}
		lastErr = err
		zl.Warn("database not ready", zap.Int("attempt", attempt), zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dbRetryDelay):
		}
	}
	return nil, fmt.Errorf("giving up after %d attempts: %w", dbConnectAttempts, lastErr)
}

func newSessionStore(ctx context.Context, cfg config.SessionConfig) (session.Store, func(), error) {
	if cfg.Store != "redis" {
		return session.NewMemoryStore(), func() {}, nil
	}

	store := session.NewRedisStore(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
