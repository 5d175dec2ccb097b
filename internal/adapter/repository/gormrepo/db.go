package gormrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/simaogato/investfolio-backend/internal/config"
)

// DB wraps the GORM handle together with its underlying connection pool
type DB struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

// Open connects to the store described by cfg.
// Postgres connections are opened with lib/pq and handed to GORM.
func Open(ctx context.Context, cfg config.DBConfig, logger *zap.Logger) (*DB, error) {
	gcfg := &gorm.Config{Logger: newGormLogger(logger, cfg.LogQueries)}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise gorm: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Gorm: gdb, SQL: sqlDB}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Close()
}

// Ping checks the connection is still usable
func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.SQL == nil {
		return fmt.Errorf("database not initialised")
	}
	return db.SQL.PingContext(ctx)
}

func newGormLogger(logger *zap.Logger, logQueries bool) gormlogger.Interface {
	if logger == nil {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	level := gormlogger.Warn
	if logQueries {
		level = gormlogger.Info
	}
	return gormlogger.New(
		zap.NewStdLog(logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
