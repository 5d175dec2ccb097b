// Package testutil holds database fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/simaogato/investfolio-backend/internal/adapter/repository/gormrepo"
	"github.com/simaogato/investfolio-backend/internal/config"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema.
// Foreign keys are enforced so constraint behaviour matches Postgres.
func SetupTestDB(t *testing.T) *gormrepo.DB {
	t.Helper()

	cfg := config.DBConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString()),
		MaxOpenConns: 1,
	}

	db, err := gormrepo.Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, gormrepo.AutoMigrate(db.Gorm))

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// SetupMockDB returns a Postgres-dialect GORM handle backed by sqlmock,
// used to inject store faults.
func SetupMockDB(t *testing.T) (*gormrepo.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return &gormrepo.DB{Gorm: gdb, SQL: sqlDB}, mock
}
