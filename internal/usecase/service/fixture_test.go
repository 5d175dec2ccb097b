package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/adapter/repository/gormrepo"
	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/testutil"
)

// fixture wires real repositories over an in-memory database
type fixture struct {
	db         *gormrepo.DB
	assetTypes domain.Repository[domain.AssetType]
	assets     domain.Repository[domain.Asset]
	histories  domain.Repository[domain.AssetHistory]
	portfolios domain.Repository[domain.InvestmentPortfolio]
	links      domain.Repository[domain.InvestmentAssets]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return &fixture{
		db:         db,
		assetTypes: gormrepo.NewAssetTypeRepository(db, logger),
		assets:     gormrepo.NewAssetRepository(db, logger),
		histories:  gormrepo.NewAssetHistoryRepository(db, logger),
		portfolios: gormrepo.NewInvestmentPortfolioRepository(db, logger),
		links:      gormrepo.NewInvestmentAssetsRepository(db, logger),
	}
}

func (f *fixture) addAssetType(t *testing.T, name string) domain.AssetType {
	t.Helper()
	at, err := f.assetTypes.Add(context.Background(), &domain.AssetType{Name: name, Description: name + " assets"})
	require.NoError(t, err)
	return *at
}

func (f *fixture) addAsset(t *testing.T, name, symbol string, typeID int) domain.Asset {
	t.Helper()
	a, err := f.assets.Add(context.Background(), &domain.Asset{Name: name, Symbol: symbol, AssetTypeID: typeID})
	require.NoError(t, err)
	return *a
}

func (f *fixture) addHistory(t *testing.T, assetID int, date time.Time, value int64) domain.AssetHistory {
	t.Helper()
	h, err := f.histories.Add(context.Background(), &domain.AssetHistory{
		AssetID:          assetID,
		HistoryValueDate: date,
		Value:            decimal.NewFromInt(value),
	})
	require.NoError(t, err)
	return *h
}

func (f *fixture) addPortfolio(t *testing.T, name, userID string) domain.InvestmentPortfolio {
	t.Helper()
	p, err := f.portfolios.Add(context.Background(), &domain.InvestmentPortfolio{Name: name, UserID: userID})
	require.NoError(t, err)
	return *p
}

func (f *fixture) link(t *testing.T, assetID, portfolioID int) domain.InvestmentAssets {
	t.Helper()
	ia, err := f.links.Add(context.Background(), &domain.InvestmentAssets{AssetID: assetID, InvestmentPortfolioID: portfolioID})
	require.NoError(t, err)
	return *ia
}
