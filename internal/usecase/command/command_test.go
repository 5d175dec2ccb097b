package command

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/adapter/repository/gormrepo"
	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/testutil"
)

type repos struct {
	assetTypes domain.Repository[domain.AssetType]
	assets     domain.Repository[domain.Asset]
	histories  domain.Repository[domain.AssetHistory]
	portfolios domain.Repository[domain.InvestmentPortfolio]
	links      domain.Repository[domain.InvestmentAssets]
}

func newRepos(t *testing.T) repos {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return repos{
		assetTypes: gormrepo.NewAssetTypeRepository(db, logger),
		assets:     gormrepo.NewAssetRepository(db, logger),
		histories:  gormrepo.NewAssetHistoryRepository(db, logger),
		portfolios: gormrepo.NewInvestmentPortfolioRepository(db, logger),
		links:      gormrepo.NewInvestmentAssetsRepository(db, logger),
	}
}

func strPtr(s string) *string { return &s }

// requireAPIError asserts err is an APIError with the given status
func requireAPIError(t *testing.T, err error, status int) *domain.APIError {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok, "expected APIError, got %v", err)
	assert.Equal(t, status, apiErr.StatusCode)
	return apiErr
}

func TestAssetHandler_Create_RoundTrip(t *testing.T) {
	// Setup
	ctx := context.Background()
	r := newRepos(t)
	at, err := r.assetTypes.Add(ctx, &domain.AssetType{Name: "Crypto"})
	require.NoError(t, err)
	handler := NewAssetHandler(r.assets, zap.NewNop())

	// Execute
	id, err := handler.Create(ctx, CreateAssetCommand{
		Name:        strPtr("Bitcoin"),
		Description: strPtr("Leading cryptocurrency"),
		Symbol:      strPtr("BTC"),
		AssetTypeID: at.ID,
	})

	// Assert
	require.NoError(t, err)
	assert.Positive(t, id)

	stored, err := r.assets.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Bitcoin", stored.Name)
	assert.Equal(t, "BTC", stored.Symbol)
	require.NotNil(t, stored.Description)
	assert.Equal(t, "Leading cryptocurrency", *stored.Description)
	assert.Equal(t, at.ID, stored.AssetTypeID)
}

func TestAssetHandler_Create_NilNameAndSymbolBecomeEmpty(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	at, err := r.assetTypes.Add(ctx, &domain.AssetType{Name: "Crypto"})
	require.NoError(t, err)

	id, err := NewAssetHandler(r.assets, zap.NewNop()).Create(ctx, CreateAssetCommand{AssetTypeID: at.ID})

	require.NoError(t, err)
	stored, err := r.assets.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "", stored.Name)
	assert.Equal(t, "", stored.Symbol)
	assert.Nil(t, stored.Description)
}

func TestAssetHandler_Create_NilResultIsServerError(t *testing.T) {
	ctx := context.Background()
	repo := new(testutil.MockRepository[domain.Asset])
	repo.On("Add", ctx, mock.AnythingOfType("*domain.Asset")).Return(nil, nil)

	id, err := NewAssetHandler(repo, zap.NewNop()).Create(ctx, CreateAssetCommand{Name: strPtr("Bitcoin")})

	assert.Zero(t, id)
	apiErr := requireAPIError(t, err, http.StatusInternalServerError)
	assert.Equal(t, "Error creating asset", apiErr.Message)
	repo.AssertExpectations(t)
}

func TestAssetHandler_Create_StoreErrorIsServerError(t *testing.T) {
	ctx := context.Background()
	repo := new(testutil.MockRepository[domain.Asset])
	repo.On("Add", ctx, mock.AnythingOfType("*domain.Asset")).Return(nil, errors.New("connection refused"))

	_, err := NewAssetHandler(repo, zap.NewNop()).Create(ctx, CreateAssetCommand{Name: strPtr("Bitcoin")})

	requireAPIError(t, err, http.StatusInternalServerError)
}

func TestAssetHandler_UpdateAndDelete_Missing(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	handler := NewAssetHandler(r.assets, zap.NewNop())

	err := handler.Update(ctx, UpdateAssetCommand{ID: 999, Name: strPtr("Ghost")})
	apiErr := requireAPIError(t, err, http.StatusNotFound)
	assert.Equal(t, "Asset not found with this id", apiErr.Message)

	err = handler.Delete(ctx, DeleteAssetCommand{ID: 999})
	requireAPIError(t, err, http.StatusNotFound)
}

func TestAssetTypeHandler_Delete(t *testing.T) {
	// Setup
	ctx := context.Background()
	r := newRepos(t)
	handler := NewAssetTypeHandler(r.assetTypes, zap.NewNop())
	id, err := handler.Create(ctx, CreateAssetTypeCommand{Name: "ToDelete", Description: "Should be deleted"})
	require.NoError(t, err)

	// Execute
	err = handler.Delete(ctx, DeleteAssetTypeCommand{ID: id})

	// Assert
	require.NoError(t, err)
	deleted, err := r.assetTypes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestAssetTypeHandler_Delete_NotFound(t *testing.T) {
	r := newRepos(t)

	err := NewAssetTypeHandler(r.assetTypes, zap.NewNop()).Delete(context.Background(), DeleteAssetTypeCommand{ID: 999})

	apiErr := requireAPIError(t, err, http.StatusNotFound)
	assert.Equal(t, "Asset type not found with this id", apiErr.Message)
}

func TestAssetTypeHandler_Update(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	handler := NewAssetTypeHandler(r.assetTypes, zap.NewNop())
	id, err := handler.Create(ctx, CreateAssetTypeCommand{Name: "Stocks"})
	require.NoError(t, err)

	err = handler.Update(ctx, UpdateAssetTypeCommand{ID: id, Name: "Equities", Description: "Listed shares"})

	require.NoError(t, err)
	stored, err := r.assetTypes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Equities", stored.Name)
	assert.Equal(t, "Listed shares", stored.Description)
}

func TestAssetHistoryHandler(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	at, err := r.assetTypes.Add(ctx, &domain.AssetType{Name: "Stocks"})
	require.NoError(t, err)
	asset, err := r.assets.Add(ctx, &domain.Asset{Name: "Apple", Symbol: "AAPL", AssetTypeID: at.ID})
	require.NoError(t, err)

	handler := NewAssetHistoryHandler(r.histories, r.assets, zap.NewNop())
	handler.Now = func() time.Time { return time.Date(2024, 6, 30, 17, 45, 0, 0, time.UTC) }

	t.Run("Create defaults the date to today", func(t *testing.T) {
		id, err := handler.Create(ctx, CreateAssetHistoryCommand{AssetID: asset.ID, Value: decimal.NewFromInt(210)})
		require.NoError(t, err)

		stored, err := r.histories.GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC).Equal(stored.HistoryValueDate))
	})

	t.Run("Create for a missing asset", func(t *testing.T) {
		_, err := handler.Create(ctx, CreateAssetHistoryCommand{AssetID: asset.ID + 50, Value: decimal.NewFromInt(1)})
		apiErr := requireAPIError(t, err, http.StatusNotFound)
		assert.Equal(t, "Asset not found with this id", apiErr.Message)
	})

	t.Run("Update keeps the date", func(t *testing.T) {
		date := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
		id, err := handler.Create(ctx, CreateAssetHistoryCommand{AssetID: asset.ID, HistoryValueDate: &date, Value: decimal.NewFromInt(190)})
		require.NoError(t, err)

		err = handler.Update(ctx, UpdateAssetHistoryCommand{ID: id, AssetID: asset.ID, Value: decimal.NewFromInt(195)})
		require.NoError(t, err)

		stored, err := r.histories.GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, date.Equal(stored.HistoryValueDate))
		assert.Equal(t, "195", stored.Value.String())
	})

	t.Run("Update missing", func(t *testing.T) {
		err := handler.Update(ctx, UpdateAssetHistoryCommand{ID: 999, AssetID: asset.ID})
		apiErr := requireAPIError(t, err, http.StatusNotFound)
		assert.Equal(t, "Asset history not found with this id", apiErr.Message)
	})
}

func TestPortfolioHandler_Create(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	handler := NewPortfolioHandler(r.portfolios, zap.NewNop())

	id, err := handler.Create(ctx, CreateInvestmentPortfolioCommand{
		Name:        "Crypto Portfolio",
		Description: "Long term crypto holdings",
		UserID:      "user123",
	})

	require.NoError(t, err)
	assert.Positive(t, id)
	created, err := r.portfolios.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Crypto Portfolio", created.Name)
	assert.Equal(t, "Long term crypto holdings", created.Description)
	assert.Equal(t, "user123", created.UserID)
}

func TestPortfolioHandler_Create_Invalid(t *testing.T) {
	r := newRepos(t)

	_, err := NewPortfolioHandler(r.portfolios, zap.NewNop()).
		Create(context.Background(), CreateInvestmentPortfolioCommand{Name: "No owner"})

	apiErr := requireAPIError(t, err, http.StatusBadRequest)
	assert.Equal(t, "portfolio must belong to a user", apiErr.Message)
}

func TestPortfolioHandler_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	handler := NewPortfolioHandler(r.portfolios, zap.NewNop())
	id, err := handler.Create(ctx, CreateInvestmentPortfolioCommand{Name: "Original Portfolio", Description: "Old description", UserID: "user1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		run     func() error
		status  int
		message string
	}{
		{
			name: "Update missing portfolio",
			run: func() error {
				return handler.Update(ctx, UpdateInvestmentPortfolioCommand{ID: 999, Name: "Nonexistent", UserID: "user1"})
			},
			status:  http.StatusNotFound,
			message: "Investment Portfolio not found with this id",
		},
		{
			name: "Update by another user",
			run: func() error {
				return handler.Update(ctx, UpdateInvestmentPortfolioCommand{ID: id, Name: "Hijacked", UserID: "user2"})
			},
			status:  http.StatusNotFound,
			message: "Investment Portfolio not found with this id",
		},
		{
			name: "Delete by another user",
			run: func() error {
				return handler.Delete(ctx, DeleteInvestmentPortfolioCommand{ID: id, UserID: "user2"})
			},
			status:  http.StatusNotFound,
			message: "Investment Portfolio not found with this id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := requireAPIError(t, tt.run(), tt.status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}

	// Owner update then delete
	err = handler.Update(ctx, UpdateInvestmentPortfolioCommand{ID: id, Name: "Updated Portfolio", Description: "New description", UserID: "user1"})
	require.NoError(t, err)
	updated, err := r.portfolios.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Updated Portfolio", updated.Name)
	assert.Equal(t, "New description", updated.Description)
	assert.Equal(t, "user1", updated.UserID)

	require.NoError(t, handler.Delete(ctx, DeleteInvestmentPortfolioCommand{ID: id, UserID: "user1"}))
	gone, err := r.portfolios.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestInvestmentAssetsHandler(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	at, err := r.assetTypes.Add(ctx, &domain.AssetType{Name: "Stocks"})
	require.NoError(t, err)
	apple, err := r.assets.Add(ctx, &domain.Asset{Name: "Apple", Symbol: "AAPL", AssetTypeID: at.ID})
	require.NoError(t, err)
	tesla, err := r.assets.Add(ctx, &domain.Asset{Name: "Tesla", Symbol: "TSLA", AssetTypeID: at.ID})
	require.NoError(t, err)
	mine, err := r.portfolios.Add(ctx, &domain.InvestmentPortfolio{Name: "Mine", UserID: "alice"})
	require.NoError(t, err)
	theirs, err := r.portfolios.Add(ctx, &domain.InvestmentPortfolio{Name: "Theirs", UserID: "bob"})
	require.NoError(t, err)

	handler := NewInvestmentAssetsHandler(r.links, r.assets, r.portfolios, zap.NewNop())

	id, err := handler.Create(ctx, CreateInvestmentAssetsCommand{AssetID: apple.ID, InvestmentPortfolioID: mine.ID, UserID: "alice"})
	require.NoError(t, err)
	assert.Positive(t, id)

	t.Run("Duplicate link", func(t *testing.T) {
		_, err := handler.Create(ctx, CreateInvestmentAssetsCommand{AssetID: apple.ID, InvestmentPortfolioID: mine.ID, UserID: "alice"})
		requireAPIError(t, err, http.StatusBadRequest)
	})

	t.Run("Foreign portfolio", func(t *testing.T) {
		_, err := handler.Create(ctx, CreateInvestmentAssetsCommand{AssetID: apple.ID, InvestmentPortfolioID: theirs.ID, UserID: "alice"})
		requireAPIError(t, err, http.StatusNotFound)
	})

	t.Run("Missing asset", func(t *testing.T) {
		_, err := handler.Create(ctx, CreateInvestmentAssetsCommand{AssetID: tesla.ID + 100, InvestmentPortfolioID: mine.ID, UserID: "alice"})
		apiErr := requireAPIError(t, err, http.StatusNotFound)
		assert.Equal(t, "Asset not found with this id", apiErr.Message)
	})

	t.Run("Update to another asset", func(t *testing.T) {
		err := handler.Update(ctx, UpdateInvestmentAssetsCommand{ID: id, AssetID: tesla.ID, InvestmentPortfolioID: mine.ID, UserID: "alice"})
		require.NoError(t, err)
		stored, err := r.links.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, tesla.ID, stored.AssetID)
	})

	t.Run("Delete by non-owner", func(t *testing.T) {
		err := handler.Delete(ctx, DeleteInvestmentAssetsCommand{ID: id, UserID: "bob"})
		apiErr := requireAPIError(t, err, http.StatusNotFound)
		assert.Equal(t, "Investment asset not found with this id", apiErr.Message)
	})

	t.Run("Delete by owner", func(t *testing.T) {
		require.NoError(t, handler.Delete(ctx, DeleteInvestmentAssetsCommand{ID: id, UserID: "alice"}))
		gone, err := r.links.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})
}

func TestDelete_RemovesDependentRows(t *testing.T) {
	// Setup
	ctx := context.Background()
	r := newRepos(t)
	at, err := r.assetTypes.Add(ctx, &domain.AssetType{Name: "Stocks"})
	require.NoError(t, err)
	apple, err := r.assets.Add(ctx, &domain.Asset{Name: "Apple", Symbol: "AAPL", AssetTypeID: at.ID})
	require.NoError(t, err)
	tesla, err := r.assets.Add(ctx, &domain.Asset{Name: "Tesla", Symbol: "TSLA", AssetTypeID: at.ID})
	require.NoError(t, err)
	growth, err := r.portfolios.Add(ctx, &domain.InvestmentPortfolio{Name: "Growth", UserID: "alice"})
	require.NoError(t, err)
	income, err := r.portfolios.Add(ctx, &domain.InvestmentPortfolio{Name: "Income", UserID: "alice"})
	require.NoError(t, err)

	history, err := r.histories.Add(ctx, &domain.AssetHistory{
		AssetID:          apple.ID,
		HistoryValueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Value:            decimal.NewFromInt(180),
	})
	require.NoError(t, err)
	appleInIncome, err := r.links.Add(ctx, &domain.InvestmentAssets{AssetID: apple.ID, InvestmentPortfolioID: income.ID})
	require.NoError(t, err)
	teslaInGrowth, err := r.links.Add(ctx, &domain.InvestmentAssets{AssetID: tesla.ID, InvestmentPortfolioID: growth.ID})
	require.NoError(t, err)

	t.Run("Portfolio with linked assets", func(t *testing.T) {
		err := NewPortfolioHandler(r.portfolios, zap.NewNop()).
			Delete(ctx, DeleteInvestmentPortfolioCommand{ID: growth.ID, UserID: "alice"})
		require.NoError(t, err)

		link, err := r.links.GetByID(ctx, teslaInGrowth.ID)
		require.NoError(t, err)
		assert.Nil(t, link)
		asset, err := r.assets.GetByID(ctx, tesla.ID)
		require.NoError(t, err)
		assert.NotNil(t, asset, "assets outlive the portfolio")
	})

	t.Run("Asset with history and links", func(t *testing.T) {
		err := NewAssetHandler(r.assets, zap.NewNop()).Delete(ctx, DeleteAssetCommand{ID: apple.ID})
		require.NoError(t, err)

		h, err := r.histories.GetByID(ctx, history.ID)
		require.NoError(t, err)
		assert.Nil(t, h)
		link, err := r.links.GetByID(ctx, appleInIncome.ID)
		require.NoError(t, err)
		assert.Nil(t, link)
		p, err := r.portfolios.GetByID(ctx, income.ID)
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("Asset type still in use", func(t *testing.T) {
		err := NewAssetTypeHandler(r.assetTypes, zap.NewNop()).Delete(ctx, DeleteAssetTypeCommand{ID: at.ID})
		requireAPIError(t, err, http.StatusInternalServerError)

		stored, err := r.assetTypes.GetByID(ctx, at.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored)
	})
}
