package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/dto"
	"github.com/simaogato/investfolio-backend/internal/testutil"
)

// portfolioScenario seeds one portfolio holding Apple, Bitcoin and Tesla,
// plus a second portfolio holding Gold
type portfolioScenario struct {
	f         *fixture
	stocks    domain.AssetType
	crypto    domain.AssetType
	portfolio domain.InvestmentPortfolio
	other     domain.InvestmentPortfolio
}

func newPortfolioScenario(t *testing.T) *portfolioScenario {
	t.Helper()
	f := newFixture(t)
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	s := &portfolioScenario{f: f}
	s.stocks = f.addAssetType(t, "Stocks")
	s.crypto = f.addAssetType(t, "Crypto")
	metals := f.addAssetType(t, "Metals")

	tesla := f.addAsset(t, "Tesla", "TSLA", s.stocks.ID)
	apple := f.addAsset(t, "Apple", "AAPL", s.stocks.ID)
	bitcoin := f.addAsset(t, "Bitcoin", "BTC", s.crypto.ID)
	gold := f.addAsset(t, "Gold", "XAU", metals.ID)

	f.addHistory(t, tesla.ID, day, 200)
	// Apple's older value is higher than its latest one
	f.addHistory(t, apple.ID, day.AddDate(0, 0, -10), 500)
	f.addHistory(t, apple.ID, day, 150)
	f.addHistory(t, bitcoin.ID, day, 60000)
	f.addHistory(t, gold.ID, day, 1000000)

	s.portfolio = f.addPortfolio(t, "Growth", "alice")
	s.other = f.addPortfolio(t, "Metals", "alice")
	f.link(t, tesla.ID, s.portfolio.ID)
	f.link(t, apple.ID, s.portfolio.ID)
	f.link(t, bitcoin.ID, s.portfolio.ID)
	f.link(t, gold.ID, s.other.ID)
	return s
}

func (s *portfolioScenario) service() *AssetService {
	return NewAssetService(s.f.assets, s.f.links, zap.NewNop())
}

func names(assets []dto.AssetForPortfolioDTO) []string {
	out := make([]string, 0, len(assets))
	for _, a := range assets {
		out = append(out, a.Name)
	}
	return out
}

func TestAssetService_GetAllAssetsByPortfolioID(t *testing.T) {
	s := newPortfolioScenario(t)
	svc := s.service()
	cryptoID := s.crypto.ID

	tests := []struct {
		name     string
		filter   PortfolioAssetFilter
		expected []string
	}{
		{
			name:     "Default orders by name",
			filter:   PortfolioAssetFilter{},
			expected: []string{"Apple", "Bitcoin", "Tesla"},
		},
		{
			name:     "Order by current value descending",
			filter:   PortfolioAssetFilter{OrderBy: AssetOrderByCurrentValue},
			expected: []string{"Bitcoin", "Tesla", "Apple"},
		},
		{
			name:     "Unknown order code falls back to name",
			filter:   PortfolioAssetFilter{OrderBy: AssetOrder(42)},
			expected: []string{"Apple", "Bitcoin", "Tesla"},
		},
		{
			name:     "Name filter is a case-insensitive substring",
			filter:   PortfolioAssetFilter{Name: "APP"},
			expected: []string{"Apple"},
		},
		{
			name:     "Blank name filter is ignored",
			filter:   PortfolioAssetFilter{Name: "   "},
			expected: []string{"Apple", "Bitcoin", "Tesla"},
		},
		{
			name:     "Asset type filter",
			filter:   PortfolioAssetFilter{AssetTypeID: &cryptoID},
			expected: []string{"Bitcoin"},
		},
		{
			name:     "Filters with no match",
			filter:   PortfolioAssetFilter{Name: "gold"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.GetAllAssetsByPortfolioID(context.Background(), s.portfolio.ID, tt.filter)

			require.NotNil(t, result)
			assert.Equal(t, tt.expected, names(result))
		})
	}
}

func TestAssetService_GetAllAssetsByPortfolioID_ProjectsCurrentValue(t *testing.T) {
	s := newPortfolioScenario(t)

	result := s.service().GetAllAssetsByPortfolioID(context.Background(), s.portfolio.ID, PortfolioAssetFilter{Name: "apple"})

	require.Len(t, result, 1)
	assert.Equal(t, "150", result[0].CurrentValue.String())
	assert.Equal(t, "Stocks", result[0].AssetTypeName)
	assert.Equal(t, "AAPL", result[0].Symbol)
}

func TestAssetService_GetAllAssetsByPortfolioID_NameOrderIgnoresCase(t *testing.T) {
	// Setup
	f := newFixture(t)
	etf := f.addAssetType(t, "ETF")
	p := f.addPortfolio(t, "Mixed", "alice")
	for _, name := range []string{"Zeta", "apple", "Banana", "Äpfel"} {
		f.link(t, f.addAsset(t, name, "X", etf.ID).ID, p.ID)
	}
	svc := NewAssetService(f.assets, f.links, zap.NewNop())

	// Execute
	result := svc.GetAllAssetsByPortfolioID(context.Background(), p.ID, PortfolioAssetFilter{OrderBy: AssetOrderByName})

	// Assert
	names := make([]string, 0, len(result))
	for _, a := range result {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Äpfel", "apple", "Banana", "Zeta"}, names)
}

func TestAssetService_GetAllAssetsByPortfolioID_EmptyPortfolioSkipsAssetQuery(t *testing.T) {
	// Setup
	f := newFixture(t)
	empty := f.addPortfolio(t, "Empty", "alice")

	assetRepo := new(testutil.MockRepository[domain.Asset])
	assetRepo.Test(t)
	svc := NewAssetService(assetRepo, f.links, zap.NewNop())

	// Execute
	result := svc.GetAllAssetsByPortfolioID(context.Background(), empty.ID, PortfolioAssetFilter{})

	// Assert
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assetRepo.AssertNotCalled(t, "GetAllQueryWithInclude", []string{"AssetType", "AssetHistories"})
	assetRepo.AssertExpectations(t)
}

func TestAssetService_GetByID_IncludesAssetType(t *testing.T) {
	s := newPortfolioScenario(t)
	svc := s.service()
	all := svc.GetAll(context.Background())
	require.NotEmpty(t, all)

	found := svc.GetByID(context.Background(), all[0].ID)

	require.NotNil(t, found)
	require.NotNil(t, found.AssetType)
	assert.Equal(t, all[0].AssetTypeID, found.AssetType.ID)
}

func TestAssetService_GetByID_Missing(t *testing.T) {
	f := newFixture(t)

	found := NewAssetService(f.assets, f.links, zap.NewNop()).GetByID(context.Background(), 77)

	assert.Nil(t, found)
}

func TestAssetService_GetAllWithInclude(t *testing.T) {
	s := newPortfolioScenario(t)

	all := s.service().GetAllWithInclude(context.Background())

	require.Len(t, all, 4)
	for _, a := range all {
		assert.NotNil(t, a.AssetType, a.Name)
		assert.NotEmpty(t, a.AssetHistories, a.Name)
	}
}
