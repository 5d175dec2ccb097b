package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAssetTypeService_GetAllWithInclude(t *testing.T) {
	// Setup
	f := newFixture(t)
	stocks := f.addAssetType(t, "Stocks")
	f.addAssetType(t, "Bonds")
	f.addAsset(t, "Apple", "AAPL", stocks.ID)
	f.addAsset(t, "Tesla", "TSLA", stocks.ID)
	svc := NewAssetTypeService(f.assetTypes, zap.NewNop())

	// Execute
	types := svc.GetAllWithInclude(context.Background())

	// Assert
	require.Len(t, types, 2)
	counts := map[string]int{}
	for _, at := range types {
		counts[at.Name] = len(at.Assets)
	}
	assert.Equal(t, map[string]int{"Stocks": 2, "Bonds": 0}, counts)
}

func TestAssetTypeService_GetAllWithInclude_SpansBatches(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < assetTypeBatchSize+5; i++ {
		f.addAssetType(t, "Type")
	}

	types := NewAssetTypeService(f.assetTypes, zap.NewNop()).GetAllWithInclude(context.Background())

	assert.Len(t, types, assetTypeBatchSize+5)
}
