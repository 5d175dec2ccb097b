package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

// repository implements domain.Repository for any GORM model with an int primary key
type repository[E any] struct {
	db     *gorm.DB
	logger *zap.Logger
	kind   string
}

// NewRepository creates a generic repository for entities of type E
func NewRepository[E any](db *DB, logger *zap.Logger) domain.Repository[E] {
	if logger == nil {
		logger = zap.NewNop()
	}
	kind := strings.TrimPrefix(fmt.Sprintf("%T", *new(E)), "domain.")
	return &repository[E]{
		db:     db.Gorm,
		logger: logger.With(zap.String("entity", kind)),
		kind:   kind,
	}
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB, logger *zap.Logger) domain.Repository[domain.Asset] {
	return NewRepository[domain.Asset](db, logger)
}

// NewAssetTypeRepository creates a new asset type repository
func NewAssetTypeRepository(db *DB, logger *zap.Logger) domain.Repository[domain.AssetType] {
	return NewRepository[domain.AssetType](db, logger)
}

// NewAssetHistoryRepository creates a new asset history repository
func NewAssetHistoryRepository(db *DB, logger *zap.Logger) domain.Repository[domain.AssetHistory] {
	return NewRepository[domain.AssetHistory](db, logger)
}

// NewInvestmentPortfolioRepository creates a new portfolio repository
func NewInvestmentPortfolioRepository(db *DB, logger *zap.Logger) domain.Repository[domain.InvestmentPortfolio] {
	return NewRepository[domain.InvestmentPortfolio](db, logger)
}

// NewInvestmentAssetsRepository creates a new portfolio/asset association repository
func NewInvestmentAssetsRepository(db *DB, logger *zap.Logger) domain.Repository[domain.InvestmentAssets] {
	return NewRepository[domain.InvestmentAssets](db, logger)
}

// Add inserts the entity. Loaded relations are not written.
func (r *repository[E]) Add(ctx context.Context, entity *E) (*E, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error; err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", r.kind, err)
	}
	return entity, nil
}

// AddRange inserts all entities in a single statement
func (r *repository[E]) AddRange(ctx context.Context, entities []E) ([]E, error) {
	if len(entities) == 0 {
		return entities, nil
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to add %s range: %w", r.kind, err)
	}
	return entities, nil
}

// Update copies every scalar field of entity onto the row identified by id
func (r *repository[E]) Update(ctx context.Context, id int, entity *E) (*E, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		r.logger.Debug("update target missing", zap.Int("id", id))
		return nil, nil
	}

	err = r.db.WithContext(ctx).
		Model(existing).
		Select("*").
		Omit("id", clause.Associations).
		Updates(entity).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", r.kind, err)
	}

	return r.GetByID(ctx, id)
}

// Delete removes the row identified by id, doing nothing when it is absent
func (r *repository[E]) Delete(ctx context.Context, id int) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		r.logger.Debug("delete target missing", zap.Int("id", id))
		return nil
	}

	if err := r.db.WithContext(ctx).Delete(existing).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.kind, err)
	}
	return nil
}

// GetByID retrieves an entity by its primary key
func (r *repository[E]) GetByID(ctx context.Context, id int) (*E, error) {
	var entity E
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s by ID: %w", r.kind, err)
	}
	return &entity, nil
}

func (r *repository[E]) GetAllList(ctx context.Context) ([]E, error) {
	items, err := r.GetAllQuery().ToList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.kind, err)
	}
	return items, nil
}

func (r *repository[E]) GetAllListWithInclude(ctx context.Context, relations ...string) ([]E, error) {
	items, err := r.GetAllQueryWithInclude(relations...).ToList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.kind, err)
	}
	return items, nil
}

func (r *repository[E]) GetAllQuery() domain.Query[E] {
	return newQuery[E](r.db)
}

func (r *repository[E]) GetAllQueryWithInclude(relations ...string) domain.Query[E] {
	return newQuery[E](r.db).Include(relations...)
}
