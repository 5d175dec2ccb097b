package gormrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

// query implements domain.Query on top of a GORM statement.
// Each builder step ends in a fresh Session so a query can be branched safely.
type query[E any] struct {
	db *gorm.DB
}

// statementer is implemented by every query so it can be embedded as a sub-query
type statementer interface {
	statement() *gorm.DB
}

func newQuery[E any](db *gorm.DB) query[E] {
	return query[E]{db: db.Model(new(E)).Session(&gorm.Session{})}
}

func (q query[E]) statement() *gorm.DB {
	return q.db
}

func (q query[E]) Where(condition string, args ...any) domain.Query[E] {
	unwrapped := make([]any, len(args))
	for i, arg := range args {
		if sub, ok := arg.(statementer); ok {
			unwrapped[i] = sub.statement()
			continue
		}
		unwrapped[i] = arg
	}
	return query[E]{db: q.db.Where(condition, unwrapped...).Session(&gorm.Session{})}
}

func (q query[E]) Include(relations ...string) domain.Query[E] {
	tx := q.db
	for _, relation := range relations {
		tx = tx.Preload(relation)
	}
	return query[E]{db: tx.Session(&gorm.Session{})}
}

func (q query[E]) Select(columns ...string) domain.Query[E] {
	return query[E]{db: q.db.Select(columns).Session(&gorm.Session{})}
}

func (q query[E]) OrderBy(order string) domain.Query[E] {
	return query[E]{db: q.db.Order(order).Session(&gorm.Session{})}
}

func (q query[E]) ToList(ctx context.Context) ([]E, error) {
	items := make([]E, 0)
	if err := q.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (q query[E]) FirstOrDefault(ctx context.Context) (*E, error) {
	var item E
	err := q.db.WithContext(ctx).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (q query[E]) PluckInts(ctx context.Context, column string) ([]int, error) {
	values := make([]int, 0)
	if err := q.db.WithContext(ctx).Pluck(column, &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

func (q query[E]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := q.db.WithContext(ctx).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (q query[E]) Each(ctx context.Context, batchSize int, fn func(E) error) error {
	if batchSize <= 0 {
		batchSize = 100
	}
	var batch []E
	return q.db.WithContext(ctx).FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
		for _, item := range batch {
			if err := fn(item); err != nil {
				return err
			}
		}
		return nil
	}).Error
}
