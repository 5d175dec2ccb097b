// Package service maps repository entities to transfer objects.
//
// Every exported read or write swallows faults: single-item operations return
// nil, list operations return an empty slice and Delete returns false. The
// underlying error is logged, so "not found" and "store failure" can only be
// told apart from the logs.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/simaogato/investfolio-backend/internal/domain"
	"github.com/simaogato/investfolio-backend/internal/dto"
)

// GenericService provides CRUD over a repository for entity E exposed as D
type GenericService[E any, D any] struct {
	Repo   domain.Repository[E]
	Mapper dto.Mapper[E, D]
	Logger *zap.Logger
}

// NewGenericService creates a new GenericService instance
func NewGenericService[E any, D any](repo domain.Repository[E], mapper dto.Mapper[E, D], logger *zap.Logger) *GenericService[E, D] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenericService[E, D]{
		Repo:   repo,
		Mapper: mapper,
		Logger: logger,
	}
}

// Add maps d to an entity and inserts it, returning the stored DTO
func (s *GenericService[E, D]) Add(ctx context.Context, d D) *D {
	out, _ := run(s.Logger, "add", func() (*D, error) {
		entity := s.Mapper.ToEntity(d)
		added, err := s.Repo.Add(ctx, &entity)
		if err != nil {
			return nil, err
		}
		if added == nil {
			return nil, fmt.Errorf("repository returned no entity")
		}
		result := s.Mapper.ToDTO(*added)
		return &result, nil
	})
	return out
}

// Update overwrites the entity identified by id. Returns nil when it does not exist.
func (s *GenericService[E, D]) Update(ctx context.Context, d D, id int) *D {
	out, _ := run(s.Logger, "update", func() (*D, error) {
		entity := s.Mapper.ToEntity(d)
		updated, err := s.Repo.Update(ctx, id, &entity)
		if err != nil || updated == nil {
			return nil, err
		}
		result := s.Mapper.ToDTO(*updated)
		return &result, nil
	})
	return out
}

// Delete removes the entity identified by id. Deleting a missing id succeeds.
func (s *GenericService[E, D]) Delete(ctx context.Context, id int) bool {
	_, ok := run(s.Logger, "delete", func() (struct{}, error) {
		return struct{}{}, s.Repo.Delete(ctx, id)
	})
	return ok
}

func (s *GenericService[E, D]) GetByID(ctx context.Context, id int) *D {
	out, _ := run(s.Logger, "get_by_id", func() (*D, error) {
		entity, err := s.Repo.GetByID(ctx, id)
		if err != nil || entity == nil {
			return nil, err
		}
		result := s.Mapper.ToDTO(*entity)
		return &result, nil
	})
	return out
}

func (s *GenericService[E, D]) GetAll(ctx context.Context) []D {
	return runList(s.Logger, "get_all", func() ([]D, error) {
		entities, err := s.Repo.GetAllList(ctx)
		if err != nil {
			return nil, err
		}
		return dto.MapAll(entities, s.Mapper.ToDTO), nil
	})
}

// first maps the first match of q, nil when nothing matches
func first[E any, D any](ctx context.Context, q domain.Query[E], toDTO func(E) D) (*D, error) {
	entity, err := q.FirstOrDefault(ctx)
	if err != nil || entity == nil {
		return nil, err
	}
	result := toDTO(*entity)
	return &result, nil
}

// list maps every match of q
func list[E any, D any](ctx context.Context, q domain.Query[E], toDTO func(E) D) ([]D, error) {
	entities, err := q.ToList(ctx)
	if err != nil {
		return nil, err
	}
	return dto.MapAll(entities, toDTO), nil
}

// run executes fn, converting an error or panic into a logged failure
func run[T any](logger *zap.Logger, op string, fn func() (T, error)) (out T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("service operation panicked", zap.String("op", op), zap.Any("panic", r))
			var zero T
			out, ok = zero, false
		}
	}()

	v, err := fn()
	if err != nil {
		logger.Error("service operation failed", zap.String("op", op), zap.Error(err))
		var zero T
		return zero, false
	}
	return v, true
}

// runList is run for list results, never returning nil
func runList[D any](logger *zap.Logger, op string, fn func() ([]D, error)) []D {
	out, ok := run(logger, op, fn)
	if !ok || out == nil {
		return []D{}
	}
	return out
}
