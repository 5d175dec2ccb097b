package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/simaogato/investfolio-backend/internal/domain"
)

// MockRepository is a mock implementation of domain.Repository
type MockRepository[E any] struct {
	mock.Mock
}

func (m *MockRepository[E]) Add(ctx context.Context, entity *E) (*E, error) {
	args := m.Called(ctx, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*E), args.Error(1)
}

func (m *MockRepository[E]) AddRange(ctx context.Context, entities []E) ([]E, error) {
	args := m.Called(ctx, entities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]E), args.Error(1)
}

func (m *MockRepository[E]) Update(ctx context.Context, id int, entity *E) (*E, error) {
	args := m.Called(ctx, id, entity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*E), args.Error(1)
}

func (m *MockRepository[E]) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository[E]) GetByID(ctx context.Context, id int) (*E, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*E), args.Error(1)
}

func (m *MockRepository[E]) GetAllList(ctx context.Context) ([]E, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]E), args.Error(1)
}

func (m *MockRepository[E]) GetAllListWithInclude(ctx context.Context, relations ...string) ([]E, error) {
	args := m.Called(ctx, relations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]E), args.Error(1)
}

func (m *MockRepository[E]) GetAllQuery() domain.Query[E] {
	args := m.Called()
	return args.Get(0).(domain.Query[E])
}

func (m *MockRepository[E]) GetAllQueryWithInclude(relations ...string) domain.Query[E] {
	args := m.Called(relations)
	return args.Get(0).(domain.Query[E])
}
