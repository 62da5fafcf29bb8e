package mocks

import (
	"context"

	"mapapi/internal/model"
	"mapapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockMapRepository struct {
	mock.Mock
}

func (m *MockMapRepository) Save(ctx context.Context, rec *model.MapRecord) (int64, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMapRepository) FindByID(ctx context.Context, id int64) (*model.MapRecord, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(func(context.Context, int64) *model.MapRecord); ok {
		return f(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MapRecord), args.Error(1)
}

func (m *MockMapRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.MapInfo], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.MapInfo]), args.Error(1)
}
