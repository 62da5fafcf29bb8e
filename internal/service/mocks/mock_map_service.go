package mocks

import (
	"context"
	"io"

	"mapapi/internal/model"
	"mapapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockMapService struct {
	mock.Mock
}

func (m *MockMapService) SaveMap(ctx context.Context, fileName, contentType string, r io.Reader) (int64, error) {
	args := m.Called(ctx, fileName, contentType, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMapService) FindMap(ctx context.Context, id int64) (*model.MapRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MapRecord), args.Error(1)
}

func (m *MockMapService) ListMaps(ctx context.Context, limit, offset int) (*service.MapListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MapListResult), args.Error(1)
}
