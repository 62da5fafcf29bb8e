package mocks

import (
	"context"

	"mapapi/internal/geojson"

	"github.com/stretchr/testify/mock"
)

type MockForwarder struct {
	mock.Mock
}

func (m *MockForwarder) Forward(ctx context.Context, f geojson.Feature) ([]byte, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
