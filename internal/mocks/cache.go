package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCountryCache is a mock implementation of service.CountryCache
type MockCountryCache struct {
	mock.Mock
}

func (m *MockCountryCache) Get(ctx context.Context) ([]string, int64, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Bool(2), args.Error(3)
	}
	return args.Get(0).([]string), args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockCountryCache) Set(ctx context.Context, countries []string, generation int64) error {
	return m.Called(ctx, countries, generation).Error(0)
}

func (m *MockCountryCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
