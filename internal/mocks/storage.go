package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock implementation of storage.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Store(ctx context.Context, data []byte, bucket, path, contentType string) (string, error) {
	args := m.Called(ctx, data, bucket, path, contentType)
	return args.String(0), args.Error(1)
}
