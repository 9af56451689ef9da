package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"descgate/internal/domain"
)

// MockAssetStateRepo is a mock implementation of port.AssetStateRepository.
type MockAssetStateRepo struct {
	mock.Mock
}

func (m *MockAssetStateRepo) Upsert(ctx context.Context, state *domain.AssetState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockAssetStateRepo) GetByAssetID(ctx context.Context, assetID string) (*domain.AssetState, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetState), args.Error(1)
}

func (m *MockAssetStateRepo) List(ctx context.Context, offset, limit int) ([]domain.AssetState, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AssetState), args.Int(1), args.Error(2)
}
