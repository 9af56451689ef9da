package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"descgate/internal/domain"
)

// MockGateRecordRepo is a mock implementation of port.GateRecordRepository.
type MockGateRecordRepo struct {
	mock.Mock
}

func (m *MockGateRecordRepo) Create(ctx context.Context, rec *domain.GateRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockGateRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GateRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GateRecord), args.Error(1)
}

func (m *MockGateRecordRepo) List(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.GateRecord), args.Int(1), args.Error(2)
}

func (m *MockGateRecordRepo) UpdateResult(ctx context.Context, rec *domain.GateRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockGateRecordRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.GateRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GateRecord), args.Error(1)
}

func (m *MockGateRecordRepo) ListForExport(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GateRecord), args.Error(1)
}
