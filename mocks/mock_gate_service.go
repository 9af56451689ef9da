package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"descgate/internal/domain"
	"descgate/internal/service"
)

// MockGateService is a mock implementation of service.GateService.
type MockGateService struct {
	mock.Mock
}

func (m *MockGateService) Validate(raw string) service.ValidationOutcome {
	args := m.Called(raw)
	return args.Get(0).(service.ValidationOutcome)
}

func (m *MockGateService) Check(ctx context.Context, assetID string, input service.CheckInput) (*domain.GateRecord, error) {
	args := m.Called(ctx, assetID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GateRecord), args.Error(1)
}

func (m *MockGateService) Submit(ctx context.Context, assetID string, input service.CheckInput) (*domain.GateRecord, error) {
	args := m.Called(ctx, assetID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GateRecord), args.Error(1)
}

func (m *MockGateService) ProcessRecord(ctx context.Context, rec *domain.GateRecord, maxAttempts int) {
	m.Called(ctx, rec, maxAttempts)
}

func (m *MockGateService) GetRecord(ctx context.Context, id uuid.UUID) (*domain.GateRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GateRecord), args.Error(1)
}

func (m *MockGateService) ArchiveURL(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockGateService) ListRecords(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, int, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.GateRecord), args.Int(1), args.Error(2)
}

func (m *MockGateService) ListRecordsForExport(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GateRecord), args.Error(1)
}

func (m *MockGateService) GetAssetState(ctx context.Context, assetID string) (*domain.AssetState, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetState), args.Error(1)
}
