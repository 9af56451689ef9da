package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"descgate/internal/domain"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyRejection(ctx context.Context, rec *domain.GateRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
