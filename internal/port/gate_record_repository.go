package port

import (
	"context"

	"github.com/google/uuid"

	"descgate/internal/domain"
)

// GateRecordRepository defines the contract for gate record persistence.
type GateRecordRepository interface {
	Create(ctx context.Context, rec *domain.GateRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GateRecord, error)
	List(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, int, error)
	UpdateResult(ctx context.Context, rec *domain.GateRecord) error
	ClaimQueued(ctx context.Context, limit int) ([]domain.GateRecord, error)
	ListForExport(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, error)
}
