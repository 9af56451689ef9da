package port

import (
	"context"

	"descgate/internal/domain"
)

// Notifier defines the contract for notifying stewards about gate outcomes.
type Notifier interface {
	NotifyRejection(ctx context.Context, rec *domain.GateRecord) error
}
