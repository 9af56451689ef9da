package noop

import (
	"context"
	"log"

	"descgate/internal/domain"
	"descgate/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a no-op Notifier that logs rejections to stdout.
func NewNoopNotifier() port.Notifier {
	return &noopNotifier{}
}

func (n *noopNotifier) NotifyRejection(_ context.Context, rec *domain.GateRecord) error {
	log.Printf("[NOOP EMAIL] Rejection notice for asset %s (record %s, status %s)",
		rec.AssetID, rec.ID, rec.Status)
	return nil
}
