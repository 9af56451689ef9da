package port

import (
	"context"

	"descgate/internal/domain"
)

// AssetStateRepository defines the contract for asset state persistence.
type AssetStateRepository interface {
	Upsert(ctx context.Context, state *domain.AssetState) error
	GetByAssetID(ctx context.Context, assetID string) (*domain.AssetState, error)
	List(ctx context.Context, offset, limit int) ([]domain.AssetState, int, error)
}
