package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"descgate/internal/domain"
	"descgate/internal/port"
)

type assetStateRepo struct {
	db *sqlx.DB
}

// NewAssetStateRepo creates a new PostgreSQL-backed AssetStateRepository.
func NewAssetStateRepo(db *sqlx.DB) port.AssetStateRepository {
	return &assetStateRepo{db: db}
}

func (r *assetStateRepo) Upsert(ctx context.Context, state *domain.AssetState) error {
	state.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO asset_states (asset_id, content_hash, record, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (asset_id) DO UPDATE SET
			content_hash = EXCLUDED.content_hash,
			record = EXCLUDED.record,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		state.AssetID, state.ContentHash, state.Record, state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("assetStateRepo.Upsert: %w", err)
	}
	return nil
}

func (r *assetStateRepo) GetByAssetID(ctx context.Context, assetID string) (*domain.AssetState, error) {
	var state domain.AssetState
	err := r.db.GetContext(ctx, &state,
		"SELECT * FROM asset_states WHERE asset_id = $1", assetID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("assetStateRepo.GetByAssetID: %w", err)
	}
	return &state, nil
}

func (r *assetStateRepo) List(ctx context.Context, offset, limit int) ([]domain.AssetState, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM asset_states")
	if err != nil {
		return nil, 0, fmt.Errorf("assetStateRepo.List count: %w", err)
	}

	var states []domain.AssetState
	err = r.db.SelectContext(ctx, &states,
		"SELECT * FROM asset_states ORDER BY asset_id LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("assetStateRepo.List: %w", err)
	}
	return states, total, nil
}
