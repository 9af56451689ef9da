package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"descgate/internal/domain"
	"descgate/internal/port"
)

type gateRecordRepo struct {
	db *sqlx.DB
}

// NewGateRecordRepo creates a new PostgreSQL-backed GateRecordRepository.
func NewGateRecordRepo(db *sqlx.DB) port.GateRecordRepository {
	return &gateRecordRepo{db: db}
}

func (r *gateRecordRepo) Create(ctx context.Context, rec *domain.GateRecord) error {
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	query := `INSERT INTO gate_records (
		id, asset_id, status, raw_output, asset_record,
		structural_errors, semantic_errors, content_hash, decision,
		archive_key, failure_reason, attempts, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12, $13, $14
	)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.AssetID, rec.Status, rec.RawOutput, rec.AssetRecord,
		rec.StructuralErrors, rec.SemanticErrors, rec.ContentHash, rec.Decision,
		rec.ArchiveKey, rec.FailureReason, rec.Attempts, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("gateRecordRepo.Create: %w", err)
	}
	return nil
}

func (r *gateRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.GateRecord, error) {
	var rec domain.GateRecord
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM gate_records WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("gateRecordRepo.GetByID: %w", err)
	}
	return &rec, nil
}

// buildFilterClause assembles a WHERE clause from the optional filters.
func buildFilterClause(filters domain.RecordFilters) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filters.AssetID != "" {
		args = append(args, filters.AssetID)
		conds = append(conds, fmt.Sprintf("asset_id = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *gateRecordRepo) List(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, int, error) {
	where, args := buildFilterClause(filters)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM gate_records %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("gateRecordRepo.List count: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(
		"SELECT * FROM gate_records %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, filters.Offset)

	var recs []domain.GateRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("gateRecordRepo.List: %w", err)
	}
	return recs, total, nil
}

func (r *gateRecordRepo) UpdateResult(ctx context.Context, rec *domain.GateRecord) error {
	rec.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE gate_records SET
			status = $1, asset_record = $2,
			structural_errors = $3, semantic_errors = $4,
			content_hash = $5, decision = $6,
			archive_key = $7, failure_reason = $8,
			attempts = $9, updated_at = $10
		 WHERE id = $11`,
		rec.Status, rec.AssetRecord,
		rec.StructuralErrors, rec.SemanticErrors,
		rec.ContentHash, rec.Decision,
		rec.ArchiveKey, rec.FailureReason,
		rec.Attempts, rec.UpdatedAt,
		rec.ID)
	if err != nil {
		return fmt.Errorf("gateRecordRepo.UpdateResult: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("gateRecordRepo.UpdateResult rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClaimQueued atomically moves up to limit queued records into processing
// and returns them. Concurrent workers skip rows already claimed.
func (r *gateRecordRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.GateRecord, error) {
	query := `UPDATE gate_records SET status = 'processing', updated_at = $1
		WHERE id IN (
			SELECT id FROM gate_records WHERE status = 'queued'
			ORDER BY created_at LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var recs []domain.GateRecord
	err := r.db.SelectContext(ctx, &recs, query, time.Now().UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("gateRecordRepo.ClaimQueued: %w", err)
	}
	return recs, nil
}

func (r *gateRecordRepo) ListForExport(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, error) {
	where, args := buildFilterClause(filters)
	query := fmt.Sprintf(
		"SELECT * FROM gate_records %s ORDER BY created_at DESC", where)

	var recs []domain.GateRecord
	if err := r.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("gateRecordRepo.ListForExport: %w", err)
	}
	return recs, nil
}
