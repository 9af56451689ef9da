package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AssetState is the persisted change-detection state of one asset: the
// hash of its last accepted material content and the normalized record
// that produced it.
type AssetState struct {
	AssetID     string          `db:"asset_id" json:"asset_id"`
	ContentHash string          `db:"content_hash" json:"content_hash"`
	Record      json.RawMessage `db:"record" json:"record"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// GateRecord is one gated submission: the raw generated output, the asset
// record it belongs to, and the verdict of both validation layers.
type GateRecord struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	AssetID          string          `db:"asset_id" json:"asset_id"`
	Status           GateStatus      `db:"status" json:"status"`
	RawOutput        string          `db:"raw_output" json:"raw_output"`
	AssetRecord      json.RawMessage `db:"asset_record" json:"asset_record,omitempty"`
	StructuralErrors json.RawMessage `db:"structural_errors" json:"structural_errors"`
	SemanticErrors   json.RawMessage `db:"semantic_errors" json:"semantic_errors"`
	ContentHash      string          `db:"content_hash" json:"content_hash,omitempty"`
	Decision         string          `db:"decision" json:"decision,omitempty"`
	ArchiveKey       string          `db:"archive_key" json:"archive_key,omitempty"`
	FailureReason    string          `db:"failure_reason" json:"failure_reason,omitempty"`
	Attempts         int             `db:"attempts" json:"attempts"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// StructuralErrorList decodes the structural errors column.
func (r *GateRecord) StructuralErrorList() []string {
	return decodeErrors(r.StructuralErrors)
}

// SemanticErrorList decodes the semantic errors column.
func (r *GateRecord) SemanticErrorList() []string {
	return decodeErrors(r.SemanticErrors)
}

func decodeErrors(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// RecordFilters narrows gate record listings.
type RecordFilters struct {
	AssetID string
	Status  GateStatus
	From    *time.Time
	To      *time.Time
	Offset  int
	Limit   int
}
