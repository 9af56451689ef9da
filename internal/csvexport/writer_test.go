package csvexport

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"descgate/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 12)
	assert.Equal(t, "Record ID", row[0])
	assert.Equal(t, "Asset ID", row[1])
	assert.Equal(t, "Updated At", row[11])
}

func TestWriteRecords(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	recs := []domain.GateRecord{
		{
			ID:               uuid.New(),
			AssetID:          "synergy.sales.orders",
			Status:           domain.GateStatusAccepted,
			Decision:         "REPROCESS",
			ContentHash:      "abc123",
			StructuralErrors: json.RawMessage("[]"),
			SemanticErrors:   json.RawMessage("[]"),
			Attempts:         1,
			ArchiveKey:       "submissions/synergy.sales.orders/x.yaml",
			CreatedAt:        created,
		},
		{
			ID:      uuid.New(),
			AssetID: "synergy.sales.refunds",
			Status:  domain.GateStatusRejectedStructural,
			StructuralErrors: json.RawMessage(
				`["Missing required field 'confidence'","Unknown field 'extra' not permitted by contract"]`),
			SemanticErrors: json.RawMessage("[]"),
			Attempts:       2,
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteRecords(recs))
	require.NoError(t, w.Flush())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "synergy.sales.orders", rows[1][1])
	assert.Equal(t, "accepted", rows[1][2])
	assert.Equal(t, "REPROCESS", rows[1][3])
	assert.Equal(t, "2026-03-14T09:30:00Z", rows[1][10])

	assert.Equal(t, "rejected_structural", rows[2][2])
	assert.Equal(t,
		"Missing required field 'confidence'; Unknown field 'extra' not permitted by contract",
		rows[2][5])
	assert.Equal(t, "2", rows[2][8])
	// Zero timestamps render as empty cells
	assert.Equal(t, "", rows[2][10])
}
