package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"descgate/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Record ID",
	"Asset ID",
	"Status",
	"Decision",
	"Content Hash",
	"Structural Errors",
	"Semantic Errors",
	"Failure Reason",
	"Attempts",
	"Archive Key",
	"Created At",
	"Updated At",
}

// Writer wraps csv.Writer for exporting gate records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of gate records to CSV rows and writes them.
func (w *Writer) WriteRecords(recs []domain.GateRecord) error {
	for i := range recs {
		row := recordToRow(&recs[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func recordToRow(rec *domain.GateRecord) []string {
	return []string{
		rec.ID.String(),
		rec.AssetID,
		string(rec.Status),
		rec.Decision,
		rec.ContentHash,
		strings.Join(rec.StructuralErrorList(), "; "),
		strings.Join(rec.SemanticErrorList(), "; "),
		rec.FailureReason,
		strconv.Itoa(rec.Attempts),
		rec.ArchiveKey,
		formatTime(rec.CreatedAt),
		formatTime(rec.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
