// Command seedassets imports an asset inventory Excel file into the
// asset_states table. Each row becomes one asset record with its content
// hash precomputed, so the first gate check against a seeded asset can
// return SKIP when nothing material changed.
// Usage: go run ./cmd/seedassets <inventory.xlsx>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"descgate/internal/changedetect"
	"descgate/internal/config"
	"descgate/internal/domain"
	"descgate/internal/repository/postgres"
)

// header columns expected in the first sheet, in order.
var expectedHeader = []string{
	"Asset ID", "Source System", "Entity Type", "Entity Name", "Entity Path", "Domain", "Description", "Tags",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedassets <inventory.xlsx>")
	}
	xlsxPath := os.Args[1]

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("sheet %q has no data rows", sheet)
	}
	if err := checkHeader(rows[0]); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	stateRepo := postgres.NewAssetStateRepo(db)

	ctx := context.Background()
	seeded := 0
	skipped := 0

	for i, row := range rows[1:] {
		record, ok := rowToRecord(row)
		if !ok {
			log.Printf("row %d: missing asset ID, skipping", i+2)
			skipped++
			continue
		}

		normalized, err := changedetect.Normalize(record)
		if err != nil {
			log.Printf("row %d: canonicalizing: %v", i+2, err)
			skipped++
			continue
		}
		hash, err := changedetect.ComputeHash(record)
		if err != nil {
			log.Printf("row %d: hashing: %v", i+2, err)
			skipped++
			continue
		}
		normalizedJSON, err := json.Marshal(normalized)
		if err != nil {
			log.Printf("row %d: encoding: %v", i+2, err)
			skipped++
			continue
		}

		if err := stateRepo.Upsert(ctx, &domain.AssetState{
			AssetID:     record["id"].(string),
			ContentHash: hash,
			Record:      normalizedJSON,
		}); err != nil {
			return fmt.Errorf("row %d: saving state: %w", i+2, err)
		}
		seeded++
	}

	log.Printf("Seeded %d asset states (%d rows skipped)", seeded, skipped)
	return nil
}

func checkHeader(header []string) error {
	if len(header) < len(expectedHeader) {
		return fmt.Errorf("header has %d columns, want %d", len(header), len(expectedHeader))
	}
	for i, want := range expectedHeader {
		if strings.TrimSpace(header[i]) != want {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func rowToRecord(row []string) (map[string]any, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	id := cell(0)
	if id == "" {
		return nil, false
	}

	record := map[string]any{"id": id}
	if v := cell(1); v != "" {
		record["sourceSystem"] = v
	}
	if v := cell(2); v != "" {
		record["entityType"] = v
	}
	if v := cell(3); v != "" {
		record["entityName"] = v
	}
	if v := cell(4); v != "" {
		record["entityPath"] = v
	}
	if v := cell(5); v != "" {
		record["domain"] = v
	}
	if v := cell(6); v != "" {
		record["description"] = v
	}
	if v := cell(7); v != "" {
		var tags []any
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
		if len(tags) > 0 {
			record["tags"] = tags
		}
	}
	return record, true
}
