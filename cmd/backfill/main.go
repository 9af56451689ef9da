// Command backfill recomputes content hashes for all stored asset states.
// Run it after changing the material field set or canonicalization rules so
// that stored hashes match what the gate would compute today.
// Usage: go run ./cmd/backfill
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"descgate/internal/changedetect"
	"descgate/internal/config"
	"descgate/internal/domain"
	"descgate/internal/repository/postgres"
)

const batchSize = 100

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
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
	offset := 0
	updated := 0
	skipped := 0
	failed := 0

	for {
		states, _, err := stateRepo.List(ctx, offset, batchSize)
		if err != nil {
			return fmt.Errorf("listing asset states at offset %d: %w", offset, err)
		}
		if len(states) == 0 {
			break
		}

		for i := range states {
			state := &states[i]

			var record map[string]any
			if err := json.Unmarshal(state.Record, &record); err != nil {
				log.Printf("asset %s: decoding record: %v", state.AssetID, err)
				failed++
				continue
			}

			normalized, err := changedetect.Normalize(record)
			if err != nil {
				log.Printf("asset %s: canonicalizing record: %v", state.AssetID, err)
				failed++
				continue
			}
			hash, err := changedetect.ComputeHash(record)
			if err != nil {
				log.Printf("asset %s: hashing record: %v", state.AssetID, err)
				failed++
				continue
			}

			if hash == state.ContentHash {
				skipped++
				continue
			}

			normalizedJSON, err := json.Marshal(normalized)
			if err != nil {
				log.Printf("asset %s: encoding normalized record: %v", state.AssetID, err)
				failed++
				continue
			}
			if err := stateRepo.Upsert(ctx, &domain.AssetState{
				AssetID:     state.AssetID,
				ContentHash: hash,
				Record:      normalizedJSON,
			}); err != nil {
				log.Printf("asset %s: saving state: %v", state.AssetID, err)
				failed++
				continue
			}
			updated++
		}

		offset += len(states)
	}

	log.Printf("Backfill complete: %d updated, %d unchanged, %d failed", updated, skipped, failed)
	return nil
}
