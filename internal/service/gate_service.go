package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"descgate/internal/changedetect"
	"descgate/internal/config"
	"descgate/internal/contract"
	"descgate/internal/domain"
	"descgate/internal/port"
)

// ValidationOutcome bundles both validation layers for one submission.
type ValidationOutcome struct {
	Structural contract.Result `json:"structural"`
	Semantic   contract.Result `json:"semantic"`
}

// Accepted reports whether both layers passed.
func (o ValidationOutcome) Accepted() bool {
	return o.Structural.IsValid && o.Semantic.IsValid
}

// CheckInput is the DTO for synchronous gate checks and queued submissions.
type CheckInput struct {
	RawOutput   string         `json:"raw_output" binding:"required"`
	AssetRecord map[string]any `json:"asset_record" binding:"required"`
}

// GateService runs generated descriptions through both validation layers,
// applies accepted descriptions to the asset record, and decides whether
// the asset needs reprocessing.
type GateService interface {
	Validate(raw string) ValidationOutcome
	Check(ctx context.Context, assetID string, input CheckInput) (*domain.GateRecord, error)
	Submit(ctx context.Context, assetID string, input CheckInput) (*domain.GateRecord, error)
	ProcessRecord(ctx context.Context, rec *domain.GateRecord, maxAttempts int)
	GetRecord(ctx context.Context, id uuid.UUID) (*domain.GateRecord, error)
	ArchiveURL(ctx context.Context, id uuid.UUID) (string, error)
	ListRecords(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, int, error)
	ListRecordsForExport(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, error)
	GetAssetState(ctx context.Context, assetID string) (*domain.AssetState, error)
}

type gateService struct {
	stateRepo  port.AssetStateRepository
	recordRepo port.GateRecordRepository
	storage    port.ObjectStorage
	notifier   port.Notifier
	gateCfg    config.GateConfig
	s3Cfg      config.S3Config
}

// NewGateService creates a new GateService implementation.
func NewGateService(
	stateRepo port.AssetStateRepository,
	recordRepo port.GateRecordRepository,
	storage port.ObjectStorage,
	notifier port.Notifier,
	gateCfg config.GateConfig,
	s3Cfg config.S3Config,
) GateService {
	return &gateService{
		stateRepo:  stateRepo,
		recordRepo: recordRepo,
		storage:    storage,
		notifier:   notifier,
		gateCfg:    gateCfg,
		s3Cfg:      s3Cfg,
	}
}

func (s *gateService) Validate(raw string) ValidationOutcome {
	structural, semantic := contract.Validate(raw)
	return ValidationOutcome{Structural: structural, Semantic: semantic}
}

func (s *gateService) Check(ctx context.Context, assetID string, input CheckInput) (*domain.GateRecord, error) {
	rec, err := s.newRecord(assetID, input)
	if err != nil {
		return nil, err
	}

	s.runGate(ctx, rec, input.AssetRecord)

	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("gate.Check: %w", err)
	}
	s.postProcess(ctx, rec)
	return rec, nil
}

func (s *gateService) Submit(ctx context.Context, assetID string, input CheckInput) (*domain.GateRecord, error) {
	rec, err := s.newRecord(assetID, input)
	if err != nil {
		return nil, err
	}
	rec.Status = domain.GateStatusQueued

	if err := s.recordRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("gate.Submit: %w", err)
	}
	return rec, nil
}

// ProcessRecord runs a claimed submission through the gate. It is called by
// the scan queue worker; the record must already be in processing status with
// Attempts incremented.
func (s *gateService) ProcessRecord(ctx context.Context, rec *domain.GateRecord, maxAttempts int) {
	var assetRecord map[string]any
	if err := json.Unmarshal(rec.AssetRecord, &assetRecord); err != nil {
		s.failRecord(ctx, rec, maxAttempts, fmt.Sprintf("decoding asset record: %v", err))
		return
	}

	s.runGate(ctx, rec, assetRecord)

	if err := s.recordRepo.UpdateResult(ctx, rec); err != nil {
		log.Printf("gateService: saving result for record %s: %v", rec.ID, err)
		return
	}
	s.postProcess(ctx, rec)
}

func (s *gateService) GetRecord(ctx context.Context, id uuid.UUID) (*domain.GateRecord, error) {
	return s.recordRepo.GetByID(ctx, id)
}

// ArchiveURL returns a presigned link to the archived raw submission.
func (s *gateService) ArchiveURL(ctx context.Context, id uuid.UUID) (string, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if rec.ArchiveKey == "" || s.storage == nil {
		return "", domain.ErrNotFound
	}
	url, err := s.storage.GetPresignedURL(ctx, s.s3Cfg.Bucket, rec.ArchiveKey, s.s3Cfg.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("gate.ArchiveURL: %w", err)
	}
	return url, nil
}

func (s *gateService) ListRecords(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, int, error) {
	return s.recordRepo.List(ctx, filters)
}

func (s *gateService) ListRecordsForExport(ctx context.Context, filters domain.RecordFilters) ([]domain.GateRecord, error) {
	return s.recordRepo.ListForExport(ctx, filters)
}

func (s *gateService) GetAssetState(ctx context.Context, assetID string) (*domain.AssetState, error) {
	return s.stateRepo.GetByAssetID(ctx, assetID)
}

func (s *gateService) newRecord(assetID string, input CheckInput) (*domain.GateRecord, error) {
	if strings.TrimSpace(input.RawOutput) == "" {
		return nil, domain.ErrEmptyOutput
	}
	if input.AssetRecord == nil {
		return nil, domain.ErrInvalidAssetRecord
	}
	recordJSON, err := json.Marshal(input.AssetRecord)
	if err != nil {
		return nil, fmt.Errorf("encoding asset record: %w", err)
	}

	return &domain.GateRecord{
		ID:               uuid.New(),
		AssetID:          assetID,
		Status:           domain.GateStatusProcessing,
		RawOutput:        input.RawOutput,
		AssetRecord:      recordJSON,
		StructuralErrors: json.RawMessage("[]"),
		SemanticErrors:   json.RawMessage("[]"),
		Attempts:         1,
	}, nil
}

// runGate performs the core gate logic: both validation layers, applying the
// accepted description to the asset record, canonicalization, hashing, and the
// reprocess decision. It mutates rec in place and never returns an error; all
// failures are captured in the record's status.
func (s *gateService) runGate(ctx context.Context, rec *domain.GateRecord, assetRecord map[string]any) {
	outcome := s.Validate(rec.RawOutput)
	rec.StructuralErrors = encodeErrors(outcome.Structural.StructuralErrors)
	rec.SemanticErrors = encodeErrors(outcome.Semantic.SemanticErrors)

	if !outcome.Structural.IsValid {
		rec.Status = domain.GateStatusRejectedStructural
		return
	}
	if !outcome.Semantic.IsValid {
		rec.Status = domain.GateStatusRejectedSemantic
		return
	}

	doc, _ := contract.Parse(rec.RawOutput)
	desc, _ := doc.Get(contract.FieldDescription)
	assetRecord["description"] = desc.Scalar

	normalized, err := changedetect.Normalize(assetRecord)
	if err != nil {
		rec.Status = domain.GateStatusFailed
		rec.FailureReason = fmt.Sprintf("canonicalizing asset record: %v", err)
		return
	}
	hash, err := changedetect.ComputeHash(assetRecord)
	if err != nil {
		rec.Status = domain.GateStatusFailed
		rec.FailureReason = fmt.Sprintf("hashing asset record: %v", err)
		return
	}
	rec.ContentHash = hash

	var prior any
	state, err := s.stateRepo.GetByAssetID(ctx, rec.AssetID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		rec.Status = domain.GateStatusFailed
		rec.FailureReason = fmt.Sprintf("loading asset state: %v", err)
		return
	}
	if state != nil {
		prior = state.ContentHash
	}

	decision := changedetect.Decide(hash, prior)
	rec.Decision = string(decision)
	rec.Status = domain.GateStatusAccepted

	if decision == changedetect.DecisionReprocess {
		normalizedJSON, err := json.Marshal(normalized)
		if err != nil {
			rec.Status = domain.GateStatusFailed
			rec.FailureReason = fmt.Sprintf("encoding normalized record: %v", err)
			return
		}
		if err := s.stateRepo.Upsert(ctx, &domain.AssetState{
			AssetID:     rec.AssetID,
			ContentHash: hash,
			Record:      normalizedJSON,
		}); err != nil {
			rec.Status = domain.GateStatusFailed
			rec.FailureReason = fmt.Sprintf("saving asset state: %v", err)
			return
		}
	}
}

// postProcess archives the raw submission and sends rejection notices. Both
// are best-effort; failures are logged but never change the gate verdict.
func (s *gateService) postProcess(ctx context.Context, rec *domain.GateRecord) {
	if s.gateCfg.ArchiveSubmissions && s.storage != nil {
		key := fmt.Sprintf("submissions/%s/%s.yaml", rec.AssetID, rec.ID)
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.s3Cfg.Bucket,
			Key:         key,
			Body:        strings.NewReader(rec.RawOutput),
			ContentType: "application/x-yaml",
			Size:        int64(len(rec.RawOutput)),
		})
		if err != nil {
			log.Printf("gateService: archiving record %s: %v", rec.ID, err)
		} else {
			rec.ArchiveKey = key
			if err := s.recordRepo.UpdateResult(ctx, rec); err != nil {
				log.Printf("gateService: saving archive key for record %s: %v", rec.ID, err)
			}
		}
	}

	if s.gateCfg.NotifyRejections && s.notifier != nil && rec.Status.Rejected() {
		if err := s.notifier.NotifyRejection(ctx, rec); err != nil {
			log.Printf("gateService: notifying rejection for record %s: %v", rec.ID, err)
		}
	}
}

// failRecord marks a queued submission failed, re-queueing when attempts remain.
func (s *gateService) failRecord(ctx context.Context, rec *domain.GateRecord, maxAttempts int, reason string) {
	rec.FailureReason = reason
	if rec.Attempts < maxAttempts {
		rec.Status = domain.GateStatusQueued
	} else {
		rec.Status = domain.GateStatusFailed
	}
	if err := s.recordRepo.UpdateResult(ctx, rec); err != nil {
		log.Printf("gateService: marking record %s failed: %v", rec.ID, err)
	}
}

func encodeErrors(errs []string) json.RawMessage {
	if len(errs) == 0 {
		return json.RawMessage("[]")
	}
	out, err := json.Marshal(errs)
	if err != nil {
		return json.RawMessage("[]")
	}
	return out
}
