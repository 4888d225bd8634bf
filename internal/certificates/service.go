package certificates

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"certtrack-backend/internal/extract"
	"certtrack-backend/internal/heuristics"
	"certtrack-backend/internal/orgs"
	"certtrack-backend/internal/shared/metrics"
	"certtrack-backend/internal/shared/storage/object"
	"certtrack-backend/internal/shared/telemetry"
	"certtrack-backend/internal/shared/util"
)

// TextExtractor is the extraction collaborator boundary.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType string, fileName string) (extract.Result, error)
}

// Service orchestrates certificate ingestion, listing, edits and status
// recomputation.
type Service struct {
	Store       object.ObjectStore
	Repo        Repo
	Memberships orgs.Resolver
	Extractor   TextExtractor
}

// UploadRequest carries the raw upload plus the acting identity. AsOf is the
// reference date for the initial status derivation; callers pass the current
// time, tests pass a fixed date.
type UploadRequest struct {
	ActorID  string
	OrgID    string // optional; resolved through membership when empty
	FileName string
	MimeType string
	Data     []byte
	AsOf     time.Time
}

// UpdateRequest is the whitelist of manually editable fields. Nil means
// "leave unchanged". A supplied Status is accepted verbatim and not
// re-derived; a later recompute sweep may overwrite it.
type UpdateRequest struct {
	Type        *Type
	IssuingBody *string
	IssueDate   *time.Time
	ExpiryDate  *time.Time
	Volume      *Volume
	Status      *Status
}

// CreateFromUpload ingests an uploaded document: resolves the owning
// organization, persists the blob, computes the checksum, runs best-effort
// extraction and field heuristics, derives the initial status and persists
// the record. Extraction failure never aborts ingestion; the record is
// created with empty extracted text and the attempted engine tag.
func (s *Service) CreateFromUpload(ctx context.Context, req UploadRequest) (Certificate, error) {
	if strings.TrimSpace(req.ActorID) == "" {
		return Certificate{}, fmt.Errorf("%w: actor id is required", ErrInvalidInput)
	}
	fileName, err := util.SanitizeFileName(req.FileName)
	if err != nil {
		return Certificate{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if len(req.Data) == 0 {
		return Certificate{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	// Membership failure is fatal and happens before any blob write.
	orgID, err := s.resolveOwningOrganization(ctx, req.ActorID, req.OrgID)
	if err != nil {
		return Certificate{}, err
	}
	metrics.IncIngestionStarted()

	storageKey := newStorageKey(req.AsOf, fileName)
	sizeBytes, err := s.Store.Persist(ctx, storageKey, req.MimeType, bytes.NewReader(req.Data))
	if err != nil {
		return Certificate{}, fmt.Errorf("persist blob key=%s: %w", storageKey, err)
	}

	checksum := util.Checksum(req.Data)

	// Best-effort extraction: on any error, continue with empty text tagged
	// with the attempted engine.
	extractStart := metrics.NowMillis()
	result, err := s.Extractor.Extract(ctx, req.Data, req.MimeType, fileName)
	metrics.ObserveExtractionDurationMs(metrics.NowMillis() - extractStart)
	if err != nil {
		metrics.IncExtractionFailed()
		telemetry.Warn("certificates.extraction_failed", map[string]any{
			"storage_key": storageKey,
			"mime_type":   req.MimeType,
			"engine":      result.Engine,
			"error":       err.Error(),
		})
		result.Text = ""
	}

	text := heuristics.Normalize(result.Text)
	issueDate, expiryDate := heuristics.DateRange(text)
	certType := Type(heuristics.ClassifyType(text, string(TypeOther)))

	var volume *Volume
	if amount, unit, ok := heuristics.ExtractVolume(text); ok {
		volume = &Volume{Amount: amount, Unit: unit}
	}
	var issuingBody string
	if body, ok := heuristics.DetectIssuingBody(text); ok {
		issuingBody = body
	}

	now := time.Now().UTC()
	cert := Certificate{
		ID:            uuid.NewString(),
		OrgID:         orgID,
		Type:          certType,
		IssuingBody:   issuingBody,
		IssueDate:     issueDate,
		ExpiryDate:    expiryDate,
		Volume:        volume,
		ExtractedText: text,
		Engine:        result.Engine,
		Status:        DeriveStatus(expiryDate, req.AsOf),
		UploadedBy:    req.ActorID,
		StorageKey:    storageKey,
		FileURL:       s.Store.URL(storageKey),
		MimeType:      req.MimeType,
		SizeBytes:     sizeBytes,
		OriginalName:  fileName,
		Checksum:      checksum,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// The blob is already written; a failure here leaves it orphaned.
	if err := s.Repo.Create(ctx, cert); err != nil {
		return Certificate{}, fmt.Errorf("create certificate record: %w", err)
	}
	metrics.IncIngestionCompleted()
	return cert, nil
}

// List returns the organization's records newest-created-first. Filters are
// exact-equality, including IssuingBody.
func (s *Service) List(ctx context.Context, orgID string, filter ListFilter) ([]Certificate, error) {
	if strings.TrimSpace(orgID) == "" {
		return nil, fmt.Errorf("%w: org id is required", ErrInvalidInput)
	}
	return s.Repo.ListByOrg(ctx, orgID, filter)
}

// Update applies the whitelisted edits and persists. Invalid values surface
// ErrValidation and leave the record unchanged.
func (s *Service) Update(ctx context.Context, id string, edits UpdateRequest) (Certificate, error) {
	if edits.Type != nil && !ValidType(*edits.Type) {
		return Certificate{}, fmt.Errorf("%w: unknown type %q", ErrValidation, *edits.Type)
	}
	if edits.Status != nil && !ValidStatus(*edits.Status) {
		return Certificate{}, fmt.Errorf("%w: unknown status %q", ErrValidation, *edits.Status)
	}

	cert, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Certificate{}, err
	}

	if edits.Type != nil {
		cert.Type = *edits.Type
	}
	if edits.IssuingBody != nil {
		cert.IssuingBody = *edits.IssuingBody
	}
	if edits.IssueDate != nil {
		d := *edits.IssueDate
		cert.IssueDate = &d
	}
	if edits.ExpiryDate != nil {
		d := *edits.ExpiryDate
		cert.ExpiryDate = &d
	}
	if edits.Volume != nil {
		v := *edits.Volume
		cert.Volume = &v
	}
	if edits.Status != nil {
		cert.Status = *edits.Status
	}
	cert.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, cert); err != nil {
		return Certificate{}, err
	}
	return cert, nil
}

// RecomputeStatus re-derives the record's status as of the given date and
// persists only if the value actually changed. Idempotent.
func (s *Service) RecomputeStatus(ctx context.Context, cert Certificate, asOf time.Time) (Certificate, error) {
	next := DeriveStatus(cert.ExpiryDate, asOf)
	if next == cert.Status {
		return cert, nil
	}
	cert.Status = next
	cert.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, cert); err != nil {
		return Certificate{}, err
	}
	return cert, nil
}

// RecomputeAllForOrg sweeps every record owned by the organization through
// RecomputeStatus. This is how passive status drift becomes eventually
// consistent without any internal timer. Note the sweep overwrites a manual
// status override.
func (s *Service) RecomputeAllForOrg(ctx context.Context, orgID string, asOf time.Time) error {
	certs, err := s.Repo.ListByOrg(ctx, orgID, ListFilter{})
	if err != nil {
		return err
	}
	var errs []error
	for _, cert := range certs {
		if _, err := s.RecomputeStatus(ctx, cert, asOf); err != nil {
			errs = append(errs, fmt.Errorf("recompute id=%s: %w", cert.ID, err))
		}
	}
	return errors.Join(errs...)
}

// RecomputeAllOrgs sweeps every organization that owns at least one record.
// Per-org failures are collected; one broken org does not stop the rest.
func (s *Service) RecomputeAllOrgs(ctx context.Context, asOf time.Time) error {
	orgIDs, err := s.Repo.ListOrgIDs(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, orgID := range orgIDs {
		if err := s.RecomputeAllForOrg(ctx, orgID, asOf); err != nil {
			errs = append(errs, fmt.Errorf("org=%s: %w", orgID, err))
		}
	}
	return errors.Join(errs...)
}

// ResolveOwningOrganization resolves the organization an upload belongs to:
// the explicit org id when given, otherwise the actor's membership.
func (s *Service) resolveOwningOrganization(ctx context.Context, actorID, explicitOrgID string) (string, error) {
	if strings.TrimSpace(explicitOrgID) != "" {
		return explicitOrgID, nil
	}
	return s.Memberships.ResolveOrgForActor(ctx, actorID)
}

// newStorageKey builds a collision-free key: timestamp, random suffix, and
// the original file extension.
func newStorageKey(ts time.Time, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s_%s%s", ts.UTC().Format("20060102T150405"), randomSuffix(), ext)
}

func randomSuffix() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
