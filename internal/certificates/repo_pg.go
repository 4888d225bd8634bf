package certificates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const certColumns = `id, org_id, type, issuing_body, issue_date, expiry_date, volume_amount, volume_unit, extracted_text, engine, status, uploaded_by, storage_key, file_url, mime_type, size_bytes, original_name, checksum, created_at, updated_at`

// Create inserts a new certificate record.
func (r *PGRepo) Create(ctx context.Context, cert Certificate) error {
	const query = `
INSERT INTO certificates (` + certColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	var body sql.NullString
	if cert.IssuingBody != "" {
		body = sql.NullString{String: cert.IssuingBody, Valid: true}
	}
	var issueDate, expiryDate sql.NullTime
	if cert.IssueDate != nil {
		issueDate = sql.NullTime{Time: *cert.IssueDate, Valid: true}
	}
	if cert.ExpiryDate != nil {
		expiryDate = sql.NullTime{Time: *cert.ExpiryDate, Valid: true}
	}
	var volumeAmount sql.NullFloat64
	var volumeUnit sql.NullString
	if cert.Volume != nil {
		volumeAmount = sql.NullFloat64{Float64: cert.Volume.Amount, Valid: true}
		volumeUnit = sql.NullString{String: cert.Volume.Unit, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		cert.ID,
		cert.OrgID,
		string(cert.Type),
		body,
		issueDate,
		expiryDate,
		volumeAmount,
		volumeUnit,
		cert.ExtractedText,
		cert.Engine,
		string(cert.Status),
		cert.UploadedBy,
		cert.StorageKey,
		cert.FileURL,
		cert.MimeType,
		cert.SizeBytes,
		cert.OriginalName,
		cert.Checksum,
		cert.CreatedAt,
		cert.UpdatedAt,
	)
	return err
}

// GetByID fetches a certificate record by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Certificate, error) {
	query := `SELECT ` + certColumns + ` FROM certificates WHERE id = $1`
	cert, err := scanCertificate(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Certificate{}, ErrNotFound
		}
		return Certificate{}, err
	}
	return cert, nil
}

// ListByOrg returns matching records newest-created-first. Every filter is an
// exact-equality predicate.
func (r *PGRepo) ListByOrg(ctx context.Context, orgID string, filter ListFilter) ([]Certificate, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + certColumns + ` FROM certificates WHERE org_id = $1`)
	args := []any{orgID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		fmt.Fprintf(&sb, " AND status = $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		fmt.Fprintf(&sb, " AND type = $%d", len(args))
	}
	if filter.IssuingBody != nil {
		args = append(args, *filter.IssuingBody)
		fmt.Fprintf(&sb, " AND issuing_body = $%d", len(args))
	}
	sb.WriteString(" ORDER BY created_at DESC")

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Certificate
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cert)
	}
	return out, rows.Err()
}

// ListOrgIDs returns every organization id that owns at least one record.
func (r *PGRepo) ListOrgIDs(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT org_id FROM certificates ORDER BY org_id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var orgID string
		if err := rows.Scan(&orgID); err != nil {
			return nil, err
		}
		out = append(out, orgID)
	}
	return out, rows.Err()
}

// Update replaces the mutable fields of a stored record.
func (r *PGRepo) Update(ctx context.Context, cert Certificate) error {
	const query = `
UPDATE certificates
SET type = $2,
    issuing_body = $3,
    issue_date = $4,
    expiry_date = $5,
    volume_amount = $6,
    volume_unit = $7,
    status = $8,
    updated_at = $9
WHERE id = $1`

	var body sql.NullString
	if cert.IssuingBody != "" {
		body = sql.NullString{String: cert.IssuingBody, Valid: true}
	}
	var issueDate, expiryDate sql.NullTime
	if cert.IssueDate != nil {
		issueDate = sql.NullTime{Time: *cert.IssueDate, Valid: true}
	}
	if cert.ExpiryDate != nil {
		expiryDate = sql.NullTime{Time: *cert.ExpiryDate, Valid: true}
	}
	var volumeAmount sql.NullFloat64
	var volumeUnit sql.NullString
	if cert.Volume != nil {
		volumeAmount = sql.NullFloat64{Float64: cert.Volume.Amount, Valid: true}
		volumeUnit = sql.NullString{String: cert.Volume.Unit, Valid: true}
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		cert.ID,
		string(cert.Type),
		body,
		issueDate,
		expiryDate,
		volumeAmount,
		volumeUnit,
		string(cert.Status),
		cert.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCertificate(row rowScanner) (Certificate, error) {
	var (
		cert         Certificate
		certType     string
		status       string
		body         sql.NullString
		issueDate    sql.NullTime
		expiryDate   sql.NullTime
		volumeAmount sql.NullFloat64
		volumeUnit   sql.NullString
	)
	err := row.Scan(
		&cert.ID,
		&cert.OrgID,
		&certType,
		&body,
		&issueDate,
		&expiryDate,
		&volumeAmount,
		&volumeUnit,
		&cert.ExtractedText,
		&cert.Engine,
		&status,
		&cert.UploadedBy,
		&cert.StorageKey,
		&cert.FileURL,
		&cert.MimeType,
		&cert.SizeBytes,
		&cert.OriginalName,
		&cert.Checksum,
		&cert.CreatedAt,
		&cert.UpdatedAt,
	)
	if err != nil {
		return Certificate{}, err
	}
	cert.Type = Type(certType)
	cert.Status = Status(status)
	if body.Valid {
		cert.IssuingBody = body.String
	}
	if issueDate.Valid {
		t := issueDate.Time
		cert.IssueDate = &t
	}
	if expiryDate.Valid {
		t := expiryDate.Time
		cert.ExpiryDate = &t
	}
	if volumeAmount.Valid && volumeUnit.Valid {
		cert.Volume = &Volume{Amount: volumeAmount.Float64, Unit: volumeUnit.String}
	}
	return cert, nil
}
