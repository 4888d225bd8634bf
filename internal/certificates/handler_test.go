package certificates

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"certtrack-backend/internal/shared/server/middleware"
	"certtrack-backend/internal/shared/server/respond"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(middleware.Actor())
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func multipartUpload(t *testing.T, fileName string, data []byte, orgID string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if orgID != "" {
		if err := w.WriteField("orgId", orgID); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadEndpoint(t *testing.T) {
	// Text with no dates so the derived status does not depend on the clock.
	svc, _, _, memberships := newTestService("Scheme: RSB Volume: 42 MT")
	memberships.AddMembership("actor-1", "org-1")
	r := newTestRouter(svc)

	body, contentType := multipartUpload(t, "scan.pdf", []byte("%PDF-1.4"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Actor-Id", "actor-1")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp certificateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID == "" || resp.OrgID != "org-1" {
		t.Fatalf("unexpected identity fields: %+v", resp)
	}
	if resp.Type != TypeRSB {
		t.Fatalf("expected RSB, got %s", resp.Type)
	}
	if resp.Volume == nil || resp.Volume.Amount != 42 || resp.Volume.Unit != "mt" {
		t.Fatalf("unexpected volume: %+v", resp.Volume)
	}
	if resp.Status != StatusUploaded {
		t.Fatalf("expected uploaded, got %s", resp.Status)
	}
	if resp.UploadedBy != "actor-1" {
		t.Fatalf("expected uploadedBy actor-1, got %s", resp.UploadedBy)
	}
	if resp.File.OriginalName != "scan.pdf" || resp.File.Checksum == "" {
		t.Fatalf("unexpected file block: %+v", resp.File)
	}
	if resp.IssueDate != "" || resp.ExpiryDate != "" {
		t.Fatalf("expected empty dates, got %q/%q", resp.IssueDate, resp.ExpiryDate)
	}
}

func TestUploadEndpointRequiresActor(t *testing.T) {
	svc, _, _, _ := newTestService("")
	r := newTestRouter(svc)

	body, contentType := multipartUpload(t, "scan.pdf", []byte("x"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUploadEndpointNoMembership(t *testing.T) {
	svc, store, repo, _ := newTestService("")
	r := newTestRouter(svc)

	body, contentType := multipartUpload(t, "scan.pdf", []byte("x"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Actor-Id", "stranger")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp respond.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Code != "no_membership" {
		t.Fatalf("expected no_membership, got %q", resp.Error.Code)
	}
	if store.count() != 0 {
		t.Fatal("expected no blob persisted")
	}
	if certs, _ := repo.ListByOrg(context.Background(), "org-1", ListFilter{}); len(certs) != 0 {
		t.Fatal("expected no record created")
	}
}

func TestUploadEndpointMissingFile(t *testing.T) {
	svc, _, _, memberships := newTestService("")
	memberships.AddMembership("actor-1", "org-1")
	r := newTestRouter(svc)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	_ = w.WriteField("orgId", "org-1")
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Actor-Id", "actor-1")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListEndpointFilters(t *testing.T) {
	svc, _, repo, memberships := newTestService("")
	memberships.AddMembership("actor-1", "org-1")
	r := newTestRouter(svc)

	seed := []Certificate{
		{ID: "c1", OrgID: "org-1", Type: TypeISCC, Status: StatusValidated, CreatedAt: date(2026, time.January, 1)},
		{ID: "c2", OrgID: "org-1", Type: TypeRSB, Status: StatusExpired, CreatedAt: date(2026, time.January, 2)},
	}
	for _, c := range seed {
		if err := repo.Create(context.Background(), c); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/certificates?type=RSB", nil)
	req.Header.Set("X-Actor-Id", "actor-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp []certificateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "c2" {
		t.Fatalf("unexpected list: %+v", resp)
	}

	// Unknown filter values are rejected before the repo is consulted.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/certificates?status=bogus", nil)
	req.Header.Set("X-Actor-Id", "actor-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestUpdateEndpoint(t *testing.T) {
	svc, _, repo, memberships := newTestService("")
	memberships.AddMembership("actor-1", "org-1")
	r := newTestRouter(svc)

	cert := Certificate{ID: "c1", OrgID: "org-1", Type: TypeOther, Status: StatusUploaded, CreatedAt: date(2026, time.January, 1)}
	if err := repo.Create(context.Background(), cert); err != nil {
		t.Fatal(err)
	}

	payload := `{"status":"invalid","expiryDate":"2026-12-31","volume":{"amount":10,"unit":"kg"}}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/certificates/c1", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-Id", "actor-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp certificateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != StatusInvalid {
		t.Fatalf("expected manual status kept, got %s", resp.Status)
	}
	if resp.ExpiryDate != "2026-12-31" {
		t.Fatalf("unexpected expiry %q", resp.ExpiryDate)
	}
	if resp.Volume == nil || resp.Volume.Unit != "kg" {
		t.Fatalf("unexpected volume %+v", resp.Volume)
	}

	// Malformed date.
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/certificates/c1", strings.NewReader(`{"issueDate":"31/12/2026"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-Id", "actor-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", rec.Code)
	}

	// Unknown record.
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/certificates/nope", strings.NewReader(`{"status":"expired"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-Id", "actor-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRecomputeEndpoint(t *testing.T) {
	svc, _, repo, memberships := newTestService("")
	memberships.AddMembership("actor-1", "org-1")
	r := newTestRouter(svc)

	expiry := date(2020, time.January, 1)
	cert := Certificate{ID: "c1", OrgID: "org-1", Type: TypeOther, ExpiryDate: &expiry, Status: StatusValidated, CreatedAt: date(2026, time.January, 1)}
	if err := repo.Create(context.Background(), cert); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates/recompute", nil)
	req.Header.Set("X-Actor-Id", "actor-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	swept, err := repo.GetByID(context.Background(), "c1")
	if err != nil {
		t.Fatal(err)
	}
	if swept.Status != StatusExpired {
		t.Fatalf("expected expired after sweep, got %s", swept.Status)
	}
}
