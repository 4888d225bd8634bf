package certificates

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"certtrack-backend/internal/orgs"
	"certtrack-backend/internal/shared/server/middleware"
	"certtrack-backend/internal/shared/server/respond"
)

const maxUploadSize = 20 << 20 // 20MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches certificate routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/certificates", h.upload)
	rg.GET("/certificates", h.list)
	rg.PATCH("/certificates/:id", h.update)
	rg.POST("/certificates/recompute", h.recompute)
}

func (h *Handler) upload(c *gin.Context) {
	actorID := middleware.ActorIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	cert, err := h.Svc.CreateFromUpload(c.Request.Context(), UploadRequest{
		ActorID:  actorID,
		OrgID:    strings.TrimSpace(c.PostForm("orgId")),
		FileName: fileHeader.Filename,
		MimeType: mimeType,
		Data:     data,
		AsOf:     time.Now().UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, orgs.ErrNoMembership):
			respond.Error(c, http.StatusForbidden, "no_membership", "actor has no organization membership", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to ingest certificate", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(cert))
}

func (h *Handler) list(c *gin.Context) {
	orgID, ok := h.resolveOrg(c)
	if !ok {
		return
	}

	var filter ListFilter
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		status := Status(v)
		if !ValidStatus(status) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status", nil)
			return
		}
		filter.Status = &status
	}
	if v := strings.TrimSpace(c.Query("type")); v != "" {
		certType := Type(v)
		if !ValidType(certType) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown type", nil)
			return
		}
		filter.Type = &certType
	}
	if v := strings.TrimSpace(c.Query("issuingBody")); v != "" {
		filter.IssuingBody = &v
	}

	certs, err := h.Svc.List(c.Request.Context(), orgID, filter)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list certificates", nil)
		}
		return
	}

	resp := make([]certificateResponse, 0, len(certs))
	for _, cert := range certs {
		resp = append(resp, toResponse(cert))
	}
	respond.JSON(c, http.StatusOK, resp)
}

type updateRequestBody struct {
	Type        *string `json:"type"`
	IssuingBody *string `json:"issuingBody"`
	IssueDate   *string `json:"issueDate"`
	ExpiryDate  *string `json:"expiryDate"`
	Volume      *Volume `json:"volume"`
	Status      *string `json:"status"`
}

func (h *Handler) update(c *gin.Context) {
	var body updateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	var edits UpdateRequest
	if body.Type != nil {
		t := Type(*body.Type)
		edits.Type = &t
	}
	if body.Status != nil {
		s := Status(*body.Status)
		edits.Status = &s
	}
	edits.IssuingBody = body.IssuingBody
	edits.Volume = body.Volume

	if body.IssueDate != nil {
		d, err := time.Parse("2006-01-02", *body.IssueDate)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "issueDate must be YYYY-MM-DD", nil)
			return
		}
		edits.IssueDate = &d
	}
	if body.ExpiryDate != nil {
		d, err := time.Parse("2006-01-02", *body.ExpiryDate)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "expiryDate must be YYYY-MM-DD", nil)
			return
		}
		edits.ExpiryDate = &d
	}

	cert, err := h.Svc.Update(c.Request.Context(), c.Param("id"), edits)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "certificate not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update certificate", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(cert))
}

func (h *Handler) recompute(c *gin.Context) {
	orgID, ok := h.resolveOrg(c)
	if !ok {
		return
	}

	if err := h.Svc.RecomputeAllForOrg(c.Request.Context(), orgID, time.Now().UTC()); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to recompute statuses", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// resolveOrg picks the org from the query param or the actor's membership.
func (h *Handler) resolveOrg(c *gin.Context) (string, bool) {
	if orgID := strings.TrimSpace(c.Query("orgId")); orgID != "" {
		return orgID, true
	}
	actorID := middleware.ActorIDFromContext(c)
	orgID, err := h.Svc.Memberships.ResolveOrgForActor(c.Request.Context(), actorID)
	if err != nil {
		if errors.Is(err, orgs.ErrNoMembership) {
			respond.Error(c, http.StatusForbidden, "no_membership", "actor has no organization membership", nil)
		} else {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to resolve organization", nil)
		}
		return "", false
	}
	return orgID, true
}
