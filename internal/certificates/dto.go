package certificates

import "time"

type extractedResponse struct {
	Text   string `json:"text"`
	Engine string `json:"engine"`
}

type fileResponse struct {
	StorageKey   string `json:"storageKey"`
	URL          string `json:"url"`
	Mime         string `json:"mime"`
	Size         int64  `json:"size"`
	OriginalName string `json:"originalName"`
	Checksum     string `json:"checksum"`
}

type certificateResponse struct {
	ID          string            `json:"id"`
	OrgID       string            `json:"orgId"`
	Type        Type              `json:"type"`
	IssuingBody string            `json:"issuingBody,omitempty"`
	IssueDate   string            `json:"issueDate,omitempty"`
	ExpiryDate  string            `json:"expiryDate,omitempty"`
	Volume      *Volume           `json:"volume,omitempty"`
	Extracted   extractedResponse `json:"extracted"`
	Status      Status            `json:"status"`
	UploadedBy  string            `json:"uploadedBy"`
	File        fileResponse      `json:"file"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func toResponse(cert Certificate) certificateResponse {
	resp := certificateResponse{
		ID:          cert.ID,
		OrgID:       cert.OrgID,
		Type:        cert.Type,
		IssuingBody: cert.IssuingBody,
		Volume:      cert.Volume,
		Extracted:   extractedResponse{Text: cert.ExtractedText, Engine: cert.Engine},
		Status:      cert.Status,
		UploadedBy:  cert.UploadedBy,
		File: fileResponse{
			StorageKey:   cert.StorageKey,
			URL:          cert.FileURL,
			Mime:         cert.MimeType,
			Size:         cert.SizeBytes,
			OriginalName: cert.OriginalName,
			Checksum:     cert.Checksum,
		},
		CreatedAt: cert.CreatedAt,
		UpdatedAt: cert.UpdatedAt,
	}
	if cert.IssueDate != nil {
		resp.IssueDate = cert.IssueDate.Format("2006-01-02")
	}
	if cert.ExpiryDate != nil {
		resp.ExpiryDate = cert.ExpiryDate.Format("2006-01-02")
	}
	return resp
}
