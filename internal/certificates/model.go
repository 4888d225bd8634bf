package certificates

import "time"

// Type classifies the certification scheme a document belongs to.
type Type string

const (
	TypeISCC   Type = "ISCC"
	TypeRSB    Type = "RSB"
	TypeCORSIA Type = "CORSIA"
	TypeOther  Type = "other"
)

// ValidType reports whether t is a recognized certificate type.
func ValidType(t Type) bool {
	switch t {
	case TypeISCC, TypeRSB, TypeCORSIA, TypeOther:
		return true
	}
	return false
}

// Status is the lifecycle status of a certificate record. StatusInvalid is
// reachable only through a manual edit, never derived automatically.
type Status string

const (
	StatusUploaded  Status = "uploaded"
	StatusValidated Status = "validated"
	StatusExpiring  Status = "expiring"
	StatusExpired   Status = "expired"
	StatusInvalid   Status = "invalid"
)

// ValidStatus reports whether s is a recognized lifecycle status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusUploaded, StatusValidated, StatusExpiring, StatusExpired, StatusInvalid:
		return true
	}
	return false
}

// Volume is an extracted quantity with its unit, verbatim from the document.
type Volume struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Certificate is a status-tracked compliance record built from an uploaded
// document. Optional fields are nil/empty when extraction found nothing; a
// record with empty extracted fields is valid and awaits manual completion.
type Certificate struct {
	ID    string
	OrgID string

	Type        Type
	IssuingBody string
	IssueDate   *time.Time
	ExpiryDate  *time.Time
	Volume      *Volume

	ExtractedText string
	Engine        string

	Status     Status
	UploadedBy string

	StorageKey   string
	FileURL      string
	MimeType     string
	SizeBytes    int64
	OriginalName string
	Checksum     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
