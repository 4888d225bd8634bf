package certificates

import "context"

// ListFilter narrows a listing. Every filter is exact-equality, including
// IssuingBody; there is no partial or fuzzy text match.
type ListFilter struct {
	Status      *Status
	Type        *Type
	IssuingBody *string
}

// Repo defines persistence operations for certificate records.
type Repo interface {
	Create(ctx context.Context, cert Certificate) error
	GetByID(ctx context.Context, id string) (Certificate, error)
	ListByOrg(ctx context.Context, orgID string, filter ListFilter) ([]Certificate, error)
	ListOrgIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, cert Certificate) error
}
