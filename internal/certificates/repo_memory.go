package certificates

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for dev mode and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Certificate
	order []string // insertion order, used as the tiebreak for equal timestamps
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: map[string]Certificate{}}
}

// Create inserts a new certificate record.
func (r *MemoryRepo) Create(ctx context.Context, cert Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[cert.ID] = cert
	r.order = append(r.order, cert.ID)
	return nil
}

// GetByID fetches a certificate record by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cert, ok := r.byID[id]
	if !ok {
		return Certificate{}, ErrNotFound
	}
	return cert, nil
}

// ListByOrg returns matching records newest-created-first.
func (r *MemoryRepo) ListByOrg(ctx context.Context, orgID string, filter ListFilter) ([]Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type indexed struct {
		cert Certificate
		pos  int
	}
	var out []indexed
	for pos, id := range r.order {
		cert, ok := r.byID[id]
		if !ok || cert.OrgID != orgID {
			continue
		}
		if !matches(cert, filter) {
			continue
		}
		out = append(out, indexed{cert: cert, pos: pos})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].cert.CreatedAt.Equal(out[j].cert.CreatedAt) {
			return out[i].cert.CreatedAt.After(out[j].cert.CreatedAt)
		}
		return out[i].pos > out[j].pos
	})

	certs := make([]Certificate, 0, len(out))
	for _, e := range out {
		certs = append(certs, e.cert)
	}
	return certs, nil
}

// ListOrgIDs returns every organization id that owns at least one record.
func (r *MemoryRepo) ListOrgIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]struct{}{}
	var out []string
	for _, cert := range r.byID {
		if _, ok := seen[cert.OrgID]; ok {
			continue
		}
		seen[cert.OrgID] = struct{}{}
		out = append(out, cert.OrgID)
	}
	sort.Strings(out)
	return out, nil
}

// Update replaces a stored record.
func (r *MemoryRepo) Update(ctx context.Context, cert Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[cert.ID]; !ok {
		return ErrNotFound
	}
	r.byID[cert.ID] = cert
	return nil
}

func matches(cert Certificate, filter ListFilter) bool {
	if filter.Status != nil && cert.Status != *filter.Status {
		return false
	}
	if filter.Type != nil && cert.Type != *filter.Type {
		return false
	}
	if filter.IssuingBody != nil && cert.IssuingBody != *filter.IssuingBody {
		return false
	}
	return true
}
