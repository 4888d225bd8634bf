package orgs

import (
	"context"
	"sync"
)

// MemoryResolver is an in-memory Resolver for dev mode and tests.
type MemoryResolver struct {
	mu      sync.RWMutex
	byActor map[string]string
}

// NewMemoryResolver constructs an empty MemoryResolver.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{byActor: map[string]string{}}
}

// AddMembership records an actor's organization.
func (r *MemoryResolver) AddMembership(actorID, orgID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byActor[actorID] = orgID
}

// ResolveOrgForActor returns the actor's organization id, or ErrNoMembership.
func (r *MemoryResolver) ResolveOrgForActor(ctx context.Context, actorID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orgID, ok := r.byActor[actorID]
	if !ok {
		return "", ErrNoMembership
	}
	return orgID, nil
}
