// Package orgs resolves which organization an actor belongs to.
package orgs

import (
	"context"
	"errors"
)

// ErrNoMembership is returned when an actor has no organization membership.
var ErrNoMembership = errors.New("no organization membership")

// Resolver looks up the organization owning an actor.
type Resolver interface {
	ResolveOrgForActor(ctx context.Context, actorID string) (string, error)
}
