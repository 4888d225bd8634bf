package orgs

import (
	"context"
	"database/sql"
	"errors"
)

// PGResolver implements Resolver using Postgres.
type PGResolver struct {
	DB *sql.DB
}

// ResolveOrgForActor returns the actor's organization id, or ErrNoMembership.
func (r *PGResolver) ResolveOrgForActor(ctx context.Context, actorID string) (string, error) {
	const query = `
SELECT org_id
FROM org_memberships
WHERE actor_id = $1
ORDER BY created_at ASC
LIMIT 1`

	var orgID string
	err := r.DB.QueryRowContext(ctx, query, actorID).Scan(&orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoMembership
		}
		return "", err
	}
	return orgID, nil
}
