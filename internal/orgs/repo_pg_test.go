package orgs

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGResolverResolves(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT org_id").
		WithArgs("actor-1").
		WillReturnRows(sqlmock.NewRows([]string{"org_id"}).AddRow("org-1"))

	resolver := &PGResolver{DB: db}
	orgID, err := resolver.ResolveOrgForActor(context.Background(), "actor-1")
	if err != nil {
		t.Fatalf("ResolveOrgForActor: %v", err)
	}
	if orgID != "org-1" {
		t.Fatalf("expected org-1, got %s", orgID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGResolverNoMembership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT org_id").
		WithArgs("actor-2").
		WillReturnRows(sqlmock.NewRows([]string{"org_id"}))

	resolver := &PGResolver{DB: db}
	if _, err := resolver.ResolveOrgForActor(context.Background(), "actor-2"); !errors.Is(err, ErrNoMembership) {
		t.Fatalf("expected ErrNoMembership, got %v", err)
	}
}
