package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for persisting and retrieving uploaded blobs.
// Storage keys are generated by the caller; collisions are avoided by construction.
type ObjectStore interface {
	Persist(ctx context.Context, storageKey string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	URL(storageKey string) string
}
