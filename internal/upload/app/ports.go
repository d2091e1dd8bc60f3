package app

import (
	"context"
	"io"
)

// BlobStore keeps uploaded artwork.
type BlobStore interface {
	Put(ctx context.Context, path string, r io.Reader) (int64, error)
	RemoveAll(ctx context.Context, prefix string) error
}
