package afs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/dwikikusuma/printshop/internal/upload/app"
)

// BlobStore writes uploads below a root directory of an afero filesystem.
type BlobStore struct {
	fs afero.Fs
}

// NewBlobStore roots fs at dir. Use afero.NewOsFs in production and
// afero.NewMemMapFs in tests.
func NewBlobStore(fs afero.Fs, dir string) (*BlobStore, error) {
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &BlobStore{fs: afero.NewBasePathFs(fs, dir)}, nil
}

func (b *BlobStore) Put(_ context.Context, path string, r io.Reader) (int64, error) {
	if err := b.fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return 0, err
	}

	f, err := b.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = b.fs.Remove(path)
		return 0, err
	}
	return n, nil
}

func (b *BlobStore) RemoveAll(_ context.Context, prefix string) error {
	return b.fs.RemoveAll(prefix)
}

var _ app.BlobStore = (*BlobStore)(nil)
