package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	checkoutapp "github.com/dwikikusuma/printshop/internal/checkout/app"
	"github.com/dwikikusuma/printshop/internal/checkout/domain"
	uploadapp "github.com/dwikikusuma/printshop/internal/upload/app"
)

type UploadFileStore struct {
	svc *uploadapp.Service
}

func NewUploadFileStore(svc *uploadapp.Service) *UploadFileStore {
	return &UploadFileStore{svc: svc}
}

func (s *UploadFileStore) Store(ctx context.Context, sessionID, itemID, name string, size int64, body io.Reader) (domain.FileRef, error) {
	f, err := s.svc.Store(ctx, uploadapp.StoreInput{
		SessionID: sessionID,
		ItemID:    itemID,
		Name:      name,
		Size:      size,
		Body:      body,
	})
	switch {
	case errors.Is(err, uploadapp.ErrRejected):
		return domain.FileRef{}, fmt.Errorf("%w%s", checkoutapp.ErrFileRejected, strings.TrimPrefix(err.Error(), uploadapp.ErrRejected.Error()))
	case errors.Is(err, uploadapp.ErrInvalidInput):
		return domain.FileRef{}, fmt.Errorf("%w: %v", checkoutapp.ErrInvalidInput, err)
	case err != nil:
		return domain.FileRef{}, err
	}

	return domain.FileRef{
		ID:          f.ID,
		Name:        f.Name,
		Size:        f.Size,
		ContentType: f.ContentType,
		Path:        f.Path,
		UploadedAt:  f.UploadedAt,
	}, nil
}

func (s *UploadFileStore) Discard(ctx context.Context, sessionID string) error {
	return s.svc.Discard(ctx, sessionID)
}

func (s *UploadFileStore) DiscardItem(ctx context.Context, sessionID, itemID string) error {
	return s.svc.DiscardItem(ctx, sessionID, itemID)
}

var _ checkoutapp.FileStore = (*UploadFileStore)(nil)
