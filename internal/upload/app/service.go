package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/printshop/internal/upload/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrRejected wraps validation failures; the message is meant for the
	// customer.
	ErrRejected = errors.New("file rejected")
)

// sniffLen is how much of the head is inspected for the content type.
const sniffLen = 3072

type Service struct {
	blobs    BlobStore
	maxBytes int64
	now      func() time.Time
}

func NewService(blobs BlobStore, maxBytes int64) *Service {
	if maxBytes <= 0 {
		maxBytes = domain.DefaultMaxBytes
	}
	return &Service{blobs: blobs, maxBytes: maxBytes, now: time.Now}
}

func (s *Service) MaxBytes() int64 { return s.maxBytes }

type StoreInput struct {
	SessionID string
	ItemID    string
	Name      string
	Size      int64
	Body      io.Reader
}

// Store validates and persists one file under
// <session>/<item>/<file id><ext>.
func (s *Service) Store(ctx context.Context, in StoreInput) (domain.File, error) {
	if strings.TrimSpace(in.SessionID) == "" || strings.TrimSpace(in.ItemID) == "" || in.Body == nil {
		return domain.File{}, ErrInvalidInput
	}
	if strings.ContainsAny(in.ItemID, `/\`) || strings.Trim(in.ItemID, ".") == "" {
		return domain.File{}, fmt.Errorf("%w: item id", ErrInvalidInput)
	}

	name := path.Base(strings.ReplaceAll(in.Name, `\`, "/"))
	if res := domain.ValidateFile(name, in.Size, s.maxBytes); !res.OK {
		return domain.File{}, fmt.Errorf("%w: %s", ErrRejected, res.Message)
	}

	br := bufio.NewReaderSize(in.Body, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return domain.File{}, fmt.Errorf("read upload: %w", err)
	}
	if res := domain.ValidateContent(name, head); !res.OK {
		return domain.File{}, fmt.Errorf("%w: %s", ErrRejected, res.Message)
	}

	id := uuid.NewString()
	p := path.Join(in.SessionID, in.ItemID, id+"."+domain.Extension(name))

	// The declared size is not trusted; cap the copy one byte past the limit.
	written, err := s.blobs.Put(ctx, p, io.LimitReader(br, s.maxBytes+1))
	if err != nil {
		return domain.File{}, fmt.Errorf("store upload: %w", err)
	}
	if written > s.maxBytes {
		_ = s.blobs.RemoveAll(ctx, p)
		res := domain.ValidateFile(name, written, s.maxBytes)
		return domain.File{}, fmt.Errorf("%w: %s", ErrRejected, res.Message)
	}

	return domain.File{
		ID:          id,
		ItemID:      in.ItemID,
		Name:        name,
		Size:        written,
		ContentType: contentType(head),
		Path:        p,
		UploadedAt:  s.now().UTC(),
	}, nil
}

// Discard removes every file stored for a session.
func (s *Service) Discard(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidInput
	}
	return s.blobs.RemoveAll(ctx, sessionID)
}

// DiscardItem removes the files stored for one cart line of a session.
func (s *Service) DiscardItem(ctx context.Context, sessionID, itemID string) error {
	if strings.TrimSpace(sessionID) == "" || strings.TrimSpace(itemID) == "" {
		return ErrInvalidInput
	}
	if strings.ContainsAny(itemID, `/\`) || strings.Trim(itemID, ".") == "" {
		return fmt.Errorf("%w: item id", ErrInvalidInput)
	}
	return s.blobs.RemoveAll(ctx, path.Join(sessionID, itemID))
}
