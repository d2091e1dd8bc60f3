package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/printshop/internal/checkout/app"
	"github.com/dwikikusuma/printshop/internal/checkout/domain"
	"github.com/dwikikusuma/printshop/pkg/kvstore"
)

// SessionRepo stores checkout progress under "<prefix>:<sessionID>".
type SessionRepo struct {
	store  kvstore.Store
	prefix string
	ttl    time.Duration
}

func NewSessionRepo(store kvstore.Store, prefix string, ttl time.Duration) *SessionRepo {
	if prefix == "" {
		prefix = "print-checkout"
	}
	return &SessionRepo{store: store, prefix: prefix, ttl: ttl}
}

func (r *SessionRepo) key(sessionID string) string {
	return r.prefix + ":" + sessionID
}

func (r *SessionRepo) Load(ctx context.Context, sessionID string) (domain.Session, error) {
	var s domain.Session
	err := kvstore.GetJSON(ctx, r.store, r.key(sessionID), &s)
	if errors.Is(err, kvstore.ErrNotFound) {
		return domain.Session{}, app.ErrSessionNotFound
	}
	if errors.Is(err, kvstore.ErrCorrupt) {
		return domain.Session{}, fmt.Errorf("%w: %v", app.ErrSessionCorrupt, err)
	}
	if err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

func (r *SessionRepo) Save(ctx context.Context, sessionID string, s domain.Session) error {
	return kvstore.SetJSON(ctx, r.store, r.key(sessionID), s, r.ttl)
}

func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, r.key(sessionID))
}

var _ app.SessionRepo = (*SessionRepo)(nil)
