package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/printshop/internal/cart/app"
	"github.com/dwikikusuma/printshop/internal/cart/domain"
	"github.com/dwikikusuma/printshop/pkg/kvstore"
)

// StateRepo stores cart documents under "<storageKey>:<sessionID>".
type StateRepo struct {
	store      kvstore.Store
	storageKey string
	ttl        time.Duration
}

func NewStateRepo(store kvstore.Store, storageKey string, ttl time.Duration) *StateRepo {
	return &StateRepo{store: store, storageKey: storageKey, ttl: ttl}
}

func (r *StateRepo) key(sessionID string) string {
	return r.storageKey + ":" + sessionID
}

func (r *StateRepo) Load(ctx context.Context, sessionID string) (domain.State, error) {
	var st domain.State
	err := kvstore.GetJSON(ctx, r.store, r.key(sessionID), &st)
	if errors.Is(err, kvstore.ErrNotFound) {
		return domain.State{}, app.ErrStateNotFound
	}
	if errors.Is(err, kvstore.ErrCorrupt) {
		return domain.State{}, fmt.Errorf("%w: %v", app.ErrStateCorrupt, err)
	}
	if err != nil {
		return domain.State{}, err
	}
	return st, nil
}

func (r *StateRepo) Save(ctx context.Context, sessionID string, st domain.State) error {
	return kvstore.SetJSON(ctx, r.store, r.key(sessionID), st, r.ttl)
}

func (r *StateRepo) Delete(ctx context.Context, sessionID string) error {
	return r.store.Delete(ctx, r.key(sessionID))
}

var _ app.StateRepo = (*StateRepo)(nil)
