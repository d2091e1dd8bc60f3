package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/printshop/internal/checkout/app"
	"github.com/dwikikusuma/printshop/internal/checkout/domain"
	"github.com/dwikikusuma/printshop/pkg/kvstore"
)

func TestSessionRepo(t *testing.T) {
	store := kvstore.NewMemory()
	repo := NewSessionRepo(store, "", 0)
	ctx := context.Background()

	_, err := repo.Load(ctx, "sid")
	assert.ErrorIs(t, err, app.ErrSessionNotFound)

	s := domain.NewSession()
	s.Attach("flyers-x", domain.FileRef{ID: "f1", Name: "a.pdf"})
	s.Payment = &domain.Payment{Method: domain.PaymentCard}
	require.NoError(t, repo.Save(ctx, "sid", s))

	raw, err := store.Get(ctx, "print-checkout:sid")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version":1`)

	got, err := repo.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "f1", got.Uploads["flyers-x"][0].ID)
	assert.Equal(t, domain.PaymentCard, got.Payment.Method)

	require.NoError(t, repo.Delete(ctx, "sid"))
	_, err = repo.Load(ctx, "sid")
	assert.ErrorIs(t, err, app.ErrSessionNotFound)
}

func TestSessionRepo_CorruptDocument(t *testing.T) {
	store := kvstore.NewMemory()
	repo := NewSessionRepo(store, "", 0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "print-checkout:sid", []byte(`{"uploads":[1]}`), 0))
	_, err := repo.Load(ctx, "sid")
	assert.ErrorIs(t, err, app.ErrSessionCorrupt)
}
