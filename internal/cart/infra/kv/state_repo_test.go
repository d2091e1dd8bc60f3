package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/printshop/internal/cart/app"
	"github.com/dwikikusuma/printshop/internal/cart/domain"
	"github.com/dwikikusuma/printshop/pkg/kvstore"
)

func TestStateRepo(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewStateRepo(store, "print-cart", time.Hour)

	_, err := repo.Load(ctx, "s1")
	assert.ErrorIs(t, err, app.ErrStateNotFound)

	st := domain.NewState("EUR")
	st.AddItem(domain.CartItem{Slug: "flyers", Quantity: 5})
	require.NoError(t, repo.Save(ctx, "s1", st))

	raw, err := store.Get(ctx, "print-cart:s1")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version":1`)

	got, err := repo.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, st, got)

	require.NoError(t, repo.Delete(ctx, "s1"))
	_, err = repo.Load(ctx, "s1")
	assert.ErrorIs(t, err, app.ErrStateNotFound)
}

func TestStateRepo_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewStateRepo(store, "print-cart", time.Hour)

	for _, raw := range []string{`{garbage`, `{"version":"1","items":[]}`} {
		require.NoError(t, store.Set(ctx, "print-cart:s1", []byte(raw), 0))
		_, err := repo.Load(ctx, "s1")
		assert.ErrorIs(t, err, app.ErrStateCorrupt, raw)
	}
}
