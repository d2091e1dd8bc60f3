package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/printshop/internal/cart/app"
	"github.com/dwikikusuma/printshop/internal/cart/domain"
	"github.com/dwikikusuma/printshop/internal/cart/infra/kv"
	"github.com/dwikikusuma/printshop/pkg/kvstore"
	"github.com/dwikikusuma/printshop/pkg/logger"
)

type fakeCatalog struct{}

func (fakeCatalog) Lookup(_ context.Context, slug string, cfg domain.Configuration) (app.Product, error) {
	switch {
	case slug != "flyers":
		return app.Product{}, app.ErrUnknownProduct
	case cfg.Format == "A0":
		return app.Product{}, app.ErrInvalidConfiguration
	}
	return app.Product{Slug: slug, Thumbnail: "/static/flyers.webp"}, nil
}

func newTestService(t *testing.T) (*app.Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemory()
	repo := kv.NewStateRepo(store, "print-cart", 0)
	return app.NewService(repo, fakeCatalog{}, "EUR", logger.Discard()), store
}

var a5 = domain.Configuration{Format: "A5", Paper: "gloss-130", Colors: "4/4"}

func TestGetCart_EmptyForNewSession(t *testing.T) {
	svc, _ := newTestService(t)

	st, err := svc.GetCart(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, domain.StateVersion, st.Version)
	assert.Equal(t, "EUR", st.Currency)
	assert.NotNil(t, st.Items)
	assert.Empty(t, st.Items)
}

func TestGetCart_ForeignVersionDiscarded(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	sid := uuid.NewString()

	doc := `{"version":0,"items":[{"itemId":"flyers-x","slug":"flyers","quantity":5}],"currency":"USD"}`
	require.NoError(t, store.Set(ctx, "print-cart:"+sid, []byte(doc), 0))

	st, err := svc.GetCart(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, st.Items)
	assert.Equal(t, "EUR", st.Currency)
}

func TestGetCart_CorruptDocumentDiscarded(t *testing.T) {
	ctx := context.Background()

	docs := map[string]string{
		"not json":        `{garbage`,
		"string version":  `{"version":"1","items":[]}`,
		"string quantity": `{"version":1,"items":[{"itemId":"flyers-x","slug":"flyers","quantity":"5"}]}`,
	}
	for name, doc := range docs {
		t.Run(name+" -> empty cart", func(t *testing.T) {
			svc, store := newTestService(t)
			sid := uuid.NewString()
			require.NoError(t, store.Set(ctx, "print-cart:"+sid, []byte(doc), 0))

			st, err := svc.GetCart(ctx, sid)
			require.NoError(t, err)
			assert.Empty(t, st.Items)

			st, err = svc.AddItem(ctx, sid, app.AddItemInput{Slug: "flyers", Quantity: 5, Configuration: a5})
			require.NoError(t, err)
			require.Len(t, st.Items, 1)
			assert.Equal(t, 5, st.Items[0].Quantity)
		})
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps catalog data and merges", func(t *testing.T) {
		svc, _ := newTestService(t)
		sid := uuid.NewString()

		_, err := svc.AddItem(ctx, sid, app.AddItemInput{Slug: "flyers", Quantity: 100, Configuration: a5, OrderName: " spring promo "})
		require.NoError(t, err)
		st, err := svc.AddItem(ctx, sid, app.AddItemInput{Slug: "flyers", Quantity: 50, Configuration: a5})
		require.NoError(t, err)

		require.Len(t, st.Items, 1)
		it := st.Items[0]
		assert.Equal(t, 150, it.Quantity)
		assert.Equal(t, "mock-1", it.PriceVersion)
		assert.Equal(t, "/static/flyers.webp", it.Thumbnail)
		assert.Equal(t, "spring promo", it.OrderName)

		again, err := svc.GetCart(ctx, sid)
		require.NoError(t, err)
		assert.Equal(t, st, again)
	})

	t.Run("invalid quantity -> ErrInvalidInput", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.AddItem(ctx, uuid.NewString(), app.AddItemInput{Slug: "flyers", Quantity: 0, Configuration: a5})
		assert.ErrorIs(t, err, app.ErrInvalidInput)

		_, err = svc.AddItem(ctx, uuid.NewString(), app.AddItemInput{Slug: "flyers", Quantity: domain.MaxQuantity + 1, Configuration: a5})
		assert.ErrorIs(t, err, app.ErrInvalidInput)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.AddItem(ctx, uuid.NewString(), app.AddItemInput{Slug: "mugs", Quantity: 1, Configuration: a5})
		assert.ErrorIs(t, err, app.ErrUnknownProduct)
	})

	t.Run("configuration not offered", func(t *testing.T) {
		svc, _ := newTestService(t)
		cfg := a5
		cfg.Format = "A0"
		_, err := svc.AddItem(ctx, uuid.NewString(), app.AddItemInput{Slug: "flyers", Quantity: 1, Configuration: cfg})
		assert.ErrorIs(t, err, app.ErrInvalidConfiguration)
	})

	t.Run("empty session -> ErrInvalidInput", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.AddItem(ctx, " ", app.AddItemInput{Slug: "flyers", Quantity: 1, Configuration: a5})
		assert.True(t, errors.Is(err, app.ErrInvalidInput))
	})
}

func TestUpdateRemoveClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	sid := uuid.NewString()

	st, err := svc.AddItem(ctx, sid, app.AddItemInput{Slug: "flyers", Quantity: 10, Configuration: a5})
	require.NoError(t, err)
	id := st.Items[0].ItemID

	st, err = svc.UpdateItemQuantity(ctx, sid, id, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, st.Items[0].Quantity)

	_, err = svc.UpdateItemQuantity(ctx, sid, id, domain.MaxQuantity+1)
	assert.ErrorIs(t, err, app.ErrInvalidInput)

	st, err = svc.UpdateItemQuantity(ctx, sid, id, 0)
	require.NoError(t, err)
	assert.Empty(t, st.Items)

	_, err = svc.AddItem(ctx, sid, app.AddItemInput{Slug: "flyers", Quantity: 10, Configuration: a5})
	require.NoError(t, err)
	st, err = svc.RemoveItem(ctx, sid, id)
	require.NoError(t, err)
	assert.Empty(t, st.Items)

	_, err = svc.AddItem(ctx, sid, app.AddItemInput{Slug: "flyers", Quantity: 10, Configuration: a5})
	require.NoError(t, err)
	st, err = svc.SetShippingOption(ctx, sid, "express")
	require.NoError(t, err)
	assert.Equal(t, "express", st.Items[0].ShippingOption)

	require.NoError(t, svc.ClearCart(ctx, sid))
	st, err = svc.GetCart(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, st.Items)
	assert.Empty(t, st.ShippingOption)
}

func TestRemoveOrdered(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	sid := uuid.NewString()
	a4 := a5
	a4.Format = "A4"

	st, err := svc.AddItem(ctx, sid, app.AddItemInput{Slug: "flyers", Quantity: 100, Configuration: a5})
	require.NoError(t, err)
	ordered := map[string]int{st.Items[0].ItemID: 100}

	// Lines changed after the order was read.
	_, err = svc.AddItem(ctx, sid, app.AddItemInput{Slug: "flyers", Quantity: 20, Configuration: a5})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, sid, app.AddItemInput{Slug: "flyers", Quantity: 7, Configuration: a4})
	require.NoError(t, err)
	_, err = svc.SetShippingOption(ctx, sid, "express")
	require.NoError(t, err)

	st, err = svc.RemoveOrdered(ctx, sid, ordered)
	require.NoError(t, err)
	require.Len(t, st.Items, 2)
	assert.Equal(t, 20, st.Items[0].Quantity)
	assert.Equal(t, 7, st.Items[1].Quantity)
	assert.Equal(t, "express", st.ShippingOption)

	ordered = map[string]int{st.Items[0].ItemID: 20, st.Items[1].ItemID: 7, "gone": 3}
	st, err = svc.RemoveOrdered(ctx, sid, ordered)
	require.NoError(t, err)
	assert.Empty(t, st.Items)
	assert.Empty(t, st.ShippingOption)
}

func TestCart_ConcurrentAddItemIncrement(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	sid := uuid.NewString()

	const N = 100
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		g.Go(func() error {
			_, err := svc.AddItem(gctx, sid, app.AddItemInput{Slug: "flyers", Quantity: 1, Configuration: a5})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent AddItem failed: %v", err)
	}

	st, err := svc.GetCart(ctx, sid)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(st.Items) != 1 || st.Items[0].Quantity != N {
		t.Fatalf("expected one line with quantity=%d, got %+v", N, st.Items)
	}
}
