package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/printshop/internal/cart/app"
	"github.com/dwikikusuma/printshop/internal/cart/infra/adapter"
	"github.com/dwikikusuma/printshop/internal/cart/infra/kv"
	catalogapp "github.com/dwikikusuma/printshop/internal/catalog/app"
	"github.com/dwikikusuma/printshop/internal/catalog/infra/memory"
	"github.com/dwikikusuma/printshop/internal/catalog/infra/seed"
	"github.com/dwikikusuma/printshop/pkg/httpx"
	"github.com/dwikikusuma/printshop/pkg/kvstore"
	"github.com/dwikikusuma/printshop/pkg/logger"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := catalogapp.NewService(memory.NewProductRepo())
	_, err := seed.LoadFile(context.Background(), catalog, afero.NewMemMapFs(), "")
	require.NoError(t, err)

	repo := kv.NewStateRepo(kvstore.NewMemory(), "print-cart", time.Hour)
	svc := app.NewService(repo, adapter.NewCatalogServiceReader(catalog), "EUR", logger.Discard())

	r := gin.New()
	r.Use(httpx.Session(time.Hour))
	NewServer(svc).Register(r.Group("/:locale"))
	return r
}

type client struct {
	t   *testing.T
	r   *gin.Engine
	sid string
}

func (c client) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(httpx.SessionHeader, c.sid)

	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var out cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

const flyerBody = `{"slug":"flyers","quantity":%d,"configuration":{"format":"A5","paper":"gloss-130","colors":"4/4","finishings":["lamination-matte"]}}`

func TestCartFlow(t *testing.T) {
	c := client{t: t, r: newRouter(t), sid: uuid.NewString()}

	w := c.do(http.MethodPost, "/en/cart/items", strings.Replace(flyerBody, "%d", "100", 1))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = c.do(http.MethodPost, "/en/cart/items", strings.Replace(flyerBody, "%d", "50", 1))
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 150, cart.TotalQuantity)
	id := cart.Items[0].ItemID

	w = c.do(http.MethodPatch, "/en/cart/items/"+id, `{"quantity":20}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, decode(t, w).Items[0].Quantity)

	w = c.do(http.MethodPatch, "/en/cart/items/"+id, `{"quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Items)

	w = c.do(http.MethodPost, "/en/cart/items", strings.Replace(flyerBody, "%d", "10", 1))
	require.Equal(t, http.StatusOK, w.Code)
	w = c.do(http.MethodDelete, "/en/cart", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = c.do(http.MethodGet, "/en/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w).Items)
}

func TestAddItemErrors(t *testing.T) {
	c := client{t: t, r: newRouter(t), sid: uuid.NewString()}

	t.Run("quantity out of range -> 400", func(t *testing.T) {
		w := c.do(http.MethodPost, "/en/cart/items", strings.Replace(flyerBody, "%d", "20000", 1))
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "quantity must be at most 10000")
	})

	t.Run("unknown product -> 404", func(t *testing.T) {
		body := strings.Replace(strings.Replace(flyerBody, "%d", "1", 1), "flyers", "mugs", 1)
		w := c.do(http.MethodPost, "/en/cart/items", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("configuration not offered -> 400", func(t *testing.T) {
		body := strings.Replace(strings.Replace(flyerBody, "%d", "1", 1), "A5", "B0", 1)
		w := c.do(http.MethodPost, "/en/cart/items", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing quantity on update -> 400", func(t *testing.T) {
		w := c.do(http.MethodPatch, "/en/cart/items/flyers-x", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
