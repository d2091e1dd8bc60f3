package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/printshop/pkg/config"
	"github.com/dwikikusuma/printshop/pkg/kvstore"
	"github.com/dwikikusuma/printshop/pkg/logger"
	"github.com/dwikikusuma/printshop/pkg/sqldb/sqldbtest"
)

func testConfig() config.Config {
	return config.Config{
		AppEnv:           "dev",
		CartStorageKey:   "print-cart",
		CartTTL:          time.Hour,
		DefaultCurrency:  "EUR",
		VATBasisPoints:   2300,
		UploadDir:        "/uploads",
		UploadMaxBytes:   1 << 20,
		Locales:          []string{"en", "pl", "de"},
		DefaultLocale:    "en",
		QuoteConcurrency: 4,
	}
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r, err := buildRouter(context.Background(), deps{
		cfg:   testConfig(),
		log:   logger.Discard(),
		db:    sqldbtest.Open(t),
		store: kvstore.NewMemory(),
		fs:    afero.NewMemMapFs(),
	})
	require.NoError(t, err)
	return r
}

func get(r http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter(t *testing.T) {
	r := newTestRouter(t)

	t.Run("health and readiness", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get(r, "/healthz", nil).Code)
		w := get(r, "/readyz", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("root redirects to negotiated locale", func(t *testing.T) {
		w := get(r, "/", http.Header{"Accept-Language": {"pl-PL,pl;q=0.9,en;q=0.5"}})
		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "/pl/products", w.Header().Get("Location"))

		w = get(r, "/", nil)
		assert.Equal(t, "/en/products", w.Header().Get("Location"))
	})

	t.Run("locales are listed default first", func(t *testing.T) {
		w := get(r, "/locales", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"default":"en","supported":["en","pl","de"]}`, w.Body.String())
	})

	t.Run("locale prefix is echoed", func(t *testing.T) {
		w := get(r, "/PL/products", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pl", w.Header().Get("Content-Language"))
	})

	t.Run("unsupported locale is 404", func(t *testing.T) {
		w := get(r, "/fr/products", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})

	t.Run("catalog is seeded", func(t *testing.T) {
		w := get(r, "/de/products/flyers", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"slug":"flyers"`)
	})

	t.Run("session cookie is issued", func(t *testing.T) {
		w := get(r, "/en/cart", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "print_session=")
	})

	t.Run("messages stub", func(t *testing.T) {
		w := get(r, "/en/messages", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "under development")
	})
}

func TestFingerprintCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"fingerprint",
		"--slug", "flyers", "--format", "A5", "--paper", "gloss-130", "--colors", "4/4",
		"--finishing", "lamination-matte", "--finishing", "lamination-gloss",
	})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "flyers-mj1qlc\n", out.String())
}

func TestFingerprintCmd_RequiresSlug(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"fingerprint", "--format", "A5"})
	assert.Error(t, cmd.Execute())
}

func TestCheckFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/art/flyer.pdf", append([]byte("%PDF-1.7\n"), make([]byte, 100)...), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/art/fake.png", []byte("%PDF-1.7\nnot a png"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/art/notes.txt", []byte("hello"), 0o644))

	var out bytes.Buffer
	require.NoError(t, checkFile(&out, fs, "/art/flyer.pdf", 1<<20))
	assert.Equal(t, "flyer.pdf: ok (109 bytes)\n", out.String())

	assert.ErrorContains(t, checkFile(&out, fs, "/art/flyer.pdf", 50), "too large")
	assert.ErrorContains(t, checkFile(&out, fs, "/art/fake.png", 1<<20), "does not look like")
	assert.ErrorContains(t, checkFile(&out, fs, "/art/notes.txt", 1<<20), "not supported")
	assert.Error(t, checkFile(&out, fs, "/art/missing.pdf", 1<<20))
}
