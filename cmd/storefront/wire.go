package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	accountapp "github.com/dwikikusuma/printshop/internal/account/app"
	accounthttp "github.com/dwikikusuma/printshop/internal/account/httpapi"
	accountadapter "github.com/dwikikusuma/printshop/internal/account/infra/adapter"
	accountsql "github.com/dwikikusuma/printshop/internal/account/infra/sqlstore"

	cartapp "github.com/dwikikusuma/printshop/internal/cart/app"
	carthttp "github.com/dwikikusuma/printshop/internal/cart/httpapi"
	cartadapter "github.com/dwikikusuma/printshop/internal/cart/infra/adapter"
	cartkv "github.com/dwikikusuma/printshop/internal/cart/infra/kv"

	catalogapp "github.com/dwikikusuma/printshop/internal/catalog/app"
	cataloghttp "github.com/dwikikusuma/printshop/internal/catalog/httpapi"
	catalogmem "github.com/dwikikusuma/printshop/internal/catalog/infra/memory"
	"github.com/dwikikusuma/printshop/internal/catalog/infra/seed"

	checkoutapp "github.com/dwikikusuma/printshop/internal/checkout/app"
	checkouthttp "github.com/dwikikusuma/printshop/internal/checkout/httpapi"
	checkoutadapter "github.com/dwikikusuma/printshop/internal/checkout/infra/adapter"
	checkoutkv "github.com/dwikikusuma/printshop/internal/checkout/infra/kv"

	orderapp "github.com/dwikikusuma/printshop/internal/order/app"
	ordersql "github.com/dwikikusuma/printshop/internal/order/infra/sqlstore"

	uploadapp "github.com/dwikikusuma/printshop/internal/upload/app"
	"github.com/dwikikusuma/printshop/internal/upload/infra/afs"

	"github.com/dwikikusuma/printshop/pkg/config"
	"github.com/dwikikusuma/printshop/pkg/httpx"
	"github.com/dwikikusuma/printshop/pkg/kvstore"
	"github.com/dwikikusuma/printshop/pkg/locale"
)

type deps struct {
	cfg   config.Config
	log   *slog.Logger
	db    *sql.DB
	store kvstore.Store
	fs    afero.Fs
}

func buildRouter(ctx context.Context, d deps) (*gin.Engine, error) {
	cfg := d.cfg

	// Catalog
	catalogSvc := catalogapp.NewService(catalogmem.NewProductRepo())
	n, err := seed.LoadFile(ctx, catalogSvc, d.fs, cfg.CatalogFile)
	if err != nil {
		return nil, err
	}
	d.log.Info("catalog loaded", slog.Int("products", n))

	// Cart
	cartRepo := cartkv.NewStateRepo(d.store, cfg.CartStorageKey, cfg.CartTTL)
	cartSvc := cartapp.NewService(cartRepo, cartadapter.NewCatalogServiceReader(catalogSvc), cfg.DefaultCurrency, d.log)

	// Uploads
	blobs, err := afs.NewBlobStore(d.fs, cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	uploadSvc := uploadapp.NewService(blobs, cfg.UploadMaxBytes)

	// Orders and account
	orderSvc := orderapp.NewService(ordersql.NewOrderRepo(d.db))
	accountSvc := accountapp.NewService(accountsql.NewAddressRepo(d.db), accountadapter.NewOrderServiceReader(orderSvc))

	// Checkout (adapters)
	checkoutSvc := checkoutapp.NewService(checkoutapp.Deps{
		Cart:      checkoutadapter.NewCartServiceStore(cartSvc),
		Catalog:   checkoutadapter.NewCatalogServiceReader(catalogSvc),
		Sessions:  checkoutkv.NewSessionRepo(d.store, cfg.CartStorageKey+"-checkout", cfg.CartTTL),
		Files:     checkoutadapter.NewUploadFileStore(uploadSvc),
		Addresses: checkoutadapter.NewAccountAddressBook(accountSvc),
		Orders:    checkoutadapter.NewOrderServiceWriter(orderSvc),
		Logger:    d.log,
	}, cfg.VATBasisPoints, cfg.QuoteConcurrency)

	locales, err := locale.NewResolver(cfg.Locales, cfg.DefaultLocale)
	if err != nil {
		return nil, err
	}

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery(), httpx.RequestLogger(d.log))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) {
		if err := d.db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/locales", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"default": locales.Default(), "supported": locales.Supported()})
	})
	r.GET("/", func(c *gin.Context) {
		loc := locales.Negotiate(c.GetHeader("Accept-Language"))
		c.Redirect(http.StatusTemporaryRedirect, "/"+loc+"/products")
	})

	g := r.Group("/:locale", httpx.Locale(locales), httpx.Session(cfg.CartTTL))
	cataloghttp.NewServer(catalogSvc).Register(g)
	carthttp.NewServer(cartSvc).Register(g)
	checkouthttp.NewServer(checkoutSvc, uploadSvc.MaxBytes()).Register(g)
	accounthttp.NewServer(accountSvc).Register(g)

	return r, nil
}
