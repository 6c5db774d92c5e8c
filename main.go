package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	_ "github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"example.com/storefront/internal/config"
	"example.com/storefront/internal/infra/assets"
	fsstore "example.com/storefront/internal/infra/persistence/firestore"
	"example.com/storefront/internal/infra/persistence/memory"
	mysqlstore "example.com/storefront/internal/infra/persistence/mysql"
	"example.com/storefront/internal/infra/notion"
	httpapi "example.com/storefront/internal/interface/http"
	cartuc "example.com/storefront/internal/usecase/cart"
	checkoutuc "example.com/storefront/internal/usecase/checkout"
	importeruc "example.com/storefront/internal/usecase/importer"
	productuc "example.com/storefront/internal/usecase/product"

	domcart "example.com/storefront/internal/domain/cart"
	domorder "example.com/storefront/internal/domain/order"
	domproduct "example.com/storefront/internal/domain/product"
)

type stores struct {
	products domproduct.Repository
	carts    domcart.Store
	orders   domorder.Repository
	close    func()
}

func main() {
	cfg := config.Load()

	log.SetFormatter(&log.JSONFormatter{})
	logger := log.WithField("component", "storefront")

	ctx := context.Background()

	st, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize store driver")
	}
	defer st.close()

	var uploader productuc.Uploader
	if cfg.GCSBucket != "" {
		gcsClient, err := newGCSClient(ctx, cfg)
		if err != nil {
			logger.WithError(err).Fatal("failed to create storage client")
		}
		defer gcsClient.Close()
		uploader = assets.NewGCSUploader(gcsClient, cfg.GCSBucket)
	} else {
		logger.Warn("GCS_BUCKET not set, admin product creation is disabled")
	}

	var importSource importeruc.Source
	if cfg.NotionAPIKey != "" && cfg.NotionDatabaseID != "" {
		importSource = notion.NewClient(cfg.NotionAPIKey, cfg.NotionDatabaseID)
	} else {
		logger.Warn("notion credentials not set, product import is disabled")
	}

	api := httpapi.NewAPI(httpapi.Dependencies{
		ProductService:  productuc.NewService(st.products, uploader, logger.WithField("layer", "product")),
		CartService:     cartuc.NewService(st.carts, st.products),
		CheckoutService: checkoutuc.NewService(st.carts, st.orders),
		ImportService:   importeruc.NewService(importSource),
		CORSOrigin:      cfg.CORSAllowedOrigin,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("shutdown did not complete cleanly")
	}
}

func buildStores(ctx context.Context, cfg config.Config, logger *log.Entry) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return &stores{
			products: memory.NewProductRepository(),
			carts:    memory.NewCartStore(),
			orders:   memory.NewOrderRepository(),
			close:    func() {},
		}, nil

	case config.DriverMySQL:
		if cfg.MySQLDSN == "" {
			return nil, errors.New("MYSQL_DSN is required for the mysql driver")
		}
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("ping mysql: %w", err)
		}
		return &stores{
			products: mysqlstore.NewProductRepository(db),
			carts:    mysqlstore.NewCartStore(db, logger.WithField("layer", "mysql")),
			orders:   mysqlstore.NewOrderRepository(db),
			close:    func() { _ = db.Close() },
		}, nil

	case config.DriverFirestore:
		if cfg.FirestoreProjectID == "" {
			return nil, errors.New("FIRESTORE_PROJECT_ID is required for the firestore driver")
		}
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
		if err != nil {
			return nil, fmt.Errorf("create firestore client: %w", err)
		}
		return &stores{
			products: fsstore.NewProductRepository(client),
			carts:    fsstore.NewCartStore(client, logger.WithField("layer", "firestore")),
			orders:   fsstore.NewOrderRepository(client),
			close:    func() { _ = client.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newGCSClient(ctx context.Context, cfg config.Config) (*storage.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return storage.NewClient(ctx, opts...)
}
