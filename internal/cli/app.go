package cli

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/RMahshie/synphot/internal/catalog"
	"github.com/RMahshie/synphot/internal/config"
	"github.com/RMahshie/synphot/internal/photometry"
	"github.com/RMahshie/synphot/internal/processing"
	"github.com/RMahshie/synphot/internal/registry"
	"github.com/RMahshie/synphot/internal/repository/postgres"
	"github.com/RMahshie/synphot/internal/storage"
)

// App is what the commands run against
type App struct {
	Catalog    processing.CatalogService
	Photometry processing.PhotometryService
	Migrate    func(ctx context.Context) error
	Close      func() error
}

// AppFactory builds the App on first use, so commands that need no store
// never open one
type AppFactory func(ctx context.Context) (*App, error)

// NewApp wires the store, catalog and engine from configuration
func NewApp(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	filterRepo := postgres.NewPostgresFilterRepository(db)
	spectrumRepo := postgres.NewPostgresSpectrumRepository(db)
	photometryRepo := postgres.NewPostgresPhotometryRepository(db)

	filters, err := registry.NewFilterRegistry(filterRepo, cfg.Catalog.FilterCacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}

	s3Service, err := storage.NewS3Service(storage.S3Config{
		Bucket:    cfg.AWS.S3Bucket,
		Endpoint:  cfg.AWS.S3Endpoint,
		Region:    cfg.AWS.Region,
		AccessKey: cfg.AWS.AccessKeyID,
		SecretKey: cfg.AWS.SecretAccessKey,
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	fetcher := catalog.NewFetcher(s3Service, cfg.Catalog.ManifestKey)

	engine := photometry.NewEngine(photometry.Options{
		Trials:    cfg.Photometry.Trials,
		Workers:   cfg.Photometry.Workers,
		Seed:      cfg.Photometry.Seed,
		ZeroPoint: cfg.Photometry.VegaMagnitude,
	})

	return &App{
		Catalog:    processing.NewCatalogService(fetcher, filterRepo, spectrumRepo, filters, s3Service),
		Photometry: processing.NewPhotometryService(engine, filters, spectrumRepo, photometryRepo, cfg.Photometry.VegaTag),
		Migrate:    func(context.Context) error { return postgres.Migrate(db) },
		Close:      db.Close,
	}, nil
}
