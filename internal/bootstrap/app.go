// Package bootstrap prepares shared dependencies and wires them together.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"certtrack-backend/internal/certificates"
	"certtrack-backend/internal/extract"
	"certtrack-backend/internal/ocr"
	"certtrack-backend/internal/orgs"
	"certtrack-backend/internal/services/health"
	"certtrack-backend/internal/shared/config"
	"certtrack-backend/internal/shared/server"
	"certtrack-backend/internal/shared/storage/db"
	"certtrack-backend/internal/shared/storage/object"
	localstore "certtrack-backend/internal/shared/storage/object/local"
	s3store "certtrack-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	CertificatesRepo    certificates.Repo
	Memberships         orgs.Resolver
	CertificatesService *certificates.Service
	CertificatesHandler *certificates.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		certRepo    certificates.Repo
		memberships orgs.Resolver
	)
	if sqlDB != nil {
		certRepo = &certificates.PGRepo{DB: sqlDB}
		memberships = &orgs.PGResolver{DB: sqlDB}
	} else {
		certRepo = certificates.NewMemoryRepo()
		memberships = orgs.NewMemoryResolver()
	}

	extractor := &extract.Extractor{
		OCR: ocr.NewEngine(cfg.TesseractPath, cfg.TesseractLang),
	}

	svc := &certificates.Service{
		Store:       store,
		Repo:        certRepo,
		Memberships: memberships,
		Extractor:   extractor,
	}

	app := &App{
		Config:              cfg,
		DB:                  sqlDB,
		Store:               store,
		CertificatesRepo:    certRepo,
		Memberships:         memberships,
		CertificatesService: svc,
		CertificatesHandler: certificates.NewHandler(svc),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		HealthService:       &health.Service{},
		CertificatesHandler: app.CertificatesHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL), nil
	}
}

func isDevLike(env string) bool {
	switch env {
	case "dev", "local":
		return true
	default:
		return false
	}
}
