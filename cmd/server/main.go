package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"herovault/internal/apperr"
	"herovault/internal/blob"
	"herovault/internal/config"
	"herovault/internal/handlers"
	"herovault/internal/middleware"
	"herovault/internal/repo"
	"herovault/internal/service"
)

func main() {
	cfg := config.NewConfig()

	// development logger, as for local runs
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	store, err := newBlobStore(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize image storage", "backend", cfg.BlobBackend, "error", err)
	}

	heroService := service.NewSuperheroService(repo.NewSuperheroRepository(gormDB), sugar)
	imageService := service.NewImageService(repo.NewImageRepository(gormDB), store, sugar)

	errs := apperr.NewChain(
		apperr.NewPersistenceTranslator(repo.ConstraintFields, cfg.HideInternalErrors),
		apperr.GenericTranslator{},
	)
	h := handlers.NewHandler(heroService, imageService, sugar, cfg, errs)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"BlobBackend", cfg.BlobBackend,
		"BlobMaxSizeMB", cfg.BlobMaxSizeMB,
		"FrontendURL", cfg.FrontendURL,
	)

	srv := &http.Server{Addr: cfg.BaseURL, Handler: h.Router}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Server shutdown failed", "error", err)
		}
	}()

	sugar.Infow("Starting server", "addr", cfg.BaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
}

func newBlobStore(ctx context.Context, cfg *config.Config) (blob.Store, error) {
	if cfg.BlobBackend == config.BlobBackendS3 {
		return blob.NewS3Store(ctx, blob.S3Options{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			MaxBytes:  cfg.BlobMaxBytes(),
		})
	}
	return blob.NewLocalStore(cfg.ImagesDir, cfg.BlobMaxBytes())
}
