package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcashcontrol "github.com/retaildocs/backend/internal/application/cashcontrol"
	appdocument "github.com/retaildocs/backend/internal/application/document"
	appjournal "github.com/retaildocs/backend/internal/application/journal"
	"github.com/retaildocs/backend/internal/domain/cashcontrol"
	"github.com/retaildocs/backend/internal/domain/document"
	dominventory "github.com/retaildocs/backend/internal/domain/inventory"
	"github.com/retaildocs/backend/internal/domain/numbering"
	"github.com/retaildocs/backend/internal/infrastructure/config"
	"github.com/retaildocs/backend/internal/infrastructure/inventory"
	"github.com/retaildocs/backend/internal/infrastructure/logger"
	"github.com/retaildocs/backend/internal/infrastructure/persistence"
	"github.com/retaildocs/backend/internal/interfaces/http/handler"
	"github.com/retaildocs/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting retaildocs backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.DB.AutoMigrate(
		&numbering.Counter{},
		&document.Document{},
		&document.LineItem{},
		&cashcontrol.CashControl{},
	); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database connected and migrated")

	store, err := inventory.NewClient(&inventory.Config{
		BaseURL:        cfg.Inventory.BaseURL,
		APIKey:         cfg.Inventory.APIKey,
		APISecret:      cfg.Inventory.APISecret,
		TimeoutSeconds: cfg.Inventory.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("Failed to configure inventory store client", zap.Error(err))
	}

	docRepo := persistence.NewGormDocumentRepository(db.DB)
	controlRepo := persistence.NewGormCashControlRepository(db.DB)
	sequenceRepo := persistence.NewGormSequenceRepository(db.DB)
	reconciler := dominventory.NewReconciler(store)

	documentService := appdocument.NewService(docRepo, sequenceRepo, reconciler, log)
	cashControlService := appcashcontrol.NewService(controlRepo, docRepo, store, sequenceRepo, log)
	journalService := appjournal.NewService(docRepo, controlRepo, store, sequenceRepo, log)

	mode := gin.DebugMode
	if cfg.App.Env == "production" {
		mode = gin.ReleaseMode
	}

	r := router.New(router.Config{
		Mode:         mode,
		APIVersion:   "v1",
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
	}, log)
	r.Register(
		handler.NewDocumentHandler(documentService),
		handler.NewCashControlHandler(cashControlService),
		handler.NewJournalHandler(journalService),
		handler.NewHealthHandler(db, version),
	)
	engine := r.Setup()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
