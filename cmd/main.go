package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/forgelabs/forge-backend/internal/app"
	"github.com/forgelabs/forge-backend/internal/handlers"
	"github.com/forgelabs/forge-backend/internal/observability"
	"github.com/forgelabs/forge-backend/internal/platform/logger"
	"github.com/forgelabs/forge-backend/internal/server"
	"github.com/forgelabs/forge-backend/internal/services"
	"github.com/forgelabs/forge-backend/internal/vocab"
)

func main() {
	cfg := app.LoadConfig()

	// Logger
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "forge-backend",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	// Vocabulary
	log.Info("Loading scrub and extraction vocabulary...")
	voc, err := vocab.Load()
	if err != nil {
		log.Fatal("Vocabulary load failed", "error", err)
	}

	// Services
	log.Info("Setting up services from main...")
	registry := services.NewSessionRegistry(log, voc)
	intakeSvc := services.NewIntakeService(log)
	safetySvc := services.NewSafetyService(log, voc)
	extractorSvc := services.NewExtractorService(log, voc)
	composerSvc := services.NewComposerService(log, voc)
	settingsSvc := services.NewSettingsService(log)
	patchSvc := services.NewPatchService(log)
	captionSvc := services.NewCaptionService(log)
	diagnosticsSvc := services.NewDiagnosticsService(log)
	checkpointSvc := services.NewCheckpointService(log)
	assemblerSvc := services.NewAssemblerService(
		log,
		voc,
		intakeSvc,
		safetySvc,
		extractorSvc,
		composerSvc,
		settingsSvc,
		patchSvc,
		captionSvc,
		diagnosticsSvc,
		checkpointSvc,
	)

	// Handlers
	log.Info("Setting up handlers from main...")
	manifestHandler := handlers.NewManifestHandler(safetySvc)
	sessionHandler := handlers.NewSessionHandler(log, registry, intakeSvc, assemblerSvc)
	optimiseHandler := handlers.NewOptimiseHandler(log, registry, intakeSvc, assemblerSvc)
	goalHandler := handlers.NewGoalHandler()

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		AllowOrigins:    cfg.AllowOrigins,
		ManifestHandler: manifestHandler,
		SessionHandler:  sessionHandler,
		OptimiseHandler: optimiseHandler,
		GoalHandler:     goalHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if otelShutdown != nil {
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
