package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/SAP-F-2025/widget-service/internal/ai"
	"github.com/SAP-F-2025/widget-service/internal/cache"
	"github.com/SAP-F-2025/widget-service/internal/config"
	"github.com/SAP-F-2025/widget-service/internal/content"
	"github.com/SAP-F-2025/widget-service/internal/handlers"
	"github.com/SAP-F-2025/widget-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/widget-service/internal/services"
	"github.com/SAP-F-2025/widget-service/internal/storage"
	"github.com/SAP-F-2025/widget-service/internal/utils"
	"github.com/SAP-F-2025/widget-service/internal/validator"
	"github.com/SAP-F-2025/widget-service/pkg"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "widget-service:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appLogger := utils.NewLoggerForEnvironment(cfg.Environment)
	logger := appLogger.Slog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	evaluationLogs := postgres.NewEvaluationLogPostgreSQL(db)
	history := postgres.NewWidgetHistoryPostgreSQL(db)

	// Host bridge
	bridge, err := cfg.Events.CreateHostBridge(logger)
	if err != nil {
		return fmt.Errorf("create host bridge: %w", err)
	}
	defer closeWith(logger, "host bridge", bridge)

	// AI provider
	aiClient, err := ai.NewClient(ai.Config{
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		TextModel:   cfg.AI.TextModel,
		SpeechModel: cfg.AI.SpeechModel,
		Voice:       cfg.AI.Voice,
		Timeout:     cfg.AI.Timeout,
	})
	if err != nil {
		return fmt.Errorf("create AI client: %w", err)
	}

	audioStore, closeStore, err := newAudioStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Services
	v := validator.New()
	loader, err := content.NewLoader(v, logger)
	if err != nil {
		return fmt.Errorf("compile content schemas: %w", err)
	}

	evaluator := services.NewEvaluationService(aiClient, evaluationLogs, history, v, services.EvaluationConfig{
		Model:       aiClient.TextModel(),
		MaxAttempts: cfg.AI.MaxAttempts,
	}, rand.New(rand.NewSource(time.Now().UnixNano())), logger)
	speechService := services.NewSpeechService(aiClient, audioStore, cfg.Speech.KeyPrefix, logger)
	reporter := services.NewReportService(bridge, history, v, logger)
	sessions := services.NewSessionService(loader, v, evaluator, speechService, evaluator, reporter,
		clock.RealClock{}, services.SessionConfig{IdleTTL: cfg.Sessions.IdleTTL}, logger)
	importer := services.NewImportService(loader, logger)

	go sessions.RunSweeper(ctx, cfg.Sessions.SweepInterval)

	// HTTP
	var identity handlers.IdentityParser
	if cfg.Auth.Enabled {
		identity = handlers.NewCasdoorIdentity(handlers.CasdoorConfig{
			Endpoint:     cfg.Auth.Endpoint,
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret,
			Certificate:  cfg.Auth.Certificate,
			Organization: cfg.Auth.Organization,
			Application:  cfg.Auth.Application,
		})
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.ContextLogger(appLogger), utils.LoggerMiddleware(appLogger))

	handlers.NewHandlerManager(handlers.Dependencies{
		Loader:         loader,
		Sessions:       sessions,
		Evaluator:      evaluator,
		Speech:         speechService,
		Importer:       importer,
		Identity:       identity,
		Validator:      v,
		Logger:         appLogger,
		MaxUploadBytes: cfg.Sessions.MaxUploadBytes,
	}).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Widget service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "open_sessions", sessions.Count())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newAudioStore builds the speech cache selected by SPEECH_CACHE_BACKEND.
func newAudioStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.AudioStore, func(), error) {
	switch cfg.Speech.CacheBackend {
	case "gcs":
		store, err := storage.NewGCSAudioStore(ctx, storage.GCSConfig{
			Bucket:          cfg.Speech.Bucket,
			CredentialsFile: cfg.Speech.CredentialsFile,
			EmulatorHost:    cfg.Speech.EmulatorHost,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("create GCS audio store: %w", err)
		}
		return store, func() { closeWith(logger, "audio store", store) }, nil

	case "redis":
		client, err := pkg.NewRedisClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		zapLogger, err := newZapLogger(cfg.Environment)
		if err != nil {
			return nil, nil, err
		}
		store := cache.NewAudioStore(cache.NewRedisCache(client, zapLogger), cfg.Speech.CacheTTL)
		return store, func() {
			_ = zapLogger.Sync()
			closeWith(logger, "redis", client)
		}, nil

	case "none", "":
		logger.Warn("Speech cache disabled")
		return cache.NopAudioStore{}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown speech cache backend %q", cfg.Speech.CacheBackend)
}

func newZapLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func closeWith(logger *slog.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Error("Failed to close "+name, "error", err)
	}
}
