package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := service.NewProvider(ctx, cfg.LLM, log)
	if err != nil {
		return fmt.Errorf("init LLM provider: %w", err)
	}
	log.Info("LLM provider ready", zap.String("provider", provider.Name()), zap.String("model", provider.Model()))

	repo := connectStorage(cfg, log)
	embedder := newEmbedder(ctx, cfg, repo, log)

	recorder := usecase.NewSubmissionRecorder(repo, embedder, log.Named("recorder"))
	deps := appDeps{
		analysis:    usecase.NewAnalysisUsecase(provider, recorder, usecase.AnalysisOptions{RecordMatches: cfg.Features.RecordMatches}, log.Named("analysis")),
		submissions: usecase.NewSubmissionUsecase(repo, embedder != nil, log.Named("submissions")),
		health:      usecase.NewHealthUsecase(provider, repo, cfg.Database.Enabled()),
	}
	app := newApp(cfg, deps, log)

	go monitorGoroutines(ctx, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.App.ListenAddr()))
		errCh <- app.Listen(cfg.App.ListenAddr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	recorder.Wait()
	log.Info("server exited")
	return nil
}

// connectStorage opens and migrates the database. Failures are logged and the
// service keeps running without persistence.
func connectStorage(cfg *config.Config, log *zap.Logger) repository.SubmissionRepository {
	if !cfg.Database.Enabled() {
		log.Info("DB_HOST not set, running without submission storage")
		return nil
	}

	db, err := repository.Open(cfg.Database, cfg.App)
	if err != nil {
		log.Error("database unavailable, running without submission storage", zap.Error(err))
		return nil
	}
	if err := repository.Migrate(db, cfg.Features.Embeddings); err != nil {
		log.Error("migration failed, running without submission storage", zap.Error(err))
		return nil
	}

	log.Info("database connected", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))
	return repository.NewSubmissionRepository(db)
}

// newEmbedder returns a Gemini embedder when embeddings are enabled and usable.
func newEmbedder(ctx context.Context, cfg *config.Config, repo repository.SubmissionRepository, log *zap.Logger) usecase.Embedder {
	if !cfg.Features.Embeddings || repo == nil {
		return nil
	}
	if cfg.LLM.Gemini.APIKey == "" {
		log.Warn("ENABLE_EMBEDDINGS requires GEMINI_API_KEY, similarity search disabled")
		return nil
	}

	gemini, err := service.NewGeminiService(ctx, service.GeminiOptions{
		APIKey:         cfg.LLM.Gemini.APIKey,
		Model:          cfg.LLM.Gemini.Model,
		EmbeddingModel: cfg.LLM.Gemini.EmbeddingModel,
	}, log)
	if err != nil {
		log.Warn("embedding client unavailable, similarity search disabled", zap.Error(err))
		return nil
	}
	return gemini
}

func monitorGoroutines(ctx context.Context, log *zap.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Debug("runtime stats", zap.Int("goroutines", runtime.NumGoroutine()))
		}
	}
}
