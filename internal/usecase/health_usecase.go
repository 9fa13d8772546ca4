package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/dto"
	"github.com/fadilmartias/resume-analyzer/internal/repository"
	"github.com/fadilmartias/resume-analyzer/internal/service"
)

const (
	DatabaseConnected     = "connected"
	DatabaseDisconnected  = "disconnected"
	DatabaseNotConfigured = "not_configured"

	pingTimeout = 2 * time.Second
)

type HealthUsecase struct {
	provider     service.Provider
	repo         repository.SubmissionRepository
	dbConfigured bool
}

// NewHealthUsecase takes the repository that was opened at startup, or nil.
// dbConfigured tells a failed connection apart from no database at all.
func NewHealthUsecase(provider service.Provider, repo repository.SubmissionRepository, dbConfigured bool) *HealthUsecase {
	if provider == nil {
		provider = service.UnconfiguredProvider{}
	}
	return &HealthUsecase{provider: provider, repo: repo, dbConfigured: dbConfigured}
}

func (uc *HealthUsecase) Status(ctx context.Context) dto.HealthDTO {
	return dto.HealthDTO{
		Status:   "ok",
		Provider: uc.provider.Name(),
		Model:    uc.provider.Model(),
		Database: uc.DatabaseStatus(ctx),
		Message:  "Resume analyzer API is running",
	}
}

func (uc *HealthUsecase) DatabaseStatus(ctx context.Context) string {
	if uc.repo == nil {
		if uc.dbConfigured {
			return DatabaseDisconnected
		}
		return DatabaseNotConfigured
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := uc.repo.Ping(pingCtx); err != nil {
		return DatabaseDisconnected
	}
	return DatabaseConnected
}
