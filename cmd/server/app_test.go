package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/service"
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "Resume Analyzer",
			Env:         "test",
			RoutePrefix: "/api",
			BodyLimit:   4 * 1024 * 1024,
		},
		Features: config.FeatureConfig{MaxUploadSize: 1024 * 1024},
	}
}

func TestNewAppRoutes(t *testing.T) {
	provider := service.UnconfiguredProvider{}
	deps := appDeps{
		analysis:    usecase.NewAnalysisUsecase(provider, nil, usecase.AnalysisOptions{}, zap.NewNop()),
		submissions: usecase.NewSubmissionUsecase(nil, false, zap.NewNop()),
		health:      usecase.NewHealthUsecase(provider, nil, false),
	}
	app := newApp(testConfig(), deps, zap.NewNop())

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/livez", http.StatusOK},
		{http.MethodGet, "/readyz", http.StatusOK},
		{http.MethodGet, "/api/submissions", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/submissions/stats", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestNewAppReadinessFailsWhenDatabaseIsDown(t *testing.T) {
	provider := service.UnconfiguredProvider{}
	deps := appDeps{
		analysis:    usecase.NewAnalysisUsecase(provider, nil, usecase.AnalysisOptions{}, zap.NewNop()),
		submissions: usecase.NewSubmissionUsecase(nil, false, zap.NewNop()),
		health:      usecase.NewHealthUsecase(provider, nil, true),
	}
	app := newApp(testConfig(), deps, zap.NewNop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
