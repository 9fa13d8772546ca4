package service

import (
	"context"
	"fmt"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"go.uber.org/zap"
)

// Provider is a text-completion backend. Implementations are safe for
// concurrent use and hold no per-request state.
type Provider interface {
	Complete(ctx context.Context, systemInstruction, userPrompt string) (string, error)
	Name() string
	Model() string
}

// NewProvider builds the provider selected by cfg.Provider. It is called once
// at startup; the returned value is shared by every request.
func NewProvider(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ProviderError{Kind: ProviderInvalidConfiguration, Provider: cfg.Provider, Err: err}
	}

	var (
		provider Provider
		err      error
	)
	switch cfg.Provider {
	case config.ProviderOpenAI:
		provider, err = NewOpenAIService(OpenAIOptions{
			Name:    config.ProviderOpenAI,
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.Timeout,
		}, logger)
	case config.ProviderOpenRouter:
		provider, err = NewOpenAIService(OpenAIOptions{
			Name:    config.ProviderOpenRouter,
			APIKey:  cfg.OpenRouter.APIKey,
			BaseURL: cfg.OpenRouter.BaseURL,
			Model:   cfg.OpenRouter.Model,
			Timeout: cfg.Timeout,
			Headers: map[string]string{
				"HTTP-Referer": cfg.OpenRouter.Referer,
				"X-Title":      cfg.OpenRouter.Title,
			},
		}, logger)
	case config.ProviderGemini:
		provider, err = NewGeminiService(ctx, GeminiOptions{
			APIKey:         cfg.Gemini.APIKey,
			Model:          cfg.Gemini.Model,
			EmbeddingModel: cfg.Gemini.EmbeddingModel,
		}, logger)
	default:
		return nil, &ProviderError{Kind: ProviderInvalidConfiguration, Provider: cfg.Provider,
			Err: fmt.Errorf("%w %q", config.ErrUnknownProvider, cfg.Provider)}
	}
	if err != nil {
		return nil, err
	}

	if cfg.MaxConcurrency > 0 {
		provider = NewBoundedProvider(provider, cfg.MaxConcurrency)
	}
	return provider, nil
}

// UnconfiguredProvider fails every call. It stands in when no backend is set up.
type UnconfiguredProvider struct{}

func (UnconfiguredProvider) Complete(context.Context, string, string) (string, error) {
	return "", &ProviderError{Kind: ProviderInvalidConfiguration, Provider: "none",
		Err: fmt.Errorf("no LLM provider configured")}
}

func (UnconfiguredProvider) Name() string  { return "none" }
func (UnconfiguredProvider) Model() string { return "" }
