package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

var (
	ErrUnknownProvider   = errors.New("unknown LLM provider")
	ErrMissingCredential = errors.New("missing LLM provider credential")
)

type LLMConfig struct {
	Provider   string
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Gemini     GeminiConfig

	// MaxConcurrency bounds in-flight provider calls. Zero means unbounded.
	MaxConcurrency int
	Timeout        time.Duration
}

// Validate checks that the selected provider is known and has a credential.
func (c LLMConfig) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "OPENAI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "OPENROUTER_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "GEMINI_API_KEY"
	default:
		return fmt.Errorf("%w %q (expected %s, %s or %s)", ErrUnknownProvider, c.Provider,
			ProviderOpenAI, ProviderOpenRouter, ProviderGemini)
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: %s is required when LLM_PROVIDER=%s", ErrMissingCredential, env, c.Provider)
	}
	return nil
}

func setLLMDefaults(v *viper.Viper) {
	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("LLM_MAX_CONCURRENCY", 0)
	v.SetDefault("LLM_TIMEOUT", 120*time.Second)
	setOpenAIDefaults(v)
	setOpenRouterDefaults(v)
	setGeminiDefaults(v)
}

func loadLLMConfig(v *viper.Viper) (LLMConfig, error) {
	openAI, err := loadOpenAIConfig(v)
	if err != nil {
		return LLMConfig{}, err
	}
	openRouter, err := loadOpenRouterConfig(v)
	if err != nil {
		return LLMConfig{}, err
	}
	gemini, err := loadGeminiConfig(v)
	if err != nil {
		return LLMConfig{}, err
	}

	return LLMConfig{
		Provider:       strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
		OpenAI:         openAI,
		OpenRouter:     openRouter,
		Gemini:         gemini,
		MaxConcurrency: v.GetInt("LLM_MAX_CONCURRENCY"),
		Timeout:        v.GetDuration("LLM_TIMEOUT"),
	}, nil
}
