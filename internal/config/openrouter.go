package config

import "github.com/spf13/viper"

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Referer and Title are sent as HTTP-Referer and X-Title for OpenRouter rankings.
	Referer string
	Title   string
}

func setOpenRouterDefaults(v *viper.Viper) {
	v.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini")
	v.SetDefault("OPENROUTER_TITLE", "Resume Analyzer")
}

func loadOpenRouterConfig(v *viper.Viper) (OpenRouterConfig, error) {
	key, err := loadSecret(v, "OPENROUTER_API_KEY")
	if err != nil {
		return OpenRouterConfig{}, err
	}
	referer := v.GetString("OPENROUTER_REFERER")
	if referer == "" {
		referer = v.GetString("APP_URL")
	}
	return OpenRouterConfig{
		APIKey:  key,
		BaseURL: v.GetString("OPENROUTER_BASE_URL"),
		Model:   v.GetString("OPENROUTER_MODEL"),
		Referer: referer,
		Title:   v.GetString("OPENROUTER_TITLE"),
	}, nil
}
