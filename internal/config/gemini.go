package config

import "github.com/spf13/viper"

type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

func setGeminiDefaults(v *viper.Viper) {
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001")
}

func loadGeminiConfig(v *viper.Viper) (GeminiConfig, error) {
	key, err := loadSecret(v, "GEMINI_API_KEY")
	if err != nil {
		return GeminiConfig{}, err
	}
	return GeminiConfig{
		APIKey:         key,
		Model:          v.GetString("GEMINI_MODEL"),
		EmbeddingModel: v.GetString("GEMINI_EMBEDDING_MODEL"),
	}, nil
}
