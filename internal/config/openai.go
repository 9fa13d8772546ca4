package config

import "github.com/spf13/viper"

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func setOpenAIDefaults(v *viper.Viper) {
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
}

func loadOpenAIConfig(v *viper.Viper) (OpenAIConfig, error) {
	key, err := loadSecret(v, "OPENAI_API_KEY")
	if err != nil {
		return OpenAIConfig{}, err
	}
	return OpenAIConfig{
		APIKey:  key,
		BaseURL: v.GetString("OPENAI_BASE_URL"),
		Model:   v.GetString("OPENAI_MODEL"),
	}, nil
}
