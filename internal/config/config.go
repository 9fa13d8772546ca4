package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the fully resolved process configuration. It is built once at
// startup and handed to constructors explicitly.
type Config struct {
	App      AppConfig
	Database DBConfig
	LLM      LLMConfig
	Features FeatureConfig

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	envErr := godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setAppDefaults(v)
	setDBDefaults(v)
	setLLMDefaults(v)
	setFeatureDefaults(v)

	llm, err := loadLLMConfig(v)
	if err != nil {
		return nil, fmt.Errorf("load llm config: %w", err)
	}

	return &Config{
		App:           loadAppConfig(v),
		Database:      loadDBConfig(v),
		LLM:           llm,
		Features:      loadFeatureConfig(v),
		EnvFileLoaded: envErr == nil,
	}, nil
}
