package config

import "github.com/spf13/viper"

type FeatureConfig struct {
	// RecordMatches persists match results alongside analyzer results.
	RecordMatches bool
	// Embeddings stores a Gemini embedding per submission for similarity search.
	Embeddings    bool
	MaxUploadSize int64
}

func setFeatureDefaults(v *viper.Viper) {
	v.SetDefault("RECORD_MATCHES", false)
	v.SetDefault("ENABLE_EMBEDDINGS", false)
	v.SetDefault("MAX_UPLOAD_SIZE", 10*1024*1024)
}

func loadFeatureConfig(v *viper.Viper) FeatureConfig {
	return FeatureConfig{
		RecordMatches: v.GetBool("RECORD_MATCHES"),
		Embeddings:    v.GetBool("ENABLE_EMBEDDINGS"),
		MaxUploadSize: v.GetInt64("MAX_UPLOAD_SIZE"),
	}
}
