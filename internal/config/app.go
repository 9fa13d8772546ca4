package config

import (
	"strings"

	"github.com/spf13/viper"
)

const EnvProduction = "production"

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	BaseURL     string
	RoutePrefix string
	ProxyHeader string
	BodyLimit   int
	LogJSON     bool
	LogDebug    bool
}

func (c AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

// ListenAddr normalizes APP_PORT to a fiber listen address.
func (c AppConfig) ListenAddr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func setAppDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "Resume Analyzer")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "3001")
	v.SetDefault("APP_ROUTE_PREFIX", "/api")
	v.SetDefault("APP_BODY_LIMIT", 12*1024*1024)
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)
}

func loadAppConfig(v *viper.Viper) AppConfig {
	return AppConfig{
		Name:        v.GetString("APP_NAME"),
		Env:         v.GetString("APP_ENV"),
		Port:        v.GetString("APP_PORT"),
		BaseURL:     v.GetString("APP_URL"),
		RoutePrefix: "/" + strings.Trim(v.GetString("APP_ROUTE_PREFIX"), "/"),
		ProxyHeader: v.GetString("APP_PROXY_HEADER"),
		BodyLimit:   v.GetInt("APP_BODY_LIMIT"),
		LogJSON:     v.GetBool("LOG_JSON"),
		LogDebug:    v.GetBool("LOG_DEBUG"),
	}
}
