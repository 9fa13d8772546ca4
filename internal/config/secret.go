package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// loadSecret resolves key from the environment, preferring the file named by
// key+"_FILE" when set. An unset secret yields "" and is reported by Validate.
func loadSecret(v *viper.Viper, key string) (string, error) {
	file := strings.TrimSpace(v.GetString(key + "_FILE"))
	if file == "" {
		return strings.TrimSpace(v.GetString(key)), nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", key, file, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", key, file)
	}
	return secret, nil
}
