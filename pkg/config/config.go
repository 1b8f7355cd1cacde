// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/codeready-toolchain/wrangle/pkg/dlp"
)

// Config holds process-level settings shared by the CLI and HTTP modes.
type Config struct {
	// ProjectID is the GCP project charged for DLP calls. Optional; when
	// empty the project is resolved from credentials at first client use.
	ProjectID string

	// CredentialsFile is the path to a service account JSON file. Optional;
	// when empty ambient default credentials are used.
	CredentialsFile string

	// MinLikelihood is the detection threshold name (e.g. "POSSIBLE").
	MinLikelihood string

	// HTTPPort is the listen port for serve mode.
	HTTPPort string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		ProjectID:       os.Getenv("DLP_PROJECT_ID"),
		CredentialsFile: getEnvOrDefault("DLP_CREDENTIALS_FILE", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		MinLikelihood:   getEnvOrDefault("DLP_MIN_LIKELIHOOD", "POSSIBLE"),
		HTTPPort:        getEnvOrDefault("HTTP_PORT", "8080"),
	}

	if _, err := dlp.ParseLikelihood(cfg.MinLikelihood); err != nil {
		return Config{}, fmt.Errorf("invalid DLP_MIN_LIKELIHOOD: %w", err)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
