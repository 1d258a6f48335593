// Package config provides gateway configuration loaded from an optional YAML
// file, an optional .env file and environment variables (env wins).
// The four connection settings are required and have no defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matiasleandrokruk/speechgate/internal/apperrors"
)

// Config holds runtime configuration for the gateway.
type Config struct {
	// Database
	DatabaseURL       string // LIBSQL_DB_URL (required)
	DatabaseAuthToken string // LIBSQL_DB_AUTH_TOKEN (required)

	// Inference
	InferenceURL       string        // DEEP_INFRA_HOST (required)
	InferenceAuthToken string        // DEEP_INFRA_AUTH_TOKEN (required)
	InferenceTimeout   time.Duration // INFERENCE_TIMEOUT (default 30s)

	// Ambient
	Addr     string // SPEECHGATE_ADDR (default "0.0.0.0:8080")
	LogLevel string // LOG_LEVEL (default "info")
}

// DatabaseConfig is the subset of Config the store needs.
type DatabaseConfig struct {
	URL       string
	AuthToken string
}

// InferenceConfig is the subset of Config the inference client needs.
type InferenceConfig struct {
	Endpoint  string
	AuthToken string
	Timeout   time.Duration
}

const (
	EnvKeyDatabaseURL        = "LIBSQL_DB_URL"
	EnvKeyDatabaseAuthToken  = "LIBSQL_DB_AUTH_TOKEN"
	EnvKeyInferenceURL       = "DEEP_INFRA_HOST"
	EnvKeyInferenceAuthToken = "DEEP_INFRA_AUTH_TOKEN"
	EnvKeyInferenceTimeout   = "INFERENCE_TIMEOUT"
	EnvKeyAddr               = "SPEECHGATE_ADDR"
	EnvKeyLogLevel           = "LOG_LEVEL"
	EnvKeyConfigFile         = "SPEECHGATE_CONFIG"

	DefaultAddr             = "0.0.0.0:8080"
	DefaultLogLevel         = "info"
	DefaultInferenceTimeout = 30 * time.Second
)

// fileConfig mirrors Config in the YAML file.
type fileConfig struct {
	Database struct {
		URL       string `yaml:"url"`
		AuthToken string `yaml:"authToken"`
	} `yaml:"database"`
	Inference struct {
		Endpoint  string `yaml:"endpoint"`
		AuthToken string `yaml:"authToken"`
		Timeout   string `yaml:"timeout"`
	} `yaml:"inference"`
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"logLevel"`
}

// Load reads the YAML file at path (skipped when path is empty), then applies
// environment overrides and defaults. All values are trimmed.
// Load does not validate required settings; call Validate.
func Load(path string) (Config, error) {
	var fc fileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	cfg := Config{
		DatabaseURL:        envOr(EnvKeyDatabaseURL, fc.Database.URL),
		DatabaseAuthToken:  envOr(EnvKeyDatabaseAuthToken, fc.Database.AuthToken),
		InferenceURL:       envOr(EnvKeyInferenceURL, fc.Inference.Endpoint),
		InferenceAuthToken: envOr(EnvKeyInferenceAuthToken, fc.Inference.AuthToken),
		Addr:               envOr(EnvKeyAddr, coalesce(fc.Addr, DefaultAddr)),
		LogLevel:           envOr(EnvKeyLogLevel, coalesce(fc.LogLevel, DefaultLogLevel)),
		InferenceTimeout:   DefaultInferenceTimeout,
	}

	if raw := envOr(EnvKeyInferenceTimeout, fc.Inference.Timeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("config: invalid %s %q", EnvKeyInferenceTimeout, raw)
		}
		cfg.InferenceTimeout = d
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load env file %q: %w", path, err)
	}
	return nil
}

// Validate returns a configuration error naming every required setting that
// is missing or blank.
func (c Config) Validate() error {
	var missing []string
	required := []struct {
		key, value string
	}{
		{EnvKeyDatabaseURL, c.DatabaseURL},
		{EnvKeyDatabaseAuthToken, c.DatabaseAuthToken},
		{EnvKeyInferenceURL, c.InferenceURL},
		{EnvKeyInferenceAuthToken, c.InferenceAuthToken},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewWithContext(
			apperrors.ErrCodeConfiguration,
			fmt.Sprintf("required settings not defined: %s", strings.Join(missing, ", ")),
			map[string]any{"missing": missing},
		)
	}
	return nil
}

// Database returns the store settings.
func (c Config) Database() DatabaseConfig {
	return DatabaseConfig{URL: c.DatabaseURL, AuthToken: c.DatabaseAuthToken}
}

// Inference returns the inference client settings.
func (c Config) Inference() InferenceConfig {
	return InferenceConfig{
		Endpoint:  c.InferenceURL,
		AuthToken: c.InferenceAuthToken,
		Timeout:   c.InferenceTimeout,
	}
}

// envOr returns the trimmed value of the environment variable key, or the
// trimmed fallback if the variable is unset or blank.
func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}

func coalesce(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
