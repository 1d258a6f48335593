// No t.Parallel(): env vars are process-global.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matiasleandrokruk/speechgate/internal/apperrors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvKeyDatabaseURL, EnvKeyDatabaseAuthToken,
		EnvKeyInferenceURL, EnvKeyInferenceAuthToken,
		EnvKeyInferenceTimeout, EnvKeyAddr, EnvKeyLogLevel,
	} {
		t.Setenv(key, "")
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvKeyDatabaseURL, "libsql://speeches.example.io")
	t.Setenv(EnvKeyDatabaseAuthToken, "db-token")
	t.Setenv(EnvKeyInferenceURL, "https://api.deepinfra.com/v1/inference/model")
	t.Setenv(EnvKeyInferenceAuthToken, "inf-token")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error = %v; want nil", err)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q; want %q", cfg.Addr, DefaultAddr)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.InferenceTimeout != DefaultInferenceTimeout {
		t.Errorf("InferenceTimeout = %v; want %v", cfg.InferenceTimeout, DefaultInferenceTimeout)
	}
	if cfg.DatabaseURL != "" || cfg.InferenceURL != "" {
		t.Errorf("required settings must have no defaults, got %+v", cfg)
	}
}

func TestLoad_EnvValuesAreTrimmed(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)
	t.Setenv(EnvKeyDatabaseAuthToken, "  db-token \n")
	t.Setenv(EnvKeyInferenceTimeout, "5s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error = %v; want nil", err)
	}
	if cfg.DatabaseAuthToken != "db-token" {
		t.Errorf("DatabaseAuthToken = %q; want %q", cfg.DatabaseAuthToken, "db-token")
	}
	if cfg.InferenceTimeout != 5*time.Second {
		t.Errorf("InferenceTimeout = %v; want 5s", cfg.InferenceTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate error = %v; want nil", err)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvKeyInferenceTimeout, "soon")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid timeout, got nil")
	}
}

func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "speechgate.yaml")
	content := `
database:
  url: file:/var/lib/speechgate/speech.db
  authToken: file-db-token
inference:
  endpoint: https://inference.internal/generate
  authToken: file-inf-token
  timeout: 12s
addr: 127.0.0.1:9090
logLevel: debug
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(EnvKeyInferenceAuthToken, "env-inf-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v; want nil", err)
	}
	if cfg.DatabaseURL != "file:/var/lib/speechgate/speech.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.InferenceAuthToken != "env-inf-token" {
		t.Errorf("InferenceAuthToken = %q; want env override", cfg.InferenceAuthToken)
	}
	if cfg.InferenceTimeout != 12*time.Second {
		t.Errorf("InferenceTimeout = %v; want 12s", cfg.InferenceTimeout)
	}
	if cfg.Addr != "127.0.0.1:9090" || cfg.LogLevel != "debug" {
		t.Errorf("ambient settings = %q/%q", cfg.Addr, cfg.LogLevel)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file, got nil")
	}
}

func TestValidate_MissingSettings(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	verr := cfg.Validate()
	if !apperrors.Is(verr, apperrors.ErrCodeConfiguration) {
		t.Fatalf("Validate error = %v; want configuration error", verr)
	}
	for _, key := range []string{EnvKeyDatabaseURL, EnvKeyDatabaseAuthToken, EnvKeyInferenceURL, EnvKeyInferenceAuthToken} {
		if !strings.Contains(verr.Error(), key) {
			t.Errorf("error %q should name %s", verr.Error(), key)
		}
	}
}

func TestValidate_BlankTokenEqualsMissing(t *testing.T) {
	blank := Config{
		DatabaseURL:        "libsql://speeches.example.io",
		DatabaseAuthToken:  "   ",
		InferenceURL:       "https://inference.internal",
		InferenceAuthToken: "inf-token",
	}
	missing := blank
	missing.DatabaseAuthToken = ""

	errBlank, errMissing := blank.Validate(), missing.Validate()
	if errBlank == nil || errMissing == nil {
		t.Fatalf("expected both to fail, got %v / %v", errBlank, errMissing)
	}
	if errBlank.Error() != errMissing.Error() {
		t.Errorf("blank = %q; missing = %q; want identical", errBlank, errMissing)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("DEEP_INFRA_HOST=https://from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// t.Setenv registers cleanup so the value loaded below is restored afterwards.
	t.Setenv(EnvKeyInferenceURL, "")
	os.Unsetenv(EnvKeyInferenceURL) //nolint:errcheck

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv error = %v", err)
	}
	if got := os.Getenv(EnvKeyInferenceURL); got != "https://from-dotenv" {
		t.Errorf("%s = %q; want value from .env", EnvKeyInferenceURL, got)
	}
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadDotEnv error = %v; want nil", err)
	}
	if err := LoadDotEnv(""); err != nil {
		t.Fatalf("LoadDotEnv(\"\") error = %v; want nil", err)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("TEST_ENVOR_KEY", " custom-value ")
	if got := envOr("TEST_ENVOR_KEY", "fallback"); got != "custom-value" {
		t.Errorf("expected 'custom-value', got %q", got)
	}
	t.Setenv("TEST_ENVOR_KEY", "   ")
	if got := envOr("TEST_ENVOR_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected 'fallback', got %q", got)
	}
}
