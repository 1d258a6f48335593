package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matiasleandrokruk/speechgate/internal/infra/config"
)

// clearConfigEnv blanks every setting so the host environment cannot leak in.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvKeyDatabaseURL,
		config.EnvKeyDatabaseAuthToken,
		config.EnvKeyInferenceURL,
		config.EnvKeyInferenceAuthToken,
		config.EnvKeyInferenceTimeout,
		config.EnvKeyAddr,
		config.EnvKeyLogLevel,
		config.EnvKeyConfigFile,
	} {
		t.Setenv(key, "")
	}
}

func TestRun_VersionCommand_PrintsVersion(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code := run(context.Background(), []string{"speechgate", "version"}, &out)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "speechgate version") {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestRun_Help_PrintsUsage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code := run(context.Background(), []string{"speechgate", "--help"}, &out)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	for _, want := range []string{"serve", "version", "--env-file"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected help to mention %q, got %q", want, out.String())
		}
	}
}

func TestRun_InvalidFlag_ReturnsNonZero(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code := run(context.Background(), []string{"speechgate", "--unknown-flag"}, &out)

	if code == 0 {
		t.Fatal("expected non-zero exit code")
	}
}

func TestRun_Serve_MissingConfigurationFails(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(config.EnvKeyDatabaseAuthToken, "   ")

	var out bytes.Buffer
	envFile := filepath.Join(t.TempDir(), "absent.env")
	code := run(context.Background(), []string{"speechgate", "serve", "--env-file", envFile}, &out)

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d (%s)", code, out.String())
	}
	if !strings.Contains(out.String(), config.EnvKeyDatabaseAuthToken) {
		t.Fatalf("expected missing key in output, got %q", out.String())
	}
}

func TestRun_Serve_CancelledContextExitsCleanly(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(config.EnvKeyDatabaseURL, filepath.Join(t.TempDir(), "speech.db"))
	t.Setenv(config.EnvKeyDatabaseAuthToken, "db-token")
	t.Setenv(config.EnvKeyInferenceURL, "http://127.0.0.1:1/inference")
	t.Setenv(config.EnvKeyInferenceAuthToken, "inf-token")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	envFile := filepath.Join(t.TempDir(), "absent.env")
	code := run(ctx, []string{"speechgate", "--addr", "127.0.0.1:0", "--env-file", envFile}, &out)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (%s)", code, out.String())
	}
}
