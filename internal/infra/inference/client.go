// Package inference is the HTTP adapter for the remote text-generation endpoint.
// One Generate call issues exactly one POST; there is no retry and no backoff.
//
// Request:  POST <endpoint> {"input": "<prompt>"} with a bearer token.
// Response: {"results": [{"generated_text": "..."}]}; only HTTP 200 is success.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matiasleandrokruk/speechgate/internal/apperrors"
	"github.com/matiasleandrokruk/speechgate/internal/infra/config"
)

const (
	mimeJSON            = "application/json;charset=UTF-8"
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"

	// maxResponseBytes caps how much of an upstream body is read.
	maxResponseBytes = 1 << 20
)

// DeepInfraClient calls a DeepInfra-style inference endpoint.
type DeepInfraClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewDeepInfraClient creates a client. A zero timeout falls back to the config default.
// A blank endpoint or token is a configuration error.
func NewDeepInfraClient(cfg config.InferenceConfig) (*DeepInfraClient, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	token := strings.TrimSpace(cfg.AuthToken)
	if endpoint == "" {
		return nil, apperrors.New(apperrors.ErrCodeConfiguration, config.EnvKeyInferenceURL+" is not defined")
	}
	if token == "" {
		return nil, apperrors.New(apperrors.ErrCodeConfiguration, config.EnvKeyInferenceAuthToken+" is not defined")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultInferenceTimeout
	}
	return &DeepInfraClient{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// ─── wire types ──────────────────────────────────────────────────────────────

type generateRequest struct {
	Input string `json:"input"`
}

type generateResult struct {
	GeneratedText *string `json:"generated_text"`
}

type generateResponse struct {
	Results []generateResult `json:"results"`
}

// ─── Generator implementation ───────────────────────────────────────────────

// Generate sends prompt to the endpoint and returns the first result's text.
// Cancelling ctx aborts the in-flight request.
func (c *DeepInfraClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Input: prompt})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "encode inference request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeUpstream, "build inference request", err)
	}
	req.Header.Set(headerContentType, mimeJSON)
	req.Header.Set(headerAuthorization, "Bearer "+c.token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeUpstream, "inference call", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeUpstream, "read inference response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewWithContext(apperrors.ErrCodeUpstream,
			fmt.Sprintf("inference endpoint returned status %d", resp.StatusCode),
			map[string]any{
				"status":      resp.StatusCode,
				"body":        truncate(string(raw), 512),
				"duration_ms": time.Since(start).Milliseconds(),
			})
	}

	return extractGeneratedText(raw)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// extractGeneratedText decodes a 200 body and returns results[0].generated_text.
func extractGeneratedText(raw []byte) (string, error) {
	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeUpstream, "decode inference response", err)
	}
	if len(parsed.Results) == 0 {
		return "", apperrors.New(apperrors.ErrCodeUpstream, "inference response has no results")
	}
	if parsed.Results[0].GeneratedText == nil {
		return "", apperrors.New(apperrors.ErrCodeUpstream, "inference response missing generated_text")
	}
	return *parsed.Results[0].GeneratedText, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
