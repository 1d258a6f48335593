// Handler helpers: JSON writers and the error-to-status boundary.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/matiasleandrokruk/speechgate/internal/apperrors"
	"github.com/matiasleandrokruk/speechgate/internal/logging"
)

const maxRequestBodyBytes = 1 << 20

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}

// genericMessages are the only error texts callers ever see.
var genericMessages = map[apperrors.ErrorCode]string{
	apperrors.ErrCodeInvalidRequest: "invalid request",
	apperrors.ErrCodeNotFound:       "speech not found",
	apperrors.ErrCodeUpstream:       "speech generation failed",
	apperrors.ErrCodePersistence:    "storage failure",
	apperrors.ErrCodeConfiguration:  "service misconfigured",
	apperrors.ErrCodeInternal:       "internal error",
}

// writeServiceError logs err with its detail and writes a generic response
// whose status follows the error code. Validation errors keep their message.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := apperrors.CodeOf(err)
	status := apperrors.HTTPStatus(code)

	attrs := []any{"op", op, "code", string(code), "error", err.Error()}
	var se *apperrors.StructuredError
	if errors.As(err, &se) {
		for k, v := range se.Context {
			attrs = append(attrs, k, v)
		}
	}

	logger := logging.FromContext(r.Context())
	message := genericMessages[code]
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", attrs...)
	case code == apperrors.ErrCodeInvalidRequest && se != nil:
		logger.Debug("request rejected", attrs...)
		message = se.Message
	default:
		logger.Debug("request rejected", attrs...)
	}
	writeError(w, status, message)
}
