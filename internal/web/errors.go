package web

// errors.go turns errors into JSON responses. The technical error is logged
// with the request ID; the client gets the mapped user message and its code.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JonMunkholm/planilha/internal/core"
	"github.com/JonMunkholm/planilha/internal/ingest"
	"github.com/JonMunkholm/planilha/internal/logging"
)

var (
	errRateLimited = errors.New("rate limit exceeded")
	errNoInput     = errors.New("no input provided")
	errMalformed   = errors.New("malformed request")
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrTooManyAnalyses):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, core.ErrUnknownSchema):
		return http.StatusNotFound
	case errors.Is(err, ingest.ErrUnsupportedFileFormat),
		errors.Is(err, ingest.ErrEmptyInput),
		errors.Is(err, ingest.ErrParseFailure),
		errors.Is(err, core.ErrInvalidColumnIndex),
		errors.Is(err, core.ErrMissingColumnMapping),
		errors.Is(err, core.ErrInvalidRowIndex),
		errors.Is(err, errNoInput),
		errors.Is(err, errMalformed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes its user-facing form with statusCode.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error("request error", args...)
	} else {
		logger.Warn("request rejected", args...)
	}

	respondErrorJSON(w, userMsg, statusCode)
}

// fail is respondError with the status derived from err.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	respondError(w, r, err, statusFor(err))
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// writeJSON encodes v as JSON with status 200.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}
