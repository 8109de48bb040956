// Package httputil maps domain errors onto JSON HTTP responses.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

// MaxErrorBodySize is the maximum size of an error message returned to clients
const MaxErrorBodySize = 500

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// BadRequestError marks caller mistakes (malformed body, bad path value).
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// truncate truncates a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	var badReq *BadRequestError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &badReq):
		return http.StatusBadRequest
	case errors.Is(err, report.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, report.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides internal detail for server errors.
func publicMessage(err error, status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "Unauthorized"
	case status == http.StatusNotFound:
		return "Not found"
	case errors.Is(err, report.ErrCycleCreation):
		return "Could not start your report cycle"
	case errors.Is(err, report.ErrSaveFailure):
		return "Could not save your report"
	case status >= http.StatusInternalServerError:
		return "Internal server error"
	default:
		return truncate(err.Error(), MaxErrorBodySize)
	}
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error body for err.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	WriteJSON(w, status, ErrorResponse{Success: false, Error: publicMessage(err, status)})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	const bearerPrefix = "Bearer "
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", report.ErrUnauthorized
	}
	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == "" {
		return "", report.ErrUnauthorized
	}
	return token, nil
}
