// Package httpx writes the JSON envelopes the API speaks: a plain payload
// on success, a snake_case error code with optional field violations on
// rejection.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/validation"
)

// ErrorResponse is the rejection envelope. Error is a snake_case code
// such as "validation_failed" or "report_not_rendered"; Details carries
// per-field violations when the rejection came from input validation.
type ErrorResponse struct {
	Error   string                `json:"error"`
	Details validation.Violations `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		// best-effort error response; avoid writing partial JSON
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, code string, details validation.Violations) {
	JSON(w, status, ErrorResponse{Error: code, Details: details})
}
