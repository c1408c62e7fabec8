package errors

import "time"

// ErrorResponse is the wire shape shared with the voucher backend. The
// client decodes it off failed responses and the admin gateway emits the
// same shape for its own failures.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Path      string            `json:"path"`
	TraceID   string            `json:"trace_id"`
}
