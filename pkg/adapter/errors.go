package adapter

import (
	"fmt"
	"strings"
)

// FieldError describes a validation error on a single request field.
type FieldError struct {
	Field          string `json:"field"`
	Message        string `json:"message"`
	RequestPointer string `json:"request_pointer,omitempty"`
}

// APIError is returned when GoCardless responds with a non-2xx status code.
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"code"`

	// Type is the error type. E.g. invalid_api_usage, invalid_state, validation_failed.
	Type string `json:"type"`

	// Message is a human-readable description of the error.
	Message string `json:"message"`

	// DocumentationURL points to the GoCardless documentation for this error.
	DocumentationURL string `json:"documentation_url,omitempty"`

	// RequestID identifies the failed request when contacting GoCardless support.
	RequestID string `json:"request_id,omitempty"`

	// Errors contains the list of individual errors.
	Errors []FieldError `json:"errors,omitempty"`
}

// Error returns the error message including status, type and field errors.
func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "gocardless: %d %s: %s", e.StatusCode, e.Type, e.Message)
	for _, fe := range e.Errors {
		if len(fe.Field) > 0 {
			fmt.Fprintf(&b, "; %s %s", fe.Field, fe.Message)
		} else {
			fmt.Fprintf(&b, "; %s", fe.Message)
		}
	}
	if len(e.RequestID) > 0 {
		fmt.Fprintf(&b, " (request %s)", e.RequestID)
	}
	return b.String()
}

// errorEnvelope is the body returned by GoCardless along with non-2xx responses.
type errorEnvelope struct {
	Error *APIError `json:"error"`
}
