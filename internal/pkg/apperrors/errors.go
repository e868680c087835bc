package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	// Backend request errors
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrBadRequest         = errors.New("bad request")
	ErrValidationFailed   = errors.New("validation failed")
	ErrServerError        = errors.New("server error")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Bulk upload errors
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUnknownResourceType = errors.New("unknown resource type")
)

// APIError represents a non-2xx response from the ClassLens backend with
// whatever structure the backend managed to put in the body.
type APIError struct {
	Err         error
	StatusCode  int
	Detail      string
	FieldErrors map[string][]string
	RawBody     string
}

// Error implements the error interface. It prefers the backend's detail
// message and otherwise flattens per-field validation errors into a single
// readable string.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.FieldErrors) > 0 {
		return e.FlattenFieldErrors()
	}
	if e.RawBody != "" {
		return e.RawBody
	}
	return fmt.Sprintf("request failed (%d)", e.StatusCode)
}

// Unwrap implements the errors.Unwrap interface.
func (e *APIError) Unwrap() error {
	return e.Err
}

// FlattenFieldErrors joins field validation errors into "field: msg, msg"
// parts separated by " | ", fields in stable order.
func (e *APIError) FlattenFieldErrors() string {
	fields := make([]string, 0, len(e.FieldErrors))
	for field := range e.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.FieldErrors[field], ", ")))
	}
	return strings.Join(parts, " | ")
}

// FieldError returns the first validation message recorded for the given
// field, or an empty string.
func (e *APIError) FieldError(field string) string {
	if msgs, ok := e.FieldErrors[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// sentinelForStatus maps a response status code onto the sentinel error the
// rest of the application branches on.
func sentinelForStatus(status int) error {
	switch {
	case status == 401:
		return ErrUnauthorized
	case status == 404:
		return ErrResourceNotFound
	case status == 400:
		return ErrValidationFailed
	case status >= 500:
		return ErrServerError
	default:
		return ErrBadRequest
	}
}

// NewAPIError builds an APIError from a backend response body. The body may
// be a DRF-style error object ({"detail": ...} or {"field": ["msg", ...]}),
// a bare string, or not JSON at all; all three are tolerated.
func NewAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Err:        sentinelForStatus(status),
		StatusCode: status,
		RawBody:    strings.TrimSpace(string(body)),
	}
	if len(body) == 0 {
		return apiErr
	}

	var asObject map[string]json.RawMessage
	if err := json.Unmarshal(body, &asObject); err != nil {
		var asString string
		if err := json.Unmarshal(body, &asString); err == nil {
			apiErr.Detail = asString
		}
		return apiErr
	}

	for key, raw := range asObject {
		switch key {
		case "detail", "error":
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil && apiErr.Detail == "" {
				apiErr.Detail = msg
			}
		default:
			var msgs []string
			if err := json.Unmarshal(raw, &msgs); err == nil {
				if apiErr.FieldErrors == nil {
					apiErr.FieldErrors = map[string][]string{}
				}
				apiErr.FieldErrors[key] = msgs
				continue
			}
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil {
				if apiErr.FieldErrors == nil {
					apiErr.FieldErrors = map[string][]string{}
				}
				apiErr.FieldErrors[key] = []string{msg}
			}
		}
	}
	return apiErr
}

// Is returns whether target matches err or any of the errors in errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
