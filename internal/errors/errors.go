// Package errors defines the error taxonomy used across the site: missing
// entities, failed fetches from the backend, image load failures and
// configuration problems.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorises a SiteError.
type ErrorType string

const (
	TypeNotFound    ErrorType = "not_found"
	TypeFetchFailed ErrorType = "fetch_failed"
	TypeImageLoad   ErrorType = "image_load_failed"
	TypeConfig      ErrorType = "config"
)

// SiteError is a structured error carrying the operation and entity it
// relates to.
type SiteError struct {
	Type    ErrorType
	Op      string
	Slug    string
	Status  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	var parts []string

	if e.Op != "" {
		parts = append(parts, e.Op)
	}
	if e.Slug != "" {
		parts = append(parts, fmt.Sprintf("slug=%s", e.Slug))
	}
	if e.Status != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.Status))
	}

	msg := e.Message
	if msg == "" {
		msg = string(e.Type)
	}
	parts = append(parts, msg)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += ": " + e.Cause.Error()
	}
	return result
}

// Unwrap returns the underlying cause.
func (e *SiteError) Unwrap() error {
	return e.Cause
}

// Is reports a match when target is a SiteError of the same type.
func (e *SiteError) Is(target error) bool {
	var t *SiteError
	if errors.As(target, &t) {
		return e.Type == t.Type
	}
	return false
}

// Sentinels for errors.Is comparisons.
var (
	ErrNotFound    = &SiteError{Type: TypeNotFound}
	ErrFetchFailed = &SiteError{Type: TypeFetchFailed}
	ErrImageLoad   = &SiteError{Type: TypeImageLoad}
	ErrConfig      = &SiteError{Type: TypeConfig}
)

// NewNotFound reports that no entity exists for slug.
func NewNotFound(op, slug string) *SiteError {
	return &SiteError{
		Type:    TypeNotFound,
		Op:      op,
		Slug:    slug,
		Message: "not found",
	}
}

// NewFetchFailed wraps a network, status or decoding failure.
func NewFetchFailed(op string, status int, cause error) *SiteError {
	return &SiteError{
		Type:    TypeFetchFailed,
		Op:      op,
		Status:  status,
		Message: "fetch failed",
		Cause:   cause,
	}
}

// NewImageLoad reports that an image could not be loaded.
func NewImageLoad(src string, status int, cause error) *SiteError {
	return &SiteError{
		Type:    TypeImageLoad,
		Op:      "load image " + src,
		Status:  status,
		Message: "image unavailable",
		Cause:   cause,
	}
}

// NewConfig reports an invalid configuration value.
func NewConfig(key, message string) *SiteError {
	return &SiteError{
		Type:    TypeConfig,
		Op:      "config " + key,
		Message: message,
	}
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsFetchFailed reports whether err is a FetchFailed error.
func IsFetchFailed(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}
