package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Category tags a failure with where in the pipeline it originated.
type Category string

const (
	CategoryValidation    Category = "validation"
	CategoryConfiguration Category = "configuration"
	CategoryUpstream      Category = "upstream"
	CategoryDownload      Category = "download"
)

// Error is a classified pipeline failure. The category is assigned at the
// failure site so the HTTP boundary can map it to a status code without
// inspecting message text.
type Error struct {
	Category Category
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Validationf builds a validation-category error from a format string.
func Validationf(format string, args ...any) *Error {
	return &Error{Category: CategoryValidation, Message: fmt.Sprintf(format, args...)}
}

// Configurationf builds a configuration-category error from a format string.
func Configurationf(format string, args ...any) *Error {
	return &Error{Category: CategoryConfiguration, Message: fmt.Sprintf(format, args...)}
}

// Upstreamf builds an upstream-category error from a format string.
func Upstreamf(format string, args ...any) *Error {
	return &Error{Category: CategoryUpstream, Message: fmt.Sprintf(format, args...)}
}

// Downloadf builds a download-category error from a format string.
func Downloadf(format string, args ...any) *Error {
	return &Error{Category: CategoryDownload, Message: fmt.Sprintf(format, args...)}
}

// WrapDownload attaches a download category to a transport failure while
// keeping the cause reachable through errors.Unwrap.
func WrapDownload(msg string, cause error) *Error {
	return &Error{Category: CategoryDownload, Message: msg, Cause: cause}
}

// WrapUpstream attaches an upstream category to a transport failure while
// keeping the cause reachable through errors.Unwrap.
func WrapUpstream(msg string, cause error) *Error {
	return &Error{Category: CategoryUpstream, Message: msg, Cause: cause}
}

// CategoryOf extracts the category from err, or "" when err carries none.
func CategoryOf(err error) Category {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Category
	}
	return ""
}

// StatusOf maps a classified error onto the HTTP status returned to the
// caller. Unclassified errors are treated as internal failures.
func StatusOf(err error) int {
	switch CategoryOf(err) {
	case CategoryValidation, CategoryDownload:
		return http.StatusBadRequest
	case CategoryConfiguration:
		return http.StatusInternalServerError
	case CategoryUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
