package types

import (
	"errors"
	"net/http"

	appErr "github.com/softdesk/api/pkg/errors"
)

// FromAppError converts an application error into its wire representation.
func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var ae *appErr.AppError
	if errors.As(err, &ae) {
		return &APIError{Code: string(ae.Code), Message: ae.Message}
	}
	return &APIError{Code: string(appErr.CodeUnknown), Message: err.Error()}
}

// StatusOf maps an application error code to an HTTP status.
func StatusOf(err error) int {
	var ae *appErr.AppError
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Code {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
