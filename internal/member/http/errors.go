package http

import (
	"errors"
	"net/http"

	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/internal/member/store"
	"github.com/momentree/momentree/pkg/httpx"
)

// APIError is the JSON error envelope every handler writes on failure.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "expired_token")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	ErrBadRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "invalid_request",
		Description: "the request is malformed or missing required parameters",
	}

	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_token",
		Description: "the token is missing, invalid, expired or revoked",
	}

	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        "forbidden",
		Description: "the caller is not allowed to perform this operation",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        "not_found",
		Description: "the requested resource does not exist",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        "server_error",
		Description: "internal server error",
	}
)

// writeServiceError maps service sentinel errors onto the wire envelope.
// Unknown errors become 500 without leaking internals.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMalformedToken),
		errors.Is(err, service.ErrInvalidPost),
		errors.Is(err, service.ErrInvalidCursor),
		errors.Is(err, service.ErrInvalidUpload):
		(&APIError{
			StatusCode:  http.StatusBadRequest,
			Code:        errCode(err),
			Description: "the request is malformed or fails validation",
		}).WriteError(w)

	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrExpiredToken),
		errors.Is(err, service.ErrCategoryMismatch),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrNotAuthenticated):
		(&APIError{
			StatusCode:  http.StatusUnauthorized,
			Code:        errCode(err),
			Description: "the token is missing, invalid, expired or revoked",
		}).WriteError(w)

	case errors.Is(err, service.ErrMemberDeleted),
		errors.Is(err, service.ErrForbidden):
		(&APIError{
			StatusCode:  http.StatusForbidden,
			Code:        errCode(err),
			Description: "the caller is not allowed to perform this operation",
		}).WriteError(w)

	case errors.Is(err, service.ErrInvalidMemberState):
		(&APIError{
			StatusCode:  http.StatusConflict,
			Code:        "invalid_member_state",
			Description: "the member's lifecycle state does not permit this operation",
		}).WriteError(w)

	case errors.Is(err, store.ErrNotFound):
		ErrNotFound.WriteError(w)

	case errors.Is(err, store.ErrAlreadyExists):
		(&APIError{
			StatusCode:  http.StatusConflict,
			Code:        "already_exists",
			Description: "the resource already exists",
		}).WriteError(w)

	default:
		ErrServerError.WriteError(w)
	}
}

// errCode unwraps to the sentinel's message, which doubles as the wire code.
func errCode(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
