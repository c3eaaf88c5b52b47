package service

import "errors"

var (
	// ErrMalformedToken reports a missing/ill-formed bearer prefix or an
	// unparsable token structure. Client-caused, no retry benefit.
	ErrMalformedToken = errors.New("malformed_token")

	// ErrInvalidToken reports a token not issued by this service's key.
	ErrInvalidToken = errors.New("invalid_token")

	// ErrExpiredToken is time-based and distinct from ErrInvalidToken: the
	// client can legitimately react by re-authenticating.
	ErrExpiredToken = errors.New("expired_token")

	// ErrCategoryMismatch reports a token presented for the wrong purpose,
	// e.g. an access token sent to terminate a session. Security-relevant,
	// logged distinctly from ordinary expiry.
	ErrCategoryMismatch = errors.New("category_mismatch")

	// ErrSessionNotFound reports a refresh token absent from the session
	// store when a refresh-scoped operation required it to exist.
	ErrSessionNotFound = errors.New("session_not_found")

	// ErrMemberDeleted reports a login or refresh attempt against a member
	// in the DELETE state.
	ErrMemberDeleted = errors.New("member_deleted")

	// ErrInvalidMemberState reports an operation the member's lifecycle
	// state does not permit (e.g. activating an already-ACTIVE member).
	ErrInvalidMemberState = errors.New("invalid_member_state")

	// ErrNotAuthenticated reports an operation that requires a principal
	// when none is attached to the request.
	ErrNotAuthenticated = errors.New("not_authenticated")

	// ErrForbidden reports an authenticated caller acting on a resource
	// they do not own.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidPost reports post content that fails validation.
	ErrInvalidPost = errors.New("invalid_post")

	// ErrInvalidCursor reports a pagination cursor that is not a valid id.
	ErrInvalidCursor = errors.New("invalid_cursor")
)
