package common

import "errors"

// Business logic errors
var (
	// Post errors
	ErrPostNotFound = errors.New("post not found")
	ErrSlugConflict = errors.New("slug already in use")
	ErrTermNotFound = errors.New("term not found")

	// Authorization errors
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownSetting = errors.New("unknown setting key")
)
