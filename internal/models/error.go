package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Moderation state errors
	ErrUserBanned       = errors.New("user is banned")
	ErrContentViolation = errors.New("content violates platform rules")
	ErrInvalidLocation  = errors.New("location outside the supported municipality")
)
