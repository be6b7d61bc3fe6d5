// Package apperr defines the sentinel errors shared across repositories,
// services and handlers. Callers should use errors.Is to match these values.
package apperr

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation of required fields at the store or service boundary.
	ErrValidation = errors.New("validation failed")

	// A write that would duplicate a unique field (email).
	ErrConflict = errors.New("already exists")

	// Auth errors.
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// External image host failure.
	ErrUpload = errors.New("image upload failed")
)
