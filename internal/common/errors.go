// Package common defines shared constants and sentinel errors used across
// client and server layers of the to-do tracker. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrValidation     = errors.New("validation error")

	// Authentication errors.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username already exists")

	// ErrInvalidToken is the collapsed outcome of every token failure below.
	ErrInvalidToken          = errors.New("invalid token")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")

	// ErrIdentityNotFound means a valid token names a user that no longer exists.
	ErrIdentityNotFound = errors.New("identity not found")

	// ErrConfiguration is fatal and must stop the process before serving.
	ErrConfiguration = errors.New("configuration error")
)
