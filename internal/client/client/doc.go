// Package client talks to the to-do REST API on behalf of the CLI and
// bootstraps the CLI's local sqlite store.
//
// HTTP failures are mapped onto the sentinel errors in internal/common
// (ErrInvalidCredentials, ErrDuplicateUsername, ErrorUnauthorized,
// ErrValidation, ErrorNotFound, ErrorInternal) plus ErrUnavailable for
// transport errors, so callers can match them with errors.Is.
package client
