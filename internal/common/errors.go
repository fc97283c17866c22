// Package common defines shared constants and sentinel errors used across
// the ordertrack server layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (infrastructure failures surfaced as a generic
	// server error, never detailed to the client).
	ErrorInternal = errors.New("internal error")

	// Auth errors. ErrInvalidToken covers every token verification failure:
	// forged, malformed, expired, revoked, and replayed tokens are all
	// indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("unauthorized")
)
