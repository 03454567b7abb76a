// Package common defines shared constants and sentinel errors used across
// passvault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors. ErrorNotFound covers both a genuinely
	// missing record and a record owned by another user, so callers
	// cannot discover the existence of foreign records.
	ErrorNotFound = errors.New("not found")

	// Registration conflict: the email is already taken. Returned both by
	// the pre-check and by a creation-time uniqueness violation.
	ErrorEmailExists = errors.New("email already registered")

	// Login failure. Deliberately does not say which factor failed.
	ErrorInvalidCredentials = errors.New("invalid email or password")

	// Token resolution failures, each distinct.
	ErrorMalformedToken = errors.New("malformed token")
	ErrorBadSignature   = errors.New("invalid token signature")
	ErrorTokenExpired   = errors.New("token expired")
	ErrorUnknownSubject = errors.New("token subject no longer exists")

	// Validation errors surfaced to the caller as bad requests.
	ErrorValidation = errors.New("validation error")

	// Generic internal flow control.
	ErrorInternal = errors.New("internal error")
)
