package auth

import "errors"

// Token verification failures. The distinction matters to API clients: a
// caller may re-login on ErrTokenExpired, but must treat ErrTokenBadSignature
// as hostile and never retry. None of these reach a response body verbatim.
var (
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature mismatch")
	ErrTokenExpired      = errors.New("token expired")
)

// ErrInvalidCredentials is the single credential failure. It deliberately does
// not distinguish an unknown username from a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")
