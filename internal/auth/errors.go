package auth

import "errors"

var (
	// ErrNoProvider is returned when the session accessor is used with a
	// context that carries no active store scope.
	ErrNoProvider = errors.New("auth: session accessor used outside of a store scope")

	// ErrMalformedResponse is returned when the backend reports success but
	// the body lacks an access token or a user record.
	ErrMalformedResponse = errors.New("auth: backend response is missing access_token or user")
)
