package api

import (
	"encoding/json"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /login. Login is a username or an email.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse is returned by both /register and /login.
type AuthResponse struct {
	Message     string `json:"message,omitempty"`
	AccessToken string `json:"access_token"`

	// User is kept raw; the session store owns its decoding and persistence.
	User json.RawMessage `json:"user"`
}

// HasUser reports whether the response carried a non-null user record.
func (r *AuthResponse) HasUser() bool {
	return len(r.User) > 0 && string(r.User) != "null"
}

// errorPayload covers the error shapes the backend and its framework emit.
type errorPayload struct {
	Message string `json:"message"`
	Msg     string `json:"msg"`
	Error   string `json:"error"`
}

func (p errorPayload) text() string {
	switch {
	case p.Message != "":
		return p.Message
	case p.Msg != "":
		return p.Msg
	default:
		return p.Error
	}
}
