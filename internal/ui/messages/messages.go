package messages

import "github.com/fragmede/authdash/internal/auth"

// Navigation messages.
type (
	OpenLoginMsg    struct{}
	OpenRegisterMsg struct{}
)

// Result messages.
type (
	// SessionChangedMsg carries the store's state after every change.
	SessionChangedMsg struct {
		State auth.State
	}

	LoginResultMsg struct {
		Username string
		Err      error
	}

	RegisterResultMsg struct {
		Username string
		Err      error
	}

	LogoutDoneMsg struct{}
)
