package auth

import (
	"encoding/json"
	"fmt"
)

// User is the profile record the backend returns with a session. Fields other
// than username and email are kept in Extra so they survive persistence.
type User struct {
	Username string
	Email    string
	Extra    map[string]json.RawMessage
}

// UnmarshalJSON decodes a user record, keeping unknown fields.
func (u *User) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("user record is null")
	}

	var out User
	if raw, ok := fields["username"]; ok {
		if err := json.Unmarshal(raw, &out.Username); err != nil {
			return fmt.Errorf("decoding username: %w", err)
		}
		delete(fields, "username")
	}
	if raw, ok := fields["email"]; ok {
		if err := json.Unmarshal(raw, &out.Email); err != nil {
			return fmt.Errorf("decoding email: %w", err)
		}
		delete(fields, "email")
	}
	if len(fields) > 0 {
		out.Extra = fields
	}
	*u = out
	return nil
}

// MarshalJSON encodes the user with its extra fields inlined.
func (u User) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(u.Extra)+2)
	for k, v := range u.Extra {
		fields[k] = v
	}
	name, _ := json.Marshal(u.Username)
	email, _ := json.Marshal(u.Email)
	fields["username"] = name
	fields["email"] = email
	return json.Marshal(fields)
}

func (u User) clone() User {
	if u.Extra == nil {
		return u
	}
	extra := make(map[string]json.RawMessage, len(u.Extra))
	for k, v := range u.Extra {
		extra[k] = append(json.RawMessage(nil), v...)
	}
	u.Extra = extra
	return u
}

// State is a snapshot of the session. Token and User are both set or both
// empty. Ready is false until the startup restoration has finished; until
// then an empty session means "unknown", not "signed out".
type State struct {
	Token string
	User  *User
	Ready bool
}

// Authenticated reports whether the snapshot holds a session.
func (s State) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Credentials are what the login form collects. Login is a username or email.
type Credentials struct {
	Login    string
	Password string
}

// Profile is what the registration form collects.
type Profile struct {
	Username string
	Email    string
	Password string
}
