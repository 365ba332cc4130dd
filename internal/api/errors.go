package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fragmede/authdash/internal/render"
)

// Error is a non-2xx answer from the backend. Body is kept verbatim.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// newError builds an Error from a response body, pulling out the message a
// user should see.
func newError(method, path string, status int, body []byte) *Error {
	return &Error{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    errorMessage(status, body),
		Body:       body,
	}
}

func errorMessage(status int, body []byte) string {
	var p errorPayload
	if err := json.Unmarshal(body, &p); err == nil {
		if msg := p.text(); msg != "" {
			return msg
		}
	}
	s := strings.TrimSpace(string(body))
	if render.LooksLikeHTML(s) {
		s = strings.ReplaceAll(render.HTMLToText(s, 0), "\n", ": ")
	}
	if s == "" {
		return http.StatusText(status)
	}
	return s
}
