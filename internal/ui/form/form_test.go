package form

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func newTestForm() Model {
	return New("Login", "hint", "Working...",
		NewField("User", "user", false),
		NewField("Password", "password", true),
	)
}

func TestFocusCycles(t *testing.T) {
	m := newTestForm()
	assert.Equal(t, 0, m.Focused())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.Focused())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.Focused())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.Focused())
}

func TestTypingGoesToFocusedField(t *testing.T) {
	m := newTestForm()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ann")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pw")})

	assert.Equal(t, "ann", m.Value(0))
	assert.Equal(t, "pw", m.Value(1))
	assert.Equal(t, "", m.Value(5))
	assert.NotContains(t, m.View(), "pw")
}

func TestSubmissionLifecycle(t *testing.T) {
	m := newTestForm()
	m.Finish(errors.New("earlier failure"))
	assert.Equal(t, "earlier failure", m.Err())

	m.Begin()
	assert.True(t, m.Submitting())
	assert.Empty(t, m.Err())
	assert.Contains(t, m.View(), "Working...")

	m.Finish(errors.New("Invalid credentials"))
	assert.False(t, m.Submitting())
	assert.Equal(t, "Invalid credentials", m.Err())
	assert.Contains(t, m.View(), "Invalid credentials")

	m.Begin()
	m.Finish(nil)
	assert.Empty(t, m.Err())
}
