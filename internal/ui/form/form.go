// Package form is the labelled text-input form shared by the login and
// registration views.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/authdash/internal/render"
	"github.com/fragmede/authdash/internal/ui/keys"
)

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).
			Padding(1, 0)
)

const inputWidth = 30

// Field is one labelled input.
type Field struct {
	Label string
	Input textinput.Model
}

// NewField creates a field. Secret fields echo as bullets.
func NewField(label, placeholder string, secret bool) Field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = inputWidth
	if secret {
		in.EchoMode = textinput.EchoPassword
	}
	return Field{Label: label, Input: in}
}

// Model is a vertical form with one focused field at a time.
type Model struct {
	title      string
	hint       string
	busyText   string
	fields     []Field
	focusIndex int
	err        string
	submitting bool
	width      int
	height     int
}

// New creates a form focused on its first field.
func New(title, hint, busyText string, fields ...Field) Model {
	if len(fields) > 0 {
		fields[0].Input.Focus()
	}
	return Model{
		title:    title,
		hint:     hint,
		busyText: busyText,
		fields:   fields,
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Value returns the current text of field i.
func (m Model) Value(i int) string {
	if i < 0 || i >= len(m.fields) {
		return ""
	}
	return m.fields[i].Input.Value()
}

// Submitting reports whether a submission is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// Begin marks a submission as in flight and clears the last error.
func (m *Model) Begin() {
	m.submitting = true
	m.err = ""
}

// Finish ends a submission, showing err if it is non-nil.
func (m *Model) Finish(err error) {
	m.submitting = false
	if err != nil {
		m.err = err.Error()
	}
}

// Err returns the error currently shown.
func (m Model) Err() string {
	return m.err
}

// Focused returns the index of the focused field.
func (m Model) Focused() int {
	return m.focusIndex
}

// Update moves focus between fields and forwards everything else to the
// focused input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && len(m.fields) > 0 {
		switch {
		case key.Matches(msg, keys.Default.NextField):
			m.setFocus((m.focusIndex + 1) % len(m.fields))
			return m, nil
		case key.Matches(msg, keys.Default.PrevField):
			m.setFocus((m.focusIndex - 1 + len(m.fields)) % len(m.fields))
			return m, nil
		}
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focusIndex].Input, cmd = m.fields[m.focusIndex].Input.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.fields[m.focusIndex].Input.Blur()
	m.focusIndex = i
	m.fields[m.focusIndex].Input.Focus()
}

// View renders the form centered in its viewport.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n\n")
	for _, f := range m.fields {
		sb.WriteString(labelStyle.Render(f.Label + ":"))
		sb.WriteString("\n")
		sb.WriteString(f.Input.View())
		sb.WriteString("\n\n")
	}

	if m.err != "" {
		width := m.width - 4
		if width > 60 || width <= 0 {
			width = 60
		}
		sb.WriteString(errorStyle.Render(render.Wrap(m.err, width)))
		sb.WriteString("\n\n")
	}

	if m.submitting {
		sb.WriteString(m.busyText)
	} else {
		sb.WriteString(focusedStyle.Render("Enter") + " to submit, " + m.hint)
	}

	content := sb.String()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
