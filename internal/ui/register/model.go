package register

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/authdash/internal/auth"
	"github.com/fragmede/authdash/internal/ui/form"
	"github.com/fragmede/authdash/internal/ui/keys"
	"github.com/fragmede/authdash/internal/ui/messages"
)

var hintKey = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

// Model is the account creation view.
type Model struct {
	form  form.Model
	ctx   context.Context
	store *auth.Store
}

// New creates a registration form bound to the store provided in ctx. It
// panics if ctx carries no store.
func New(ctx context.Context) Model {
	return Model{
		form: form.New("Create New Account",
			hintKey.Render("Ctrl+L")+" to log in instead",
			"Creating account...",
			form.NewField("Username", "username", false),
			form.NewField("Email", "email", false),
			form.NewField("Password", "password", true),
		),
		ctx:   ctx,
		store: auth.MustUse(ctx),
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.form.SetSize(w, h)
}

// Err returns the error currently shown by the form.
func (m Model) Err() string {
	return m.form.Err()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Default.Login):
			return m, func() tea.Msg { return messages.OpenLoginMsg{} }
		case key.Matches(msg, keys.Default.Submit):
			if m.form.Submitting() {
				return m, nil
			}
			m.form.Begin()
			return m, m.submit(auth.Profile{
				Username: m.form.Value(fieldUsername),
				Email:    m.form.Value(fieldEmail),
				Password: m.form.Value(fieldPassword),
			})
		}

	case messages.RegisterResultMsg:
		m.form.Finish(msg.Err)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submit(profile auth.Profile) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		if _, err := store.Register(ctx, profile); err != nil {
			return messages.RegisterResultMsg{Err: err}
		}
		return messages.RegisterResultMsg{Username: profile.Username}
	}
}

// View renders the registration form.
func (m Model) View() string {
	return m.form.View()
}
