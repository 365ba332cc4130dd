package login

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
	fieldLogin = iota
	fieldPassword
)

// Model is the login form view.
type Model struct {
	form  form.Model
	ctx   context.Context
	store *auth.Store
}

// New creates a login form bound to the store provided in ctx. It panics if
// ctx carries no store.
func New(ctx context.Context) Model {
	return Model{
		form: form.New("Login",
			hintKey.Render("Ctrl+R")+" to create an account",
			"Logging in...",
			form.NewField("Username or Email", "username or email", false),
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

// Submitting reports whether a login is in flight.
func (m Model) Submitting() bool {
	return m.form.Submitting()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Default.Register):
			return m, func() tea.Msg { return messages.OpenRegisterMsg{} }
		case key.Matches(msg, keys.Default.Submit):
			if m.form.Submitting() {
				return m, nil
			}
			m.form.Begin()
			return m, m.submit(auth.Credentials{
				Login:    m.form.Value(fieldLogin),
				Password: m.form.Value(fieldPassword),
			})
		}

	case messages.LoginResultMsg:
		m.form.Finish(msg.Err)
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submit(creds auth.Credentials) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		if _, err := store.Login(ctx, creds); err != nil {
			return messages.LoginResultMsg{Err: err}
		}
		user, _ := store.User()
		return messages.LoginResultMsg{Username: user.Username}
	}
}

// View renders the login form.
func (m Model) View() string {
	return m.form.View()
}
