package dashboard

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/authdash/internal/auth"
	"github.com/fragmede/authdash/internal/ui/keys"
	"github.com/fragmede/authdash/internal/ui/messages"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).Padding(1, 0)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Bold(true)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Padding(1, 0)
)

// Model is the authenticated landing view.
type Model struct {
	ctx        context.Context
	store      *auth.Store
	loggingOut bool
	now        func() time.Time
	width      int
	height     int
}

// New creates the dashboard bound to the store provided in ctx. It panics if
// ctx carries no store.
func New(ctx context.Context) Model {
	return Model{
		ctx:   ctx,
		store: auth.MustUse(ctx),
		now:   time.Now,
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.Default.Logout) && !m.loggingOut {
			m.loggingOut = true
			ctx, store := m.ctx, m.store
			return m, func() tea.Msg {
				store.Logout(ctx)
				return messages.LogoutDoneMsg{}
			}
		}

	case messages.LogoutDoneMsg:
		m.loggingOut = false
	}
	return m, nil
}

// View renders the signed-in user's profile and token details.
func (m Model) View() string {
	st := m.store.State()
	if !st.Authenticated() {
		var sb strings.Builder
		sb.WriteString(titleStyle.Render("You are not signed in."))
		sb.WriteString("\n")
		sb.WriteString(hintStyle.Render("ctrl+l to log in, ctrl+r to create an account"))
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Welcome " + st.User.Username + "! You are authenticated!"))
	sb.WriteString("\n")
	sb.WriteString(row("Email", st.User.Email))

	extras := make([]string, 0, len(st.User.Extra))
	for k := range st.User.Extra {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		sb.WriteString(row(k, string(st.User.Extra[k])))
	}

	if info, err := auth.InspectToken(st.Token); err == nil {
		sb.WriteString("\n")
		if info.Subject != "" {
			sb.WriteString(row("Subject", info.Subject))
		}
		if !info.IssuedAt.IsZero() {
			sb.WriteString(row("Issued", info.IssuedAt.Local().Format(time.RFC1123)))
		}
		if !info.ExpiresAt.IsZero() {
			sb.WriteString(row("Expires", info.ExpiresAt.Local().Format(time.RFC1123)+" ("+relative(info.ExpiresAt, m.now())+")"))
		}
	}

	if m.loggingOut {
		sb.WriteString(hintStyle.Render("Logging out..."))
	} else {
		sb.WriteString(hintStyle.Render("x to log out, q to quit"))
	}
	return sb.String()
}

func row(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value) + "\n"
}

func relative(t, now time.Time) string {
	d := t.Sub(now).Round(time.Minute)
	if d < 0 {
		return "expired " + (-d).String() + " ago"
	}
	return "in " + d.String()
}
