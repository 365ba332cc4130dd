package statusbar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#555555")).
				Foreground(lipgloss.Color("#CCCCCC")).
				Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)

// Tab is one entry of the route strip.
type Tab struct {
	Label string
	Path  string
}

// Model is the status bar at the bottom of the screen.
type Model struct {
	width      int
	tabs       []Tab
	activePath string
	username   string
	ready      bool
	backend    string
	statusText string
	isError    bool
}

// New creates a status bar showing tabs and the backend address.
func New(tabs []Tab, backend string) Model {
	return Model{tabs: tabs, backend: backend}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetActive highlights the tab for path.
func (m *Model) SetActive(path string) {
	m.activePath = path
}

// SetUser sets the signed-in username; empty means signed out. ready is false
// while the saved session is still being checked.
func (m *Model) SetUser(username string, ready bool) {
	m.username = username
	m.ready = ready
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.isError = isError
}

// Update is a no-op for the status bar.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the status bar.
func (m Model) View() string {
	var tabsStr string
	for _, t := range m.tabs {
		if t.Path == m.activePath {
			tabsStr += activeTabStyle.Render(t.Label)
		} else {
			tabsStr += inactiveTabStyle.Render(t.Label)
		}
	}

	var right string
	if m.statusText != "" {
		if m.isError {
			right += errorTextStyle.Render(m.statusText)
		} else {
			right += statusTextStyle.Render(m.statusText)
		}
	}
	if m.backend != "" {
		right += statusTextStyle.Render(m.backend)
	}
	switch {
	case !m.ready:
		right += statusTextStyle.Render("checking session...")
	case m.username != "":
		right += userStyle.Render(m.username)
	default:
		right += statusTextStyle.Render("signed out")
	}

	gap := m.width - lipgloss.Width(tabsStr) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, tabsStr, mid, right)
}
