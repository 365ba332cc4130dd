package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/authdash/internal/auth"
	"github.com/fragmede/authdash/internal/config"
	"github.com/fragmede/authdash/internal/ui/dashboard"
	"github.com/fragmede/authdash/internal/ui/keys"
	"github.com/fragmede/authdash/internal/ui/login"
	"github.com/fragmede/authdash/internal/ui/messages"
	"github.com/fragmede/authdash/internal/ui/register"
	"github.com/fragmede/authdash/internal/ui/statusbar"
)

// Route identifies the active view.
type Route int

const (
	RouteLogin Route = iota
	RouteRegister
	RouteDashboard
)

var routePaths = map[Route]string{
	RouteLogin:     "/login",
	RouteRegister:  "/register",
	RouteDashboard: "/dashboard",
}

// Path returns the route's URL-style path.
func (r Route) Path() string {
	return routePaths[r]
}

func (r Route) String() string {
	return r.Path()
}

// ParseRoute maps a path such as "/login" to its route.
func ParseRoute(path string) (Route, error) {
	for r, p := range routePaths {
		if p == path || p[1:] == path {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown route %q", path)
}

var tabs = []statusbar.Tab{
	{Label: "Login", Path: RouteLogin.Path()},
	{Label: "Register", Path: RouteRegister.Path()},
	{Label: "Dashboard", Path: RouteDashboard.Path()},
}

// App is the root Bubble Tea model.
type App struct {
	// View state
	route   Route
	history []Route
	ready   bool

	// start is the route requested on the command line, if any.
	start    Route
	hasStart bool

	// Child models
	loginForm    login.Model
	registerForm register.Model
	dashboard    dashboard.Model
	statusBar    statusbar.Model

	// Shared state
	ctx         context.Context
	store       *auth.Store
	session     auth.State
	unsubscribe func()

	// Dimensions
	width  int
	height int
}

// NewApp creates the root application model. ctx must carry the session
// store (see auth.Provide); NewApp panics otherwise.
func NewApp(ctx context.Context, cfg config.Config) *App {
	return &App{
		route:     RouteLogin,
		statusBar: statusbar.New(tabs, cfg.BackendURL),
		ctx:       ctx,
		store:     auth.MustUse(ctx),
	}
}

// StartAt makes the app open r once the saved session has been checked,
// instead of picking a route from the session state. There is no guard: the
// dashboard can be opened while signed out.
func (a *App) StartAt(r Route) {
	a.start = r
	a.hasStart = true
}

// Route returns the active route.
func (a *App) Route() Route {
	return a.route
}

// Ready reports whether the saved session has been checked.
func (a *App) Ready() bool {
	return a.ready
}

// SetProgram forwards every session change to p.
func (a *App) SetProgram(p *tea.Program) {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	a.unsubscribe = a.store.Subscribe(func(st auth.State) {
		p.Send(messages.SessionChangedMsg{State: st})
	})
}

// Close stops forwarding session changes.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Init restores the saved session.
func (a *App) Init() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		store.Restore()
		return messages.SessionChangedMsg{State: store.State()}
	}
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.statusBar.SetSize(msg.Width)
		a.resizeActive()
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Default.ForceQuit) {
			return a, a.quit()
		}
		if !a.ready {
			if key.Matches(msg, keys.Default.Quit) {
				return a, a.quit()
			}
			return a, nil
		}
		if key.Matches(msg, keys.Default.Back) {
			return a, a.goBack()
		}
		if a.route == RouteDashboard && key.Matches(msg, keys.Default.Quit) {
			return a, a.quit()
		}
		if a.route == RouteDashboard {
			switch {
			case key.Matches(msg, keys.Default.Login):
				return a, a.navigate(RouteLogin)
			case key.Matches(msg, keys.Default.Register):
				return a, a.navigate(RouteRegister)
			}
		}

	// View transitions.
	case messages.OpenLoginMsg:
		return a, a.navigate(RouteLogin)

	case messages.OpenRegisterMsg:
		return a, a.navigate(RouteRegister)

	case messages.SessionChangedMsg:
		a.session = msg.State
		username := ""
		if msg.State.User != nil {
			username = msg.State.User.Username
		}
		a.statusBar.SetUser(username, msg.State.Ready)
		if !a.ready && msg.State.Ready {
			a.ready = true
			return a, a.show(a.initialRoute())
		}

	case messages.LoginResultMsg:
		if msg.Err == nil {
			a.statusBar.SetStatus("Logged in as "+msg.Username, false)
			return a, a.navigate(RouteDashboard)
		}
		a.statusBar.SetStatus("Login failed", true)

	case messages.RegisterResultMsg:
		if msg.Err == nil {
			a.statusBar.SetStatus("Account created for "+msg.Username, false)
			return a, a.navigate(RouteDashboard)
		}
		a.statusBar.SetStatus("Registration failed", true)

	case messages.LogoutDoneMsg:
		a.statusBar.SetStatus("Logged out", false)
		a.history = nil
		return a, a.show(RouteLogin)
	}

	if !a.ready {
		return a, nil
	}

	// Route to active view.
	var cmd tea.Cmd
	switch a.route {
	case RouteLogin:
		a.loginForm, cmd = a.loginForm.Update(msg)
		cmds = append(cmds, cmd)
	case RouteRegister:
		a.registerForm, cmd = a.registerForm.Update(msg)
		cmds = append(cmds, cmd)
	case RouteDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
		cmds = append(cmds, cmd)
	}

	a.statusBar, cmd = a.statusBar.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// View renders the application.
func (a *App) View() string {
	contentHeight := a.height - 1

	if !a.ready {
		content := lipgloss.Place(a.width, contentHeight, lipgloss.Center, lipgloss.Center,
			TitleStyle.Render("Checking saved session..."))
		return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
	}

	var content string
	switch a.route {
	case RouteLogin:
		content = a.loginForm.View()
	case RouteRegister:
		content = a.registerForm.View()
	case RouteDashboard:
		content = a.dashboard.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

func (a *App) initialRoute() Route {
	if a.hasStart {
		return a.start
	}
	if a.session.Authenticated() {
		return RouteDashboard
	}
	return RouteLogin
}

func (a *App) navigate(r Route) tea.Cmd {
	if r == a.route {
		return nil
	}
	a.history = append(a.history, a.route)
	return a.show(r)
}

// show builds a fresh view for r and makes it active.
func (a *App) show(r Route) tea.Cmd {
	a.route = r
	switch r {
	case RouteLogin:
		a.loginForm = login.New(a.ctx)
	case RouteRegister:
		a.registerForm = register.New(a.ctx)
	case RouteDashboard:
		a.dashboard = dashboard.New(a.ctx)
	}
	a.resizeActive()
	a.statusBar.SetActive(r.Path())
	return nil
}

func (a *App) goBack() tea.Cmd {
	if len(a.history) == 0 {
		return nil
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	return a.show(prev)
}

func (a *App) resizeActive() {
	contentHeight := a.height - 1 // Reserve 1 line for status bar.
	switch a.route {
	case RouteLogin:
		a.loginForm.SetSize(a.width, contentHeight)
	case RouteRegister:
		a.registerForm.SetSize(a.width, contentHeight)
	case RouteDashboard:
		a.dashboard.SetSize(a.width, contentHeight)
	}
}

func (a *App) quit() tea.Cmd {
	a.Close()
	return tea.Quit
}
