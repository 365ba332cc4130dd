package keys

import "github.com/charmbracelet/bubbles/key"

// Map holds the key bindings shared by every view.
type Map struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding
	Login     key.Binding
	Register  key.Binding
	Logout    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
}

var Default = Map{
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Login:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "login")),
	Register:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "register")),
	Logout:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "logout")),
	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
}
