package tui

import "github.com/charmbracelet/bubbles/key"

// dashboardKeys are the dashboard hotkeys
type dashboardKeys struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Focus      key.Binding
	Toggle     key.Binding
	Completed  key.Binding
	Todo       key.Binding
	InProgress key.Binding
	Reminder   key.Binding
	HabitDone  key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev task")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next task")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev item")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next item")),
		Focus:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "tasks/habits")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle sub-task")),
		Completed:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete task")),
		Todo:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "reset to todo")),
		InProgress: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "in progress")),
		Reminder:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reminder")),
		HabitDone:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark habit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Toggle, k.Focus, k.HabitDone, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.Completed, k.Todo, k.InProgress, k.Reminder},
		{k.Focus, k.HabitDone, k.Help, k.Quit},
	}
}
