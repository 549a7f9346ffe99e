package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"
)

// Selection describes one full-screen list.
type Selection struct {
	Title   string
	Heading string
	Items   []string
	// Status lines are rendered between the heading and the items.
	Status []string
	Footer string

	AllowQuit    bool
	AllowRefresh bool
}

// Action is how the user left a Selector.
type Action int

const (
	ActionConfirm Action = iota
	ActionQuit
	ActionRefresh
	ActionCancel
)

// Choice is the outcome of a Selection. Index is meaningful for ActionConfirm.
type Choice struct {
	Index  int
	Action Action
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Cancel  key.Binding
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Confirm, km.Refresh, km.Quit}
}

func (km keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{km.ShortHelp()}
}

var _ help.KeyMap = keyMap{}

func newKeyMap(sel Selection) keyMap {
	km := keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
	km.Quit.SetEnabled(sel.AllowQuit)
	km.Refresh.SetEnabled(sel.AllowRefresh)
	return km
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	activeStyle  = lipgloss.NewStyle().Reverse(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Selector is a bubbletea model for a vertical list with one highlighted
// entry. The highlight never leaves [0, len(Items)-1].
type Selector struct {
	selection Selection
	cursor    int
	choice    Choice
	done      bool
	keys      keyMap
	help      help.Model
	width     int
}

// NewSelector returns a Selector with the first item highlighted.
func NewSelector(sel Selection) *Selector {
	return &Selector{
		selection: sel,
		keys:      newKeyMap(sel),
		help:      help.New(),
	}
}

// Cursor returns the highlighted index.
func (s *Selector) Cursor() int {
	return s.cursor
}

// Choice returns the outcome once the selector has finished.
func (s *Selector) Choice() (Choice, bool) {
	return s.choice, s.done
}

func (s *Selector) Init() tea.Cmd {
	return nil
}

func (s *Selector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Up):
			s.moveUp()
		case key.Matches(msg, s.keys.Down):
			s.moveDown()
		case key.Matches(msg, s.keys.Confirm):
			if len(s.selection.Items) > 0 {
				return s, s.finish(ActionConfirm)
			}
		case key.Matches(msg, s.keys.Quit):
			return s, s.finish(ActionQuit)
		case key.Matches(msg, s.keys.Refresh):
			return s, s.finish(ActionRefresh)
		case key.Matches(msg, s.keys.Cancel):
			return s, s.finish(ActionCancel)
		}
	}
	return s, nil
}

func (s *Selector) moveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *Selector) moveDown() {
	if s.cursor < len(s.selection.Items)-1 {
		s.cursor++
	}
}

func (s *Selector) finish(action Action) tea.Cmd {
	s.choice = Choice{Index: s.cursor, Action: action}
	s.done = true
	return tea.Quit
}

func (s *Selector) View() string {
	if s.done {
		return ""
	}

	var b strings.Builder

	if s.selection.Title != "" {
		b.WriteString(titleStyle.Render(s.selection.Title))
		b.WriteString("\n\n")
	}
	if s.selection.Heading != "" {
		b.WriteString(headingStyle.Render(s.selection.Heading))
		b.WriteString("\n")
	}
	for _, line := range s.selection.Status {
		b.WriteString(statusStyle.Render(line))
		b.WriteString("\n")
	}

	for i, item := range s.selection.Items {
		label := s.fit(item)
		if i == s.cursor {
			label = activeStyle.Render(label)
		}
		b.WriteString("  ")
		b.WriteString(label)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.selection.Footer != "" {
		b.WriteString(footerStyle.Render(s.selection.Footer))
		b.WriteString("\n")
	}
	b.WriteString(s.help.View(s.keys))

	return b.String()
}

// fit truncates labels wider than the terminal; DFU descriptions are long.
func (s *Selector) fit(label string) string {
	if s.width <= 4 {
		return label
	}
	return runewidth.Truncate(label, s.width-4, "…")
}
