package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/omsctl/internal/router"
	"github.com/felixgeelhaar/omsctl/internal/views"
)

// Menu actions that are not routes
const (
	ActionLogout = "logout"
	ActionQuit   = "quit"
)

// MenuItem is one entry of the navigation menu
type MenuItem struct {
	Action string
	Title  string
}

// Loader renders the screen body shown above the menu. It runs off the UI
// goroutine.
type Loader func() (string, views.Message)

// LoadedMsg carries a finished Loader result
type LoadedMsg struct {
	Body    string
	Message views.Message
}

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// MenuModel is the interactive home screen: the navigation bar title, the
// dashboard body and a menu of the routes the role may open
type MenuModel struct {
	title   string
	items   []MenuItem
	cursor  int
	load    Loader
	loading bool
	body    string
	message views.Message
	notice  views.Message
	choice  string

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  Styles
}

// NewMenuModel builds the menu from the routes the navigation bar offers.
// notice is the outcome of the previous screen, shown once.
func NewMenuModel(title string, links []router.Route, load Loader, notice views.Message) MenuModel {
	items := make([]MenuItem, 0, len(links)+2)
	for _, l := range links {
		items = append(items, MenuItem{Action: l.Path, Title: l.Title})
	}
	items = append(items,
		MenuItem{Action: ActionLogout, Title: "Log Out"},
		MenuItem{Action: ActionQuit, Title: "Quit"},
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return MenuModel{
		title:   title,
		items:   items,
		load:    load,
		loading: load != nil,
		notice:  notice,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: sp,
		styles:  DefaultStyles(),
	}
}

func (m MenuModel) loadCmd() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		body, msg := load()
		return LoadedMsg{Body: body, Message: msg}
	}
}

// Init starts loading the body
func (m MenuModel) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// Update handles key presses and load results
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.body = msg.Body
		m.message = msg.Message
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.choice = ActionQuit
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.choice = m.items[m.cursor].Action
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.load != nil && !m.loading {
				m.loading = true
				m.notice = views.Message{}
				return m, tea.Batch(m.spinner.Tick, m.loadCmd())
			}
		}
	}
	return m, nil
}

// View renders the screen
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Highlighted.Render(m.title))
	b.WriteString("\n\n")

	if !m.notice.IsZero() {
		b.WriteString(m.styles.Message(m.notice))
		b.WriteString("\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading...")
		b.WriteString("\n\n")
	case m.body != "":
		b.WriteString(m.body)
		b.WriteString("\n\n")
	}
	if !m.loading && !m.message.IsZero() {
		b.WriteString(m.styles.Message(m.message))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		if i == m.cursor {
			b.WriteString(m.styles.Key.Render("> " + item.Title))
		} else {
			b.WriteString("  " + item.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// Choice is the selected action once the program has exited: a route path,
// ActionLogout or ActionQuit
func (m MenuModel) Choice() string {
	return m.choice
}

// RunMenu shows the menu until the user picks an entry
func RunMenu(m MenuModel, opts ...tea.ProgramOption) (string, error) {
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return "", err
	}
	if mm, ok := final.(MenuModel); ok {
		return mm.Choice(), nil
	}
	return ActionQuit, nil
}
