package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/helmsman-ui/helmsman/internal/config"
)

// routesChangedMsg is sent when any router's stack changes, so the view
// re-renders outside of key handling (deeplinks, programmatic
// navigation).
type routesChangedMsg struct{}

// Model is the Bubbletea model for the demo mail client.
type Model struct {
	tree    *Tree
	styles  theme
	cfg     *config.Config
	compose textinput.Model

	width    int
	height   int
	quitting bool
}

// NewModel creates the model for an already constructed tree.
func NewModel(tree *Tree, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "To: someone@example.com"
	ti.CharLimit = 120
	ti.Width = 42

	return Model{
		tree:    tree,
		styles:  newTheme(cfg.TUI.Theme),
		cfg:     cfg,
		compose: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case routesChangedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKeypress(msg)
	}

	return m, nil
}

func (m Model) handleKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.tree.ClearStatus()

	switch msg.String() {
	case "ctrl+c", "q":
		if m.tree.ComposeVisible() && msg.String() == "q" {
			break // q is text while composing
		}
		m.quitting = true
		return m, tea.Quit
	}

	if m.tree.ComposeVisible() {
		return m.handleComposeKeypress(msg)
	}

	if m.tree.HelpVisible() {
		switch msg.String() {
		case "?", "esc":
			_ = m.tree.ToggleHelp()
		}
		return m, nil
	}

	if msg.String() == "?" {
		_ = m.tree.ToggleHelp()
		return m, nil
	}

	if !m.tree.LoggedIn() {
		return m.handleLoginKeypress(msg)
	}
	return m.handleShellKeypress(msg)
}

func (m Model) handleComposeKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		// Sending and cancelling both leave the compose modal.
		m.tree.Pop()
		m.compose.SetValue("")
		m.compose.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m Model) handleLoginKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if err := m.tree.ShowMain(); err != nil {
			m.tree.reporter.Report(err)
		}
	case "r":
		m.tree.Dispatch(RouteRegister)
	case "esc":
		m.tree.Pop()
	}
	return m, nil
}

func (m Model) handleShellKeypress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		m.tree.Dispatch(RouteMailTab)
	case "2":
		m.tree.Dispatch(RouteContactsTab)
	case "3":
		m.tree.Dispatch(RouteSettingsTab)

	case "enter":
		switch m.tree.SelectedTab() {
		case 0:
			m.tree.Dispatch(MessageRoute(inboxMessages[0].ID))
		case 1:
			m.tree.Dispatch(ContactRoute("ada"))
		case 2:
			m.tree.Dispatch(RouteProfile)
		}

	case "c":
		if m.tree.Dispatch(RouteCompose) {
			m.compose.Focus()
			return m, textinput.Blink
		}

	case "s":
		// Deep jump: the settings coordinator reconstructs the
		// intermediate path.
		m.tree.Dispatch(RouteSettingsTab)
		m.tree.Dispatch(RouteSecurity)

	case "L":
		m.tree.Dispatch(RouteLogout)

	case "esc":
		m.tree.Pop()
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Helmsman Mail"))
	b.WriteString("\n")

	if m.tree.LoggedIn() {
		b.WriteString(m.renderTabs())
		b.WriteString("\n")
	}

	if m.cfg.TUI.ShowBreadcrumbs {
		b.WriteString(m.styles.Breadcrumb.Render(strings.Join(m.tree.Breadcrumbs(), " > ")))
		b.WriteString("\n\n")
	}

	screen := m.tree.ContentScreen()
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(screen.Title),
		screen.Body,
	)
	b.WriteString(m.styles.Content.Width(min(m.width-4, 76)).Render(content))
	b.WriteString("\n")

	if s, ok := m.tree.ComposeScreen(); ok {
		overlay := lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Title.Render(s.Title),
			m.compose.View(),
			"",
			m.styles.Breadcrumb.Render("enter send, esc discard"),
		)
		b.WriteString(m.styles.Overlay.Render(overlay))
		b.WriteString("\n")
	}

	if s, ok := m.tree.HelpScreen(); ok {
		b.WriteString(m.styles.Overlay.Render(
			lipgloss.JoinVertical(lipgloss.Left, m.styles.Title.Render(s.Title), s.Body),
		))
		b.WriteString("\n")
	}

	if status := m.tree.Status(); status != "" {
		b.WriteString(m.styles.ErrorMsg.Render(status))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderTabs() string {
	labels := []string{"1 Mail", "2 Contacts", "3 Settings"}
	selected := m.tree.SelectedTab()

	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == selected {
			parts[i] = m.styles.TabActive.Render(label)
		} else {
			parts[i] = m.styles.TabInactive.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderHelp() string {
	key := m.styles.HelpKey
	if !m.tree.LoggedIn() {
		return m.styles.HelpBar.Render(
			key.Render("enter") + " sign in  " +
				key.Render("r") + " register  " +
				key.Render("?") + " help  " +
				key.Render("q") + " quit",
		)
	}
	if m.cfg.TUI.CompactHelp {
		return m.styles.HelpBar.Render("1/2/3 enter c s esc L ? q")
	}
	return m.styles.HelpBar.Render(
		key.Render("1/2/3") + " tabs  " +
			key.Render("enter") + " open  " +
			key.Render("c") + " compose  " +
			key.Render("esc") + " back  " +
			key.Render("L") + " logout  " +
			key.Render("?") + " help  " +
			key.Render("q") + " quit",
	)
}
