package tui

import "github.com/charmbracelet/lipgloss"

// palette holds the colors a theme supplies.
type palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color
	Text    lipgloss.Color
	Surface lipgloss.Color
	Border  lipgloss.Color
}

var palettes = map[string]palette{
	"default": {
		Primary: lipgloss.Color("#A78BFA"),
		Accent:  lipgloss.Color("#10B981"),
		Error:   lipgloss.Color("#F87171"),
		Muted:   lipgloss.Color("#9CA3AF"),
		Text:    lipgloss.Color("#F9FAFB"),
		Surface: lipgloss.Color("#1F2937"),
		Border:  lipgloss.Color("#6B7280"),
	},
	"monokai": {
		Primary: lipgloss.Color("#AE81FF"),
		Accent:  lipgloss.Color("#A6E22E"),
		Error:   lipgloss.Color("#F92672"),
		Muted:   lipgloss.Color("#75715E"),
		Text:    lipgloss.Color("#F8F8F2"),
		Surface: lipgloss.Color("#272822"),
		Border:  lipgloss.Color("#75715E"),
	},
	"dracula": {
		Primary: lipgloss.Color("#BD93F9"),
		Accent:  lipgloss.Color("#50FA7B"),
		Error:   lipgloss.Color("#FF5555"),
		Muted:   lipgloss.Color("#6272A4"),
		Text:    lipgloss.Color("#F8F8F2"),
		Surface: lipgloss.Color("#282A36"),
		Border:  lipgloss.Color("#6272A4"),
	},
	"nord": {
		Primary: lipgloss.Color("#81A1C1"),
		Accent:  lipgloss.Color("#A3BE8C"),
		Error:   lipgloss.Color("#BF616A"),
		Muted:   lipgloss.Color("#4C566A"),
		Text:    lipgloss.Color("#ECEFF4"),
		Surface: lipgloss.Color("#2E3440"),
		Border:  lipgloss.Color("#4C566A"),
	},
}

// theme bundles the styles the model renders with.
type theme struct {
	Title       lipgloss.Style
	Breadcrumb  lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Content     lipgloss.Style
	Overlay     lipgloss.Style
	HelpBar     lipgloss.Style
	HelpKey     lipgloss.Style
	ErrorMsg    lipgloss.Style
}

// newTheme builds a theme from the named palette, falling back to the
// default palette for unknown names.
func newTheme(name string) theme {
	p, ok := palettes[name]
	if !ok {
		p = palettes["default"]
	}

	return theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary).
			MarginBottom(1),
		Breadcrumb: lipgloss.NewStyle().
			Foreground(p.Muted),
		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Text).
			Background(p.Primary).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.Muted).
			Padding(0, 2),
		Content: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Primary).
			Padding(1, 2),
		HelpBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			MarginTop(1),
		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
		ErrorMsg: lipgloss.NewStyle().
			Foreground(p.Error),
	}
}
