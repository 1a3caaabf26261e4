package rumination

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jasonroy7dct/site/internal/journal"
)

var (
	colorText  = lipgloss.Color("252")
	colorMuted = lipgloss.Color("241")
	colorWarn  = lipgloss.Color("214")
	colorError = lipgloss.Color("196")
	colorOK    = lipgloss.Color("78")
)

// styles are derived from the saved theme.
type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	pinned   lipgloss.Style
	pane     lipgloss.Style
	focused  lipgloss.Style
	chip     lipgloss.Style
	status   map[statusKind]lipgloss.Style
}

func newStyles(t journal.Theme) styles {
	primary := lipgloss.Color(t.Primary)
	primary2 := lipgloss.Color(t.Primary2)
	accent := lipgloss.Color(t.Accent)

	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(primary).Padding(0, 1),
		header: lipgloss.NewStyle().Bold(true).Foreground(accent),
		label:  lipgloss.NewStyle().Foreground(accent),
		text:   lipgloss.NewStyle().Foreground(colorText),
		muted:  lipgloss.NewStyle().Foreground(colorMuted),
		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(primary2),
		pinned: lipgloss.NewStyle().Foreground(accent).Bold(true),
		pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1),
		focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		chip: lipgloss.NewStyle().Foreground(accent).Padding(0, 1),
		status: map[statusKind]lipgloss.Style{
			statusInfo:  lipgloss.NewStyle().Foreground(colorText),
			statusOK:    lipgloss.NewStyle().Foreground(colorOK),
			statusWarn:  lipgloss.NewStyle().Foreground(colorWarn),
			statusError: lipgloss.NewStyle().Foreground(colorError).Bold(true),
		},
	}
}
