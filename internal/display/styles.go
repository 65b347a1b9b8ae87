package display

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header  lipgloss.Style
	redCard lipgloss.Style
	black   lipgloss.Style
	hidden  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	rule    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		redCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		black: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true),
		hidden: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		label: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		value: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		failure: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		rule: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
