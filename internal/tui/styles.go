package tui

import "github.com/charmbracelet/lipgloss"

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#664422")).
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff8800"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#886655"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusError = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#998877")).
			Width(18)

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffcc66")).
			Bold(true)

	ActiveMetric = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5500")).
			Bold(true).
			Width(18)

	Graph = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ff6633")).
		Padding(1, 0)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")).
		Italic(true)
)

// Summary renders a titled block of label/value rows.
func Summary(title string, labels []string, values []string) string {
	rows := make([]string, 0, len(labels)+1)
	rows = append(rows, Title.Render(title))
	for i, l := range labels {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, MetricLabel.Render(l), MetricValue.Render(values[i])))
	}
	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
