package viz

import "github.com/charmbracelet/lipgloss"

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	HeaderCell = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)

	Cell = lipgloss.NewStyle().
		Padding(0, 1).
		Align(lipgloss.Right)

	Positive = Cell.Foreground(lipgloss.Color("#ff8888"))
	Negative = Cell.Foreground(lipgloss.Color("#88aaff"))
	Zero     = Cell.Foreground(lipgloss.Color("#555566"))

	Good = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	Bad  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
)
