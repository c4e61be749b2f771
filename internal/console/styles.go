package console

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorPurple = lipgloss.Color("#bd93f9")
	colorDim    = lipgloss.Color("#6272a4")
	colorOrange = lipgloss.Color("#ffb86c")
)

// Style definitions.
var (
	sectionStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	toolStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	okStyle = lipgloss.NewStyle().
		Foreground(colorGreen)

	failStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	skipStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	countStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	unparsableStyle = lipgloss.NewStyle().
			Foreground(colorOrange).
			Bold(true)

	degradedStyle = lipgloss.NewStyle().
			Foreground(colorOrange)

	doneStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)
)
