package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Panel with subtle border
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	// Status indicators
	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusRecording = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff00ff"))
)

// GradientText colours each rune of text along g, blended over bg.
func GradientText(text string, g Gradient, bg RGBA) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var result strings.Builder
	for i, r := range runes {
		c := g.At(i, max(len(runes)-1, 1))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex(bg)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

// GradientBar renders the whole gradient as a strip of width blocks, the
// terminal version of the colour editor preview.
func GradientBar(g Gradient, width int, bg RGBA) string {
	var b strings.Builder
	for _, c := range g.Preview(width) {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex(bg))).Render("█"))
	}
	return b.String()
}

// ProgressBar renders a fill bar for percent in [0, 1].
func ProgressBar(percent float64, width int) string {
	filled := max(0, min(width, int(percent*float64(width))))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return MetricValue.Render(bar)
}
