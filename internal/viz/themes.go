package viz

import "github.com/charmbracelet/lipgloss"

// Theme pairs a trail gradient with the colours of the surrounding UI.
type Theme struct {
	Name       string
	Trail      Gradient
	Background RGBA
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
}

// Available themes
var (
	// ThemeClassic is the default yellow to purple trail.
	ThemeClassic = Theme{
		Name:       "classic",
		Trail:      Gradient{RGBA{255, 255, 79, 196}, RGBA{117, 11, 255, 255}},
		Background: RGBA{0, 0, 0, 255},
		Primary:    lipgloss.Color("#750bff"),
		Accent:     lipgloss.Color("#ffff4f"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Warning:    lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Trail:      Gradient{RGBA{0, 85, 0, 80}, RGBA{136, 255, 136, 255}}, // Green phosphor
		Background: RGBA{0, 17, 0, 255},
		Primary:    lipgloss.Color("#00ff00"),
		Accent:     lipgloss.Color("#88ff88"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Warning:    lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Trail:      Gradient{RGBA{0, 119, 190, 90}, RGBA{224, 240, 255, 255}},
		Background: RGBA{0, 26, 51, 255},
		Primary:    lipgloss.Color("#0077be"),
		Accent:     lipgloss.Color("#ffd700"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Warning:    lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Trail:      Gradient{RGBA{255, 107, 107, 120}, RGBA{254, 202, 87, 255}}, // Coral to gold
		Background: RGBA{45, 27, 46, 255},
		Primary:    lipgloss.Color("#ff6b6b"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Warning:    lipgloss.Color("#ffc048"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Trail:      Gradient{RGBA{255, 255, 255, 0}, RGBA{255, 255, 255, 255}},
		Background: RGBA{0, 0, 0, 255},
		Primary:    lipgloss.Color("#ffffff"),
		Accent:     lipgloss.Color("#0088ff"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
