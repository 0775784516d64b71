package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// categoryPalette cycles through accent colors for category labels.
var categoryPalette = []lipgloss.Style{StyleBlue, StyleGreen, StylePurple, StyleYellow}

// CategoryColor returns a stable accent for a category name.
func CategoryColor(category string) lipgloss.Style {
	var h uint32
	for i := 0; i < len(category); i++ {
		h = h*31 + uint32(category[i])
	}
	return categoryPalette[h%uint32(len(categoryPalette))]
}

// StreakColor colors a streak length: green once it is a week or longer,
// yellow for a few days, dim otherwise.
func StreakColor(days int) lipgloss.Style {
	switch {
	case days >= 7:
		return StyleGreen
	case days >= 3:
		return StyleYellow
	case days >= 1:
		return StyleFg
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warning renders a yellow note line.
func Warning(text string) string {
	return StyleYellow.Render("! " + text)
}

// Success renders a green confirmation line.
func Success(text string) string {
	return StyleGreen.Render("✔ " + text)
}
