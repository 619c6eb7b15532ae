package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/flashingpumpkin/terminus/internal/render"
)

// Theme names a colour palette.
type Theme string

// Palettes. ThemeAuto picks dark or light from the terminal background.
const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// hasDarkBackground queries the terminal. Replaced in tests.
var hasDarkBackground = lipgloss.HasDarkBackground

// ResolveTheme turns ThemeAuto, or an empty theme, into the palette matching
// the terminal background.
func ResolveTheme(theme Theme) Theme {
	switch theme {
	case ThemeDark, ThemeLight:
		return theme
	}
	if hasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// Dark theme colour palette (for dark terminal backgrounds)
const (
	ColourAmber      = lipgloss.Color("214") // #FFB000 - Prompt, cursor
	ColourAmberDim   = lipgloss.Color("136") // #996600 - Separator, help
	ColourAmberLight = lipgloss.Color("222") // #FFD966 - Output text
	ColourAmberFaded = lipgloss.Color("178") // #B38F00 - Fading units, help keys
	ColourInfo       = lipgloss.Color("81")  // #5FD7FF - Info lines
	ColourWarning    = lipgloss.Color("208") // #FFAA00 - Too small message
	ColourError      = lipgloss.Color("196") // #FF3300 - Error lines
)

// Light theme colour palette (for light terminal backgrounds)
const (
	ColourAmberDark      = lipgloss.Color("94")  // #8B6914 - Prompt, cursor
	ColourAmberDarkDim   = lipgloss.Color("58")  // #5C4A0A - Separator, help
	ColourAmberDarkMid   = lipgloss.Color("94")  // #6B5A1E - Output text
	ColourAmberDarkFaded = lipgloss.Color("101") // #7A6A30 - Fading units, help keys
	ColourInfoDark       = lipgloss.Color("25")  // #005FAF - Info lines
	ColourWarningDark    = lipgloss.Color("166") // #CC5500 - Too small message
	ColourErrorDark      = lipgloss.Color("160") // #CC0000 - Error lines
)

// InnerHorizontal draws the separator between output and input.
const InnerHorizontal = "─"

// Styles contains all lipgloss styles for the UI.
type Styles struct {
	// Output classes
	Text  lipgloss.Style
	Info  lipgloss.Style
	Error lipgloss.Style

	// Units still fading in
	Fading lipgloss.Style

	// Input region
	Prompt lipgloss.Style
	Input  lipgloss.Style
	Cursor lipgloss.Style

	Separator       lipgloss.Style
	TooSmallMessage lipgloss.Style

	// Help bar
	HelpBar lipgloss.Style
	HelpKey lipgloss.Style
}

// DarkStyles returns the amber theme optimised for dark terminal backgrounds.
func DarkStyles() Styles {
	return Styles{
		Text:  lipgloss.NewStyle().Foreground(ColourAmberLight),
		Info:  lipgloss.NewStyle().Foreground(ColourInfo),
		Error: lipgloss.NewStyle().Foreground(ColourError).Bold(true),

		Fading: lipgloss.NewStyle().Foreground(ColourAmberFaded),

		Prompt: lipgloss.NewStyle().Foreground(ColourAmber).Bold(true),
		Input:  lipgloss.NewStyle().Foreground(ColourAmberLight),
		Cursor: lipgloss.NewStyle().Foreground(ColourAmber),

		Separator:       lipgloss.NewStyle().Foreground(ColourAmberDim),
		TooSmallMessage: lipgloss.NewStyle().Foreground(ColourWarning).Bold(true),

		HelpBar: lipgloss.NewStyle().Foreground(ColourAmberDim),
		HelpKey: lipgloss.NewStyle().Foreground(ColourAmberFaded),
	}
}

// LightStyles returns the amber theme optimised for light terminal backgrounds.
func LightStyles() Styles {
	return Styles{
		Text:  lipgloss.NewStyle().Foreground(ColourAmberDarkMid),
		Info:  lipgloss.NewStyle().Foreground(ColourInfoDark),
		Error: lipgloss.NewStyle().Foreground(ColourErrorDark).Bold(true),

		Fading: lipgloss.NewStyle().Foreground(ColourAmberDarkFaded),

		Prompt: lipgloss.NewStyle().Foreground(ColourAmberDark).Bold(true),
		Input:  lipgloss.NewStyle().Foreground(ColourAmberDarkMid),
		Cursor: lipgloss.NewStyle().Foreground(ColourAmberDark),

		Separator:       lipgloss.NewStyle().Foreground(ColourAmberDarkDim),
		TooSmallMessage: lipgloss.NewStyle().Foreground(ColourWarningDark).Bold(true),

		HelpBar: lipgloss.NewStyle().Foreground(ColourAmberDarkDim),
		HelpKey: lipgloss.NewStyle().Foreground(ColourAmberDarkFaded),
	}
}

// GetStyles returns the Styles for the given theme.
// Falls back to dark theme for unknown theme values.
func GetStyles(theme Theme) Styles {
	switch theme {
	case ThemeLight:
		return LightStyles()
	default:
		return DarkStyles()
	}
}

// ClassStyle returns the style for a line class.
func (s Styles) ClassStyle(c render.Class) lipgloss.Style {
	switch c {
	case render.ClassInfo:
		return s.Info
	case render.ClassError:
		return s.Error
	default:
		return s.Text
	}
}

// RenderSingleBorder renders a horizontal single-line border of the given width.
func RenderSingleBorder(width int, style lipgloss.Style) string {
	return style.Render(repeatString(InnerHorizontal, width))
}

// repeatString repeats a string n times.
func repeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += s
	}
	return result
}
