// Package style provides semantic terminal styling using lipgloss.
//
// All styling is semantic (Success, Warning, Error, etc.) rather than visual
// (RedBold, etc.). When disabled, every helper returns its input unchanged
// with no ANSI codes.
package style

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorConfig holds the palette. Values are ANSI color numbers (0-255) or
// "bold".
type ColorConfig struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string
	Cursor  string
}

// Themes are picked by terminal background.
var Themes = map[string]ColorConfig{
	"dark": {
		Success: "10",  // bright green
		Warning: "11",  // bright yellow
		Error:   "9",   // bright red
		Info:    "14",  // bright cyan
		Muted:   "245", // medium gray
		Header:  "bold",
		Cursor:  "13", // bright magenta
	},
	"light": {
		Success: "28",  // dark green
		Warning: "130", // dark orange
		Error:   "124", // dark red
		Info:    "27",  // dark blue
		Muted:   "242", // dark gray
		Header:  "bold",
		Cursor:  "90", // dark magenta
	},
}

// ThemeEnv overrides background detection with "dark" or "light".
const ThemeEnv = "CRUN_THEME"

var (
	enabled bool
	colors  ColorConfig

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
	cursorStyle  lipgloss.Style
)

// Init enables or disables styling. NO_COLOR and CRUN_NO_COLOR disable it
// regardless of enable.
//
// This function should be called once from main before any output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CRUN_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable
	if enabled {
		colors = Themes[ThemeName()]
		initStyles(colors)
	}
}

// ThemeName returns the active theme: CRUN_THEME when valid, otherwise the
// detected terminal background.
func ThemeName() string {
	name := strings.ToLower(strings.TrimSpace(os.Getenv(ThemeEnv)))
	if _, ok := Themes[name]; ok {
		return name
	}
	if termenv.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// GetColors returns the current palette. It is empty while styling is off.
func GetColors() ColorConfig {
	return colors
}

func initStyles(colors ColorConfig) {
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = makeStyle(colors.Success)
	warningStyle = makeStyle(colors.Warning)
	errorStyle = makeStyle(colors.Error)
	infoStyle = makeStyle(colors.Info)
	mutedStyle = makeStyle(colors.Muted)
	headerStyle = makeStyle(colors.Header)
	cursorStyle = makeStyle(colors.Cursor).Bold(true)
}

func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Success styles text for successful operations.
func Success(text string) string { return render(successStyle, text) }

// Warning styles text for warning messages.
func Warning(text string) string { return render(warningStyle, text) }

// Error styles text for error messages.
func Error(text string) string { return render(errorStyle, text) }

// Info styles command names and other highlighted values.
func Info(text string) string { return render(infoStyle, text) }

// Header styles titles.
func Header(text string) string { return render(headerStyle, text) }

// Muted styles secondary information.
func Muted(text string) string { return render(mutedStyle, text) }

// Cursor styles the highlighted row of a picker.
func Cursor(text string) string { return render(cursorStyle, text) }
