package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cornish/cellnotes/config"

	"github.com/charmbracelet/lipgloss"
)

// UseTrueColor controls whether hex colors use true color (24-bit) or
// fall back to the nearest 256-color. Set to false for older terminals.
var UseTrueColor = true

// Reset clears all SGR attributes
const Reset = "\033[0m"

// ColorToANSIFg converts a theme color string to an ANSI foreground escape sequence
// Supports: "0"-"255" for indexed colors, "#RGB" or "#RRGGBB" for hex colors
func ColorToANSIFg(color string) string {
	return colorToANSI(color, 38, 30, 90, "\033[37m")
}

// ColorToANSIBg converts a theme color string to an ANSI background escape sequence
func ColorToANSIBg(color string) string {
	return colorToANSI(color, 48, 40, 100, "\033[40m")
}

// colorToANSI builds the escape for either plane. ext is 38 or 48, base and
// bright are the classic 8-color offsets, fallback is used for junk input.
func colorToANSI(color string, ext, base, bright int, fallback string) string {
	if strings.HasPrefix(color, "#") {
		r, g, b := parseHexColor(color)
		if UseTrueColor {
			return fmt.Sprintf("\033[%d;2;%d;%d;%dm", ext, r, g, b)
		}
		return fmt.Sprintf("\033[%d;5;%dm", ext, rgbTo256Color(r, g, b))
	}
	n, err := strconv.Atoi(color)
	if err != nil || n < 0 || n > 255 {
		return fallback
	}
	switch {
	case n < 8:
		// Standard colors: use traditional codes for better compatibility
		return fmt.Sprintf("\033[%dm", base+n)
	case n < 16:
		return fmt.Sprintf("\033[%dm", bright+n-8)
	}
	return fmt.Sprintf("\033[%d;5;%dm", ext, n)
}

// ColorToANSI returns combined fg+bg ANSI sequence
func ColorToANSI(fg, bg string) string {
	return ColorToANSIBg(bg) + ColorToANSIFg(fg)
}

// rgbTo256Color converts RGB values to the nearest 256-color palette index
func rgbTo256Color(r, g, b int) int {
	if max(r, g, b)-min(r, g, b) < 20 {
		return rgbToGrayscale(r, g, b)
	}
	// 6x6x6 color cube (colors 16-231)
	return 16 + 36*rgbTo6(r) + 6*rgbTo6(g) + rgbTo6(b)
}

// rgbTo6 converts an 8-bit color value to a 6-level value (0-5)
// The 6x6x6 cube uses values: 0, 95, 135, 175, 215, 255
func rgbTo6(v int) int {
	for i, edge := range []int{48, 115, 155, 195, 235} {
		if v < edge {
			return i
		}
	}
	return 5
}

// rgbToGrayscale converts RGB to nearest grayscale in 232-255 range
func rgbToGrayscale(r, g, b int) int {
	gray := (r + g + b) / 3
	if gray < 4 {
		return 16 // Black from color cube
	}
	if gray > 243 {
		return 231 // White from color cube
	}
	return 232 + (gray-8)/10
}

// parseHexColor parses #RGB or #RRGGBB to r, g, b values
func parseHexColor(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 255, 255, 255 // Default to white on error
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

// Palette holds the raw escape sequences dialogs are painted with
type Palette struct {
	Dialog   string // Base dialog fg/bg
	Border   string // Frame fg over dialog bg
	Title    string // Title fg over dialog bg
	Focus    string // Focused button / selected list row
	Input    string // Text input area
	Error    string // Error line fg over dialog bg
	Disabled string // Disabled button fg over dialog bg
}

// Styles contains all the styles used by the application
type Styles struct {
	// The theme these styles were generated from
	Theme   config.Theme
	Palette Palette

	// Status bar styles
	StatusBar    lipgloss.Style
	StatusAccent lipgloss.Style

	// Browser styles
	Header    lipgloss.Style
	Selection lipgloss.Style

	// Dialog widget styles
	DialogInput      lipgloss.Style
	DialogInputFocus lipgloss.Style
	DialogListItem   lipgloss.Style
	DialogListActive lipgloss.Style
	DialogLabel      lipgloss.Style

	// General styles
	Subtle lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles creates a Styles configuration from a theme
func NewStyles(theme config.Theme) Styles {
	ui := theme.UI

	return Styles{
		Theme: theme,
		Palette: Palette{
			Dialog:   ColorToANSI(ui.DialogFg, ui.DialogBg),
			Border:   ColorToANSI(ui.DialogBorder, ui.DialogBg),
			Title:    ColorToANSI(ui.DialogTitle, ui.DialogBg) + "\033[1m",
			Focus:    ColorToANSI(ui.DialogButtonFg, ui.DialogButton),
			Input:    ColorToANSI(ui.DialogInputFg, ui.DialogInputBg),
			Error:    ColorToANSI(ui.ErrorFg, ui.DialogBg) + "\033[1m",
			Disabled: ColorToANSI(ui.DisabledFg, ui.DialogBg),
		},

		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.StatusFg)),

		StatusAccent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.StatusAccent)).
			Background(lipgloss.Color(ui.StatusBg)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.StatusAccent)).
			Bold(true),

		Selection: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.SelectionBg)).
			Foreground(lipgloss.Color(ui.SelectionFg)),

		DialogInput: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogInputBg)).
			Foreground(lipgloss.Color(ui.DialogInputFg)),

		DialogInputFocus: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogInputBg)).
			Foreground(lipgloss.Color(ui.DialogInputFg)).
			Bold(true),

		DialogListItem: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogBg)).
			Foreground(lipgloss.Color(ui.DialogFg)),

		DialogListActive: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogButton)).
			Foreground(lipgloss.Color(ui.DialogButtonFg)),

		DialogLabel: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogBg)).
			Foreground(lipgloss.Color(ui.DialogTitle)).
			Bold(true),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.DisabledFg)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.ErrorFg)).
			Bold(true),
	}
}

// DefaultStyles returns the default style configuration (DOS EDIT theme)
func DefaultStyles() Styles {
	return NewStyles(config.DefaultTheme())
}
