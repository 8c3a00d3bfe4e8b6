package config

import (
	"os"
	"strings"
)

// ColorMode is how many colors the terminal can show
type ColorMode int

const (
	Color16 ColorMode = iota
	Color256
	ColorTrueColor
)

func (c ColorMode) String() string {
	switch c {
	case Color16:
		return "16 colors"
	case Color256:
		return "256 colors"
	case ColorTrueColor:
		return "truecolor"
	}
	return "unknown"
}

// Terminal is what the environment says the terminal can draw
type Terminal struct {
	UTF8   bool
	Colors ColorMode
}

// Display is how dialogs are drawn once config overrides are applied
type Display struct {
	ASCIIFrames bool
	TrueColor   bool
}

// DetectTerminal inspects the locale and TERM variables
func DetectTerminal() Terminal {
	return Terminal{UTF8: localeIsUTF8(), Colors: termColors()}
}

// localeIsUTF8 follows the POSIX precedence LC_ALL, LC_CTYPE, LANG: the
// first non-empty variable decides.
func localeIsUTF8() bool {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := strings.ToUpper(os.Getenv(name))
		if v != "" {
			return strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
		}
	}
	return false
}

func termColors() ColorMode {
	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return ColorTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case strings.Contains(term, "direct"), strings.Contains(term, "truecolor"),
		strings.Contains(term, "iterm2"), strings.Contains(term, "vte"):
		return ColorTrueColor
	case strings.Contains(term, "256color"), strings.Contains(term, "256-color"):
		return Color256
	}
	return Color16
}

// Display resolves the [dialog] overrides against t. An unset override
// follows detection.
func (d DialogConfig) Display(t Terminal) Display {
	out := Display{ASCIIFrames: !t.UTF8, TrueColor: t.Colors == ColorTrueColor}
	if d.AsciiMode != nil {
		out.ASCIIFrames = *d.AsciiMode
	}
	if d.TrueColor != nil {
		out.TrueColor = *d.TrueColor
	}
	return out
}
