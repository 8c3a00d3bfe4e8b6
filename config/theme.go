package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Theme holds complete color theme settings
// This is the format for theme TOML files in ~/.config/cellnotes/themes/
type Theme struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Author      string   `toml:"author"`
	UI          UIColors `toml:"ui"`
}

// UIColors holds UI color settings
// Values are "0"-"255" palette indexes or "#RGB"/"#RRGGBB" hex colors
type UIColors struct {
	StatusBg     string `toml:"status_bg"`
	StatusFg     string `toml:"status_fg"`
	StatusAccent string `toml:"status_accent"`
	SelectionBg  string `toml:"selection_bg"`
	SelectionFg  string `toml:"selection_fg"`
	ErrorFg      string `toml:"error_fg"`
	DisabledFg   string `toml:"disabled_fg"`
	// Dialog colors
	DialogBg       string `toml:"dialog_bg"`
	DialogFg       string `toml:"dialog_fg"`
	DialogBorder   string `toml:"dialog_border"`
	DialogTitle    string `toml:"dialog_title"`
	DialogButton   string `toml:"dialog_button"`
	DialogButtonFg string `toml:"dialog_button_fg"`
	DialogInputBg  string `toml:"dialog_input_bg"`
	DialogInputFg  string `toml:"dialog_input_fg"`
}

// Built-in themes
var builtinThemes = map[string]Theme{
	"default": {
		Name:        "default",
		Description: "Classic DOS EDIT style - blue with cyan highlights",
		Author:      "cellnotes",
		UI: UIColors{
			StatusBg:       "4",  // Dark blue
			StatusFg:       "15", // Bright white
			StatusAccent:   "14", // Bright cyan
			SelectionBg:    "6",  // Cyan
			SelectionFg:    "0",  // Black
			ErrorFg:        "9",  // Bright red
			DisabledFg:     "8",  // Gray
			DialogBg:       "7",  // Light gray
			DialogFg:       "0",  // Black
			DialogBorder:   "0",  // Black
			DialogTitle:    "4",  // Blue
			DialogButton:   "2",  // Green
			DialogButtonFg: "15", // White
			DialogInputBg:  "0",  // Black
			DialogInputFg:  "7",  // Light gray
		},
	},
	"dark": {
		Name:        "dark",
		Description: "Modern dark theme with muted colors",
		Author:      "cellnotes",
		UI: UIColors{
			StatusBg:       "236",
			StatusFg:       "252",
			StatusAccent:   "43",
			SelectionBg:    "24",
			SelectionFg:    "15",
			ErrorFg:        "203",
			DisabledFg:     "240",
			DialogBg:       "238",
			DialogFg:       "252",
			DialogBorder:   "245",
			DialogTitle:    "43",
			DialogButton:   "24",
			DialogButtonFg: "15",
			DialogInputBg:  "235",
			DialogInputFg:  "252",
		},
	},
	"light": {
		Name:        "light",
		Description: "Light theme for bright environments",
		Author:      "cellnotes",
		UI: UIColors{
			StatusBg:       "254",
			StatusFg:       "235",
			StatusAccent:   "26",
			SelectionBg:    "153",
			SelectionFg:    "0",
			ErrorFg:        "160",
			DisabledFg:     "249",
			DialogBg:       "255",
			DialogFg:       "235",
			DialogBorder:   "240",
			DialogTitle:    "26",
			DialogButton:   "32",
			DialogButtonFg: "15",
			DialogInputBg:  "254",
			DialogInputFg:  "235",
		},
	},
	"monokai": {
		Name:        "monokai",
		Description: "Monokai-inspired dark theme",
		Author:      "cellnotes",
		UI: UIColors{
			StatusBg:       "235",
			StatusFg:       "231",
			StatusAccent:   "208",
			SelectionBg:    "59",
			SelectionFg:    "231",
			ErrorFg:        "197",
			DisabledFg:     "59",
			DialogBg:       "237",
			DialogFg:       "231",
			DialogBorder:   "208",
			DialogTitle:    "208",
			DialogButton:   "64",
			DialogButtonFg: "231",
			DialogInputBg:  "235",
			DialogInputFg:  "231",
		},
	},
}

// DefaultTheme returns the default DOS EDIT theme
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// LoadTheme loads a theme by name
// Checks user themes directory first, then falls back to built-in themes
func LoadTheme(name string) Theme {
	if name == "" {
		return DefaultTheme()
	}

	if dir, err := ThemesDir(); err == nil {
		if theme, err := LoadThemeFile(filepath.Join(dir, name+".toml")); err == nil {
			return theme
		}
	}

	if builtin, ok := builtinThemes[name]; ok {
		return builtin
	}

	return DefaultTheme()
}

// LoadThemeFile decodes a theme file and fills missing colors from the default theme
func LoadThemeFile(path string) (Theme, error) {
	var theme Theme
	if _, err := toml.DecodeFile(path, &theme); err != nil {
		return Theme{}, err
	}
	return mergeWithDefault(theme), nil
}

// mergeWithDefault fills in any missing theme values with defaults
func mergeWithDefault(theme Theme) Theme {
	def := DefaultTheme()
	if theme.Name == "" {
		theme.Name = def.Name
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	ui, d := &theme.UI, def.UI
	fill(&ui.StatusBg, d.StatusBg)
	fill(&ui.StatusFg, d.StatusFg)
	fill(&ui.StatusAccent, d.StatusAccent)
	fill(&ui.SelectionBg, d.SelectionBg)
	fill(&ui.SelectionFg, d.SelectionFg)
	fill(&ui.ErrorFg, d.ErrorFg)
	fill(&ui.DisabledFg, d.DisabledFg)
	fill(&ui.DialogBg, d.DialogBg)
	fill(&ui.DialogFg, d.DialogFg)
	fill(&ui.DialogBorder, d.DialogBorder)
	fill(&ui.DialogTitle, d.DialogTitle)
	fill(&ui.DialogButton, d.DialogButton)
	fill(&ui.DialogButtonFg, d.DialogButtonFg)
	fill(&ui.DialogInputBg, d.DialogInputBg)
	fill(&ui.DialogInputFg, d.DialogInputFg)

	return theme
}

// ThemeNames returns the list of built-in theme names
func ThemeNames() []string {
	return []string{"default", "dark", "light", "monokai"}
}

// ListUserThemes returns a list of user-defined theme names
func ListUserThemes() []string {
	themesDir, err := ThemesDir()
	if err != nil {
		return nil
	}

	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil
	}

	var themes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), ".toml"); ok {
			themes = append(themes, name)
		}
	}
	return themes
}
