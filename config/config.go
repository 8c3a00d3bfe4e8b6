package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// configDirName is the directory under the user config dir holding all files
const configDirName = "cellnotes"

// Config holds the application configuration
type Config struct {
	Dialog   DialogConfig  `toml:"dialog"`
	Theme    ThemeConfig   `toml:"theme"`
	Log      LogConfig     `toml:"log"`
	Statuses []StatusEntry `toml:"status,omitempty"` // Cell status options, in display order
}

// DialogConfig holds dialog layout settings
type DialogConfig struct {
	Width      int   `toml:"width"`       // Total dialog width including borders
	TextHeight int   `toml:"text_height"` // Rows of the free-text field
	ListRows   int   `toml:"list_rows"`   // Visible rows of the status list
	AsciiMode  *bool `toml:"ascii_mode"`  // nil = auto-detect, true/false = override
	TrueColor  *bool `toml:"true_color"`  // nil = auto, false = force 256-color
}

// ThemeConfig references a theme by name
// The actual colors come from built-in themes or theme files
type ThemeConfig struct {
	Name string `toml:"name"`
}

// LogConfig controls the slog output of the application
type LogConfig struct {
	File  string `toml:"file"`  // Empty disables logging
	Level string `toml:"level"` // debug, info, warn, error
}

// StatusEntry is one configurable cell status option
type StatusEntry struct {
	Name string `toml:"name"`
	Code int    `toml:"code"`
}

// Dialog size limits
const (
	MinDialogWidth = 30
	MaxDialogWidth = 100
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Dialog: DialogConfig{
			Width:      56,
			TextHeight: 4,
			ListRows:   5,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// normalize clamps values a hand-edited file may have broken
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Dialog.Width == 0 {
		c.Dialog.Width = def.Dialog.Width
	}
	c.Dialog.Width = max(MinDialogWidth, min(MaxDialogWidth, c.Dialog.Width))
	if c.Dialog.TextHeight < 1 {
		c.Dialog.TextHeight = def.Dialog.TextHeight
	}
	if c.Dialog.ListRows < 1 {
		c.Dialog.ListRows = def.Dialog.ListRows
	}
	if c.Theme.Name == "" {
		c.Theme.Name = def.Theme.Name
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// userConfigDir returns the application config directory
func userConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, configDirName), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ThemesDir returns the path to the user themes directory
func ThemesDir() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "themes"), nil
}

// ConfigLoadError holds details about a config loading error
type ConfigLoadError struct {
	FilePath string
	Err      error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// Load reads the configuration from the default location
// Returns default config if the file doesn't exist
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path
// Returns ConfigLoadError if the file exists but has parse errors; the
// returned config is still usable and holds the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return DefaultConfig(), &ConfigLoadError{FilePath: path, Err: err}
	}

	for i, s := range cfg.Statuses {
		if s.Name == "" {
			return DefaultConfig(), &ConfigLoadError{
				FilePath: path,
				Err:      fmt.Errorf("status entry %d has no name", i+1),
			}
		}
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration to the default location
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path, creating parent directories
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString("# cellnotes configuration\n\n"); err != nil {
		return err
	}

	return toml.NewEncoder(f).Encode(c)
}

// GetResolved loads and returns the complete theme
func (t *ThemeConfig) GetResolved() Theme {
	return LoadTheme(t.Name)
}
