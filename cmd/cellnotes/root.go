package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cornish/cellnotes/clipboard"
	"github.com/cornish/cellnotes/config"
	"github.com/cornish/cellnotes/editor"
	"github.com/cornish/cellnotes/matrix"
	"github.com/cornish/cellnotes/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	ascii    bool
	theme    string
	config   string
	logFile  string
	logLevel string
}

func newRootCmd(version string) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "cellnotes",
		Short: "Annotate the cells of a character matrix",
		Long: `cellnotes - browse a taxon by character matrix in the terminal and attach
notes, status codes and comments to cells, characters and the matrix itself.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.Flags(), opts)
		},
	}

	fs := cmd.Flags()
	fs.BoolVar(&opts.ascii, "ascii", false, "use ASCII characters for dialog frames")
	fs.StringVar(&opts.theme, "theme", "", "color theme (overrides the config file)")
	fs.StringVar(&opts.config, "config", "", "config file (default is the user config dir)")
	fs.StringVar(&opts.logFile, "log-file", "", "append logs to this file")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	return cmd
}

func run(ctx context.Context, fs *pflag.FlagSet, opts options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, cfgErr := loadConfig(opts.config)
	applyFlags(fs, cfg, opts)

	logger, closeLog, err := setupLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	keys, err := loadKeybindings(opts.config)
	if err != nil {
		logger.Warn("keybindings unavailable, using defaults", "err", err)
	}
	for k, actions := range keys.FindConflicts() {
		logger.Warn("keybinding conflict", "key", k, "actions", actions)
	}

	term := config.DetectTerminal()
	display := cfg.Dialog.Display(term)
	ui.UseTrueColor = display.TrueColor
	styles := ui.NewStyles(cfg.Theme.GetResolved())
	box := ui.GetBoxChars(display.ASCIIFrames)
	logger.Debug("terminal", "utf8", term.UTF8, "colors", term.Colors.String(), "theme", styles.Theme.Name)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e := editor.New(matrix.SampleMatrix(), matrix.NewNotebook(), editor.Options{
		Context:   ctx,
		Config:    cfg,
		Keys:      keys,
		Styles:    &styles,
		Box:       &box,
		Clipboard: clipboard.New(os.Stdout),
		Logger:    logger,
	})
	if cfgErr != nil {
		logger.Warn("config not loaded", "err", cfgErr)
		e.SetConfigError(cfgErr)
	}

	p := tea.NewProgram(e, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}

// loadConfig reads path, or the default location when path is empty. The
// config is usable even when an error is returned.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// loadKeybindings reads keybindings.toml next to the config file
func loadKeybindings(configPath string) (*config.KeybindingsConfig, error) {
	if configPath == "" {
		return config.LoadKeybindings(), nil
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return config.DefaultKeybindings(), err
	}
	return config.LoadKeybindingsFrom(filepath.Join(filepath.Dir(abs), "keybindings.toml")), nil
}

// applyFlags copies the flags given on the command line over cfg
func applyFlags(fs *pflag.FlagSet, cfg *config.Config, opts options) {
	if fs.Changed("ascii") {
		ascii := opts.ascii
		cfg.Dialog.AsciiMode = &ascii
	}
	if fs.Changed("theme") {
		cfg.Theme.Name = opts.theme
	}
	if fs.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
}

// setupLogger returns a text logger writing to the configured file. The TUI
// owns stdout, so without a file everything is discarded.
func setupLogger(lc config.LogConfig) (*slog.Logger, func() error, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", lc.Level, err)
	}
	if lc.File == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(lc.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return newLogger(f, level), f.Close, nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
