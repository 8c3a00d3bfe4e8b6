package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/key"
)

// KeyBinding represents a single action's key bindings
type KeyBinding struct {
	Primary   string `toml:"primary"`
	Alternate string `toml:"alternate,omitempty"`
}

// KeybindingsConfig holds all configurable keybindings
type KeybindingsConfig struct {
	// Dialog focus and buttons
	NextFocus KeyBinding `toml:"next_focus"`
	PrevFocus KeyBinding `toml:"prev_focus"`
	Press     KeyBinding `toml:"press"`
	Submit    KeyBinding `toml:"submit"`
	Dismiss   KeyBinding `toml:"dismiss"`

	// Dialog list and text field
	ListUp   KeyBinding `toml:"list_up"`
	ListDown KeyBinding `toml:"list_down"`
	Copy     KeyBinding `toml:"copy"`
	Paste    KeyBinding `toml:"paste"`

	// Matrix browser
	CursorUp         KeyBinding `toml:"cursor_up"`
	CursorDown       KeyBinding `toml:"cursor_down"`
	AddNote          KeyBinding `toml:"add_note"`
	AddComment       KeyBinding `toml:"add_comment"`
	CharacterComment KeyBinding `toml:"character_comment"`
	ClearNotes       KeyBinding `toml:"clear_notes"`
	Revert           KeyBinding `toml:"revert"`
	Help             KeyBinding `toml:"help"`
	Quit             KeyBinding `toml:"quit"`
}

// DefaultKeybindings returns the default keybinding configuration
func DefaultKeybindings() *KeybindingsConfig {
	return &KeybindingsConfig{
		NextFocus: KeyBinding{Primary: "tab"},
		PrevFocus: KeyBinding{Primary: "shift+tab"},
		Press:     KeyBinding{Primary: "enter", Alternate: " "},
		Submit:    KeyBinding{Primary: "ctrl+s"},
		Dismiss:   KeyBinding{Primary: "esc"},

		ListUp:   KeyBinding{Primary: "up", Alternate: "k"},
		ListDown: KeyBinding{Primary: "down", Alternate: "j"},
		Copy:     KeyBinding{Primary: "ctrl+c"},
		Paste:    KeyBinding{Primary: "ctrl+v"},

		CursorUp:         KeyBinding{Primary: "up", Alternate: "k"},
		CursorDown:       KeyBinding{Primary: "down", Alternate: "j"},
		AddNote:          KeyBinding{Primary: "n"},
		AddComment:       KeyBinding{Primary: "c"},
		CharacterComment: KeyBinding{Primary: "m"},
		ClearNotes:       KeyBinding{Primary: "d"},
		Revert:           KeyBinding{Primary: "r"},
		Help:             KeyBinding{Primary: "f1", Alternate: "?"},
		Quit:             KeyBinding{Primary: "ctrl+q"},
	}
}

// ActionNames maps action names for display
var ActionNames = map[string]string{
	"next_focus":        "Next Field",
	"prev_focus":        "Previous Field",
	"press":             "Press Button",
	"submit":            "Submit",
	"dismiss":           "Dismiss Dialog",
	"list_up":           "List Up",
	"list_down":         "List Down",
	"copy":              "Copy Text",
	"paste":             "Paste Text",
	"cursor_up":         "Previous Character",
	"cursor_down":       "Next Character",
	"add_note":          "Add Cell Note",
	"add_comment":       "Add Comment",
	"character_comment": "Comment on Character",
	"clear_notes":       "Clear Notes",
	"revert":            "Revert Changes",
	"help":              "Help",
	"quit":              "Quit",
}

// dialogActions are resolved against a focused dialog and must not collide with each other
var dialogActions = []string{
	"next_focus", "prev_focus", "press", "submit", "dismiss",
	"list_up", "list_down", "copy", "paste",
}

// browserActions are resolved by the matrix browser when no dialog is open
var browserActions = []string{
	"cursor_up", "cursor_down",
	"add_note", "add_comment", "character_comment",
	"clear_notes", "revert", "help", "quit",
}

// KeybindingsPath returns the path to the keybindings file
func KeybindingsPath() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "keybindings.toml"), nil
}

// LoadKeybindings loads keybindings from disk, returning defaults if not found
func LoadKeybindings() *KeybindingsConfig {
	path, err := KeybindingsPath()
	if err != nil {
		return DefaultKeybindings()
	}
	return LoadKeybindingsFrom(path)
}

// LoadKeybindingsFrom loads keybindings from path
// Unset actions keep their defaults; an unreadable file yields the defaults
func LoadKeybindingsFrom(path string) *KeybindingsConfig {
	kb := DefaultKeybindings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return kb
	}

	if _, err := toml.DecodeFile(path, kb); err != nil {
		return DefaultKeybindings()
	}

	return kb
}

// Save writes keybindings to disk
func (kb *KeybindingsConfig) Save() error {
	path, err := KeybindingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	f.WriteString("# cellnotes keybindings\n")
	f.WriteString("# Format: primary = \"key\", alternate = \"key\" (optional)\n")
	f.WriteString("# Examples: \"ctrl+s\", \"alt+f\", \"f1\", \"shift+tab\"\n\n")

	return toml.NewEncoder(f).Encode(kb)
}

// binding returns a pointer to the KeyBinding for an action, or nil if unknown
func (kb *KeybindingsConfig) binding(action string) *KeyBinding {
	switch action {
	case "next_focus":
		return &kb.NextFocus
	case "prev_focus":
		return &kb.PrevFocus
	case "press":
		return &kb.Press
	case "submit":
		return &kb.Submit
	case "dismiss":
		return &kb.Dismiss
	case "list_up":
		return &kb.ListUp
	case "list_down":
		return &kb.ListDown
	case "copy":
		return &kb.Copy
	case "paste":
		return &kb.Paste
	case "cursor_up":
		return &kb.CursorUp
	case "cursor_down":
		return &kb.CursorDown
	case "add_note":
		return &kb.AddNote
	case "add_comment":
		return &kb.AddComment
	case "character_comment":
		return &kb.CharacterComment
	case "clear_notes":
		return &kb.ClearNotes
	case "revert":
		return &kb.Revert
	case "help":
		return &kb.Help
	case "quit":
		return &kb.Quit
	}
	return nil
}

// GetBinding returns the KeyBinding for a given action name
func (kb *KeybindingsConfig) GetBinding(action string) KeyBinding {
	if b := kb.binding(action); b != nil {
		return *b
	}
	return KeyBinding{}
}

// SetBinding sets the KeyBinding for a given action name
func (kb *KeybindingsConfig) SetBinding(action string, binding KeyBinding) {
	if b := kb.binding(action); b != nil {
		*b = binding
	}
}

// AllActions returns a list of all action names in display order
func AllActions() []string {
	return append(append([]string{}, dialogActions...), browserActions...)
}

// Matches checks if a key string matches this binding (primary or alternate)
func (b KeyBinding) Matches(key string) bool {
	key = strings.ToLower(key)
	return (b.Primary != "" && strings.ToLower(b.Primary) == key) ||
		(b.Alternate != "" && strings.ToLower(b.Alternate) == key)
}

// Keys returns the non-empty keys of the binding
func (b KeyBinding) Keys() []string {
	var keys []string
	for _, k := range []string{b.Primary, b.Alternate} {
		if k != "" {
			keys = append(keys, strings.ToLower(k))
		}
	}
	return keys
}

// Binding converts the binding into a bubbles key.Binding with help text
func (b KeyBinding) Binding(action string) key.Binding {
	keys := b.Keys()
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(FormatKeyForDisplay(keys[0]), ActionNames[action]),
	)
}

// DisplayString returns a human-readable string for the binding
func (b KeyBinding) DisplayString() string {
	if b.Primary == "" && b.Alternate == "" {
		return "(none)"
	}
	if b.Alternate == "" {
		return FormatKeyForDisplay(b.Primary)
	}
	return FormatKeyForDisplay(b.Primary) + " / " + FormatKeyForDisplay(b.Alternate)
}

// FormatKeyForDisplay converts a key string to a more readable format
func FormatKeyForDisplay(key string) string {
	switch key {
	case "":
		return ""
	case " ":
		return "Space"
	}

	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch {
		case p == "ctrl" || p == "alt" || p == "shift" || p == "esc" || p == "enter" ||
			p == "tab" || p == "home" || p == "end" || p == "up" || p == "down" ||
			p == "left" || p == "right":
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		case len(p) >= 2 && p[0] == 'f' && p[1] >= '0' && p[1] <= '9':
			parts[i] = "F" + p[1:]
		}
	}
	return strings.Join(parts, "+")
}

// FindConflicts checks for key conflicts and returns a map of conflicting actions
// Dialog actions and browser actions live in different scopes, so a key is
// only a conflict when two actions of the same scope share it.
func (kb *KeybindingsConfig) FindConflicts() map[string][]string {
	conflicts := make(map[string][]string)

	for _, scope := range [][]string{dialogActions, browserActions} {
		keyToActions := make(map[string][]string)
		for _, action := range scope {
			for _, k := range kb.GetBinding(action).Keys() {
				keyToActions[k] = append(keyToActions[k], action)
			}
		}
		for k, actions := range keyToActions {
			if len(actions) > 1 {
				conflicts[k] = append(conflicts[k], actions...)
			}
		}
	}

	return conflicts
}
