package dialog

import (
	"log/slog"
	"strings"

	"github.com/cornish/cellnotes/clipboard"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// TextField is a multi-line text input
type TextField struct {
	ta       textarea.Model
	clip     *clipboard.Clipboard
	keys     keyMap
	logger   *slog.Logger
	disposed bool
}

// NewTextField creates an empty text field height rows tall
func NewTextField(height int) *TextField {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(max(1, height))
	ta.Cursor.SetMode(cursor.CursorStatic)
	// Paste goes through our clipboard instead of textarea's own reader
	ta.KeyMap.Paste.SetEnabled(false)
	ta.Blur()

	return &TextField{
		ta:     ta,
		keys:   newKeyMap(nil),
		logger: slog.New(slog.DiscardHandler),
	}
}

func (t *TextField) attach(doc *Document) {
	t.clip = doc.clip
	t.keys = doc.keys
	t.logger = doc.logger

	s := doc.styles
	t.ta.FocusedStyle.Base = s.DialogInput
	t.ta.FocusedStyle.Text = s.DialogInputFocus
	t.ta.FocusedStyle.CursorLine = s.DialogInputFocus
	t.ta.FocusedStyle.Placeholder = s.Subtle
	t.ta.BlurredStyle.Base = s.DialogInput
	t.ta.BlurredStyle.Text = s.DialogInput
	t.ta.BlurredStyle.CursorLine = s.DialogInput
	t.ta.BlurredStyle.Placeholder = s.Subtle
}

// Value returns the text exactly as entered
func (t *TextField) Value() string {
	return t.ta.Value()
}

// SetValue replaces the text
func (t *TextField) SetValue(s string) {
	t.ta.SetValue(s)
}

// SetPlaceholder sets the text shown while the field is empty
func (t *TextField) SetPlaceholder(s string) {
	t.ta.Placeholder = s
}

func (t *TextField) Focus() tea.Cmd {
	return t.ta.Focus()
}

func (t *TextField) Blur() {
	t.ta.Blur()
}

// Dispose clears the text and releases focus
func (t *TextField) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.ta.Blur()
	t.ta.Reset()
}

// Disposed reports whether Dispose has run
func (t *TextField) Disposed() bool {
	return t.disposed
}

func (t *TextField) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok && t.clip != nil {
		switch {
		case key.Matches(km, t.keys.Copy):
			if err := t.clip.Copy(t.ta.Value()); err != nil {
				t.logger.Warn("copy failed", "err", err)
			}
			return nil
		case key.Matches(km, t.keys.Paste):
			text, err := t.clip.Paste()
			if err != nil {
				t.logger.Warn("paste failed", "err", err)
				return nil
			}
			t.ta.InsertString(text)
			return nil
		}
	}

	var cmd tea.Cmd
	t.ta, cmd = t.ta.Update(msg)
	return cmd
}

// Lines renders the field at width
func (t *TextField) Lines(width int) []string {
	t.ta.SetWidth(width)
	return strings.Split(t.ta.View(), "\n")
}
