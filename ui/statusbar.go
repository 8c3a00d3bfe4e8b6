package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Message kinds for SetMessage
const (
	MessageInfo  = "info"
	MessageError = "error"
)

// StatusBar represents the bottom status bar
type StatusBar struct {
	title       string
	taxon       string
	character   string
	row         int
	col         int
	notes       int
	message     string // Temporary message to display
	messageType string // MessageInfo or MessageError
	hint        string
	width       int
	styles      Styles
}

// NewStatusBar creates a new status bar
func NewStatusBar(styles Styles) *StatusBar {
	return &StatusBar{styles: styles}
}

// SetTitle sets the matrix title shown on the left
func (s *StatusBar) SetTitle(title string) {
	s.title = title
}

// SetCell sets the current cell (0-indexed, shown 1-indexed)
func (s *StatusBar) SetCell(row, col int, taxon, character string) {
	s.row = row + 1
	s.col = col + 1
	s.taxon = taxon
	s.character = character
}

// SetNoteCount sets the number of notes on the current character
func (s *StatusBar) SetNoteCount(n int) {
	s.notes = n
}

// SetHint sets the key hint shown when no message is displayed
func (s *StatusBar) SetHint(hint string) {
	s.hint = hint
}

// SetMessage sets a temporary message to display
func (s *StatusBar) SetMessage(message, msgType string) {
	s.message = message
	s.messageType = msgType
}

// Message returns the current message and its kind
func (s *StatusBar) Message() (string, string) {
	return s.message, s.messageType
}

// ClearMessage clears the temporary message
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.messageType = ""
}

// SetWidth sets the width of the status bar
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar
func (s *StatusBar) View() string {
	left := s.title
	if left == "" {
		left = "[Untitled]"
	}
	right := fmt.Sprintf("%s / %s | R%d C%d | %d notes", s.taxon, s.character, s.row, s.col, s.notes)

	center := s.hint
	centerStyle := s.styles.StatusBar
	if s.message != "" {
		center = s.message
		if s.messageType == MessageError {
			centerStyle = s.styles.Error.Background(lipgloss.Color(s.styles.Theme.UI.StatusBg))
		} else {
			centerStyle = s.styles.StatusAccent
		}
	}

	leftW := runewidth.StringWidth(left)
	rightW := runewidth.StringWidth(right)
	available := max(0, s.width-leftW-rightW)

	var sb strings.Builder
	sb.WriteString(s.styles.StatusAccent.Render(left))

	centerW := runewidth.StringWidth(center)
	if center != "" && centerW+4 <= available {
		padLeft := (available - centerW) / 2
		padRight := available - centerW - padLeft
		sb.WriteString(s.styles.StatusBar.Render(strings.Repeat(" ", padLeft)))
		sb.WriteString(centerStyle.Render(center))
		sb.WriteString(s.styles.StatusBar.Render(strings.Repeat(" ", padRight)))
	} else {
		// No message or not enough space
		sb.WriteString(s.styles.StatusBar.Render(strings.Repeat(" ", available)))
	}

	sb.WriteString(s.styles.StatusBar.Render(right))
	return sb.String()
}
