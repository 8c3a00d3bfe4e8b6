package dialog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cornish/cellnotes/ui"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

var (
	// ErrEmptyList is returned when reading the selection of an empty list
	ErrEmptyList = errors.New("list has no items")
	// ErrIndexOutOfRange is returned for a selection index outside the list
	ErrIndexOutOfRange = errors.New("list index out of range")
)

// Item is a labelled list entry
type Item struct {
	Label string
	Value int
}

// SelectList is a single-selection list of typed items
type SelectList struct {
	items    []Item
	selected int
	offset   int // first visible row
	rows     int
	focused  bool
	disposed bool

	styles ui.Styles
	keys   keyMap
}

// NewSelectList creates an empty list showing at most rows items at a time
func NewSelectList(rows int) *SelectList {
	return &SelectList{
		rows:   max(1, rows),
		styles: ui.DefaultStyles(),
		keys:   newKeyMap(nil),
	}
}

func (l *SelectList) attach(doc *Document) {
	l.styles = doc.styles
	l.keys = doc.keys
}

// AddItem appends an item. The selection is left unchanged.
func (l *SelectList) AddItem(it Item) {
	l.items = append(l.items, it)
}

// Items returns a copy of the items in insertion order
func (l *SelectList) Items() []Item {
	return append([]Item(nil), l.items...)
}

// Len returns the number of items
func (l *SelectList) Len() int {
	return len(l.items)
}

// SelectedIndex returns the selected index
func (l *SelectList) SelectedIndex() int {
	return l.selected
}

// SetSelectedIndex selects the item at i
func (l *SelectList) SetSelectedIndex(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("select %d of %d: %w", i, len(l.items), ErrIndexOutOfRange)
	}
	l.selected = i
	l.scrollToSelection()
	return nil
}

// SelectedValue returns the value of the selected item
func (l *SelectList) SelectedValue() (int, error) {
	if len(l.items) == 0 {
		return 0, ErrEmptyList
	}
	return l.items[l.selected].Value, nil
}

// SelectedItem returns the selected item
func (l *SelectList) SelectedItem() (Item, error) {
	if len(l.items) == 0 {
		return Item{}, ErrEmptyList
	}
	return l.items[l.selected], nil
}

// Dispose releases the list. Items are dropped.
func (l *SelectList) Dispose() {
	l.disposed = true
	l.focused = false
	l.items = nil
	l.selected, l.offset = 0, 0
}

// Disposed reports whether Dispose has run
func (l *SelectList) Disposed() bool {
	return l.disposed
}

func (l *SelectList) Focus() tea.Cmd {
	l.focused = true
	return nil
}

func (l *SelectList) Blur() {
	l.focused = false
}

func (l *SelectList) move(delta int) {
	if len(l.items) == 0 {
		return
	}
	l.selected = max(0, min(len(l.items)-1, l.selected+delta))
	l.scrollToSelection()
}

func (l *SelectList) scrollToSelection() {
	if l.selected < l.offset {
		l.offset = l.selected
	}
	if l.selected >= l.offset+l.rows {
		l.offset = l.selected - l.rows + 1
	}
}

func (l *SelectList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !l.focused {
			return nil
		}
		switch {
		case key.Matches(msg, l.keys.Up):
			l.move(-1)
		case key.Matches(msg, l.keys.Down):
			l.move(1)
		case key.Matches(msg, l.keys.Home):
			l.move(-len(l.items))
		case key.Matches(msg, l.keys.End):
			l.move(len(l.items))
		}
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			l.move(-1)
		case tea.MouseButtonWheelDown:
			l.move(1)
		}
	}
	return nil
}

func (l *SelectList) click(row int) {
	if i := l.offset + row; i < len(l.items) {
		l.selected = i
	}
}

// Lines renders the visible window of the list
func (l *SelectList) Lines(width int) []string {
	if len(l.items) == 0 {
		return []string{l.styles.Subtle.Render(padRight("(empty)", width))}
	}

	end := min(len(l.items), l.offset+l.rows)
	lines := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		marker := "  "
		if i == l.selected {
			marker = "> "
		}
		label := padRight(marker+l.items[i].Label, width)
		switch {
		case i == l.selected && l.focused:
			lines = append(lines, l.styles.DialogListActive.Render(label))
		case i == l.selected:
			lines = append(lines, l.styles.Selection.Render(label))
		default:
			lines = append(lines, l.styles.DialogListItem.Render(label))
		}
	}
	return lines
}

func padRight(s string, width int) string {
	if ansi.StringWidth(s) > width {
		return ansi.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-ansi.StringWidth(s))
}
