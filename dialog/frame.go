package dialog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrMarkup is wrapped by markup parse errors
var ErrMarkup = errors.New("malformed dialog markup")

// Widget is an interactive element mounted into a frame slot
type Widget interface {
	Disposable
	Focus() tea.Cmd
	Blur()
	Update(msg tea.Msg) tea.Cmd
	// Lines renders the widget at the given width
	Lines(width int) []string
}

// attacher is implemented by widgets that need the document's
// styles, keys or clipboard
type attacher interface {
	attach(doc *Document)
}

// clicker is implemented by widgets with clickable rows
type clicker interface {
	click(row int)
}

// Block is one body element: a text line or a widget slot
type Block struct {
	Text   string
	Slot   string
	Widget Widget
}

// Frame is the rendered structure of a dialog
type Frame struct {
	Title    string
	Blocks   []Block
	Buttons  []ButtonSpec
	Closable bool
	classes  []string
}

// parseMarkup splits markup into blocks. A line holding only [[name]] is a
// widget slot; any other use of [[ or ]] is rejected.
func parseMarkup(markup string) (*Frame, error) {
	f := &Frame{}
	if markup == "" {
		return f, nil
	}

	seen := make(map[string]bool)
	for i, line := range strings.Split(markup, "\n") {
		trimmed := strings.TrimSpace(line)
		inner, isSlot := strings.CutPrefix(trimmed, "[[")
		if isSlot {
			inner, isSlot = strings.CutSuffix(inner, "]]")
		}
		if !isSlot {
			if strings.Contains(line, "[[") || strings.Contains(line, "]]") {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMarkup, i+1, line)
			}
			f.Blocks = append(f.Blocks, Block{Text: line})
			continue
		}
		if !validSlotName(inner) {
			return nil, fmt.Errorf("%w: line %d: bad slot name %q", ErrMarkup, i+1, inner)
		}
		if seen[inner] {
			return nil, fmt.Errorf("%w: line %d: duplicate slot %q", ErrMarkup, i+1, inner)
		}
		seen[inner] = true
		f.Blocks = append(f.Blocks, Block{Slot: inner})
	}
	return f, nil
}

func validSlotName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_'):
		default:
			return false
		}
	}
	return true
}

// Mount places w into the named slot
func (f *Frame) Mount(slot string, w Widget) error {
	if w == nil {
		return fmt.Errorf("mount %q: nil widget", slot)
	}
	for i := range f.Blocks {
		if f.Blocks[i].Slot != slot {
			continue
		}
		if f.Blocks[i].Widget != nil {
			return fmt.Errorf("mount %q: slot already filled", slot)
		}
		f.Blocks[i].Widget = w
		return nil
	}
	return fmt.Errorf("mount %q: no such slot", slot)
}

// Widget returns the widget mounted in slot, or nil
func (f *Frame) Widget(slot string) Widget {
	for _, b := range f.Blocks {
		if b.Slot == slot {
			return b.Widget
		}
	}
	return nil
}

// Widgets returns the mounted widgets in markup order
func (f *Frame) Widgets() []Widget {
	var ws []Widget
	for _, b := range f.Blocks {
		if b.Widget != nil {
			ws = append(ws, b.Widget)
		}
	}
	return ws
}

// AddClass tags the frame for host styling
func (f *Frame) AddClass(class string) {
	if !f.HasClass(class) {
		f.classes = append(f.classes, class)
	}
}

// HasClass reports whether the frame carries class
func (f *Frame) HasClass(class string) bool {
	return slices.Contains(f.classes, class)
}

// Classes returns the frame classes in the order they were added
func (f *Frame) Classes() []string {
	return slices.Clone(f.classes)
}

func (f *Frame) validate() error {
	for _, b := range f.Blocks {
		if b.Slot != "" && b.Widget == nil {
			return fmt.Errorf("%w: slot %q has no widget", ErrMarkup, b.Slot)
		}
	}
	return nil
}
