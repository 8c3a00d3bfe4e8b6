package dialog

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestDoc(t *testing.T) *Document {
	t.Helper()
	doc := NewDocument(context.Background(), Options{})
	doc.SetSize(80, 24)
	return doc
}

// run executes cmd and feeds every message it produces back through doc,
// the way the bubbletea loop would, until nothing is left. It returns the
// messages in the order the host would see them.
func run(doc *Document, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			out = append(out, msg)
			queue = append(queue, doc.Update(msg))
		}
	}
	return out
}

// send routes msg through doc and runs whatever it returns
func send(doc *Document, msg tea.Msg) []tea.Msg {
	return run(doc, doc.Update(msg))
}

func closedIDs(msgs []tea.Msg) []int {
	var ids []int
	for _, m := range msgs {
		if c, ok := m.(ClosedMsg); ok {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func failures(msgs []tea.Msg) []FailedMsg {
	var out []FailedMsg
	for _, m := range msgs {
		if f, ok := m.(FailedMsg); ok {
			out = append(out, f)
		}
	}
	return out
}

// countingResource records how often and in which order it was released
type countingResource struct {
	name  string
	count int
	log   *[]string
}

func (r *countingResource) Dispose() {
	r.count++
	if r.log != nil {
		*r.log = append(*r.log, r.name)
	}
}

func background(width, height int) string {
	line := strings.Repeat(".", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// basic returns a configured dialog with the given buttons
func basic(t *testing.T, buttons ...ButtonSpec) *Dialog {
	t.Helper()
	d := New()
	if err := d.SetTitle("Test"); err != nil {
		t.Fatal(err)
	}
	if err := d.SetContent("Body text"); err != nil {
		t.Fatal(err)
	}
	for _, b := range buttons {
		if err := d.AddButton(b); err != nil {
			t.Fatal(err)
		}
	}
	return d
}
