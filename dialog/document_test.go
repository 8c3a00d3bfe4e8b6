package dialog

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cornish/cellnotes/clipboard"
	"github.com/cornish/cellnotes/config"
	"github.com/cornish/cellnotes/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// click returns a left press on the first region of d matching pick.
// d must have been painted by View.
func click(t *testing.T, d *Dialog, pick func(hitRegion) bool) tea.MouseMsg {
	t.Helper()
	for _, r := range d.regions {
		if pick(r) {
			return tea.MouseMsg{
				X:      d.originX + r.x0,
				Y:      d.originY + r.y,
				Action: tea.MouseActionPress,
				Button: tea.MouseButtonLeft,
			}
		}
	}
	t.Fatal("no matching region")
	return tea.MouseMsg{}
}

func TestDocumentViewWithoutDialog(t *testing.T) {
	doc := newTestDoc(t)
	bg := background(80, 24)
	if got := doc.View(bg); got != bg {
		t.Error("View() changed the background with no dialog shown")
	}
}

func TestDocumentView(t *testing.T) {
	doc := NewDocument(context.Background(), Options{Box: &ui.ASCIIBox})
	doc.SetSize(80, 24)
	c := NewConfirm("Delete", "Delete all notes?", nil, nil)
	show(t, doc, c.Dialog)

	lines := strings.Split(doc.View(background(80, 24)), "\n")
	if len(lines) != 24 {
		t.Fatalf("View() has %d lines, want 24", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 80 {
			t.Errorf("line %d width = %d, want 80", i, w)
		}
	}

	view := ansi.Strip(strings.Join(lines, "\n"))
	for _, want := range []string{" Delete ", "[x]", "Delete all notes?", "[ Yes ]", "[ No ]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() lacks %q", want)
		}
	}
	if c.originX != (80-56)/2 {
		t.Errorf("originX = %d, want centered", c.originX)
	}
}

func TestDocumentViewShowsError(t *testing.T) {
	doc := newTestDoc(t)
	n := NewAddNote(nil, WithStatusOptions(nil))
	show(t, doc, n.Dialog)
	send(doc, keyCtrlS)

	view := ansi.Strip(doc.View(background(80, 24)))
	if !strings.Contains(view, ErrEmptyList.Error()) {
		t.Error("View() does not show the dialog error")
	}
}

func TestDocumentRoutesToTopmost(t *testing.T) {
	doc := newTestDoc(t)
	first, err := ShowAlert(doc, "first")
	if err != nil {
		t.Fatal(err)
	}
	second, err := ShowAlert(doc, "second")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Active() != second.Dialog {
		t.Fatal("the newest dialog should be active")
	}

	msgs := send(doc, keyEnter)
	if ids := closedIDs(msgs); len(ids) != 1 || ids[0] != second.ID() {
		t.Errorf("closed ids = %v, want [%d]", ids, second.ID())
	}
	if first.State() != Visible || doc.Active() != first.Dialog {
		t.Errorf("first dialog state = %s", first.State())
	}
}

func TestDocumentHiddenDialogIsNotActive(t *testing.T) {
	doc := newTestDoc(t)
	d := basic(t, OK)
	show(t, doc, d)
	if err := d.SetVisible(false); err != nil {
		t.Fatal(err)
	}
	if doc.Active() != nil || doc.Len() != 1 {
		t.Errorf("Active() = %v, Len() = %d", doc.Active(), doc.Len())
	}
	send(doc, keyEnter)
	if d.State() != Hidden {
		t.Error("a hidden dialog received input")
	}
}

func TestDocumentMouseButton(t *testing.T) {
	doc := newTestDoc(t)
	no := false
	c := NewConfirm("Delete", "Sure?", nil, func() tea.Cmd {
		no = true
		return nil
	})
	show(t, doc, c.Dialog)
	doc.View(background(80, 24))

	msg := click(t, c.Dialog, func(r hitRegion) bool { return r.button == ButtonNo })
	msgs := send(doc, msg)
	if !no || len(closedIDs(msgs)) != 1 {
		t.Errorf("onNo called %v, msgs %v", no, msgs)
	}
}

func TestDocumentMouseCloseControl(t *testing.T) {
	doc := newTestDoc(t)
	called := false
	c := NewCancelableConfirm("Quit", "Save first?", func(bool) tea.Cmd {
		called = true
		return nil
	})
	show(t, doc, c.Dialog)
	doc.View(background(80, 24))

	miss := click(t, c.Dialog, func(r hitRegion) bool { return r.close })
	miss.Y++
	send(doc, miss)
	if c.State() != Visible {
		t.Fatal("a click off the control closed the dialog")
	}

	msgs := send(doc, click(t, c.Dialog, func(r hitRegion) bool { return r.close }))
	if called || len(closedIDs(msgs)) != 1 {
		t.Errorf("called %v msgs %v", called, msgs)
	}
}

func TestDocumentMouseListRow(t *testing.T) {
	doc := newTestDoc(t)
	n := NewAddNote(nil)
	show(t, doc, n.Dialog)
	send(doc, keyTab)
	doc.View(background(80, 24))

	msg := click(t, n.Dialog, func(r hitRegion) bool { return r.widget == n.List() && r.row == 2 })
	send(doc, msg)
	if n.List().SelectedIndex() != 2 {
		t.Errorf("SelectedIndex() = %d, want 2", n.List().SelectedIndex())
	}
	if n.focusedWidget() != n.List() {
		t.Error("clicking the list should focus it")
	}

	msg.Button = tea.MouseButtonWheelUp
	send(doc, msg)
	if n.List().SelectedIndex() != 1 {
		t.Errorf("wheel up: SelectedIndex() = %d, want 1", n.List().SelectedIndex())
	}
}

func TestDocumentFocusRing(t *testing.T) {
	doc := newTestDoc(t)
	n := NewAddNote(nil)
	show(t, doc, n.Dialog)

	want := []ButtonKey{"", ButtonSave, ButtonCancel, ""}
	for i, w := range want {
		send(doc, keyTab)
		if got := n.FocusedButton(); got != w {
			t.Errorf("tab %d: focus %q, want %q", i+1, got, w)
		}
	}

	send(doc, keyShiftTab)
	if n.FocusedButton() != ButtonCancel {
		t.Errorf("shift+tab from the list: focus %q", n.FocusedButton())
	}
	send(doc, tea.KeyMsg{Type: tea.KeyLeft})
	if n.FocusedButton() != ButtonSave {
		t.Errorf("left: focus %q", n.FocusedButton())
	}
}

func TestDocumentClipboard(t *testing.T) {
	var out bytes.Buffer
	clip := clipboard.New(&out, clipboard.WithSystem(nil), clipboard.WithSSH(false))
	doc := NewDocument(context.Background(), Options{Clipboard: clip})
	doc.SetSize(80, 24)

	c := NewAddComment(nil)
	show(t, doc, c.Dialog)

	if err := clip.Copy("from elsewhere"); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	send(doc, tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := c.Text().Value(); got != "from elsewhere" {
		t.Errorf("after paste Value() = %q", got)
	}

	send(doc, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !strings.Contains(out.String(), "]52;") {
		t.Errorf("copy wrote %q, want an OSC52 sequence", out.String())
	}
}

func TestDocumentCustomKeys(t *testing.T) {
	kb := config.DefaultKeybindings()
	kb.SetBinding("submit", config.KeyBinding{Primary: "ctrl+o"})
	doc := NewDocument(context.Background(), Options{Keys: kb})
	doc.SetSize(80, 24)

	var saved string
	c := NewAddComment(func(_ context.Context, text string) error {
		saved = text
		return nil
	})
	show(t, doc, c.Dialog)
	send(doc, runes("x"))
	send(doc, keyCtrlS)
	if saved != "" || c.State() != Visible {
		t.Fatal("the default submit key should be unbound")
	}
	send(doc, tea.KeyMsg{Type: tea.KeyCtrlO})
	if saved != "x" {
		t.Errorf("saved %q, want %q", saved, "x")
	}
}

func TestDocumentWindowSize(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{120, config.DefaultConfig().Dialog.Width},
		{40, 40},
		{5, 12},
	}
	for _, tt := range tests {
		doc := newTestDoc(t)
		send(doc, tea.WindowSizeMsg{Width: tt.width, Height: 30})
		if got := doc.dialogWidth(); got != tt.want {
			t.Errorf("width %d: dialogWidth() = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestOverlayLineAt(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		bg     string
		offset int
		want   string
	}{
		{"middle", "XY", "abcdef", 2, "abXYef"},
		{"start", "XY", "abcdef", 0, "XYcdef"},
		{"past end", "XY", "ab", 4, "ab  XY"},
		{"styled background", "XY", "\x1b[31mabcdef\x1b[0m", 1, "aXYdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ansi.Strip(overlayLineAt(tt.line, tt.bg, tt.offset)); got != tt.want {
				t.Errorf("overlayLineAt() = %q, want %q", got, tt.want)
			}
		})
	}
}
