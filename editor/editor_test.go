package editor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cornish/cellnotes/config"
	"github.com/cornish/cellnotes/dialog"
	"github.com/cornish/cellnotes/matrix"
	"github.com/cornish/cellnotes/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func typed(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+q":
		return tea.KeyMsg{Type: tea.KeyCtrlQ}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestEditor(t *testing.T) (*Editor, *matrix.Notebook) {
	t.Helper()
	nb := matrix.NewNotebook()
	e := New(matrix.SampleMatrix(), nb, Options{})
	e.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return e, nb
}

// press feeds each message to e and runs the resulting commands to
// completion, the way the bubbletea loop would
func press(e *Editor, msgs ...tea.Msg) []tea.Msg {
	var out []tea.Msg
	for _, msg := range msgs {
		_, cmd := e.Update(msg)
		queue := []tea.Cmd{cmd}
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			if c == nil {
				continue
			}
			switch m := c().(type) {
			case nil:
			case tea.BatchMsg:
				queue = append(queue, m...)
			default:
				out = append(out, m)
				_, next := e.Update(m)
				queue = append(queue, next)
			}
		}
	}
	return out
}

func hasQuit(msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func message(e *Editor) string {
	m, _ := e.statusbar.Message()
	return m
}

func TestAddNote(t *testing.T) {
	e, nb := newTestEditor(t)
	press(e, typed("l"), typed("j"))
	if taxon, col := e.Cell(); taxon != 1 || col != 1 {
		t.Fatalf("Cell() = %d, %d", taxon, col)
	}

	press(e, typed("n"))
	active := e.Document().Active()
	if active == nil || active.Title() != "Felis catus / Claw retraction" {
		t.Fatalf("active dialog = %v", active)
	}

	press(e, typed("down"), typed("tab"), typed("retractile"), typed("ctrl+s"))
	notes := nb.NotesFor(matrix.Target{Taxon: 1, Column: 1})
	if len(notes) != 1 || notes[0].Status != matrix.Scored || notes[0].Text != "retractile" {
		t.Fatalf("notes = %+v", notes)
	}
	if e.Document().Active() != nil || e.Document().Len() != 0 {
		t.Error("dialog still attached after SAVE")
	}
	if message(e) != "Note saved" {
		t.Errorf("message = %q", message(e))
	}
}

func TestAddNoteCancelled(t *testing.T) {
	e, nb := newTestEditor(t)
	press(e, typed("n"), typed("esc"))
	if nb.Len() != 0 || message(e) != "Cancelled" {
		t.Errorf("Len() = %d, message = %q", nb.Len(), message(e))
	}
}

func TestAddNoteUsesConfiguredStatuses(t *testing.T) {
	nb := matrix.NewNotebook()
	cfg := config.DefaultConfig()
	cfg.Statuses = []config.StatusEntry{{Name: "Checked", Code: 5}, {Name: "Doubtful", Code: 6}}
	e := New(matrix.SampleMatrix(), nb, Options{Config: cfg})

	press(e, typed("n"), typed("down"), typed("ctrl+s"))
	notes := nb.NotesFor(matrix.Target{Taxon: 0, Column: 0})
	if len(notes) != 1 || notes[0].Status != 6 {
		t.Errorf("notes = %+v", notes)
	}
	if !strings.Contains(e.summary(0), "Doubtful") {
		t.Errorf("summary = %q", e.summary(0))
	}
}

func TestAddCommentRejectsBlank(t *testing.T) {
	e, nb := newTestEditor(t)
	press(e, typed("c"), typed("ctrl+s"))

	active := e.Document().Active()
	if active == nil {
		t.Fatal("dialog closed after a failed save")
	}
	if active.Err() != matrix.ErrEmptyNote.Error() {
		t.Errorf("dialog error = %q", active.Err())
	}
	if !strings.Contains(message(e), matrix.ErrEmptyNote.Error()) {
		t.Errorf("message = %q", message(e))
	}

	press(e, typed("looks fine"), typed("ctrl+s"))
	if got := nb.NotesFor(matrix.MatrixTarget); len(got) != 1 || got[0].Text != "looks fine" {
		t.Errorf("comments = %+v", got)
	}
	if message(e) != "Comment saved" {
		t.Errorf("message = %q", message(e))
	}
}

func TestCharacterComment(t *testing.T) {
	e, nb := newTestEditor(t)
	press(e, typed("j"), typed("m"))
	if a := e.Document().Active(); a == nil || !a.Frame().HasClass(dialog.CharacterClass) {
		t.Fatalf("active dialog = %v", a)
	}

	press(e, typed("down"), typed("down"), typed("ctrl+s"))
	got := nb.NotesFor(matrix.Target{Taxon: -1, Column: 1, State: 2})
	if len(got) != 1 {
		t.Errorf("comments on state 2 = %+v", got)
	}
}

func TestClearNotes(t *testing.T) {
	e, nb := newTestEditor(t)
	ctx := context.Background()
	nb.AddCellNote(ctx, 0, 0, matrix.Scored, "a")
	nb.AddCellNote(ctx, 0, 0, matrix.NPA, "b")
	nb.AddCellNote(ctx, 1, 0, matrix.Scored, "other taxon")

	press(e, typed("d"))
	a := e.Document().Active()
	if a == nil || a.Title() != "Clear Notes" {
		t.Fatalf("active dialog = %v", a)
	}
	press(e, typed("n"))
	if nb.Len() != 3 {
		t.Fatal("NO removed notes")
	}

	press(e, typed("d"), typed("enter"))
	if nb.Len() != 1 || message(e) != "Deleted 2 notes" {
		t.Errorf("Len() = %d, message = %q", nb.Len(), message(e))
	}

	press(e, typed("d"))
	if e.Document().Active() != nil || message(e) != "No notes on this cell" {
		t.Errorf("message = %q", message(e))
	}
}

func TestRevert(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{"keep comments", "y", 1},
		{"discard all", "n", 0},
		{"cancel", "c", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, nb := newTestEditor(t)
			ctx := context.Background()
			nb.AddCellNote(ctx, 0, 0, matrix.Scored, "cell")
			nb.AddCharacterComment(ctx, 2, 0, matrix.Unscored, "character")
			nb.AddComment(ctx, "matrix")

			press(e, typed("r"), typed(tt.answer))
			if nb.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", nb.Len(), tt.want)
			}
			if e.Document().Len() != 0 {
				t.Error("confirm dialog still attached")
			}
		})
	}
}

func TestQuit(t *testing.T) {
	e, nb := newTestEditor(t)
	if !hasQuit(press(e, typed("ctrl+q"))) {
		t.Fatal("quit with no notes should exit at once")
	}

	nb.AddComment(context.Background(), "unsaved")
	if msgs := press(e, typed("ctrl+q")); hasQuit(msgs) {
		t.Fatal("quit with notes should ask first")
	}
	if msgs := press(e, typed("n")); hasQuit(msgs) || e.Document().Active() != nil {
		t.Fatal("NO should stay in the browser")
	}
	if !hasQuit(press(e, typed("ctrl+q"), typed("y"))) {
		t.Error("YES should quit")
	}
}

func TestHelp(t *testing.T) {
	e, _ := newTestEditor(t)
	press(e, typed("?"))
	if e.Document().Active() == nil {
		t.Fatal("help did not open")
	}
	view := ansi.Strip(e.View())
	for _, want := range []string{"Add Cell Note", "Comment on Character", "Ctrl+q"} {
		if !strings.Contains(view, want) {
			t.Errorf("help lacks %q", want)
		}
	}
}

func TestKeysGoToDialogWhileOpen(t *testing.T) {
	e, nb := newTestEditor(t)
	press(e, typed("c"), typed("n"))
	if e.Document().Len() != 1 {
		t.Fatalf("Len() = %d, want only the comment dialog", e.Document().Len())
	}
	press(e, typed("ctrl+s"))
	if got := nb.NotesFor(matrix.MatrixTarget); len(got) != 1 || got[0].Text != "n" {
		t.Errorf("comments = %+v", got)
	}
}

func TestConfigErrorShownOnInit(t *testing.T) {
	e, _ := newTestEditor(t)
	e.SetConfigError(&config.ConfigLoadError{FilePath: "/tmp/config.toml", Err: errors.New("bad value")})
	e.Init()

	a := e.Document().Active()
	if a == nil || a.Title() != "Error" {
		t.Fatalf("active dialog = %v", a)
	}
	press(e, typed("enter"))
	if e.Document().Active() != nil {
		t.Error("OK did not close the error")
	}
}

func TestMouseSelectsCharacter(t *testing.T) {
	e, _ := newTestEditor(t)
	press(e, tea.MouseMsg{X: 5, Y: headerRows + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if _, col := e.Cell(); col != 2 {
		t.Errorf("column = %d, want 2", col)
	}
	press(e, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if _, col := e.Cell(); col != 3 {
		t.Errorf("column after wheel = %d, want 3", col)
	}
	press(e, tea.MouseMsg{X: 5, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if _, col := e.Cell(); col != 3 {
		t.Error("a header click moved the cursor")
	}
}

func TestViewLayout(t *testing.T) {
	e, nb := newTestEditor(t)
	nb.AddCellNote(context.Background(), 0, 0, matrix.NPA, "x")

	lines := strings.Split(ansi.Strip(e.View()), "\n")
	if len(lines) != 30 {
		t.Fatalf("View() has %d lines, want 30", len(lines))
	}
	for i, line := range lines[:29] {
		if w := ansi.StringWidth(line); w != 100 {
			t.Errorf("line %d width = %d", i, w)
		}
	}
	if !strings.Contains(lines[0], "Taxon 1/4: Canis lupus") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[headerRows], ">   1  Carnassial notch") || !strings.Contains(lines[headerRows], "1 note (NPA)") {
		t.Errorf("first row = %q", lines[headerRows])
	}
}

func TestNewUsesStyles(t *testing.T) {
	styles := ui.NewStyles(config.DefaultTheme())
	e := New(matrix.SampleMatrix(), matrix.NewNotebook(), Options{Styles: &styles, Box: &ui.ASCIIBox})
	press(e, typed("n"))
	if !strings.Contains(ansi.Strip(e.View()), "[x]") {
		t.Error("ASCII box characters not used")
	}
}
