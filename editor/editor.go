// Package editor is the host application: a character matrix browser that
// opens the note and comment dialogs and stores what they collect.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cornish/cellnotes/clipboard"
	"github.com/cornish/cellnotes/config"
	"github.com/cornish/cellnotes/dialog"
	"github.com/cornish/cellnotes/matrix"
	"github.com/cornish/cellnotes/ui"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures an Editor. Zero fields take defaults.
type Options struct {
	Context   context.Context
	Config    *config.Config
	Keys      *config.KeybindingsConfig
	Styles    *ui.Styles
	Box       *ui.BoxChars
	Clipboard *clipboard.Clipboard
	Logger    *slog.Logger
}

type keyMap struct {
	Up               key.Binding
	Down             key.Binding
	Left             key.Binding
	Right            key.Binding
	AddNote          key.Binding
	AddComment       key.Binding
	CharacterComment key.Binding
	ClearNotes       key.Binding
	Revert           key.Binding
	Help             key.Binding
	Quit             key.Binding
}

func newKeyMap(kb *config.KeybindingsConfig) keyMap {
	bind := func(action string) key.Binding {
		return kb.GetBinding(action).Binding(action)
	}
	return keyMap{
		Up:               bind("cursor_up"),
		Down:             bind("cursor_down"),
		Left:             key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "Previous Taxon")),
		Right:            key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "Next Taxon")),
		AddNote:          bind("add_note"),
		AddComment:       bind("add_comment"),
		CharacterComment: bind("character_comment"),
		ClearNotes:       bind("clear_notes"),
		Revert:           bind("revert"),
		Help:             bind("help"),
		Quit:             bind("quit"),
	}
}

// opened remembers the notebook size when a saving dialog was shown, so the
// close can be reported as a save or a cancel
type opened struct {
	before int
	saved  string
}

// Editor is the main Bubbletea model of the matrix browser
type Editor struct {
	matrix   *matrix.Matrix
	notebook *matrix.Notebook

	// UI components
	doc       *dialog.Document
	statusbar *ui.StatusBar
	styles    ui.Styles
	keys      keyMap
	bindings  *config.KeybindingsConfig

	// Cursor and scroll
	taxon  int
	column int
	scroll int // first visible character row

	width  int
	height int

	opened    map[int]opened
	configErr error

	config *config.Config
	logger *slog.Logger
}

// New creates an editor browsing m and storing notes in nb
func New(m *matrix.Matrix, nb *matrix.Notebook, opts Options) *Editor {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Keys == nil {
		opts.Keys = config.DefaultKeybindings()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	styles := ui.DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	e := &Editor{
		matrix:    m,
		notebook:  nb,
		statusbar: ui.NewStatusBar(styles),
		styles:    styles,
		keys:      newKeyMap(opts.Keys),
		bindings:  opts.Keys,
		width:     80,
		height:    24,
		opened:    make(map[int]opened),
		config:    opts.Config,
		logger:    opts.Logger,
	}
	e.doc = dialog.NewDocument(opts.Context, dialog.Options{
		Styles:    &styles,
		Box:       opts.Box,
		Keys:      opts.Keys,
		Layout:    &opts.Config.Dialog,
		Clipboard: opts.Clipboard,
		Logger:    opts.Logger,
	})
	e.doc.SetSize(e.width, e.bodyHeight())
	e.statusbar.SetWidth(e.width)
	e.statusbar.SetTitle(m.Title)
	e.statusbar.SetHint(e.hint())
	return e
}

// SetConfigError records a configuration problem to show once the program
// starts
func (e *Editor) SetConfigError(err error) {
	e.configErr = err
}

// Document returns the dialog layer
func (e *Editor) Document() *dialog.Document {
	return e.doc
}

// Cell returns the taxon and character under the cursor
func (e *Editor) Cell() (taxon, column int) {
	return e.taxon, e.column
}

// Init implements tea.Model
func (e *Editor) Init() tea.Cmd {
	if e.configErr != nil {
		if _, err := dialog.ShowError(e.doc, e.configErr); err != nil {
			e.logger.Error("cannot show config error", "err", err)
		}
	}
	return tea.SetWindowTitle("cellnotes - " + e.matrix.Title)
}

// Update implements tea.Model
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
		e.statusbar.SetWidth(msg.Width)
		e.doc.SetSize(msg.Width, e.bodyHeight())
		e.ensureVisible()
		return e, nil

	case dialog.ClosedMsg:
		e.dialogClosed(msg.ID)
		return e, nil

	case dialog.FailedMsg:
		e.logger.Warn("note not saved", "dialog", msg.ID, "err", msg.Err)
		e.statusbar.SetMessage("Not saved: "+msg.Err.Error(), ui.MessageError)
		return e, nil

	case tea.KeyMsg:
		if e.doc.Active() != nil {
			return e, e.doc.Update(msg)
		}
		return e.handleKey(msg)

	case tea.MouseMsg:
		if e.doc.Active() != nil {
			return e, e.doc.Update(msg)
		}
		return e.handleMouse(msg)
	}

	// Completions of dialog callbacks
	return e, e.doc.Update(msg)
}

// handleKey handles keyboard input while no dialog is open
func (e *Editor) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e.statusbar.ClearMessage()

	switch {
	case key.Matches(msg, e.keys.Quit):
		return e, e.quit()
	case key.Matches(msg, e.keys.Up):
		e.moveColumn(-1)
	case key.Matches(msg, e.keys.Down):
		e.moveColumn(1)
	case key.Matches(msg, e.keys.Left):
		e.moveTaxon(-1)
	case key.Matches(msg, e.keys.Right):
		e.moveTaxon(1)
	case key.Matches(msg, e.keys.AddNote):
		e.addNote()
	case key.Matches(msg, e.keys.AddComment):
		e.addComment()
	case key.Matches(msg, e.keys.CharacterComment):
		e.characterComment()
	case key.Matches(msg, e.keys.ClearNotes):
		e.clearNotes()
	case key.Matches(msg, e.keys.Revert):
		e.revert()
	case key.Matches(msg, e.keys.Help):
		e.showHelp()
	}
	return e, nil
}

// handleMouse handles mouse input while no dialog is open
func (e *Editor) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return e, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		e.moveColumn(-1)
	case tea.MouseButtonWheelDown:
		e.moveColumn(1)
	case tea.MouseButtonLeft:
		if col, ok := e.columnAt(msg.Y); ok {
			e.column = col
		}
	}
	return e, nil
}

func (e *Editor) hasCell() bool {
	return len(e.matrix.Taxa) > 0 && len(e.matrix.Columns) > 0
}

func (e *Editor) moveColumn(delta int) {
	if len(e.matrix.Columns) == 0 {
		return
	}
	e.column = max(0, min(len(e.matrix.Columns)-1, e.column+delta))
	e.ensureVisible()
}

func (e *Editor) moveTaxon(delta int) {
	if len(e.matrix.Taxa) == 0 {
		return
	}
	e.taxon = max(0, min(len(e.matrix.Taxa)-1, e.taxon+delta))
}

// show puts d on screen. A non-empty saved message marks a dialog whose
// close is reported as a save when the notebook grew.
func (e *Editor) show(d *dialog.Dialog, saved string) {
	if err := e.doc.Show(d); err != nil {
		e.logger.Error("cannot show dialog", "title", d.Title(), "err", err)
		e.statusbar.SetMessage("Error: "+err.Error(), ui.MessageError)
		return
	}
	if saved != "" {
		e.opened[d.ID()] = opened{before: e.notebook.Len(), saved: saved}
	}
}

func (e *Editor) dialogClosed(id int) {
	o, ok := e.opened[id]
	if !ok {
		return
	}
	delete(e.opened, id)
	if e.notebook.Len() > o.before {
		e.statusbar.SetMessage(o.saved, ui.MessageInfo)
	} else {
		e.statusbar.SetMessage("Cancelled", ui.MessageInfo)
	}
}

func (e *Editor) noteOptions(title string) []dialog.NoteOption {
	return []dialog.NoteOption{
		dialog.WithTitle(title),
		dialog.WithStatusOptions(e.config.StatusOptions()),
		dialog.WithLayout(e.config.Dialog),
	}
}

func (e *Editor) addNote() {
	if !e.hasCell() {
		return
	}
	taxon, column := e.taxon, e.column
	title := fmt.Sprintf("%s / %s", e.matrix.Taxa[taxon], e.matrix.Columns[column].Label)
	n := dialog.NewAddNote(func(ctx context.Context, status matrix.StatusCode, text string) error {
		return e.notebook.AddCellNote(ctx, taxon, column, status, text)
	}, e.noteOptions(title)...)
	e.show(n.Dialog, "Note saved")
}

func (e *Editor) addComment() {
	c := dialog.NewAddComment(e.notebook.AddComment, e.noteOptions("Comment on "+e.matrix.Title)...)
	e.show(c.Dialog, "Comment saved")
}

func (e *Editor) characterComment() {
	if len(e.matrix.Columns) == 0 {
		return
	}
	column := e.column
	ch := e.matrix.Column(column)
	c := dialog.NewAddCharacterComment(ch, func(ctx context.Context, state matrix.StatusCode, text string) error {
		return e.notebook.AddCharacterComment(ctx, column, int(state), matrix.Unscored, text)
	}, e.noteOptions("Comment on "+ch.Label)...)
	e.show(c.Dialog, "Character comment saved")
}

func (e *Editor) clearNotes() {
	if !e.hasCell() {
		return
	}
	target := matrix.Target{Taxon: e.taxon, Column: e.column}
	n := len(e.notebook.NotesFor(target))
	if n == 0 {
		e.statusbar.SetMessage("No notes on this cell", ui.MessageInfo)
		return
	}
	c := dialog.NewConfirm("Clear Notes",
		fmt.Sprintf("Delete %d %s on %s / %s?", n, plural(n, "note"), e.matrix.Taxa[e.taxon], e.matrix.Columns[e.column].Label),
		func() tea.Cmd {
			removed := e.notebook.Clear(target)
			e.logger.Info("cell notes cleared", "taxon", target.Taxon, "column", target.Column, "removed", removed)
			e.statusbar.SetMessage(fmt.Sprintf("Deleted %d %s", removed, plural(removed, "note")), ui.MessageInfo)
			return nil
		}, nil)
	e.show(c.Dialog, "")
}

// revert drops the session's notes. YES keeps matrix comments, NO drops
// everything, CANCEL keeps it all.
func (e *Editor) revert() {
	if e.notebook.Len() == 0 {
		e.statusbar.SetMessage("Nothing to revert", ui.MessageInfo)
		return
	}
	c := dialog.NewCancelableConfirm("Revert Changes",
		"Discard cell and character notes. Keep the matrix comments?",
		func(keepComments bool) tea.Cmd {
			removed := e.notebook.Filter(func(n matrix.Note) bool {
				return keepComments && n.Target == matrix.MatrixTarget
			})
			e.logger.Info("notes reverted", "removed", removed, "kept_comments", keepComments)
			e.statusbar.SetMessage(fmt.Sprintf("Discarded %d %s", removed, plural(removed, "note")), ui.MessageInfo)
			return nil
		})
	e.show(c.Dialog, "")
}

func (e *Editor) quit() tea.Cmd {
	n := e.notebook.Len()
	if n == 0 {
		return tea.Quit
	}
	c := dialog.NewConfirm("Quit", fmt.Sprintf("Quit and discard %d %s?", n, plural(n, "note")),
		func() tea.Cmd { return tea.Quit }, nil)
	e.show(c.Dialog, "")
	return nil
}

func (e *Editor) showHelp() {
	var sb strings.Builder
	for _, action := range []string{
		"cursor_up", "cursor_down", "add_note", "add_comment",
		"character_comment", "clear_notes", "revert", "quit",
	} {
		fmt.Fprintf(&sb, "%-10s %s\n", e.bindings.GetBinding(action).DisplayString(), config.ActionNames[action])
	}
	fmt.Fprintf(&sb, "%-10s %s", "Left/Right", "Previous/Next Taxon")

	a := dialog.NewAlert(sb.String())
	e.show(a.Dialog, "")
}

func (e *Editor) hint() string {
	parts := make([]string, 0, 4)
	for _, action := range []string{"add_note", "add_comment", "character_comment", "help"} {
		b := e.bindings.GetBinding(action)
		if keys := b.Keys(); len(keys) > 0 {
			parts = append(parts, config.FormatKeyForDisplay(keys[0])+" "+strings.ToLower(config.ActionNames[action]))
		}
	}
	return strings.Join(parts, "  ")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
