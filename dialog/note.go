package dialog

import (
	"context"

	"github.com/cornish/cellnotes/config"
	"github.com/cornish/cellnotes/matrix"
)

// NoteOption configures the note and comment dialogs
type NoteOption func(*noteConfig)

type noteConfig struct {
	title      string
	statuses   []matrix.StatusOption
	textHeight int
	listRows   int
}

func newNoteConfig(title string, opts []NoteOption) noteConfig {
	def := config.DefaultConfig().Dialog
	cfg := noteConfig{
		title:      title,
		statuses:   matrix.DefaultStatusOptions(),
		textHeight: def.TextHeight,
		listRows:   def.ListRows,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithTitle overrides the dialog title
func WithTitle(title string) NoteOption {
	return func(c *noteConfig) { c.title = title }
}

// WithStatusOptions sets the status list of AddNote, in display order
func WithStatusOptions(opts []matrix.StatusOption) NoteOption {
	return func(c *noteConfig) { c.statuses = opts }
}

// WithLayout takes the text field height and list rows from cfg
func WithLayout(cfg config.DialogConfig) NoteOption {
	return func(c *noteConfig) {
		if cfg.TextHeight > 0 {
			c.textHeight = cfg.TextHeight
		}
		if cfg.ListRows > 0 {
			c.listRows = cfg.ListRows
		}
	}
}

// AddComment collects a free-text comment
type AddComment struct {
	*Dialog
	text   *TextField
	onSave func(ctx context.Context, text string) error
}

// NewAddComment creates a comment dialog. SAVE passes the text to onSave
// and disposes the dialog once onSave returns nil. Other buttons do nothing;
// the title close control dismisses it.
func NewAddComment(onSave func(ctx context.Context, text string) error, opts ...NoteOption) *AddComment {
	cfg := newNoteConfig("Add Comment", opts)
	c := &AddComment{
		text:   NewTextField(cfg.textHeight),
		onSave: onSave,
	}
	c.Dialog = mustPolicy(Policy{
		Title:   cfg.title,
		Markup:  "Comment:\n[[text]]",
		Buttons: []ButtonSpec{Save, Cancel},
		Build: func(f *Frame) error {
			return f.Mount("text", c.text)
		},
		Select: c.selected,
	})
	c.Own(c.text)
	return c
}

// Text returns the comment field
func (c *AddComment) Text() *TextField { return c.text }

func (c *AddComment) selected(ev SelectEvent) Result {
	if ev.Key != ButtonSave {
		return Hold(nil)
	}
	text := c.text.Value()
	return Hold(c.Await(ButtonSave, func(ctx context.Context) error {
		if c.onSave == nil {
			return nil
		}
		return c.onSave(ctx, text)
	}, c.Dispose))
}

// AddNote collects a status and free text
type AddNote struct {
	*Dialog
	list   *SelectList
	text   *TextField
	onSave func(ctx context.Context, status matrix.StatusCode, text string) error
}

// noteLayout is what AddNote and AddCharacterComment differ in
type noteLayout struct {
	markup   string
	classes  []string
	populate func(l *SelectList)
}

// NewAddNote creates a note dialog. The list holds the status options in
// order; SAVE passes the selected code and the text to onSave and closes
// the dialog once onSave returns nil. CANCEL closes without calling it.
func NewAddNote(onSave func(ctx context.Context, status matrix.StatusCode, text string) error, opts ...NoteOption) *AddNote {
	cfg := newNoteConfig("Add Note", opts)
	return newAddNote(cfg, noteLayout{
		markup: "Status:\n[[status]]\nNote:\n[[text]]",
		populate: func(l *SelectList) {
			for _, opt := range cfg.statuses {
				l.AddItem(Item{Label: opt.Name, Value: int(opt.Code)})
			}
		},
	}, onSave)
}

func newAddNote(cfg noteConfig, layout noteLayout, onSave func(context.Context, matrix.StatusCode, string) error) *AddNote {
	n := &AddNote{
		list:   NewSelectList(cfg.listRows),
		text:   NewTextField(cfg.textHeight),
		onSave: onSave,
	}
	n.Dialog = mustPolicy(Policy{
		Title:   cfg.title,
		Markup:  layout.markup,
		Buttons: []ButtonSpec{Save, Cancel},
		Classes: layout.classes,
		Build: func(f *Frame) error {
			layout.populate(n.list)
			if n.list.Len() > 0 {
				if err := n.list.SetSelectedIndex(0); err != nil {
					return err
				}
			}
			if err := f.Mount("status", n.list); err != nil {
				return err
			}
			return f.Mount("text", n.text)
		},
		Select: n.selected,
	})
	n.Own(n.list)
	n.Own(n.text)
	return n
}

// List returns the status list
func (n *AddNote) List() *SelectList { return n.list }

// Text returns the note field
func (n *AddNote) Text() *TextField { return n.text }

func (n *AddNote) selected(ev SelectEvent) Result {
	if ev.Key != ButtonSave {
		return Continue(nil)
	}
	code, err := n.list.SelectedValue()
	if err != nil {
		n.SetError(err.Error())
		return Hold(nil)
	}
	status, text := matrix.StatusCode(code), n.text.Value()
	return Hold(n.Await(ButtonSave, func(ctx context.Context) error {
		if n.onSave == nil {
			return nil
		}
		return n.onSave(ctx, status, text)
	}, n.Close))
}

// CharacterClass tags the frame of character comment dialogs
const CharacterClass = "character-comment"

// AddCharacterComment is an AddNote whose list offers the character itself
// followed by each of its states
type AddCharacterComment struct {
	*AddNote
	character matrix.Character
}

// NewAddCharacterComment creates a comment dialog for ch. The first list
// item is the character (value 0); the rest are its states by ID.
func NewAddCharacterComment(ch matrix.Character, onSave func(ctx context.Context, status matrix.StatusCode, text string) error, opts ...NoteOption) *AddCharacterComment {
	cfg := newNoteConfig("Comment on Character", opts)
	c := &AddCharacterComment{character: ch}
	c.AddNote = newAddNote(cfg, noteLayout{
		markup:  "Applies to:\n[[status]]\nComment:\n[[text]]",
		classes: []string{CharacterClass},
		populate: func(l *SelectList) {
			l.AddItem(Item{Label: "character", Value: 0})
			if ch == nil {
				return
			}
			for _, s := range ch.States() {
				l.AddItem(Item{Label: s.Name(), Value: s.ID()})
			}
		},
	}, onSave)
	return c
}

// Character returns the character being commented on
func (c *AddCharacterComment) Character() matrix.Character { return c.character }
