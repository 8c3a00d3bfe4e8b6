package matrix

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrEmptyNote is returned when a comment has no text
var ErrEmptyNote = errors.New("note text is empty")

// Target identifies what a note is attached to
type Target struct {
	Taxon  int // -1 when the note is about a whole character
	Column int // -1 when the note is about the matrix
	State  int // 0 for the character itself, otherwise a state ID
}

// MatrixTarget is the target of matrix-wide comments
var MatrixTarget = Target{Taxon: -1, Column: -1}

// Note is one entry in the notebook
type Note struct {
	Target  Target
	Status  StatusCode
	Text    string
	Created time.Time
}

// Notebook stores notes and comments. It is safe for concurrent use since
// dialog callbacks run off the UI loop.
type Notebook struct {
	mu    sync.Mutex
	notes []Note
	now   func() time.Time
}

// NewNotebook creates an empty notebook
func NewNotebook() *Notebook {
	return &Notebook{now: time.Now}
}

func (n *Notebook) add(ctx context.Context, note Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	note.Created = n.now()
	n.notes = append(n.notes, note)
	return nil
}

// AddCellNote records a status and free text for one cell
func (n *Notebook) AddCellNote(ctx context.Context, taxon, column int, status StatusCode, text string) error {
	if taxon < 0 || column < 0 {
		return fmt.Errorf("cell %d,%d: invalid position", taxon, column)
	}
	return n.add(ctx, Note{Target: Target{Taxon: taxon, Column: column}, Status: status, Text: text})
}

// AddCharacterComment records a comment on a character or one of its states.
// stateID 0 means the character itself.
func (n *Notebook) AddCharacterComment(ctx context.Context, column, stateID int, status StatusCode, text string) error {
	if column < 0 {
		return fmt.Errorf("character %d: invalid position", column)
	}
	return n.add(ctx, Note{Target: Target{Taxon: -1, Column: column, State: stateID}, Status: status, Text: text})
}

// AddComment records a matrix-wide comment. Blank text is rejected.
func (n *Notebook) AddComment(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyNote
	}
	return n.add(ctx, Note{Target: MatrixTarget, Text: text})
}

// NotesFor returns the notes attached to t, oldest first
func (n *Notebook) NotesFor(t Target) []Note {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []Note
	for _, note := range n.notes {
		if note.Target == t {
			out = append(out, note)
		}
	}
	return out
}

// CountFor returns the number of notes on a column, all rows included
func (n *Notebook) CountFor(column int) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, note := range n.notes {
		if note.Target.Column == column {
			count++
		}
	}
	return count
}

// Clear removes all notes attached to t and returns how many were removed
func (n *Notebook) Clear(t Target) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	kept := n.notes[:0]
	for _, note := range n.notes {
		if note.Target != t {
			kept = append(kept, note)
		}
	}
	removed := len(n.notes) - len(kept)
	n.notes = kept
	return removed
}

// Filter keeps the notes for which keep returns true and returns how many
// were removed
func (n *Notebook) Filter(keep func(Note) bool) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	kept := n.notes[:0]
	for _, note := range n.notes {
		if keep(note) {
			kept = append(kept, note)
		}
	}
	removed := len(n.notes) - len(kept)
	n.notes = kept
	return removed
}

// Reset removes every note
func (n *Notebook) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = nil
}

// Len returns the number of notes
func (n *Notebook) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notes)
}
