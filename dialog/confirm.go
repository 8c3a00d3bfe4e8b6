package dialog

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Confirm asks a yes/no question
type Confirm struct {
	*Dialog
	onYes func() tea.Cmd
	onNo  func() tea.Cmd
}

// NewConfirm creates a yes/no dialog. YES calls onYes; NO calls onNo when
// it is not nil. Both buttons close the dialog.
func NewConfirm(title, content string, onYes, onNo func() tea.Cmd) *Confirm {
	c := &Confirm{onYes: onYes, onNo: onNo}
	c.Dialog = mustPolicy(Policy{
		Title:   title,
		Markup:  escapeText(content),
		Buttons: []ButtonSpec{Yes, No},
		Select:  c.selected,
	})
	return c
}

func (c *Confirm) selected(ev SelectEvent) Result {
	switch ev.Key {
	case ButtonYes:
		if c.onYes != nil {
			return Continue(c.onYes())
		}
	case ButtonNo:
		if c.onNo != nil {
			return Continue(c.onNo())
		}
	}
	return Continue(nil)
}

// CancelableConfirm asks a yes/no question that can also be cancelled
type CancelableConfirm struct {
	*Dialog
	onResult func(confirmed bool) tea.Cmd
}

// NewCancelableConfirm creates a yes/no/cancel dialog. CANCEL closes
// without calling onResult; any other button calls it with true for
// YES or OK and false otherwise.
func NewCancelableConfirm(title, content string, onResult func(confirmed bool) tea.Cmd) *CancelableConfirm {
	c := &CancelableConfirm{onResult: onResult}
	c.Dialog = mustPolicy(Policy{
		Title:   title,
		Markup:  escapeText(content),
		Buttons: []ButtonSpec{Yes, No, Cancel},
		Select:  c.selected,
	})
	return c
}

func (c *CancelableConfirm) selected(ev SelectEvent) Result {
	if ev.Key == ButtonCancel || c.onResult == nil {
		return Continue(nil)
	}
	return Continue(c.onResult(ev.Key == ButtonYes || ev.Key == ButtonOK))
}

// escapeText keeps caller text from being read as slot markup
func escapeText(s string) string {
	r := strings.NewReplacer("[[", "[ [", "]]", "] ]")
	return r.Replace(s)
}
