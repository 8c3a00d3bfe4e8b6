package dialog

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ButtonKey identifies a button independently of its label
type ButtonKey string

const (
	ButtonOK     ButtonKey = "ok"
	ButtonYes    ButtonKey = "yes"
	ButtonNo     ButtonKey = "no"
	ButtonCancel ButtonKey = "cancel"
	ButtonSave   ButtonKey = "save"
)

// ButtonSpec describes one button of the button bar
type ButtonSpec struct {
	Key    ButtonKey
	Label  string
	Hotkey string // Single key pressing the button while the button bar has focus
}

// Standard buttons
var (
	OK     = ButtonSpec{Key: ButtonOK, Label: "OK", Hotkey: "o"}
	Yes    = ButtonSpec{Key: ButtonYes, Label: "Yes", Hotkey: "y"}
	No     = ButtonSpec{Key: ButtonNo, Label: "No", Hotkey: "n"}
	Cancel = ButtonSpec{Key: ButtonCancel, Label: "Cancel", Hotkey: "c"}
	Save   = ButtonSpec{Key: ButtonSave, Label: "Save", Hotkey: "s"}
)

// SelectEvent is emitted once per button press
type SelectEvent struct {
	Key ButtonKey
}

// Result is a listener's answer to a SelectEvent. When any listener returns
// Proceed false the dialog stays visible; otherwise it is hidden.
type Result struct {
	Proceed bool
	Cmd     tea.Cmd
}

// Continue lets the dialog hide after the press
func Continue(cmd tea.Cmd) Result { return Result{Proceed: true, Cmd: cmd} }

// Hold keeps the dialog visible after the press
func Hold(cmd tea.Cmd) Result { return Result{Proceed: false, Cmd: cmd} }

// Handler receives selection events
type Handler func(SelectEvent) Result

type listener struct {
	id int
	fn Handler
}

// ClosedMsg is sent to the host after a dialog has been disposed
type ClosedMsg struct {
	ID int
}

// FailedMsg is sent to the host when a dialog callback returns an error.
// The dialog stays open with its button re-enabled.
type FailedMsg struct {
	ID  int
	Key ButtonKey
	Err error
}

// settledMsg carries a finished callback back to its dialog
type settledMsg struct {
	id  int
	key ButtonKey
	err error
}

// Listen subscribes h to selection events. Listeners run synchronously in
// subscription order. The returned func unsubscribes.
func (d *Dialog) Listen(h Handler) func() {
	d.lastListen++
	id := d.lastListen
	d.listeners = append(d.listeners, listener{id: id, fn: h})
	return func() {
		for i, l := range d.listeners {
			if l.id == id {
				d.listeners = append(d.listeners[:i:i], d.listeners[i+1:]...)
				return
			}
		}
	}
}

// Press emits a SelectEvent for key as if the button had been pressed.
// Presses are ignored unless the dialog is visible and no callback is pending.
func (d *Dialog) Press(key ButtonKey) tea.Cmd {
	if d.state != Visible || !d.hasButton(key) {
		return nil
	}
	if len(d.pending) > 0 {
		d.logger().Debug("press ignored while pending", "id", d.id, "key", key)
		return nil
	}
	d.errText = ""
	d.logger().Debug("dialog select", "id", d.id, "key", key)

	proceed := true
	var cmds []tea.Cmd
	for _, l := range append([]listener(nil), d.listeners...) {
		r := l.fn(SelectEvent{Key: key})
		if !r.Proceed {
			proceed = false
		}
		cmds = append(cmds, r.Cmd)
	}

	if proceed && d.state == Visible {
		if err := d.SetVisible(false); err != nil {
			d.logger().Debug("hide after select failed", "id", d.id, "err", err)
		}
	}
	return tea.Batch(cmds...)
}

func (d *Dialog) hasButton(key ButtonKey) bool {
	for _, b := range d.buttons {
		if b.Key == key {
			return true
		}
	}
	return false
}

// Busy reports whether key is waiting for its callback
func (d *Dialog) Busy(key ButtonKey) bool {
	_, ok := d.pending[key]
	return ok
}

// Await runs fn off the UI loop for the button key. The button is disabled
// until fn returns. On success then runs on the UI loop; on failure the
// error is shown in the dialog, the button is enabled again and a
// FailedMsg goes to the host.
func (d *Dialog) Await(key ButtonKey, fn func(ctx context.Context) error, then func()) tea.Cmd {
	if d.doc == nil || d.state == Disposed {
		return nil
	}
	d.pending[key] = then
	ctx, id := d.doc.ctx, d.id
	return func() tea.Msg {
		return settledMsg{id: id, key: key, err: fn(ctx)}
	}
}

func (d *Dialog) settle(msg settledMsg) tea.Cmd {
	then, ok := d.pending[msg.key]
	if !ok || d.state == Disposed {
		d.logger().Debug("dropping late completion", "id", d.id, "key", msg.key)
		return nil
	}
	delete(d.pending, msg.key)

	if msg.err != nil {
		d.errText = msg.err.Error()
		d.logger().Warn("dialog callback failed", "id", d.id, "key", msg.key, "err", msg.err)
		id, key, err := d.id, msg.key, msg.err
		return func() tea.Msg { return FailedMsg{ID: id, Key: key, Err: err} }
	}
	if then != nil {
		then()
	}
	return nil
}
