package dialog

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// hitRegion is a clickable span of one dialog row
type hitRegion struct {
	y, x0, x1 int // x1 is exclusive
	button    ButtonKey
	widget    Widget
	row       int
	close     bool
}

// Update routes a message to the dialog: keys and mouse presses become
// focus changes, widget input or button presses, and completion messages
// settle pending callbacks.
func (d *Dialog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case settledMsg:
		if msg.id != d.id {
			return nil
		}
		return d.settle(msg)
	case tea.KeyMsg:
		if d.state != Visible {
			return nil
		}
		return d.handleKey(msg)
	case tea.MouseMsg:
		if d.state != Visible {
			return nil
		}
		return d.handleMouse(msg)
	}

	if w := d.focusedWidget(); w != nil && d.state == Visible {
		return w.Update(msg)
	}
	return nil
}

func (d *Dialog) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := d.doc.keys

	switch {
	case key.Matches(msg, keys.Dismiss):
		d.dismiss()
		return nil
	case key.Matches(msg, keys.Next):
		return d.moveFocus(1)
	case key.Matches(msg, keys.Prev):
		return d.moveFocus(-1)
	case key.Matches(msg, keys.Submit):
		if len(d.buttons) > 0 {
			return d.Press(d.buttons[0].Key)
		}
		return nil
	}

	if b, ok := d.focusedButton(); ok {
		switch {
		case key.Matches(msg, keys.Press):
			return d.Press(b.Key)
		case key.Matches(msg, keys.Left):
			return d.moveFocus(-1)
		case key.Matches(msg, keys.Right):
			return d.moveFocus(1)
		}
		for _, spec := range d.buttons {
			if spec.Hotkey != "" && msg.String() == spec.Hotkey {
				return d.Press(spec.Key)
			}
		}
		return nil
	}

	if w := d.focusedWidget(); w != nil {
		return w.Update(msg)
	}
	return nil
}

func (d *Dialog) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x, y := msg.X-d.originX, msg.Y-d.originY

	if msg.Action != tea.MouseActionPress {
		return nil
	}
	for _, r := range d.regions {
		if y != r.y || x < r.x0 || x >= r.x1 {
			continue
		}
		switch {
		case r.widget != nil && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
			return r.widget.Update(msg)
		case msg.Button != tea.MouseButtonLeft:
			return nil
		case r.close:
			d.dismiss()
			return nil
		case r.button != "":
			d.focusButton(r.button)
			return d.Press(r.button)
		case r.widget != nil:
			d.focusWidget(r.widget)
			if c, ok := r.widget.(clicker); ok {
				c.click(r.row)
			}
			return nil
		}
	}
	return nil
}

// dismiss handles the title close control: close without a selection
// event. It is refused while a callback is pending.
func (d *Dialog) dismiss() {
	if !d.titleClose || len(d.pending) > 0 {
		return
	}
	d.logger().Debug("dialog dismissed", "id", d.id)
	d.Close()
}

func (d *Dialog) widgets() []Widget {
	if d.frame == nil {
		return nil
	}
	return d.frame.Widgets()
}

func (d *Dialog) ringLen() int {
	return len(d.widgets()) + len(d.buttons)
}

func (d *Dialog) focusedWidget() Widget {
	ws := d.widgets()
	if d.focus >= 0 && d.focus < len(ws) {
		return ws[d.focus]
	}
	return nil
}

func (d *Dialog) focusedButton() (ButtonSpec, bool) {
	i := d.focus - len(d.widgets())
	if i >= 0 && i < len(d.buttons) {
		return d.buttons[i], true
	}
	return ButtonSpec{}, false
}

// FocusedButton returns the key of the focused button, or "" when a widget
// has focus
func (d *Dialog) FocusedButton() ButtonKey {
	b, _ := d.focusedButton()
	return b.Key
}

func (d *Dialog) setFocus(i int) tea.Cmd {
	n := d.ringLen()
	if n == 0 {
		d.focus = -1
		return nil
	}
	i = ((i % n) + n) % n
	if w := d.focusedWidget(); w != nil {
		w.Blur()
	}
	d.focus = i
	if w := d.focusedWidget(); w != nil {
		return w.Focus()
	}
	return nil
}

func (d *Dialog) moveFocus(delta int) tea.Cmd {
	return d.setFocus(d.focus + delta)
}

func (d *Dialog) focusButton(k ButtonKey) {
	for i, b := range d.buttons {
		if b.Key == k {
			d.setFocus(len(d.widgets()) + i)
			return
		}
	}
}

func (d *Dialog) focusWidget(w Widget) {
	for i, fw := range d.widgets() {
		if fw == w {
			d.setFocus(i)
			return
		}
	}
}
