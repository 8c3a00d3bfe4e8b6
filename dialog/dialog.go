// Package dialog implements modal dialogs drawn over the matrix browser.
//
// Every dialog goes through the same lifecycle: it is configured, rendered
// into a Frame by CreateDom, attached to a Document, shown, and finally
// disposed. Button presses reach the dialog's listeners as a single
// SelectEvent carrying the button key; variants decide what each key means.
package dialog

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
)

var (
	// ErrInvalidState is wrapped by every lifecycle misuse error
	ErrInvalidState = errors.New("invalid dialog state")
	// ErrNoButtons is returned by CreateDom for a dialog without buttons
	ErrNoButtons = errors.New("dialog has no buttons")
)

// State is a dialog lifecycle state
type State int

const (
	Constructed State = iota
	Rendered
	Attached
	Visible
	Hidden
	Disposed
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Rendered:
		return "rendered"
	case Attached:
		return "attached"
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	case Disposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// transitions lists the legal next states. Disposal is reachable from anywhere.
var transitions = map[State][]State{
	Constructed: {Rendered, Disposed},
	Rendered:    {Attached, Disposed},
	Attached:    {Visible, Disposed},
	Visible:     {Hidden, Disposed},
	Hidden:      {Visible, Disposed},
}

// TransitionError reports an illegal lifecycle transition
type TransitionError struct {
	Op   string
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot go from %s to %s", e.Op, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidState
}

// Disposable is a resource released when its owner is disposed
type Disposable interface {
	Dispose()
}

var lastID atomic.Int64

// Dialog is the lifecycle and event routing core shared by all variants
type Dialog struct {
	id            int
	title         string
	content       string
	buttons       []ButtonSpec
	disposeOnHide bool
	titleClose    bool
	state         State

	frame      *Frame
	doc        *Document
	detach     func()
	buildHooks []func(*Frame) error
	enterHooks []func(*Document) error

	listeners  []listener
	lastListen int
	owned      []Disposable

	focus   int              // index into widgets then buttons, -1 for none
	pending map[ButtonKey]func() // buttons waiting for a callback, with their continuation
	errText string

	// geometry of the last View, relative to the dialog origin
	originX, originY int
	regions          []hitRegion
}

// New creates an empty dialog in the Constructed state
func New() *Dialog {
	return &Dialog{
		id:      int(lastID.Add(1)),
		state:   Constructed,
		focus:   -1,
		pending: make(map[ButtonKey]func()),
	}
}

// ID returns the dialog's unique id
func (d *Dialog) ID() int { return d.id }

// State returns the current lifecycle state
func (d *Dialog) State() State { return d.state }

// Title returns the dialog title
func (d *Dialog) Title() string { return d.title }

// Buttons returns a copy of the button set
func (d *Dialog) Buttons() []ButtonSpec {
	return append([]ButtonSpec(nil), d.buttons...)
}

// Frame returns the structure built by CreateDom, nil before that
func (d *Dialog) Frame() *Frame { return d.frame }

// Err returns the error text currently shown in the dialog
func (d *Dialog) Err() string { return d.errText }

func (d *Dialog) logger() *slog.Logger {
	if d.doc != nil {
		return d.doc.logger
	}
	return slog.New(slog.DiscardHandler)
}

func (d *Dialog) configurable(op string) error {
	if d.state != Constructed {
		return fmt.Errorf("dialog %d: %s in state %s: %w", d.id, op, d.state, ErrInvalidState)
	}
	return nil
}

// SetTitle sets the title shown in the top border
func (d *Dialog) SetTitle(title string) error {
	if err := d.configurable("SetTitle"); err != nil {
		return err
	}
	d.title = title
	return nil
}

// SetContent sets the body markup: text lines and [[slot]] lines
func (d *Dialog) SetContent(markup string) error {
	if err := d.configurable("SetContent"); err != nil {
		return err
	}
	d.content = markup
	return nil
}

// AddButton appends a button. The set is fixed once the dialog is rendered.
func (d *Dialog) AddButton(spec ButtonSpec) error {
	if err := d.configurable("AddButton"); err != nil {
		return err
	}
	for _, b := range d.buttons {
		if b.Key == spec.Key {
			return fmt.Errorf("dialog %d: duplicate button %q", d.id, spec.Key)
		}
	}
	d.buttons = append(d.buttons, spec)
	return nil
}

// SetDisposeOnHide makes hiding the dialog dispose it in the same step
func (d *Dialog) SetDisposeOnHide(v bool) error {
	if err := d.configurable("SetDisposeOnHide"); err != nil {
		return err
	}
	d.disposeOnHide = v
	return nil
}

// SetHasTitleCloseButton adds a close control to the title bar. It
// dismisses the dialog without emitting a selection event.
func (d *Dialog) SetHasTitleCloseButton(v bool) error {
	if err := d.configurable("SetHasTitleCloseButton"); err != nil {
		return err
	}
	d.titleClose = v
	return nil
}

// OnBuild registers a hook run by CreateDom after the base structure is built
func (d *Dialog) OnBuild(fn func(f *Frame) error) error {
	if err := d.configurable("OnBuild"); err != nil {
		return err
	}
	d.buildHooks = append(d.buildHooks, fn)
	return nil
}

// OnEnter registers a hook run by EnterDocument after the base attachment
func (d *Dialog) OnEnter(fn func(doc *Document) error) error {
	if d.state != Constructed && d.state != Rendered {
		return fmt.Errorf("dialog %d: OnEnter in state %s: %w", d.id, d.state, ErrInvalidState)
	}
	d.enterHooks = append(d.enterHooks, fn)
	return nil
}

func (d *Dialog) transition(op string, to State) error {
	for _, next := range transitions[d.state] {
		if next == to {
			d.logger().Debug("dialog transition", "id", d.id, "op", op, "from", d.state, "to", to)
			d.state = to
			return nil
		}
	}
	return &TransitionError{Op: op, From: d.state, To: to}
}

// CreateDom builds the frame from the title, markup and buttons, then runs
// the build hooks in registration order. It must be called exactly once.
func (d *Dialog) CreateDom() error {
	if d.state != Constructed {
		return &TransitionError{Op: "CreateDom", From: d.state, To: Rendered}
	}
	if len(d.buttons) == 0 {
		return fmt.Errorf("dialog %d: %w", d.id, ErrNoButtons)
	}

	frame, err := parseMarkup(d.content)
	if err != nil {
		return fmt.Errorf("dialog %d: %w", d.id, err)
	}
	frame.Title = d.title
	frame.Buttons = d.Buttons()
	frame.Closable = d.titleClose

	// widgets are owned as soon as they are mounted, failed build or not
	for _, hook := range d.buildHooks {
		err := hook(frame)
		for _, w := range frame.Widgets() {
			d.Own(w)
		}
		if err != nil {
			return fmt.Errorf("dialog %d: build: %w", d.id, err)
		}
	}
	if err := frame.validate(); err != nil {
		return fmt.Errorf("dialog %d: %w", d.id, err)
	}

	d.frame = frame
	return d.transition("CreateDom", Rendered)
}

// EnterDocument attaches the rendered dialog to doc and subscribes it to
// the document's input, then runs the enter hooks.
func (d *Dialog) EnterDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("dialog %d: EnterDocument: nil document", d.id)
	}
	if d.state != Rendered {
		return &TransitionError{Op: "EnterDocument", From: d.state, To: Attached}
	}

	d.doc = doc
	d.detach = doc.attach(d)
	for _, w := range d.frame.Widgets() {
		if a, ok := w.(attacher); ok {
			a.attach(doc)
		}
	}
	if err := d.transition("EnterDocument", Attached); err != nil {
		return err
	}

	for _, hook := range d.enterHooks {
		if err := hook(doc); err != nil {
			return fmt.Errorf("dialog %d: enter: %w", d.id, err)
		}
	}

	d.setFocus(0)
	return nil
}

// SetVisible shows or hides the dialog. Setting the current visibility is
// a no-op; showing requires the dialog to be attached.
func (d *Dialog) SetVisible(visible bool) error {
	if visible {
		if d.state == Visible {
			return nil
		}
		return d.transition("SetVisible", Visible)
	}

	switch d.state {
	case Visible:
	case Attached, Hidden:
		return nil
	default:
		return &TransitionError{Op: "SetVisible", From: d.state, To: Hidden}
	}
	if err := d.transition("SetVisible", Hidden); err != nil {
		return err
	}
	if d.disposeOnHide {
		d.Dispose()
	}
	return nil
}

// Visible reports whether the dialog is currently shown
func (d *Dialog) Visible() bool { return d.state == Visible }

// Close hides the dialog and disposes it
func (d *Dialog) Close() {
	if d.state == Visible {
		if err := d.SetVisible(false); err != nil {
			d.logger().Debug("hide before close failed", "id", d.id, "err", err)
		}
	}
	d.Dispose()
}

// Own registers a resource released when the dialog is disposed. Owning
// the same resource twice has no effect; owning after disposal releases
// the resource at once.
func (d *Dialog) Own(res Disposable) {
	if res == nil {
		return
	}
	if d.state == Disposed {
		res.Dispose()
		return
	}
	for _, o := range d.owned {
		if o == res {
			return
		}
	}
	d.owned = append(d.owned, res)
}

// Dispose unsubscribes all listeners, releases owned resources in reverse
// registration order and detaches from the document. Further calls are no-ops.
func (d *Dialog) Dispose() {
	if d.state == Disposed {
		return
	}
	from := d.state
	d.state = Disposed

	d.listeners = nil
	clear(d.pending)
	for i := len(d.owned) - 1; i >= 0; i-- {
		d.owned[i].Dispose()
	}
	d.owned = nil

	if d.detach != nil {
		d.detach()
		d.detach = nil
	}
	d.logger().Debug("dialog disposed", "id", d.id, "from", from)
}

// Disposed reports whether the dialog has been disposed
func (d *Dialog) Disposed() bool { return d.state == Disposed }

// SetError shows msg in the dialog until the next press
func (d *Dialog) SetError(msg string) {
	d.errText = msg
}
