package dialog

import "fmt"

// Policy is what distinguishes one dialog variant from another: the
// static layout plus the meaning of each button key
type Policy struct {
	Title   string
	Markup  string
	Buttons []ButtonSpec
	Classes []string
	// Build mounts widgets into the frame's slots
	Build func(f *Frame) error
	// Select interprets a button press
	Select Handler
}

// NewFromPolicy configures a dialog from p. Variant dialogs dispose
// themselves when hidden and carry a title close control.
func NewFromPolicy(p Policy) (*Dialog, error) {
	d := New()
	steps := []error{
		d.SetTitle(p.Title),
		d.SetContent(p.Markup),
		d.SetDisposeOnHide(true),
		d.SetHasTitleCloseButton(true),
	}
	for _, b := range p.Buttons {
		steps = append(steps, d.AddButton(b))
	}
	if len(p.Classes) > 0 || p.Build != nil {
		steps = append(steps, d.OnBuild(func(f *Frame) error {
			for _, c := range p.Classes {
				f.AddClass(c)
			}
			if p.Build != nil {
				return p.Build(f)
			}
			return nil
		}))
	}
	if p.Select != nil {
		steps = append(steps, d.OnEnter(func(*Document) error {
			d.Listen(p.Select)
			return nil
		}))
	}
	for _, err := range steps {
		if err != nil {
			return nil, fmt.Errorf("configure %q: %w", p.Title, err)
		}
	}
	return d, nil
}

// mustPolicy is for the built-in variants, whose policies are static
func mustPolicy(p Policy) *Dialog {
	d, err := NewFromPolicy(p)
	if err != nil {
		panic(err)
	}
	return d
}
