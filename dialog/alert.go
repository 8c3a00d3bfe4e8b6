package dialog

// Alert is an informational dialog with a single OK button
type Alert struct {
	*Dialog
}

// NewAlert creates an alert showing content
func NewAlert(content string) *Alert {
	return newAlert("Notice", content)
}

func newAlert(title, content string) *Alert {
	return &Alert{Dialog: mustPolicy(Policy{
		Title:   title,
		Markup:  escapeText(content),
		Buttons: []ButtonSpec{OK},
		Select:  func(SelectEvent) Result { return Continue(nil) },
	})}
}

// ShowAlert creates an alert and shows it on doc in one step
func ShowAlert(doc *Document, content string) (*Alert, error) {
	a := NewAlert(content)
	if err := doc.Show(a.Dialog); err != nil {
		return nil, err
	}
	return a, nil
}

// ShowError shows an alert titled "Error"
func ShowError(doc *Document, err error) (*Alert, error) {
	a := newAlert("Error", err.Error())
	if err := doc.Show(a.Dialog); err != nil {
		return nil, err
	}
	return a, nil
}
