package dialog

import (
	"github.com/cornish/cellnotes/config"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the bindings dialogs respond to
type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Press   key.Binding
	Submit  key.Binding
	Dismiss key.Binding
	Up      key.Binding
	Down    key.Binding
	Home    key.Binding
	End     key.Binding
	Copy    key.Binding
	Paste   key.Binding
	Left    key.Binding
	Right   key.Binding
}

func newKeyMap(kb *config.KeybindingsConfig) keyMap {
	if kb == nil {
		kb = config.DefaultKeybindings()
	}
	bind := func(action string) key.Binding {
		return kb.GetBinding(action).Binding(action)
	}
	return keyMap{
		Next:    bind("next_focus"),
		Prev:    bind("prev_focus"),
		Press:   bind("press"),
		Submit:  bind("submit"),
		Dismiss: bind("dismiss"),
		Up:      bind("list_up"),
		Down:    bind("list_down"),
		Home:    key.NewBinding(key.WithKeys("home")),
		End:     key.NewBinding(key.WithKeys("end")),
		Copy:    bind("copy"),
		Paste:   bind("paste"),
		Left:    key.NewBinding(key.WithKeys("left")),
		Right:   key.NewBinding(key.WithKeys("right")),
	}
}
