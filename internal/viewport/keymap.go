package viewport

import "github.com/charmbracelet/bubbles/key"

// KeyMap contains the viewport key bindings that move the view directly rather than through the scroll animation
type KeyMap struct {
	Top    key.Binding
	Bottom key.Binding
	Left   key.Binding
	Right  key.Binding
}
