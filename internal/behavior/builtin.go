package behavior

// None consumes the event and does nothing.
type None struct{}

// Pressed implements Behavior.Pressed.
func (None) Pressed(Binding, Event) (Result, error) { return Opaque, nil }

// Released implements Behavior.Released.
func (None) Released(Binding, Event) (Result, error) { return Opaque, nil }

// Trans declines the event so it falls through to whatever is below.
type Trans struct{}

// Pressed implements Behavior.Pressed.
func (Trans) Pressed(Binding, Event) (Result, error) { return Transparent, nil }

// Released implements Behavior.Released.
func (Trans) Released(Binding, Event) (Result, error) { return Transparent, nil }
