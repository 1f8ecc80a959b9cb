// Package keymap connects the event source to the behaviors.
//
// A Registry holds behavior instances by name. The Router implements
// behavior.Invoker by looking up the binding's behavior in the registry and
// calling its Pressed or Released method, which is how nested behaviors reach
// each other and the key-press action layer. A Keymap maps key positions to
// bindings and is the entry point for press and release events.
//
// Basic setup:
//
//	reg := keymap.NewRegistry()
//	router := keymap.NewRouter(reg, keymap.DefaultConfig().WithMetrics())
//	reg.Register("kp", hid.NewKeyPress(sink))
//	reg.Register("copy", behavior.NewOSKey(cfg, store, router))
//
//	km := keymap.New(router, bindings)
//	km.Press(5)
//	km.Release(5)
package keymap
