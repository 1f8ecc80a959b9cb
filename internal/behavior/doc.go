// Package behavior implements the key behaviors that sit between the event
// source and the action layer.
//
// A behavior receives a press and, some time later, the matching release for
// a key position. It decides which bindings to invoke and invokes them through
// an Invoker, which may route into another behavior (nesting) or into a leaf
// action such as a key press.
//
// # Behaviors
//
//   - OSSelector writes a fixed OS into an osstate.Store on press.
//   - OSKey picks one of three bindings based on the store at press time and
//     remembers the choice per position in an ActiveTable, so the release
//     always goes to the binding that was pressed.
//   - HoldFn presses a hold binding and then a tap binding, and releases them
//     in reverse order.
//
// # Dispatch model
//
// All calls run synchronously on the dispatch goroutine. One event is fully
// handled before the next is delivered, so none of the types here lock.
//
// # Dropped events
//
// A press that finds the ActiveTable full, or a release with no recorded
// press, is logged, reported to the configured Observer, and consumed as
// Opaque. Neither is returned as an error: the event is simply ignored.
package behavior
