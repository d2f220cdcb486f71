// Package engine provides the text buffer the editor core works against.
//
// The engine combines the rune-indexed buffer, the primary selection and
// the per-character formatting layer into one API, and notifies listeners
// after every mutation. It is the "host buffer/view" of the editor: the
// highlighter, the find engine and the input transformer only ever talk to
// it through small interfaces.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("foo bar foo"))
//
//	// Select the second "foo"
//	e.Select(engine.Range{Start: 8, End: 11})
//
//	// Replace it; the selection is rebased automatically
//	e.Replace(e.Selection().Range(), "qux")
//
//	// Paint a span
//	e.SetForeground(engine.Range{Start: 0, End: 3}, core.ColorRed)
//
// # Change Notification
//
// Listeners registered with OnChange run synchronously after each edit,
// outside the engine lock, in registration order.
//
// # Thread Safety
//
// The editor drives the engine from a single event loop. The engine still
// guards its state with a read-write mutex so that a background settings
// reload cannot race a keystroke.
package engine
