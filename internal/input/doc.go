// Package input transforms typed characters after they reach the buffer.
//
// The Transformer runs after the default insertion of a keystroke has
// already happened. It is given the typed rune and the cursor offset from
// before the insertion and may add text of its own:
//
//   - Auto-indent: a newline copies the leading tabs of the line it was
//     typed on, plus one more when that line ends in '{', '(', '[' or ':'
//     (trailing spaces and tabs are skipped).
//   - Auto-close brackets: '(', '[' and '{' get their closer, with the
//     cursor left between the pair.
//   - Auto-close quotes: the same for '\'' and '"'.
//
// Each behavior is switched on or off through Options.
//
// # Usage
//
//	t := input.New(input.Options{AutoIndent: true, AutoCloseBrackets: true})
//	before := doc.Cursor()
//	doc.InsertAtCursor("(")
//	t.Apply(doc, '(', before)
//
// The key subpackage parses key names for the terminal host's bindings.
package input
