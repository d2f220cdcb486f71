// Package editor composes the document, highlighter, find engine and input
// transformer into the core of an editing widget.
//
// The host feeds keystrokes to the Editor (Type, Newline, Backspace,
// cursor moves) and find commands (Find, FindNext, Replace, ...). Every
// keystroke runs the default insertion, then the transformer, then
// repaints the current line. Settings changes go through UpdateSettings,
// which rebuilds the highlighting when it is affected and repaints the
// whole document.
//
//	e, err := editor.New(text, highlight.LanguageForPath(path), settings)
//	if err != nil {
//	    return err // broken keywords or colors
//	}
//	e.Type('(')
//	e.Find("TODO")
package editor
