// Package buffer provides the rune-indexed text storage behind the editor.
//
// Offsets are code-point indexes into the flattened document: offset 0 sits
// before the first character and Len() sits after the last one. Every
// character also carries a core.Style; this formatting layer is what the
// highlighter and the find engine paint on. Styling never changes text.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("foo bar")
//
//	// Insert text
//	buf.Insert(3, "d")  // "food bar"
//
//	// Paint a span
//	buf.SetForeground(buffer.NewRange(0, 4), core.ColorRed)
//
//	// Locate the line around an offset
//	line := buf.LineRange(6) // [0:8)
package buffer
