package buffer

import "fmt"

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   Range  // The range to replace
	NewText string // The replacement text
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset Offset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(r Range) Edit {
	return Edit{Range: r}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// NewLen returns the length of the replacement text in code points.
func (e Edit) NewLen() int {
	return len([]rune(e.NewText))
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() int {
	return e.NewLen() - e.Range.Len()
}

// EditResult contains information about an applied edit.
type EditResult struct {
	Edit     Edit   // The edit as applied (line endings normalized)
	NewRange Range  // The span now occupied by the replacement text
	OldText  string // The text that was replaced (if any)
	Delta    int    // Change in buffer length
}
