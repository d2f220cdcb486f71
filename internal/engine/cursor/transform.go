package cursor

import (
	"github.com/dshills/boothium/internal/engine/buffer"
)

// Edit is an alias for buffer.Edit for convenience.
type Edit = buffer.Edit

// TransformOffset updates an offset after an edit.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//     (an insertion exactly at offset counts as before it)
//   - If edit starts after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset Offset, edit Edit) Offset {
	if edit.Range.End <= offset {
		return offset + ComputeEditDelta(edit)
	}

	if edit.Range.Start >= offset {
		return offset
	}

	return edit.Range.Start + edit.NewLen()
}

// TransformOffsetSticky is like TransformOffset but with a "sticky" behavior
// for an insertion exactly at the offset. If sticky is true, the offset stays
// before the inserted text; otherwise it moves to the end of the insertion.
func TransformOffsetSticky(offset Offset, edit Edit, sticky bool) Offset {
	if sticky && edit.Range.IsEmpty() && edit.Range.Start == offset {
		return offset
	}
	return TransformOffset(offset, edit)
}

// TransformSelection updates a selection after an edit.
// A collapsed cursor at an insertion point follows the inserted text, the
// way typing advances the caret; anchors of extended selections stay put.
func TransformSelection(sel Selection, edit Edit) Selection {
	if sel.IsEmpty() {
		head := TransformOffset(sel.Head, edit)
		return Selection{Anchor: head, Head: head}
	}
	return Selection{
		Anchor: TransformOffsetSticky(sel.Anchor, edit, true),
		Head:   TransformOffsetSticky(sel.Head, edit, false),
	}
}

// ComputeEditDelta returns the change in document length from an edit.
func ComputeEditDelta(edit Edit) int {
	return edit.NewLen() - edit.Range.Len()
}
