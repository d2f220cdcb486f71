// Package cursor provides the selection value type and the rules for
// rebasing positions after buffer edits.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text.
//
// Transformation:
//
// After an edit every stored position must be rebased: offsets before the
// edit are unchanged, offsets after it shift by the edit's delta, and
// offsets inside a replaced span move to the end of the new text.
package cursor
