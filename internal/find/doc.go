// Package find implements find and replace over a document.
//
// A Find scans a snapshot of the document for a literal term and keeps the
// matches as an ordered Index of spans. Replace edits the document through
// the host and rebases the remaining spans itself; the spans are never
// re-validated against the text. Edits made behind the engine's back (for
// example typing while the find prompt is open) leave the spans stale until
// the next Find.
package find
