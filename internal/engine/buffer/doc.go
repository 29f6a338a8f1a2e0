// Package buffer implements the text buffer at the heart of the editor.
//
// A Buffer owns the document content as an ordered sequence of lines, the
// cursor, the desired-column memory for vertical motion, and the dirty
// flag. Every line carries a generation stamp that increases whenever the
// line's content changes; the highlight cache uses these stamps to detect
// staleness without ever diffing text.
//
// Invariants maintained by every operation:
//
//   - A buffer always holds at least one line; an empty document is a
//     single empty line.
//   - The cursor row is within [0, LineCount), and the cursor column is
//     within [0, line length] measured in runes.
//
// Out-of-bounds requests are clamped, never rejected; bounds violations
// are programming errors prevented by construction.
package buffer
