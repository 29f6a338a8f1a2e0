package buffer

import "strings"

// touch gives a line a fresh generation and marks the buffer dirty.
// Callers must hold the write lock.
func (b *Buffer) touch(row int) {
	b.lines[row].gen = NewGeneration()
	b.dirty = true
}

// InsertRune inserts a single rune at the cursor and advances it.
func (b *Buffer) InsertRune(r rune) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ln := &b.lines[b.cursor.Line]
	col := b.cursor.Col
	ln.runes = append(ln.runes[:col:col], append([]rune{r}, ln.runes[col:]...)...)
	b.touch(b.cursor.Line)
	b.cursor.Col++
	b.desiredCol = b.cursor.Col
}

// InsertText inserts text at the cursor, splitting on newlines, and
// leaves the cursor after the inserted text.
func (b *Buffer) InsertText(text string) {
	if text == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	parts := strings.Split(text, "\n")
	row, col := b.cursor.Line, b.cursor.Col
	ln := b.lines[row]
	head := string(ln.runes[:col])
	tail := string(ln.runes[col:])

	if len(parts) == 1 {
		b.lines[row] = line{runes: []rune(head + parts[0] + tail), gen: NewGeneration()}
		b.dirty = true
		b.cursor.Col = col + len([]rune(parts[0]))
		b.desiredCol = b.cursor.Col
		return
	}

	replacement := make([]line, len(parts))
	replacement[0] = newLine(head + parts[0])
	for i := 1; i < len(parts)-1; i++ {
		replacement[i] = newLine(parts[i])
	}
	replacement[len(parts)-1] = newLine(parts[len(parts)-1] + tail)

	b.lines = append(b.lines[:row], append(replacement, b.lines[row+1:]...)...)
	b.dirty = true
	b.cursor = Position{Line: row + len(parts) - 1, Col: len([]rune(parts[len(parts)-1]))}
	b.desiredCol = b.cursor.Col
}

// SplitLine breaks the current line at the cursor, moving the remainder
// onto a new line below. The cursor lands at the start of the new line.
func (b *Buffer) SplitLine() {
	b.mu.Lock()
	defer b.mu.Unlock()

	row, col := b.cursor.Line, b.cursor.Col
	rest := newLine(string(b.lines[row].runes[col:]))
	b.lines[row].runes = b.lines[row].runes[:col]
	b.touch(row)

	b.lines = append(b.lines[:row+1], append([]line{rest}, b.lines[row+1:]...)...)
	b.cursor = Position{Line: row + 1, Col: 0}
	b.desiredCol = 0
}

// JoinLine appends line row+1 onto line row. No-op on the last line.
func (b *Buffer) JoinLine(row int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if row < 0 || row+1 >= len(b.lines) {
		return
	}
	b.lines[row].runes = append(b.lines[row].runes, b.lines[row+1].runes...)
	b.touch(row)
	b.lines = append(b.lines[:row+1], b.lines[row+2:]...)
	b.setCursor(b.cursor.Line, b.cursor.Col)
}

// Backspace deletes the rune before the cursor. At column 0 it joins
// the current line onto the previous one, placing the cursor at the
// join point.
func (b *Buffer) Backspace() {
	b.mu.Lock()
	defer b.mu.Unlock()

	row, col := b.cursor.Line, b.cursor.Col
	if col > 0 {
		ln := &b.lines[row]
		ln.runes = append(ln.runes[:col-1], ln.runes[col:]...)
		b.touch(row)
		b.cursor.Col = col - 1
		b.desiredCol = b.cursor.Col
		return
	}

	if row == 0 {
		return
	}
	joinCol := len(b.lines[row-1].runes)
	b.lines[row-1].runes = append(b.lines[row-1].runes, b.lines[row].runes...)
	b.touch(row - 1)
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	b.cursor = Position{Line: row - 1, Col: joinCol}
	b.desiredCol = joinCol
}

// DeleteChars removes up to n runes at the cursor, bounded at the end
// of the line, and returns the removed text.
func (b *Buffer) DeleteChars(n int) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	row, col := b.cursor.Line, b.cursor.Col
	ln := &b.lines[row]
	end := col + n
	if end > len(ln.runes) {
		end = len(ln.runes)
	}
	if end <= col {
		return ""
	}

	removed := string(ln.runes[col:end])
	ln.runes = append(ln.runes[:col], ln.runes[end:]...)
	b.touch(row)
	b.setCursor(row, col)
	b.desiredCol = b.cursor.Col
	return removed
}

// DeleteLines removes up to n whole lines starting at the cursor line
// and returns them. The buffer never drops below one line; deleting
// everything leaves a single empty line.
func (b *Buffer) DeleteLines(n int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.cursor.Line
	end := row + n
	if end > len(b.lines) {
		end = len(b.lines)
	}
	if end <= row {
		return nil
	}

	removed := make([]string, 0, end-row)
	for _, ln := range b.lines[row:end] {
		removed = append(removed, string(ln.runes))
	}

	b.lines = append(b.lines[:row], b.lines[end:]...)
	if len(b.lines) == 0 {
		b.lines = []line{newLine("")}
	}
	b.dirty = true
	b.setCursor(row, b.desiredCol)
	return removed
}

// DeleteRange removes the char-wise range [start, end] inclusive of the
// end position's rune, returning the removed text (with newlines where
// the range spans lines). The cursor lands on start.
func (b *Buffer) DeleteRange(start, end Position) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	start, end = b.clampPos(start), b.clampPos(end)
	if end.Before(start) {
		start, end = end, start
	}

	removed := b.textRange(start, end)

	if start.Line == end.Line {
		ln := &b.lines[start.Line]
		to := end.Col + 1
		if to > len(ln.runes) {
			to = len(ln.runes)
		}
		ln.runes = append(ln.runes[:start.Col], ln.runes[to:]...)
		b.touch(start.Line)
	} else {
		head := b.lines[start.Line].runes[:start.Col]
		tailLine := b.lines[end.Line].runes
		to := end.Col + 1
		if to > len(tailLine) {
			to = len(tailLine)
		}
		merged := append(head[:len(head):len(head)], tailLine[to:]...)
		b.lines[start.Line] = line{runes: merged, gen: NewGeneration()}
		b.lines = append(b.lines[:start.Line+1], b.lines[end.Line+1:]...)
		b.dirty = true
	}

	b.setCursor(start.Line, start.Col)
	b.desiredCol = b.cursor.Col
	return removed
}

// TextRange returns the char-wise range [start, end] inclusive without
// modifying the buffer.
func (b *Buffer) TextRange(start, end Position) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	start, end = b.clampPos(start), b.clampPos(end)
	if end.Before(start) {
		start, end = end, start
	}
	return b.textRange(start, end)
}

func (b *Buffer) textRange(start, end Position) string {
	if start.Line == end.Line {
		runes := b.lines[start.Line].runes
		to := end.Col + 1
		if to > len(runes) {
			to = len(runes)
		}
		if start.Col >= to {
			return ""
		}
		return string(runes[start.Col:to])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Line].runes[start.Col:]))
	for row := start.Line + 1; row < end.Line; row++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[row].runes))
	}
	sb.WriteByte('\n')
	runes := b.lines[end.Line].runes
	to := end.Col + 1
	if to > len(runes) {
		to = len(runes)
	}
	sb.WriteString(string(runes[:to]))
	return sb.String()
}

// CopyLines returns up to n whole lines starting at the cursor line.
func (b *Buffer) CopyLines(n int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	row := b.cursor.Line
	end := row + n
	if end > len(b.lines) {
		end = len(b.lines)
	}
	copied := make([]string, 0, end-row)
	for _, ln := range b.lines[row:end] {
		copied = append(copied, string(ln.runes))
	}
	return copied
}

// CopyChars returns up to n runes at the cursor, bounded at end of line.
func (b *Buffer) CopyChars(n int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ln := b.lines[b.cursor.Line]
	col := b.cursor.Col
	end := col + n
	if end > len(ln.runes) {
		end = len(ln.runes)
	}
	if end <= col {
		return ""
	}
	return string(ln.runes[col:end])
}

// InsertLines inserts whole lines at the given row, pushing existing
// lines down. The cursor moves to the first inserted line.
func (b *Buffer) InsertLines(row int, texts []string) {
	if len(texts) == 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if row < 0 {
		row = 0
	}
	if row > len(b.lines) {
		row = len(b.lines)
	}

	inserted := make([]line, len(texts))
	for i, text := range texts {
		inserted[i] = newLine(text)
	}
	b.lines = append(b.lines[:row], append(inserted, b.lines[row:]...)...)
	b.dirty = true
	b.setCursor(row, 0)
	b.desiredCol = 0
}

// OpenLineBelow inserts an empty line below the cursor line and moves
// the cursor to it.
func (b *Buffer) OpenLineBelow() {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.cursor.Line + 1
	b.lines = append(b.lines[:row], append([]line{newLine("")}, b.lines[row:]...)...)
	b.dirty = true
	b.cursor = Position{Line: row, Col: 0}
	b.desiredCol = 0
}

// OpenLineAbove inserts an empty line above the cursor line and moves
// the cursor to it.
func (b *Buffer) OpenLineAbove() {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.cursor.Line
	b.lines = append(b.lines[:row], append([]line{newLine("")}, b.lines[row:]...)...)
	b.dirty = true
	b.cursor = Position{Line: row, Col: 0}
	b.desiredCol = 0
}

// clampPos clamps a position into buffer bounds.
// Callers must hold at least the read lock.
func (b *Buffer) clampPos(p Position) Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if max := len(b.lines[p.Line].runes); p.Col > max {
		p.Col = max
	}
	return p
}
