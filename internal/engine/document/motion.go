package document

import "unicode"

// Rune classes used by word motions. Vi distinguishes word runes
// (letters, digits, underscore) from punctuation; "big" words are any
// non-blank run.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

func sameClass(a, b rune, big bool) bool {
	if big {
		return !isBlank(a) && !isBlank(b)
	}
	return isWordRune(a) == isWordRune(b)
}

// LineStartAt returns the offset of the start of the line containing pos.
func (d Document) LineStartAt(pos int) int {
	pos = clamp(pos, 0, len(d.text))
	for pos > 0 && d.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

// LineEndAt returns the offset of the end of the line containing pos,
// before the newline.
func (d Document) LineEndAt(pos int) int {
	pos = clamp(pos, 0, len(d.text))
	for pos < len(d.text) && d.text[pos] != '\n' {
		pos++
	}
	return pos
}

// LineStart returns the offset of the start of the cursor's line.
func (d Document) LineStart() int { return d.LineStartAt(d.cursor) }

// LineEnd returns the offset of the end of the cursor's line.
func (d Document) LineEnd() int { return d.LineEndAt(d.cursor) }

// CurrentLine returns the text of the cursor's line.
func (d Document) CurrentLine() string {
	return string(d.text[d.LineStart():d.LineEnd()])
}

// LineCount returns the number of lines in the document.
func (d Document) LineCount() int {
	count := 1
	for _, r := range d.text {
		if r == '\n' {
			count++
		}
	}
	return count
}

// CursorRow returns the zero-based line number of the cursor.
func (d Document) CursorRow() int {
	row := 0
	for _, r := range d.text[:d.cursor] {
		if r == '\n' {
			row++
		}
	}
	return row
}

// CursorCol returns the zero-based column of the cursor on its line.
func (d Document) CursorCol() int {
	return d.cursor - d.LineStart()
}

// FirstNonBlank returns the offset of the first non-blank rune on the
// cursor's line, or the line end for a blank line.
func (d Document) FirstNonBlank() int {
	i := d.LineStart()
	end := d.LineEnd()
	for i < end && (d.text[i] == ' ' || d.text[i] == '\t') {
		i++
	}
	return i
}

// CursorUp moves the cursor one line up keeping the column where
// possible. Returns false without change when already on the first line.
func (d Document) CursorUp() (Document, bool) {
	start := d.LineStart()
	if start == 0 {
		return d, false
	}
	col := d.cursor - start
	prevStart := d.LineStartAt(start - 1)
	prevEnd := start - 1
	return d.WithCursor(min(prevStart+col, prevEnd)), true
}

// CursorDown moves the cursor one line down keeping the column where
// possible. Returns false without change when already on the last line.
func (d Document) CursorDown() (Document, bool) {
	end := d.LineEnd()
	if end >= len(d.text) {
		return d, false
	}
	col := d.cursor - d.LineStart()
	nextStart := end + 1
	nextEnd := d.LineEndAt(nextStart)
	return d.WithCursor(min(nextStart+col, nextEnd)), true
}

// WordForward returns the offset of the start of the next word (vi w/W).
func (d Document) WordForward(big bool) int {
	i := d.cursor
	n := len(d.text)
	if i >= n {
		return n
	}
	// Leave the current run.
	if !isBlank(d.text[i]) {
		start := d.text[i]
		for i < n && !isBlank(d.text[i]) && sameClass(start, d.text[i], big) {
			i++
		}
	}
	// Skip blanks to the start of the next run.
	for i < n && isBlank(d.text[i]) {
		i++
	}
	return i
}

// WordBackward returns the offset of the start of the previous word
// (vi b/B).
func (d Document) WordBackward(big bool) int {
	i := d.cursor
	for i > 0 && isBlank(d.text[i-1]) {
		i--
	}
	if i == 0 {
		return 0
	}
	start := d.text[i-1]
	for i > 0 && !isBlank(d.text[i-1]) && sameClass(start, d.text[i-1], big) {
		i--
	}
	return i
}

// WordEnd returns the offset of the last rune of the current or next
// word (vi e/E). The returned offset points at the rune, not past it.
func (d Document) WordEnd(big bool) int {
	i := d.cursor + 1
	n := len(d.text)
	for i < n && isBlank(d.text[i]) {
		i++
	}
	if i >= n {
		return max(n-1, 0)
	}
	start := d.text[i]
	for i+1 < n && !isBlank(d.text[i+1]) && sameClass(start, d.text[i+1], big) {
		i++
	}
	return i
}

// EmacsWordForward returns the offset just past the end of the next
// word, using alphanumeric word boundaries (Emacs forward-word).
func (d Document) EmacsWordForward() int {
	i := d.cursor
	n := len(d.text)
	for i < n && !isAlnum(d.text[i]) {
		i++
	}
	for i < n && isAlnum(d.text[i]) {
		i++
	}
	return i
}

// EmacsWordBackward returns the offset of the start of the previous
// word, using alphanumeric word boundaries (Emacs backward-word).
func (d Document) EmacsWordBackward() int {
	i := d.cursor
	for i > 0 && !isAlnum(d.text[i-1]) {
		i--
	}
	for i > 0 && isAlnum(d.text[i-1]) {
		i--
	}
	return i
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// FindChar implements vi f/F/t/T on the cursor's line: the count'th
// occurrence of r. Returns the target offset, false when not found.
func (d Document) FindChar(r rune, count int, forward, till bool) (int, bool) {
	if count < 1 {
		count = 1
	}

	if forward {
		i := d.cursor
		end := d.LineEnd()
		for ; count > 0; count-- {
			i++
			for i < end && d.text[i] != r {
				i++
			}
			if i >= end {
				return 0, false
			}
		}
		if till {
			i--
		}
		return i, true
	}

	i := d.cursor
	start := d.LineStart()
	for ; count > 0; count-- {
		i--
		for i >= start && d.text[i] != r {
			i--
		}
		if i < start {
			return 0, false
		}
	}
	if till {
		i++
	}
	return i, true
}
