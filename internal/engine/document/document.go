package document

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Selection is an anchor/active offset pair. Anchor is where the
// selection started; Active follows the cursor.
type Selection struct {
	Anchor int
	Active int
}

// Start returns the lower offset of the selection.
func (s Selection) Start() int {
	if s.Anchor < s.Active {
		return s.Anchor
	}
	return s.Active
}

// End returns the higher offset of the selection.
func (s Selection) End() int {
	if s.Anchor > s.Active {
		return s.Anchor
	}
	return s.Active
}

// Document is an immutable text buffer snapshot: content, cursor, and
// optional selection. The zero value is an empty document.
type Document struct {
	text      []rune
	cursor    int
	selection *Selection
}

// New creates an empty document with the cursor at offset 0.
func New() Document {
	return Document{}
}

// FromString creates a document with the cursor at the end of the text.
func FromString(text string) Document {
	runes := []rune(text)
	return Document{text: runes, cursor: len(runes)}
}

// FromStringAt creates a document with the cursor at the given offset,
// clamped to the text bounds.
func FromStringAt(text string, cursor int) Document {
	return FromString(text).WithCursor(cursor)
}

// Text returns the full content.
func (d Document) Text() string {
	return string(d.text)
}

// Len returns the content length in runes.
func (d Document) Len() int {
	return len(d.text)
}

// IsEmpty returns true if the document has no content.
func (d Document) IsEmpty() bool {
	return len(d.text) == 0
}

// Cursor returns the cursor offset in runes.
func (d Document) Cursor() int {
	return d.cursor
}

// Selection returns the current selection, if any.
func (d Document) Selection() (Selection, bool) {
	if d.selection == nil {
		return Selection{}, false
	}
	return *d.selection, true
}

// RuneAt returns the rune at the given offset.
func (d Document) RuneAt(i int) (rune, bool) {
	if i < 0 || i >= len(d.text) {
		return 0, false
	}
	return d.text[i], true
}

// TextRange returns the text in [start, end), clamped.
func (d Document) TextRange(start, end int) string {
	start, end = d.clampRange(start, end)
	return string(d.text[start:end])
}

// TextBeforeCursor returns the text left of the cursor.
func (d Document) TextBeforeCursor() string {
	return string(d.text[:d.cursor])
}

// TextAfterCursor returns the text at and right of the cursor.
func (d Document) TextAfterCursor() string {
	return string(d.text[d.cursor:])
}

// WithCursor returns a copy with the cursor moved, clamped to bounds.
// The selection is preserved with its active end following the cursor.
func (d Document) WithCursor(n int) Document {
	out := d
	out.cursor = clamp(n, 0, len(d.text))
	if d.selection != nil {
		sel := *d.selection
		sel.Active = out.cursor
		out.selection = &sel
	}
	return out
}

// WithText replaces the content and places the cursor, clearing any
// selection.
func (d Document) WithText(text string, cursor int) Document {
	runes := []rune(text)
	return Document{text: runes, cursor: clamp(cursor, 0, len(runes))}
}

// WithSelection returns a copy with the given selection, clamped.
func (d Document) WithSelection(anchor, active int) Document {
	out := d
	out.selection = &Selection{
		Anchor: clamp(anchor, 0, len(d.text)),
		Active: clamp(active, 0, len(d.text)),
	}
	return out
}

// ClearSelection returns a copy without a selection.
func (d Document) ClearSelection() Document {
	out := d
	out.selection = nil
	return out
}

// InsertText inserts at the cursor and moves the cursor past the
// insertion. The selection is cleared.
func (d Document) InsertText(s string) Document {
	return d.InsertAt(d.cursor, s)
}

// InsertAt inserts at an arbitrary offset, clamped. The cursor ends up
// after the inserted text when it was at or past the insertion point.
func (d Document) InsertAt(pos int, s string) Document {
	pos = clamp(pos, 0, len(d.text))
	ins := []rune(s)

	text := make([]rune, 0, len(d.text)+len(ins))
	text = append(text, d.text[:pos]...)
	text = append(text, ins...)
	text = append(text, d.text[pos:]...)

	cursor := d.cursor
	if cursor >= pos {
		cursor += len(ins)
	}
	return Document{text: text, cursor: cursor}
}

// DeleteBeforeCursor removes up to n runes left of the cursor and
// returns the removed text.
func (d Document) DeleteBeforeCursor(n int) (Document, string) {
	if n <= 0 {
		return d.ClearSelection(), ""
	}
	start := clamp(d.cursor-n, 0, len(d.text))
	return d.DeleteRange(start, d.cursor)
}

// DeleteAtCursor removes up to n runes at and right of the cursor and
// returns the removed text.
func (d Document) DeleteAtCursor(n int) (Document, string) {
	if n <= 0 {
		return d.ClearSelection(), ""
	}
	end := clamp(d.cursor+n, 0, len(d.text))
	return d.DeleteRange(d.cursor, end)
}

// DeleteRange removes [start, end) and returns the removed text. The
// cursor moves to start when it was inside or after the range.
func (d Document) DeleteRange(start, end int) (Document, string) {
	start, end = d.clampRange(start, end)
	if start == end {
		return d.ClearSelection(), ""
	}

	removed := string(d.text[start:end])
	text := make([]rune, 0, len(d.text)-(end-start))
	text = append(text, d.text[:start]...)
	text = append(text, d.text[end:]...)

	cursor := d.cursor
	switch {
	case cursor >= end:
		cursor -= end - start
	case cursor > start:
		cursor = start
	}
	return Document{text: text, cursor: clamp(cursor, 0, len(text))}, removed
}

// TransformRange applies fn to the text in [start, end), keeping the
// surrounding text. The cursor offset is preserved and clamped, so a
// length-preserving fn (case transforms) leaves it in place.
func (d Document) TransformRange(start, end int, fn func(string) string) Document {
	start, end = d.clampRange(start, end)
	if start == end {
		return d.ClearSelection()
	}

	replaced := []rune(fn(string(d.text[start:end])))
	text := make([]rune, 0, start+len(replaced)+len(d.text)-end)
	text = append(text, d.text[:start]...)
	text = append(text, replaced...)
	text = append(text, d.text[end:]...)

	return Document{text: text, cursor: clamp(d.cursor, 0, len(text))}
}

// ReplaceRange substitutes [start, end) with s and places the cursor at
// the end of the replacement.
func (d Document) ReplaceRange(start, end int, s string) Document {
	start, end = d.clampRange(start, end)
	ins := []rune(s)

	text := make([]rune, 0, start+len(ins)+len(d.text)-end)
	text = append(text, d.text[:start]...)
	text = append(text, ins...)
	text = append(text, d.text[end:]...)

	return Document{text: text, cursor: clamp(start+len(ins), 0, len(text))}
}

// DisplayWidth returns the terminal cell width of the whole content.
func (d Document) DisplayWidth() int {
	return runewidth.StringWidth(string(d.text))
}

// WidthBeforeCursor returns the terminal cell width of the text left of
// the cursor, for renderer cursor positioning.
func (d Document) WidthBeforeCursor() int {
	return runewidth.StringWidth(string(d.text[:d.cursor]))
}

// clampRange normalizes and clamps a half-open range.
func (d Document) clampRange(start, end int) (int, int) {
	if start > end {
		start, end = end, start
	}
	start = clamp(start, 0, len(d.text))
	end = clamp(end, 0, len(d.text))
	return start, end
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// String implements fmt.Stringer for debugging: the text with the
// cursor position marked.
func (d Document) String() string {
	var sb strings.Builder
	sb.WriteString(string(d.text[:d.cursor]))
	sb.WriteByte('|')
	sb.WriteString(string(d.text[d.cursor:]))
	return sb.String()
}
