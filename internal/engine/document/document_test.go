package document

import "testing"

func TestNewDocument(t *testing.T) {
	d := New()

	if !d.IsEmpty() {
		t.Error("new document should be empty")
	}
	if d.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", d.Cursor())
	}
}

func TestFromString(t *testing.T) {
	d := FromString("hello")

	if d.Text() != "hello" {
		t.Errorf("text = %q, want %q", d.Text(), "hello")
	}
	if d.Cursor() != 5 {
		t.Errorf("cursor = %d, want 5 (end of text)", d.Cursor())
	}
}

func TestWithCursorClamps(t *testing.T) {
	d := FromString("abc")

	if got := d.WithCursor(-5).Cursor(); got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
	if got := d.WithCursor(99).Cursor(); got != 3 {
		t.Errorf("cursor = %d, want 3", got)
	}
}

func TestInsertText(t *testing.T) {
	d := FromStringAt("hello world", 5)

	d = d.InsertText(",")
	if d.Text() != "hello, world" {
		t.Errorf("text = %q", d.Text())
	}
	if d.Cursor() != 6 {
		t.Errorf("cursor = %d, want 6", d.Cursor())
	}
}

func TestInsertDoesNotMutateReceiver(t *testing.T) {
	d := FromString("abc")
	_ = d.InsertText("xyz")

	if d.Text() != "abc" || d.Cursor() != 3 {
		t.Error("receiver was mutated by InsertText")
	}
}

func TestDeleteBeforeCursor(t *testing.T) {
	d := FromString("hello")

	d, removed := d.DeleteBeforeCursor(2)
	if d.Text() != "hel" || removed != "lo" {
		t.Errorf("text = %q removed = %q", d.Text(), removed)
	}
	if d.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", d.Cursor())
	}

	// Clamped at the start.
	d, removed = d.DeleteBeforeCursor(10)
	if d.Text() != "" || removed != "hel" {
		t.Errorf("text = %q removed = %q", d.Text(), removed)
	}
}

func TestDeleteAtCursor(t *testing.T) {
	d := FromStringAt("hello", 1)

	d, removed := d.DeleteAtCursor(2)
	if d.Text() != "hlo" || removed != "el" {
		t.Errorf("text = %q removed = %q", d.Text(), removed)
	}
	if d.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", d.Cursor())
	}
}

func TestDeleteRangeCursorAdjustment(t *testing.T) {
	tests := []struct {
		name       string
		cursor     int
		start, end int
		wantCursor int
	}{
		{"cursor after range", 8, 2, 4, 6},
		{"cursor inside range", 3, 2, 6, 2},
		{"cursor before range", 1, 4, 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromStringAt("0123456789", tt.cursor)
			d, _ = d.DeleteRange(tt.start, tt.end)
			if d.Cursor() != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", d.Cursor(), tt.wantCursor)
			}
		})
	}
}

func TestTransformRange(t *testing.T) {
	d := FromStringAt("hello world", 0)

	d = d.TransformRange(0, 5, func(s string) string { return "HELLO" })
	if d.Text() != "HELLO world" {
		t.Errorf("text = %q", d.Text())
	}
	if d.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", d.Cursor())
	}
}

func TestReplaceRange(t *testing.T) {
	d := FromString("hello world")

	d = d.ReplaceRange(6, 11, "there")
	if d.Text() != "hello there" {
		t.Errorf("text = %q", d.Text())
	}
	if d.Cursor() != 11 {
		t.Errorf("cursor = %d, want 11", d.Cursor())
	}
}

func TestSelection(t *testing.T) {
	d := FromString("hello").WithSelection(1, 4)

	sel, ok := d.Selection()
	if !ok {
		t.Fatal("expected a selection")
	}
	if sel.Start() != 1 || sel.End() != 4 {
		t.Errorf("selection = [%d, %d)", sel.Start(), sel.End())
	}

	// Any text mutation clears the selection.
	m := d.InsertText("x")
	if _, ok := m.Selection(); ok {
		t.Error("insert should clear the selection")
	}
}

func TestLineHelpers(t *testing.T) {
	d := FromStringAt("one\ntwo\nthree", 5) // cursor on 'w' of "two"

	if d.LineStart() != 4 || d.LineEnd() != 7 {
		t.Errorf("line bounds = [%d, %d), want [4, 7)", d.LineStart(), d.LineEnd())
	}
	if d.CurrentLine() != "two" {
		t.Errorf("current line = %q", d.CurrentLine())
	}
	if d.CursorRow() != 1 || d.CursorCol() != 1 {
		t.Errorf("row/col = %d/%d, want 1/1", d.CursorRow(), d.CursorCol())
	}
	if d.LineCount() != 3 {
		t.Errorf("line count = %d, want 3", d.LineCount())
	}
}

func TestCursorUpDown(t *testing.T) {
	d := FromStringAt("one\ntwo long\nthree", 10) // on "two long"

	up, moved := d.CursorUp()
	if !moved {
		t.Fatal("expected to move up")
	}
	// Column clamps to the shorter line above.
	if up.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3 (end of 'one')", up.Cursor())
	}

	if _, moved := up.CursorUp(); moved {
		t.Error("first line should not move up")
	}

	down, moved := d.CursorDown()
	if !moved {
		t.Fatal("expected to move down")
	}
	if down.CurrentLine() != "three" {
		t.Errorf("line after down = %q", down.CurrentLine())
	}
}

func TestWordMotions(t *testing.T) {
	d := FromStringAt("foo bar-baz qux", 0)

	tests := []struct {
		name   string
		cursor int
		got    func(Document) int
		want   int
	}{
		{"w from start", 0, func(d Document) int { return d.WordForward(false) }, 4},
		{"w from bar", 4, func(d Document) int { return d.WordForward(false) }, 7},
		{"W from bar", 4, func(d Document) int { return d.WordForward(true) }, 12},
		{"b from qux", 12, func(d Document) int { return d.WordBackward(false) }, 8},
		{"B from qux", 12, func(d Document) int { return d.WordBackward(true) }, 4},
		{"e from start", 0, func(d Document) int { return d.WordEnd(false) }, 2},
		{"E from bar", 4, func(d Document) int { return d.WordEnd(true) }, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got(d.WithCursor(tt.cursor)); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEmacsWordMotions(t *testing.T) {
	d := FromStringAt("hello world test", 16)

	// Two backward words from the end: "test", then "world ".
	first := d.EmacsWordBackward()
	if first != 12 {
		t.Fatalf("first backward = %d, want 12", first)
	}
	second := d.WithCursor(first).EmacsWordBackward()
	if second != 6 {
		t.Fatalf("second backward = %d, want 6", second)
	}

	fwd := d.WithCursor(0).EmacsWordForward()
	if fwd != 5 {
		t.Errorf("forward from 0 = %d, want 5", fwd)
	}
}

func TestFindChar(t *testing.T) {
	d := FromStringAt("abcabcabc", 0)

	tests := []struct {
		name    string
		count   int
		forward bool
		till    bool
		want    int
		ok      bool
	}{
		{"f b", 1, true, false, 1, true},
		{"2f b", 2, true, false, 4, true},
		{"t b", 1, true, true, 0, true},
		{"f z misses", 1, true, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := 'b'
			if !tt.ok {
				target = 'z'
			}
			got, ok := d.FindChar(target, tt.count, tt.forward, tt.till)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("offset = %d, want %d", got, tt.want)
			}
		})
	}

	back := FromStringAt("abcabc", 5)
	got, ok := back.FindChar('a', 1, false, false)
	if !ok || got != 3 {
		t.Errorf("F a = %d/%v, want 3/true", got, ok)
	}
}

func TestBalancedRange(t *testing.T) {
	d := FromStringAt("before(inside)after", 9) // cursor inside parens

	start, end, ok := d.BalancedRange('(', ')', false)
	if !ok || d.TextRange(start, end) != "inside" {
		t.Fatalf("inner = %q ok=%v", d.TextRange(start, end), ok)
	}

	start, end, ok = d.BalancedRange('(', ')', true)
	if !ok || d.TextRange(start, end) != "(inside)" {
		t.Fatalf("around = %q ok=%v", d.TextRange(start, end), ok)
	}
}

func TestBalancedRangeNested(t *testing.T) {
	d := FromStringAt("a(b(c)d)e", 6) // cursor on 'd'

	start, end, ok := d.BalancedRange('(', ')', false)
	if !ok || d.TextRange(start, end) != "b(c)d" {
		t.Errorf("inner = %q ok=%v", d.TextRange(start, end), ok)
	}
}

func TestBalancedRangeMissing(t *testing.T) {
	d := FromStringAt("no delimiters here", 5)

	if _, _, ok := d.BalancedRange('(', ')', false); ok {
		t.Error("expected no enclosing pair")
	}
}

func TestQuoteRange(t *testing.T) {
	d := FromStringAt(`say "hi there" now`, 8)

	start, end, ok := d.BalancedRange('"', '"', false)
	if !ok || d.TextRange(start, end) != "hi there" {
		t.Errorf("inner quote = %q ok=%v", d.TextRange(start, end), ok)
	}
}

func TestWordRange(t *testing.T) {
	d := FromStringAt("foo bar baz", 5) // on "bar"

	start, end, ok := d.WordRange(false, false)
	if !ok || d.TextRange(start, end) != "bar" {
		t.Errorf("iw = %q ok=%v", d.TextRange(start, end), ok)
	}

	start, end, ok = d.WordRange(false, true)
	if !ok || d.TextRange(start, end) != "bar " {
		t.Errorf("aw = %q ok=%v", d.TextRange(start, end), ok)
	}
}

func TestDisplayWidth(t *testing.T) {
	d := FromStringAt("a界b", 2) // cursor after the wide rune

	if d.DisplayWidth() != 4 {
		t.Errorf("display width = %d, want 4", d.DisplayWidth())
	}
	if d.WidthBeforeCursor() != 3 {
		t.Errorf("width before cursor = %d, want 3", d.WidthBeforeCursor())
	}
}
