package dispatcher

import (
	"testing"

	"github.com/dshills/keyline/internal/engine/clipboard"
	"github.com/dshills/keyline/internal/engine/document"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/input/keymap"
)

func newDispatcher(t *testing.T, mode string) *Dispatcher {
	t.Helper()
	d, err := New(Config{Mode: mode})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

// press feeds key specs and returns the last result.
func press(t *testing.T, d *Dispatcher, specs ...string) Result {
	t.Helper()
	var res Result
	for _, s := range specs {
		res = d.HandleEvent(key.MustParse(s))
	}
	return res
}

// typeText feeds plain rune events.
func typeText(d *Dispatcher, s string) {
	for _, r := range s {
		d.HandleEvent(key.NewRuneEvent(r, key.ModNone))
	}
}

func wantText(t *testing.T, d *Dispatcher, text string, cursor int) {
	t.Helper()
	if got := d.Document().Text(); got != text {
		t.Errorf("text = %q, want %q", got, text)
	}
	if got := d.Document().Cursor(); got != cursor {
		t.Errorf("cursor = %d, want %d", got, cursor)
	}
}

func TestSelfInsertAndAccept(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "hello")
	wantText(t, d, "hello", 5)

	if res := press(t, d, "Enter"); res != ResultAccept {
		t.Fatalf("result = %v, want accept", res)
	}
	if d.Accepted() != "hello" {
		t.Errorf("Accepted = %q", d.Accepted())
	}
	if d.History().Len() != 1 {
		t.Errorf("history len = %d, want 1", d.History().Len())
	}
}

func TestTypingBurstUndoesAsOneUnit(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "hello world")

	press(t, d, "C-_")
	wantText(t, d, "", 0)
}

func TestCursorMotionSplitsUndoBurst(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "foo")
	press(t, d, "C-b")
	typeText(d, "x")
	wantText(t, d, "foxo", 3)

	press(t, d, "C-_")
	wantText(t, d, "foo", 2)
	press(t, d, "C-_")
	wantText(t, d, "", 0)
}

func TestUndoRedo(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "abc")

	press(t, d, "C-_")
	wantText(t, d, "", 0)

	press(t, d, "C-x", "C-u")
	wantText(t, d, "abc", 3)
}

func TestUndoChord(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "abc")

	press(t, d, "C-x")
	if d.PendingDisplay() == "" {
		t.Error("C-x should be pending")
	}
	typeText(d, "u")
	wantText(t, d, "", 0)
}

func TestKillWordBackwardWithNumericArg(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "hello world test")

	press(t, d, "M-2", "M-Backspace")
	wantText(t, d, "hello ", 6)
	if got := d.Clipboard().Text(); got != "world test" {
		t.Errorf("clipboard = %q, want %q", got, "world test")
	}

	press(t, d, "C-y")
	wantText(t, d, "hello world test", 16)
}

func TestConsecutiveKillsAccumulate(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "hello world test")

	press(t, d, "M-Backspace", "M-Backspace")
	wantText(t, d, "hello ", 6)
	if got := d.Clipboard().Text(); got != "world test" {
		t.Errorf("clipboard = %q, want %q", got, "world test")
	}
}

func TestNumericArgRepeatsInsert(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	press(t, d, "M-3")
	typeText(d, "x")
	wantText(t, d, "xxx", 3)
}

func TestNegativeArgInvertsDirection(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "foo bar")

	// M-- M-d kills backward instead of forward.
	press(t, d, "M-minus", "M-d")
	wantText(t, d, "foo ", 4)
	if got := d.Clipboard().Text(); got != "bar" {
		t.Errorf("clipboard = %q, want %q", got, "bar")
	}
}

func TestBracketedPasteIsOneUndoUnit(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "ab")
	d.HandleEvent(key.NewPasteEvent("XYZ"))
	wantText(t, d, "abXYZ", 5)

	press(t, d, "C-_")
	wantText(t, d, "ab", 2)
	press(t, d, "C-_")
	wantText(t, d, "", 0)
}

func TestDeleteForwardOrEOF(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	if res := press(t, d, "C-d"); res != ResultEndOfInput {
		t.Fatalf("C-d on empty line = %v, want endOfInput", res)
	}

	typeText(d, "ab")
	press(t, d, "C-a")
	if res := press(t, d, "C-d"); res != ResultNone {
		t.Fatalf("C-d with text = %v, want none", res)
	}
	wantText(t, d, "b", 0)
}

func TestInterrupt(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "partial")
	if res := press(t, d, "C-c"); res != ResultInterrupt {
		t.Fatalf("result = %v, want interrupt", res)
	}
}

func TestClearScreenRequest(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	press(t, d, "C-l")
	if !d.TakeClearRequest() {
		t.Error("expected a clear request")
	}
	if d.TakeClearRequest() {
		t.Error("clear request should be consumed")
	}
}

func TestHistoryNavigation(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	d.History().Append("one")
	d.History().Append("two")

	typeText(d, "draft")
	press(t, d, "Up")
	wantText(t, d, "two", 3)
	press(t, d, "Up")
	wantText(t, d, "one", 3)
	press(t, d, "Down")
	wantText(t, d, "two", 3)
	press(t, d, "Down")
	wantText(t, d, "draft", 5)
}

func TestHistoryFirstLast(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	d.History().Append("oldest")
	d.History().Append("middle")
	d.History().Append("newest")

	press(t, d, "M-<")
	wantText(t, d, "oldest", 6)
	press(t, d, "M->")
	wantText(t, d, "newest", 6)
}

func TestReverseSearch(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	d.History().Append("echo hello")
	d.History().Append("ls -la")
	d.History().Append("echo world")

	press(t, d, "C-r")
	if !d.Searching() {
		t.Fatal("C-r should enter search")
	}
	typeText(d, "echo")
	wantText(t, d, "echo world", 0)

	// Repeat finds the older match.
	press(t, d, "C-r")
	wantText(t, d, "echo hello", 0)

	press(t, d, "Enter")
	if d.Searching() {
		t.Error("Enter should leave search")
	}
	wantText(t, d, "echo hello", 0)
}

func TestSearchCancelRestoresLine(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	d.History().Append("ls -la")

	typeText(d, "draft")
	press(t, d, "C-r")
	typeText(d, "ls")
	wantText(t, d, "ls -la", 0)

	press(t, d, "Escape")
	if d.Searching() {
		t.Error("Escape should leave search")
	}
	wantText(t, d, "draft", 5)
}

func TestSearchBackspaceShrinksTerm(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	d.History().Append("alpha")
	d.History().Append("beta")

	press(t, d, "C-r")
	typeText(d, "al")
	wantText(t, d, "alpha", 0)

	press(t, d, "Backspace", "Backspace")
	wantText(t, d, "", 0) // empty term restores the saved line
}

func TestViModeSwitchAndMotion(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViInsert)
	typeText(d, "hello")

	press(t, d, "Escape")
	if d.Mode() != keymap.ModeViNormal {
		t.Fatalf("mode = %q, want vi-normal", d.Mode())
	}
	wantText(t, d, "hello", 4)

	typeText(d, "0")
	wantText(t, d, "hello", 0)
	typeText(d, "x")
	wantText(t, d, "ello", 0)
	if got := d.Clipboard().Text(); got != "h" {
		t.Errorf("clipboard = %q, want %q", got, "h")
	}
}

func TestViOperatorMotion(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("foo bar baz", 0))

	typeText(d, "dw")
	wantText(t, d, "bar baz", 0)
	if got := d.Clipboard().Text(); got != "foo " {
		t.Errorf("clipboard = %q, want %q", got, "foo ")
	}
}

func TestViCountThroughKeymap(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("abcdef", 0))

	typeText(d, "3x")
	wantText(t, d, "def", 0)
	if got := d.Clipboard().Text(); got != "abc" {
		t.Errorf("clipboard = %q, want %q", got, "abc")
	}
}

func TestViTextObjects(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)

	d.SetDocument(document.FromStringAt("before(inside)after", 9))
	typeText(d, "di(")
	wantText(t, d, "before()after", 7)
	if got := d.Clipboard().Text(); got != "inside" {
		t.Errorf("clipboard = %q, want %q", got, "inside")
	}

	d.SetDocument(document.FromStringAt("before(inside)after", 9))
	typeText(d, "da(")
	wantText(t, d, "beforeafter", 6)
}

func TestViTextObjectWithoutPairCancels(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("no pair here", 3))

	typeText(d, "di(")
	wantText(t, d, "no pair here", 3)
	if d.undo.CanUndo() {
		t.Error("a cancelled operator must not record undo state")
	}
}

func TestViChangeEntersInsert(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt(`say "hi there" now`, 8))

	typeText(d, `ci"`)
	wantText(t, d, `say "" now`, 5)
	if d.Mode() != keymap.ModeViInsert {
		t.Errorf("mode = %q, want vi-insert", d.Mode())
	}
}

func TestViRegisters(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("hello world", 0))

	typeText(d, `"ayw`)
	e, ok := d.Clipboard().Get('a')
	if !ok || e.Text != "hello " {
		t.Errorf("register a = %+v, ok=%v", e, ok)
	}
	// Named writes mirror into the unnamed register.
	if got := d.Clipboard().Text(); got != "hello " {
		t.Errorf("unnamed = %q", got)
	}
}

func TestViLinewiseDeleteAndPaste(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("hello", 2))

	typeText(d, "dd")
	wantText(t, d, "", 0)
	e, ok := d.Clipboard().Get(clipboard.Unnamed)
	if !ok || e.Text != "hello" || e.Mode != clipboard.Lines {
		t.Fatalf("unnamed = %+v, ok=%v", e, ok)
	}

	typeText(d, "p")
	wantText(t, d, "\nhello", 1)
}

func TestViCharacterwisePaste(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("abc", 0))

	typeText(d, "x") // clipboard "a", text "bc"
	typeText(d, "p")
	wantText(t, d, "bac", 1)
}

func TestViReplaceChar(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("abc", 0))

	typeText(d, "rz")
	wantText(t, d, "zbc", 0)

	typeText(d, "2rx")
	wantText(t, d, "xxc", 1)
}

func TestViReplaceCharFailsPastLineEnd(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("ab", 1))

	typeText(d, "5rz")
	wantText(t, d, "ab", 1)
}

func TestViCharSearchOperator(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("foo;bar", 0))

	typeText(d, "df;")
	wantText(t, d, "bar", 0)
}

func TestViCaseOperator(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("hello world", 0))

	typeText(d, "gUw")
	wantText(t, d, "HELLO world", 0)
}

func TestViUndo(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("hello world", 0))

	typeText(d, "dw")
	wantText(t, d, "world", 0)
	typeText(d, "u")
	wantText(t, d, "hello world", 0)
}

func TestViPendingDisplay(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("abc", 0))

	typeText(d, "2d")
	if got := d.PendingDisplay(); got != "2d" {
		t.Errorf("PendingDisplay = %q, want %q", got, "2d")
	}
	press(t, d, "Escape")
	if got := d.PendingDisplay(); got != "" {
		t.Errorf("PendingDisplay after Escape = %q", got)
	}
}

func TestDigraphCompose(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViInsert)

	press(t, d, "C-k")
	typeText(d, "e'")
	wantText(t, d, "é", 1)
}

func TestDigraphUnknownFallsBack(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViInsert)

	press(t, d, "C-k")
	typeText(d, "qq")
	wantText(t, d, "q", 1)
}

func TestDigraphCancelledBySpecialKey(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViInsert)

	press(t, d, "C-k", "Escape")
	typeText(d, "a")
	wantText(t, d, "a", 1)
}

func TestTransposeChars(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "ab")
	press(t, d, "C-t")
	wantText(t, d, "ba", 2)

	d = newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "abc")
	press(t, d, "C-a", "C-f", "C-t")
	wantText(t, d, "bac", 2)
}

func TestWordCaseTransforms(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "hello world")
	press(t, d, "C-a", "M-u")
	wantText(t, d, "HELLO world", 5)

	press(t, d, "M-c")
	wantText(t, d, "HELLO World", 11)
}

func TestKillLineAndYankBack(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "keep the rest")
	press(t, d, "C-a", "M-f", "C-k")
	wantText(t, d, "keep", 4)
	if got := d.Clipboard().Text(); got != " the rest" {
		t.Errorf("clipboard = %q", got)
	}

	press(t, d, "C-y")
	wantText(t, d, "keep the rest", 13)
}

func TestViDeleteForwardOrEOF(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	if res := press(t, d, "C-d"); res != ResultEndOfInput {
		t.Fatalf("C-d on empty line = %v, want endOfInput", res)
	}

	d.SetDocument(document.FromStringAt("abc", 0))
	if res := press(t, d, "C-d"); res != ResultNone {
		t.Fatalf("C-d with text = %v, want none", res)
	}
	wantText(t, d, "bc", 0)
}

func TestViReplaceModeOverwrites(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("hello", 0))

	press(t, d, "R")
	if d.Mode() != keymap.ModeViReplace {
		t.Fatalf("mode = %q, want vi-replace", d.Mode())
	}

	typeText(d, "HEY")
	wantText(t, d, "HEYlo", 3)

	// Past the line end replace mode appends.
	typeText(d, "XYZ")
	wantText(t, d, "HEYXYZ", 6)

	press(t, d, "Escape")
	if d.Mode() != keymap.ModeViNormal {
		t.Fatalf("mode = %q, want vi-normal", d.Mode())
	}
	wantText(t, d, "HEYXYZ", 5)
}

func TestViReplaceModeBackspaceStepsBack(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("abc", 0))

	press(t, d, "R")
	typeText(d, "xy")
	wantText(t, d, "xyc", 2)

	// Backspace moves left without deleting; overwrites stand.
	press(t, d, "Backspace")
	wantText(t, d, "xyc", 1)

	typeText(d, "Q")
	wantText(t, d, "xQc", 2)
}

func TestViReplaceModeUndo(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViNormal)
	d.SetDocument(document.FromStringAt("hello", 0))

	press(t, d, "R")
	typeText(d, "HEY")
	press(t, d, "Escape")
	wantText(t, d, "HEYlo", 2)

	typeText(d, "u")
	wantText(t, d, "hello", 0)
}

func TestQuotedInsertControlKey(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)

	press(t, d, "C-q", "C-g")
	wantText(t, d, "\x07", 1)
}

func TestQuotedInsertBoundKeyIsLiteral(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)

	// Enter after C-q inserts a carriage return instead of accepting.
	if res := press(t, d, "C-q", "Enter"); res != ResultNone {
		t.Fatalf("result = %v, want none", res)
	}
	wantText(t, d, "\r", 1)
}

func TestQuotedInsertWithNumericArg(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)

	press(t, d, "M-3", "C-q")
	typeText(d, "a")
	wantText(t, d, "aaa", 3)
}

func TestExchangePointAndMark(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "hello")

	// A fresh line marks position zero.
	press(t, d, "C-x", "C-x")
	wantText(t, d, "hello", 0)

	press(t, d, "C-x", "C-x")
	wantText(t, d, "hello", 5)
}

func TestPasteDuringSearchExtendsTerm(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	d.History().Append("echo hello")
	d.History().Append("ls -la")

	press(t, d, "C-r")
	d.HandleEvent(key.NewPasteEvent("echo"))
	if !d.Searching() {
		t.Fatal("paste should not leave search")
	}
	wantText(t, d, "echo hello", 0)
}

func TestPasteDuringDigraphComposeInserts(t *testing.T) {
	d := newDispatcher(t, keymap.ModeViInsert)

	press(t, d, "C-k")
	d.HandleEvent(key.NewPasteEvent("déjà"))
	wantText(t, d, "déjà", 4)
	if got := d.PendingDisplay(); got != "" {
		t.Errorf("PendingDisplay = %q, want empty", got)
	}
}

func TestCtrlHDeletesBackward(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "ab")
	press(t, d, "C-h")
	wantText(t, d, "a", 1)

	d = newDispatcher(t, keymap.ModeViInsert)
	typeText(d, "ab")
	press(t, d, "C-h")
	wantText(t, d, "a", 1)
}

func TestResetKeepsSharedState(t *testing.T) {
	d := newDispatcher(t, keymap.ModeEmacs)
	typeText(d, "one")
	press(t, d, "Enter")

	d.Reset()
	wantText(t, d, "", 0)
	if d.History().Len() != 1 {
		t.Errorf("history should survive Reset, len = %d", d.History().Len())
	}
	if d.Accepted() != "" {
		t.Errorf("Accepted should clear on Reset")
	}
}
