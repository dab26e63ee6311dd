package session

import (
	"testing"

	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/input/keymap"
)

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestFeedAcceptsLine(t *testing.T) {
	s := newSession(t, Options{})

	if out := s.Feed([]byte("hello")); out != OutcomeNone {
		t.Fatalf("outcome = %v, want none", out)
	}
	if out := s.Feed([]byte("\r")); out != OutcomeAccept {
		t.Fatalf("outcome = %v, want accept", out)
	}
	if got := s.Accepted(); got != "hello" {
		t.Errorf("Accepted = %q", got)
	}
}

func TestInterruptAndEOF(t *testing.T) {
	s := newSession(t, Options{})
	if out := s.Feed([]byte{0x03}); out != OutcomeInterrupt {
		t.Fatalf("Ctrl-C = %v, want interrupt", out)
	}

	s.Reset()
	if out := s.Feed([]byte{0x04}); out != OutcomeEndOfInput {
		t.Fatalf("Ctrl-D on empty line = %v, want endOfInput", out)
	}
}

func TestEscapeTimeoutFlow(t *testing.T) {
	s := newSession(t, Options{Mode: keymap.ModeViInsert})
	s.Feed([]byte("abc"))

	if out := s.Feed([]byte{0x1b}); out != OutcomeNone {
		t.Fatalf("lone ESC = %v, want none", out)
	}
	if !s.EscapePending() {
		t.Fatal("lone ESC should leave the decoder pending")
	}

	if out := s.ResolveEscape(); out != OutcomeNone {
		t.Fatalf("ResolveEscape = %v, want none", out)
	}
	snap := s.Snapshot()
	if snap.Mode != keymap.ModeViNormal {
		t.Errorf("mode = %q, want vi-normal", snap.Mode)
	}
	if snap.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", snap.Cursor)
	}
}

func TestEscapeSequenceNotPending(t *testing.T) {
	s := newSession(t, Options{History: seeded("older", "newer")})

	s.Feed([]byte("\x1b[A")) // Up arrow
	if s.EscapePending() {
		t.Error("complete sequence should not be pending")
	}
	if got := s.Snapshot().Text; got != "newer" {
		t.Errorf("text = %q, want %q", got, "newer")
	}
}

func seeded(lines ...string) history.Store {
	st := history.NewMemoryStore(0)
	for _, l := range lines {
		st.Append(l)
	}
	return st
}

func TestBracketedPasteIsAtomic(t *testing.T) {
	s := newSession(t, Options{})
	s.Feed([]byte("ab"))
	s.Feed([]byte("\x1b[200~pasted text\x1b[201~"))

	if got := s.Snapshot().Text; got != "abpasted text" {
		t.Fatalf("text = %q", got)
	}

	s.Feed([]byte{0x1f}) // C-_ undo
	if got := s.Snapshot().Text; got != "ab" {
		t.Errorf("one undo should remove the whole paste, text = %q", got)
	}
}

func TestSnapshotDisplayCol(t *testing.T) {
	s := newSession(t, Options{})
	s.Feed([]byte("a\xe7\x95\x8cb")) // a界b

	snap := s.Snapshot()
	if snap.Cursor != 3 {
		t.Errorf("cursor = %d, want 3", snap.Cursor)
	}
	if snap.DisplayCol != 4 {
		t.Errorf("DisplayCol = %d, want 4 (wide rune counts 2)", snap.DisplayCol)
	}
}

func TestResetStartsFreshLine(t *testing.T) {
	s := newSession(t, Options{})
	id := s.ID()

	s.Feed([]byte("first\r"))
	s.Reset()

	snap := s.Snapshot()
	if snap.Text != "" || snap.Cursor != 0 {
		t.Errorf("snapshot after Reset = %+v", snap)
	}
	if s.ID() != id {
		t.Error("identity must survive Reset")
	}

	s.Feed([]byte("second\r"))
	if got := s.Accepted(); got != "second" {
		t.Errorf("Accepted = %q", got)
	}
}

func TestSharedHistoryAcrossLines(t *testing.T) {
	st := history.NewMemoryStore(0)
	s := newSession(t, Options{History: st})

	s.Feed([]byte("one\r"))
	s.Reset()
	s.Feed([]byte("two\r"))

	if st.Len() != 2 {
		t.Fatalf("history len = %d, want 2", st.Len())
	}
	entry, _ := st.At(0)
	if entry != "one" {
		t.Errorf("entry 0 = %q", entry)
	}
}

func TestSearchSnapshot(t *testing.T) {
	s := newSession(t, Options{History: seeded("echo hello")})

	s.Feed([]byte{0x12}) // C-r
	snap := s.Snapshot()
	if !snap.Searching {
		t.Fatal("C-r should enter search")
	}
	if snap.Pending == "" {
		t.Error("search prompt should appear in Pending")
	}

	s.Feed([]byte("echo"))
	if got := s.Snapshot().Text; got != "echo hello" {
		t.Errorf("text = %q", got)
	}
}
