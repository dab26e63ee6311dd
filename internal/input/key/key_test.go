package key

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", NewRuneEvent('a', ModNone)},
		{"A", NewRuneEvent('A', ModNone)},
		{"C-a", NewRuneEvent('a', ModCtrl)},
		{"M-Backspace", NewSpecialEvent(KeyBackspace, ModAlt)},
		{"C-_", NewRuneEvent('_', ModCtrl)},
		{"M-<", NewRuneEvent('<', ModAlt)},
		{"@", NewRuneEvent('@', ModNone)},
		{"Enter", NewSpecialEvent(KeyEnter, ModNone)},
		{"escape", NewSpecialEvent(KeyEscape, ModNone)},
		{"Ctrl+A", NewRuneEvent('a', ModCtrl)},
		{"Alt+f", NewRuneEvent('f', ModAlt)},
		{"Meta+<", NewRuneEvent('<', ModAlt)},
		{"<C-a>", NewRuneEvent('a', ModCtrl)},
		{"<C-r>", NewRuneEvent('r', ModCtrl)},
		{"<M-b>", NewRuneEvent('b', ModAlt)},
		{"<A-BS>", NewSpecialEvent(KeyBackspace, ModAlt)},
		{"<CR>", NewSpecialEvent(KeyEnter, ModNone)},
		{"<Esc>", NewSpecialEvent(KeyEscape, ModNone)},
		{"<Space>", NewRuneEvent(' ', ModNone)},
		{"<C-Space>", NewRuneEvent(' ', ModCtrl)},
		{"<lt>", NewRuneEvent('<', ModNone)},
		{"<M-minus>", NewRuneEvent('-', ModAlt)},
		{"Up", NewSpecialEvent(KeyUp, ModNone)},
		{"f5", NewSpecialEvent(KeyF5, ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"", "<X-a>", "notakey", "<>"} {
		if _, err := Parse(spec); err == nil {
			t.Errorf("Parse(%q) expected error", spec)
		}
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		spec string
		want []Event
	}{
		{"gg", []Event{NewRuneEvent('g', ModNone), NewRuneEvent('g', ModNone)}},
		{"g g", []Event{NewRuneEvent('g', ModNone), NewRuneEvent('g', ModNone)}},
		{"diw", []Event{NewRuneEvent('d', ModNone), NewRuneEvent('i', ModNone), NewRuneEvent('w', ModNone)}},
		{"<C-x><C-u>", []Event{NewRuneEvent('x', ModCtrl), NewRuneEvent('u', ModCtrl)}},
		{"<M-2><A-BS>", []Event{NewRuneEvent('2', ModAlt), NewSpecialEvent(KeyBackspace, ModAlt)}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			seq, err := ParseSequence(tt.spec)
			if err != nil {
				t.Fatalf("ParseSequence(%q) error: %v", tt.spec, err)
			}
			if seq.Len() != len(tt.want) {
				t.Fatalf("ParseSequence(%q) len = %d, want %d", tt.spec, seq.Len(), len(tt.want))
			}
			for i, want := range tt.want {
				if !seq.Events[i].Equals(want) {
					t.Errorf("event %d = %v, want %v", i, seq.Events[i], want)
				}
			}
		})
	}
}

func TestSequencePrefix(t *testing.T) {
	full := MustParseSequence("gg")
	prefix := NewSequenceFrom(NewRuneEvent('g', ModNone))

	if !full.HasPrefix(prefix) {
		t.Error("expected 'gg' to have prefix 'g'")
	}
	if prefix.HasPrefix(full) {
		t.Error("'g' should not have prefix 'gg'")
	}
	if !full.HasPrefix(NewSequence()) {
		t.Error("empty prefix should always match")
	}
}

func TestEventPredicates(t *testing.T) {
	if !NewRuneEvent('r', ModCtrl).IsCtrl('r') {
		t.Error("IsCtrl failed for C-r")
	}
	if NewRuneEvent('r', ModNone).IsCtrl('r') {
		t.Error("plain r should not be C-r")
	}
	if !NewRuneEvent('x', ModNone).IsPlainRune() {
		t.Error("plain x should be a plain rune")
	}
	if NewRuneEvent('x', ModAlt).IsPlainRune() {
		t.Error("A-x should not be a plain rune")
	}
	if !NewPasteEvent("hello").IsPaste() {
		t.Error("paste event should report IsPaste")
	}
}
