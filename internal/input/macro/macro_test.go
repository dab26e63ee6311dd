package macro

import (
	"errors"
	"testing"

	"github.com/dshills/keyline/internal/input/key"
)

func events(s string) []key.Event {
	out := make([]key.Event, 0, len(s))
	for _, r := range s {
		out = append(out, key.NewRuneEvent(r, key.ModNone))
	}
	return out
}

func TestRecordStopTrimsStopChord(t *testing.T) {
	r := NewRecorder()
	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for _, ev := range events("abc") {
		r.Record(ev)
	}
	// The two keys of the stop chord arrive before Stop runs.
	r.Record(key.MustParse("C-x"))
	r.Record(key.MustParse(")"))

	if err := r.Stop(2); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	got := r.Events()
	if len(got) != 3 {
		t.Fatalf("Events() len = %d, want 3", len(got))
	}
	for i, want := range "abc" {
		if got[i].Rune != want {
			t.Errorf("event %d = %q, want %q", i, got[i].Rune, want)
		}
	}
}

func TestStartWhileRecording(t *testing.T) {
	r := NewRecorder()
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	if err := r.Start(); !errors.Is(err, ErrAlreadyRecording) {
		t.Errorf("Start() error = %v, want ErrAlreadyRecording", err)
	}
}

func TestStopWithoutStart(t *testing.T) {
	r := NewRecorder()
	if err := r.Stop(0); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Stop() error = %v, want ErrNotRecording", err)
	}
}

func TestCancelKeepsSavedMacro(t *testing.T) {
	r := NewRecorder()
	_ = r.Start()
	r.Record(key.NewRuneEvent('x', key.ModNone))
	if err := r.Stop(0); err != nil {
		t.Fatal(err)
	}

	_ = r.Start()
	r.Record(key.NewRuneEvent('y', key.ModNone))
	r.Cancel()

	if r.Recording() {
		t.Error("Recording() = true after Cancel")
	}
	got := r.Events()
	if len(got) != 1 || got[0].Rune != 'x' {
		t.Errorf("Events() = %v, want the earlier macro", got)
	}
}

func TestRecordIgnoredWhenIdle(t *testing.T) {
	r := NewRecorder()
	r.Record(key.NewRuneEvent('x', key.ModNone))
	if r.Defined() {
		t.Error("Defined() = true, want false")
	}
}

func TestStopTrimLargerThanRecording(t *testing.T) {
	r := NewRecorder()
	_ = r.Start()
	r.Record(key.NewRuneEvent('x', key.ModNone))
	if err := r.Stop(5); err != nil {
		t.Fatal(err)
	}
	if r.Defined() {
		t.Error("Defined() = true, want empty macro")
	}
}
