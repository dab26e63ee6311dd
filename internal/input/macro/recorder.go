package macro

import (
	"errors"
	"sync"

	"github.com/dshills/keyline/internal/input/key"
)

// Recorder errors.
var (
	ErrAlreadyRecording = errors.New("already recording a macro")
	ErrNotRecording     = errors.New("no macro recording in progress")
	ErrEmptyMacro       = errors.New("no keyboard macro defined")
)

// Recorder captures key events into the keyboard macro. One macro is
// kept at a time; starting a new recording replaces it when stopped.
type Recorder struct {
	mu        sync.Mutex
	recording bool
	events    []key.Event
	saved     []key.Event
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start begins a new recording. The previously saved macro is kept
// until the recording is stopped.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return ErrAlreadyRecording
	}
	r.recording = true
	r.events = nil
	return nil
}

// Stop ends the recording and saves the macro. The trailing trim
// events are discarded; they are the keys of the stop chord itself,
// which was already routed by the time Stop runs.
func (r *Recorder) Stop(trim int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return ErrNotRecording
	}
	r.recording = false
	if trim < 0 {
		trim = 0
	}
	if trim > len(r.events) {
		trim = len(r.events)
	}
	r.saved = r.events[:len(r.events)-trim]
	r.events = nil
	return nil
}

// Cancel abandons an in-progress recording, keeping the saved macro.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	r.events = nil
}

// Recording reports whether a recording is in progress.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Record appends an event to the recording. A no-op when not
// recording.
func (r *Recorder) Record(ev key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.events = append(r.events, ev)
	}
}

// Events returns a copy of the saved macro; empty when none is
// defined.
func (r *Recorder) Events() []key.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]key.Event, len(r.saved))
	copy(out, r.saved)
	return out
}

// Defined reports whether a non-empty macro has been saved.
func (r *Recorder) Defined() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved) > 0
}
