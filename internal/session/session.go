package session

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"

	"github.com/dshills/keyline/internal/dispatcher"
	"github.com/dshills/keyline/internal/engine/clipboard"
	"github.com/dshills/keyline/internal/engine/document"
	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/input/decoder"
	"github.com/dshills/keyline/internal/input/digraph"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/input/keymap"
)

// Outcome is the terminal-facing result of feeding input.
type Outcome uint8

const (
	// OutcomeNone means editing continues.
	OutcomeNone Outcome = iota

	// OutcomeAccept means a line was accepted; read it with Accepted.
	OutcomeAccept

	// OutcomeInterrupt means the user interrupted the line (Ctrl-C).
	OutcomeInterrupt

	// OutcomeEndOfInput means end of input (Ctrl-D on an empty line).
	OutcomeEndOfInput
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeAccept:
		return "accept"
	case OutcomeInterrupt:
		return "interrupt"
	case OutcomeEndOfInput:
		return "endOfInput"
	default:
		return "unknown"
	}
}

// DefaultEscapeTimeout is how long a lone ESC byte may wait for the
// rest of a sequence before it resolves to the Escape key.
const DefaultEscapeTimeout = 50 * time.Millisecond

// Options configures a session. Zero-value fields get defaults.
type Options struct {
	// Mode is the starting editing mode (keymap.ModeEmacs by default).
	Mode string

	// Initial is the starting document for the first line.
	Initial document.Document

	// History is the shared history store; sessions sharing a store
	// share history.
	History history.Store

	// Clipboard is the shared register store.
	Clipboard *clipboard.Store

	// Registry supplies key bindings; nil loads the defaults.
	Registry *keymap.Registry

	// Digraphs is the digraph table for Ctrl-K composition.
	Digraphs *digraph.Table

	// DecoderTable replaces the default escape sequence table.
	DecoderTable *decoder.Table

	// Encoding converts legacy single-byte input to UTF-8.
	Encoding encoding.Encoding

	// EscapeTimeout overrides DefaultEscapeTimeout.
	EscapeTimeout time.Duration

	// MaxUndoEntries bounds the per-line undo stack.
	MaxUndoEntries int
}

// Snapshot is a render-ready view of the line state.
type Snapshot struct {
	// Text is the full line content.
	Text string

	// Cursor is the cursor offset in runes.
	Cursor int

	// DisplayCol is the terminal cell width of the text left of the
	// cursor, for positioning the hardware cursor.
	DisplayCol int

	// Mode is the editing mode name ("emacs", "vi-normal", "vi-insert",
	// "vi-replace").
	Mode string

	// Pending shows an open key sequence or sub-mode prompt, empty
	// when nothing is pending.
	Pending string

	// Searching is true during incremental history search.
	Searching bool
}

// Session binds a byte decoder to a dispatcher for one interactive
// prompt. It is single-threaded: the caller owns the read loop and the
// escape timeout.
type Session struct {
	id   uuid.UUID
	dec  *decoder.Decoder
	disp *dispatcher.Dispatcher

	escapeTimeout time.Duration
	outcome       Outcome
}

// New creates a session.
func New(opts Options) (*Session, error) {
	var decOpts []decoder.Option
	if opts.DecoderTable != nil {
		decOpts = append(decOpts, decoder.WithTable(opts.DecoderTable))
	}
	if opts.Encoding != nil {
		decOpts = append(decOpts, decoder.WithEncoding(opts.Encoding))
	}

	disp, err := dispatcher.New(dispatcher.Config{
		Registry:       opts.Registry,
		Digraphs:       opts.Digraphs,
		History:        opts.History,
		Clipboard:      opts.Clipboard,
		Mode:           opts.Mode,
		Initial:        opts.Initial,
		MaxUndoEntries: opts.MaxUndoEntries,
	})
	if err != nil {
		return nil, err
	}

	timeout := opts.EscapeTimeout
	if timeout <= 0 {
		timeout = DefaultEscapeTimeout
	}

	return &Session{
		id:            uuid.New(),
		dec:           decoder.New(decOpts...),
		disp:          disp,
		escapeTimeout: timeout,
	}, nil
}

// ID returns the session's unique identity, stable across lines.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// EscapeTimeout returns the configured escape disambiguation window.
func (s *Session) EscapeTimeout() time.Duration {
	return s.escapeTimeout
}

// Feed consumes raw terminal bytes and returns the line outcome.
// Events decoded after a terminal outcome in the same chunk are
// dropped; the caller reads the next line through a fresh Reset.
func (s *Session) Feed(p []byte) Outcome {
	return s.handle(s.dec.Feed(p))
}

// EscapePending reports whether the decoder is holding an ambiguous
// escape prefix. When true the caller arms a timer for EscapeTimeout
// and calls ResolveEscape if no bytes arrive in time.
func (s *Session) EscapePending() bool {
	return s.dec.Pending()
}

// ResolveEscape forces the buffered escape prefix to resolve as a bare
// Escape key press.
func (s *Session) ResolveEscape() Outcome {
	return s.handle(s.dec.Resolve())
}

func (s *Session) handle(events []key.Event) Outcome {
	for _, ev := range events {
		switch s.disp.HandleEvent(ev) {
		case dispatcher.ResultAccept:
			s.outcome = OutcomeAccept
			return OutcomeAccept
		case dispatcher.ResultInterrupt:
			s.outcome = OutcomeInterrupt
			return OutcomeInterrupt
		case dispatcher.ResultEndOfInput:
			s.outcome = OutcomeEndOfInput
			return OutcomeEndOfInput
		}
	}
	s.outcome = OutcomeNone
	return OutcomeNone
}

// Accepted returns the text of the last accepted line.
func (s *Session) Accepted() string {
	return s.disp.Accepted()
}

// Document returns the current line state.
func (s *Session) Document() document.Document {
	return s.disp.Document()
}

// TakeClearRequest reports and clears a pending clear-screen request.
func (s *Session) TakeClearRequest() bool {
	return s.disp.TakeClearRequest()
}

// Snapshot returns a render-ready view of the line.
func (s *Session) Snapshot() Snapshot {
	doc := s.disp.Document()
	return Snapshot{
		Text:       doc.Text(),
		Cursor:     doc.Cursor(),
		DisplayCol: doc.WidthBeforeCursor(),
		Mode:       s.disp.Mode(),
		Pending:    s.disp.PendingDisplay(),
		Searching:  s.disp.Searching(),
	}
}

// Reset prepares the session for the next line. History, clipboard,
// and the session identity survive; the decoder and all line-local
// editing state are discarded.
func (s *Session) Reset() {
	s.dec.Reset()
	s.disp.Reset()
	s.outcome = OutcomeNone
}
