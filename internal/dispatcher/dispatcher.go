package dispatcher

import (
	"strings"

	"github.com/dshills/keyline/internal/engine/clipboard"
	"github.com/dshills/keyline/internal/engine/document"
	"github.com/dshills/keyline/internal/engine/undo"
	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/input/digraph"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/input/keymap"
	"github.com/dshills/keyline/internal/input/macro"
	"github.com/dshills/keyline/internal/input/vi"
)

// Result is the outcome of handling one key event.
type Result uint8

const (
	// ResultNone means editing continues.
	ResultNone Result = iota

	// ResultAccept means the line was accepted (Enter).
	ResultAccept

	// ResultInterrupt means the line was interrupted (Ctrl-C).
	ResultInterrupt

	// ResultEndOfInput means end of input was signalled (Ctrl-D on an
	// empty line).
	ResultEndOfInput
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultAccept:
		return "accept"
	case ResultInterrupt:
		return "interrupt"
	case ResultEndOfInput:
		return "endOfInput"
	default:
		return "unknown"
	}
}

// Config carries the dispatcher's collaborators. Nil fields get
// defaults.
type Config struct {
	// Registry resolves key sequences to actions. A nil registry gets
	// the built-in keymaps.
	Registry *keymap.Registry

	// Digraphs is the digraph table for Ctrl-K composition.
	Digraphs *digraph.Table

	// History is the shared log of accepted lines.
	History history.Store

	// Clipboard is the register store shared across lines.
	Clipboard *clipboard.Store

	// Mode is the starting editing mode; defaults to Emacs.
	Mode string

	// Initial is the starting document.
	Initial document.Document

	// MaxUndoEntries bounds the undo stack (0 means the default).
	MaxUndoEntries int
}

// actionContext carries per-invocation data to an action handler.
type actionContext struct {
	// count is the resolved repeat count, always >= 1. Negative
	// numeric arguments are applied by swapping the action for its
	// directional inverse before the handler runs.
	count int

	// event is the key event that triggered the action.
	event key.Event

	// args are extra binding arguments from the keymap.
	args map[string]any
}

// actionFunc is an action handler. Errors are advisory; the dispatcher
// has no bell to ring, so a failed action is a no-op.
type actionFunc func(d *Dispatcher, ctx *actionContext) error

// argState accumulates an Emacs numeric argument (M-2 M-0 ...).
type argState struct {
	active   bool
	negative bool
	digits   bool
	value    int
}

// replaceState waits for the character argument of vi r.
type replaceState struct {
	active bool
	count  int
}

// quotedState waits for the key C-q inserts literally.
type quotedState struct {
	active bool
	count  int
}

// Dispatcher routes key events to actions and owns the line state.
// It is not safe for concurrent use; the session serializes access.
type Dispatcher struct {
	registry *keymap.Registry
	actions  map[string]actionFunc
	digraphs *digraph.Table

	doc     document.Document
	undo    *undo.Stack
	clip    *clipboard.Store
	hist    history.Store
	browser *history.Browser

	mode     string
	viParser *vi.Parser

	pendingSeq   *key.Sequence
	pendingCount int // count carried out of the vi parser
	arg          argState

	macro      *macro.Recorder
	replaying  bool
	lastSeqLen int // length of the last matched binding sequence

	search  searchState
	compose composeState
	replace replaceState
	quoted  quotedState

	// mark is the other end of a C-x C-x point exchange; a fresh line
	// marks position zero.
	mark int

	lastFind   findState
	lastSearch struct {
		term     string
		backward bool
	}

	// Consecutive kill commands accumulate into one clipboard entry.
	lastWasKill bool
	killedNow   bool

	accepted    string
	clearScreen bool
	result      Result
}

// findState remembers the last f/F/t/T for ; and , repeats.
type findState struct {
	set     bool
	char    rune
	forward bool
	till    bool
}

// New creates a dispatcher. A nil or zero Config field falls back to
// a usable default, so New(Config{}) is a working Emacs-mode editor.
func New(cfg Config) (*Dispatcher, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = keymap.NewRegistry()
		if err := keymap.LoadDefaults(registry); err != nil {
			return nil, err
		}
	}

	table := cfg.Digraphs
	if table == nil {
		table = digraph.Default()
	}

	store := cfg.History
	if store == nil {
		store = history.NewMemoryStore(0)
	}

	clip := cfg.Clipboard
	if clip == nil {
		clip = clipboard.NewStore()
	}

	mode := cfg.Mode
	if mode == "" {
		mode = keymap.ModeEmacs
	}

	d := &Dispatcher{
		registry:   registry,
		digraphs:   table,
		doc:        cfg.Initial,
		undo:       undo.NewStack(cfg.MaxUndoEntries),
		clip:       clip,
		hist:       store,
		browser:    history.NewBrowser(store),
		mode:       mode,
		viParser:   vi.NewParser(),
		pendingSeq: key.NewSequence(),
		macro:      macro.NewRecorder(),
	}
	d.actions = builtinActions()
	return d, nil
}

// Document returns the current line state.
func (d *Dispatcher) Document() document.Document {
	return d.doc
}

// SetDocument replaces the line state, clearing undo history.
func (d *Dispatcher) SetDocument(doc document.Document) {
	d.doc = doc
	d.undo.Clear()
}

// Mode returns the current editing mode.
func (d *Dispatcher) Mode() string {
	return d.mode
}

// SetMode switches the editing mode and discards open sequences.
func (d *Dispatcher) SetMode(mode string) {
	d.mode = mode
	d.viParser.Reset()
	d.pendingSeq.Clear()
	d.pendingCount = 0
	d.arg = argState{}
}

// Accepted returns the text of the last accepted line.
func (d *Dispatcher) Accepted() string {
	return d.accepted
}

// Searching reports whether incremental search is active.
func (d *Dispatcher) Searching() bool {
	return d.search.active
}

// Clipboard returns the register store.
func (d *Dispatcher) Clipboard() *clipboard.Store {
	return d.clip
}

// History returns the history store.
func (d *Dispatcher) History() history.Store {
	return d.hist
}

// TakeClearRequest reports and clears a pending clear-screen request.
func (d *Dispatcher) TakeClearRequest() bool {
	v := d.clearScreen
	d.clearScreen = false
	return v
}

// PendingDisplay returns the open sequence or sub-mode prompt for a
// status area; empty when nothing is pending.
func (d *Dispatcher) PendingDisplay() string {
	switch {
	case d.search.active:
		return d.search.prompt()
	case d.compose.active:
		return d.compose.prompt()
	case d.viParser.Pending():
		return d.viParser.PendingKeys()
	case !d.pendingSeq.IsEmpty():
		return d.pendingSeq.String()
	}
	return ""
}

// Reset prepares the dispatcher for a fresh line. The clipboard and
// history survive; everything line-local is discarded.
func (d *Dispatcher) Reset() {
	d.doc = document.New()
	d.undo.Clear()
	d.browser.Reset()
	d.viParser.Reset()
	d.pendingSeq.Clear()
	d.pendingCount = 0
	d.arg = argState{}
	d.search = searchState{}
	d.compose = composeState{}
	d.replace = replaceState{}
	d.quoted = quotedState{}
	d.mark = 0
	d.macro.Cancel()
	d.lastWasKill = false
	d.accepted = ""
	d.result = ResultNone
	// Vi prompts start each line in insert mode.
	if d.mode == keymap.ModeViNormal || d.mode == keymap.ModeViReplace {
		d.mode = keymap.ModeViInsert
	}
}

// HandleEvent routes one key event and returns the line outcome.
func (d *Dispatcher) HandleEvent(ev key.Event) Result {
	d.result = ResultNone
	d.killedNow = false

	// Recorded keys include the stop chord; macro.end trims it off.
	if d.macro.Recording() && !d.replaying {
		d.macro.Record(ev)
	}

	switch {
	case d.quoted.active:
		d.handleQuotedKey(ev)
	case d.search.active:
		d.handleSearchKey(ev)
	case d.compose.active:
		d.handleComposeKey(ev)
	case d.replace.active:
		d.handleReplaceKey(ev)
	case ev.IsPaste():
		d.handlePasteEvent(ev)
	default:
		d.route(ev)
	}

	d.lastWasKill = d.killedNow
	return d.result
}

// route handles an event outside any sub-mode.
func (d *Dispatcher) route(ev key.Event) {
	if d.mode == keymap.ModeEmacs && d.pendingSeq.IsEmpty() && d.handleNumericArg(ev) {
		return
	}

	if d.mode == keymap.ModeViNormal && d.pendingSeq.IsEmpty() {
		res := d.viParser.Parse(ev)
		switch res.Status {
		case vi.StatusPending, vi.StatusInvalid:
			return
		case vi.StatusComplete:
			d.execViCommand(res.Command)
			return
		case vi.StatusPassthrough:
			// A count before a non-grammar key still applies (3x).
			if res.Command != nil && res.Command.Count > 0 {
				d.pendingCount = res.Command.Count
			}
		}
	}

	d.routeKeymap(ev)
}

// routeKeymap extends the pending sequence and resolves it against the
// keymap registry.
func (d *Dispatcher) routeKeymap(ev key.Event) {
	d.pendingSeq.Add(ev)

	if b := d.registry.Lookup(d.pendingSeq, d.mode); b != nil {
		d.lastSeqLen = d.pendingSeq.Len()
		d.pendingSeq.Clear()
		d.execute(b.Action, ev, b.Args)
		return
	}

	if d.registry.HasPrefix(d.pendingSeq, d.mode) {
		return // wait for more keys
	}

	multi := d.pendingSeq.Len() > 1
	d.pendingSeq.Clear()
	if multi {
		// A dead multi-key sequence is dropped whole.
		return
	}
	d.fallback(ev)
}

// fallback handles a key no binding claims.
func (d *Dispatcher) fallback(ev key.Event) {
	if ev.IsPlainRune() && d.mode == keymap.ModeViReplace {
		count := d.takeMagnitude()
		d.overwriteText(strings.Repeat(string(ev.Rune), count), true)
		return
	}

	if ev.IsPlainRune() && d.mode != keymap.ModeViNormal {
		count := d.takeMagnitude()
		d.insertText(strings.Repeat(string(ev.Rune), count), true)
		return
	}

	if ev.Key == key.KeyEscape {
		d.arg = argState{}
		d.pendingCount = 0
	}
}

// handleNumericArg accumulates an Emacs numeric argument. Returns true
// when the event was consumed.
func (d *Dispatcher) handleNumericArg(ev key.Event) bool {
	if !ev.IsRune() {
		return false
	}

	r := ev.Rune
	alt := ev.Modifiers.HasAlt() && !ev.Modifiers.HasCtrl()

	switch {
	case alt && r >= '0' && r <= '9':
		d.arg.active = true
		d.arg.digits = true
		d.arg.value = d.arg.value*10 + int(r-'0')
		return true
	case alt && r == '-' && !d.arg.digits:
		d.arg.active = true
		d.arg.negative = true
		return true
	case d.arg.active && ev.IsPlainRune() && r >= '0' && r <= '9':
		d.arg.digits = true
		d.arg.value = d.arg.value*10 + int(r-'0')
		return true
	}
	return false
}

// takeCount consumes the pending repeat count. The sign carries a
// negative numeric argument; zero means no count was given.
func (d *Dispatcher) takeCount() int {
	if d.pendingCount != 0 {
		c := d.pendingCount
		d.pendingCount = 0
		return c
	}
	if d.arg.active {
		v := d.arg.value
		if !d.arg.digits {
			v = 1
		}
		if d.arg.negative {
			v = -v
		}
		d.arg = argState{}
		return v
	}
	return 0
}

// takeMagnitude consumes the pending count ignoring its sign, with a
// floor of one.
func (d *Dispatcher) takeMagnitude() int {
	c := d.takeCount()
	if c < 0 {
		c = -c
	}
	if c == 0 {
		c = 1
	}
	return c
}

// inverseActions maps directional actions to their opposites, applied
// when a negative numeric argument flips the direction (M-- M-d kills
// backward).
var inverseActions = map[string]string{}

func init() {
	pairs := [][2]string{
		{"cursor.left", "cursor.right"},
		{"cursor.wordForward", "cursor.wordBackward"},
		{"edit.deleteForward", "edit.deleteBackward"},
		{"edit.killWordForward", "edit.killWordBackward"},
		{"history.prev", "history.next"},
	}
	for _, p := range pairs {
		inverseActions[p[0]] = p[1]
		inverseActions[p[1]] = p[0]
	}
}

// execute resolves the repeat count and runs a named action.
func (d *Dispatcher) execute(action string, ev key.Event, args map[string]any) {
	count := d.takeCount()
	if count < 0 {
		if inv, ok := inverseActions[action]; ok {
			action = inv
		}
		count = -count
	}
	if count == 0 {
		count = 1
	}

	fn, ok := d.actions[action]
	if !ok {
		return
	}
	// Failed actions (undo at the bottom of the stack, a motion with
	// nowhere to go) are silent no-ops.
	_ = fn(d, &actionContext{count: count, event: ev, args: args})
}

// handlePasteEvent inserts bracketed-paste text as one undo unit.
func (d *Dispatcher) handlePasteEvent(ev key.Event) {
	if ev.Text == "" {
		return
	}
	d.undo.Save(d.doc, false)
	d.doc = d.doc.InsertText(ev.Text)
}

// insertText inserts at the cursor, recording undo state. Mergeable
// inserts join the current typing burst.
func (d *Dispatcher) insertText(s string, mergeable bool) {
	d.undo.Save(d.doc, mergeable)
	d.doc = d.doc.InsertText(s)
}

// overwriteText replaces characters at the cursor, extending the line
// once the cursor runs past its end.
func (d *Dispatcher) overwriteText(s string, mergeable bool) {
	d.undo.Save(d.doc, mergeable)
	for _, r := range s {
		c := d.doc.Cursor()
		if c < d.doc.LineEnd() {
			d.doc = d.doc.ReplaceRange(c, c+1, string(r)).WithCursor(c + 1)
		} else {
			d.doc = d.doc.InsertText(string(r))
		}
	}
}

// kill routes deleted text to the clipboard, accumulating across
// consecutive kill commands the way the Emacs kill ring does.
func (d *Dispatcher) kill(text string, before bool) {
	if text == "" {
		return
	}
	if d.lastWasKill {
		d.clip.AppendText(text, before)
	} else {
		d.clip.SetText(text)
	}
	d.killedNow = true
}

// moveCursor moves the cursor and closes the current undo burst so the
// next insert starts a fresh unit.
func (d *Dispatcher) moveCursor(pos int) {
	d.doc = d.doc.WithCursor(pos)
	d.undo.CloseBurst()
}

// playMacro replays the keyboard macro as if its keys were retyped.
// Replay stops when a replayed key ends the line; that outcome stands.
func (d *Dispatcher) playMacro(count int) error {
	if d.replaying {
		return nil
	}
	if d.macro.Recording() {
		return macro.ErrAlreadyRecording
	}
	events := d.macro.Events()
	if len(events) == 0 {
		return macro.ErrEmptyMacro
	}

	d.replaying = true
	defer func() { d.replaying = false }()

	for i := 0; i < count; i++ {
		for _, ev := range events {
			if d.HandleEvent(ev) != ResultNone {
				return nil
			}
		}
	}
	return nil
}
