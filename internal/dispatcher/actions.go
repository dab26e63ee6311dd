package dispatcher

import (
	"strings"
	"unicode"

	"github.com/dshills/keyline/internal/engine/clipboard"
	"github.com/dshills/keyline/internal/engine/document"
	"github.com/dshills/keyline/internal/input/key"
	"github.com/dshills/keyline/internal/input/keymap"
)

// builtinActions returns the named action handlers the default keymaps
// bind. Custom keymaps can only reference actions listed here.
func builtinActions() map[string]actionFunc {
	return map[string]actionFunc{
		// Cursor movement. Word motions use Emacs alphanumeric
		// boundaries; vi word motions run through the command grammar.
		"cursor.left":         cursorLeft,
		"cursor.right":        cursorRight,
		"cursor.lineStart":    cursorLineStart,
		"cursor.lineEnd":      cursorLineEnd,
		"cursor.wordForward":  cursorWordForward,
		"cursor.wordBackward": cursorWordBackward,

		"cursor.exchangePointMark": cursorExchangePointMark,

		// Deletion and killing.
		"edit.deleteBackward":     deleteBackward,
		"edit.deleteForward":      deleteForward,
		"edit.deleteForwardOrEOF": deleteForwardOrEOF,
		"edit.killLineEnd":        killLineEnd,
		"edit.killLineStart":      killLineStart,
		"edit.killWordBackward":   killWordBackward,
		"edit.killWordForward":    killWordForward,
		"edit.paste":              pasteUnnamed,
		"edit.insertNewline":      insertNewline,
		"edit.quotedInsert":       quotedInsert,

		// Transforms.
		"edit.transposeChars": transposeChars,
		"edit.upcaseWord":     upcaseWord,
		"edit.downcaseWord":   downcaseWord,
		"edit.capitalizeWord": capitalizeWord,

		// Undo.
		"edit.undo": undoAction,
		"edit.redo": redoAction,

		// Vi normal-mode edits bound outside the operator grammar.
		"edit.deleteToEnd":    viDeleteToEnd,
		"edit.changeToEnd":    viChangeToEnd,
		"edit.substitute":     viSubstitute,
		"edit.changeLine":     viChangeLine,
		"edit.replaceChar":    viReplaceChar,
		"edit.toggleCaseChar": viToggleCaseChar,
		"edit.yankLine":       viYankLine,
		"edit.pasteAfter":     viPasteAfter,
		"edit.pasteBefore":    viPasteBefore,

		// History.
		"history.prev":  historyPrev,
		"history.next":  historyNext,
		"history.first": historyFirst,
		"history.last":  historyLast,

		// Mode switching.
		"mode.insert":          modeInsert,
		"mode.insertLineStart": modeInsertLineStart,
		"mode.append":          modeAppend,
		"mode.appendLineEnd":   modeAppendLineEnd,
		"mode.replace":         modeReplace,
		"mode.normal":          modeNormal,

		// Search and composition.
		"search.reverse": searchReverse,
		"search.forward": searchForward,
		"search.next":    searchNext,
		"search.prev":    searchPrev,
		"digraph.enter":  digraphEnter,

		// Keyboard macros.
		"macro.start": macroStart,
		"macro.end":   macroEnd,
		"macro.play":  macroPlay,

		// Line control.
		"line.accept":      lineAccept,
		"line.interrupt":   lineInterrupt,
		"line.abort":       lineAbort,
		"line.clearScreen": lineClearScreen,
	}
}

func cursorLeft(d *Dispatcher, ctx *actionContext) error {
	d.moveCursor(max(d.doc.Cursor()-ctx.count, d.doc.LineStart()))
	return nil
}

func cursorRight(d *Dispatcher, ctx *actionContext) error {
	d.moveCursor(min(d.doc.Cursor()+ctx.count, d.doc.LineEnd()))
	return nil
}

func cursorLineStart(d *Dispatcher, _ *actionContext) error {
	d.moveCursor(d.doc.LineStart())
	return nil
}

func cursorLineEnd(d *Dispatcher, _ *actionContext) error {
	d.moveCursor(d.doc.LineEnd())
	return nil
}

func cursorWordForward(d *Dispatcher, ctx *actionContext) error {
	doc := d.doc
	for i := 0; i < ctx.count; i++ {
		doc = doc.WithCursor(doc.EmacsWordForward())
	}
	d.moveCursor(doc.Cursor())
	return nil
}

func cursorWordBackward(d *Dispatcher, ctx *actionContext) error {
	doc := d.doc
	for i := 0; i < ctx.count; i++ {
		doc = doc.WithCursor(doc.EmacsWordBackward())
	}
	d.moveCursor(doc.Cursor())
	return nil
}

func deleteBackward(d *Dispatcher, ctx *actionContext) error {
	if d.doc.Cursor() == 0 {
		return nil
	}
	d.undo.Save(d.doc, false)
	doc, removed := d.doc.DeleteBeforeCursor(ctx.count)
	d.doc = doc
	if d.mode == keymap.ModeViNormal {
		d.clip.SetText(removed)
	}
	return nil
}

func deleteForward(d *Dispatcher, ctx *actionContext) error {
	if d.doc.Cursor() >= d.doc.Len() {
		return nil
	}
	d.undo.Save(d.doc, false)
	doc, removed := d.doc.DeleteAtCursor(ctx.count)
	d.doc = doc
	// Vi x yanks the deleted characters; Emacs delete-char does not
	// touch the kill ring.
	if d.mode == keymap.ModeViNormal {
		d.clip.SetText(removed)
	}
	return nil
}

func deleteForwardOrEOF(d *Dispatcher, ctx *actionContext) error {
	if d.doc.IsEmpty() {
		d.result = ResultEndOfInput
		return nil
	}
	return deleteForward(d, ctx)
}

func killLineEnd(d *Dispatcher, _ *actionContext) error {
	end := d.doc.LineEnd()
	if d.doc.Cursor() == end {
		// At the line end C-k eats the newline, joining lines.
		if end >= d.doc.Len() {
			return nil
		}
		end++
	}
	d.undo.Save(d.doc, false)
	doc, removed := d.doc.DeleteRange(d.doc.Cursor(), end)
	d.doc = doc
	d.kill(removed, false)
	return nil
}

func killLineStart(d *Dispatcher, _ *actionContext) error {
	start := d.doc.LineStart()
	if d.doc.Cursor() == start {
		return nil
	}
	d.undo.Save(d.doc, false)
	doc, removed := d.doc.DeleteRange(start, d.doc.Cursor())
	d.doc = doc
	d.kill(removed, true)
	return nil
}

func killWordBackward(d *Dispatcher, ctx *actionContext) error {
	doc := d.doc
	for i := 0; i < ctx.count; i++ {
		doc = doc.WithCursor(doc.EmacsWordBackward())
	}
	start := doc.Cursor()
	if start == d.doc.Cursor() {
		return nil
	}
	d.undo.Save(d.doc, false)
	out, removed := d.doc.DeleteRange(start, d.doc.Cursor())
	d.doc = out
	d.kill(removed, true)
	return nil
}

func killWordForward(d *Dispatcher, ctx *actionContext) error {
	doc := d.doc
	for i := 0; i < ctx.count; i++ {
		doc = doc.WithCursor(doc.EmacsWordForward())
	}
	end := doc.Cursor()
	if end == d.doc.Cursor() {
		return nil
	}
	d.undo.Save(d.doc, false)
	out, removed := d.doc.DeleteRange(d.doc.Cursor(), end)
	d.doc = out
	d.kill(removed, false)
	return nil
}

func pasteUnnamed(d *Dispatcher, ctx *actionContext) error {
	text := d.clip.Text()
	if text == "" {
		return nil
	}
	d.insertText(strings.Repeat(text, ctx.count), false)
	return nil
}

func insertNewline(d *Dispatcher, ctx *actionContext) error {
	d.insertText(strings.Repeat("\n", ctx.count), false)
	return nil
}

func transposeChars(d *Dispatcher, _ *actionContext) error {
	c := d.doc.Cursor()
	n := d.doc.Len()
	if c == 0 || n < 2 {
		return nil
	}

	d.undo.Save(d.doc, false)
	if c >= n {
		// At the end the last two characters swap in place.
		d.doc = d.doc.TransformRange(n-2, n, reverse2)
		return nil
	}
	d.doc = d.doc.TransformRange(c-1, c+1, reverse2).WithCursor(c + 1)
	return nil
}

func reverse2(s string) string {
	r := []rune(s)
	if len(r) == 2 {
		r[0], r[1] = r[1], r[0]
	}
	return string(r)
}

func upcaseWord(d *Dispatcher, ctx *actionContext) error {
	return transformWords(d, ctx.count, strings.ToUpper)
}

func downcaseWord(d *Dispatcher, ctx *actionContext) error {
	return transformWords(d, ctx.count, strings.ToLower)
}

func capitalizeWord(d *Dispatcher, ctx *actionContext) error {
	return transformWords(d, ctx.count, capitalize)
}

// transformWords applies fn from the cursor to the end of the count'th
// word and leaves the cursor there.
func transformWords(d *Dispatcher, count int, fn func(string) string) error {
	doc := d.doc
	for i := 0; i < count; i++ {
		doc = doc.WithCursor(doc.EmacsWordForward())
	}
	end := doc.Cursor()
	start := d.doc.Cursor()
	if end == start {
		return nil
	}
	d.undo.Save(d.doc, false)
	d.doc = d.doc.TransformRange(start, end, fn).WithCursor(end)
	return nil
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(s string) string {
	out := []rune(strings.ToLower(s))
	for i, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out[i] = unicode.ToUpper(r)
			break
		}
	}
	return string(out)
}

func undoAction(d *Dispatcher, ctx *actionContext) error {
	for i := 0; i < ctx.count; i++ {
		doc, err := d.undo.Undo(d.doc)
		if err != nil {
			return err
		}
		d.doc = doc
	}
	return nil
}

func redoAction(d *Dispatcher, ctx *actionContext) error {
	for i := 0; i < ctx.count; i++ {
		doc, err := d.undo.Redo(d.doc)
		if err != nil {
			return err
		}
		d.doc = doc
	}
	return nil
}

func viDeleteToEnd(d *Dispatcher, _ *actionContext) error {
	end := d.doc.LineEnd()
	if d.doc.Cursor() == end {
		return nil
	}
	d.undo.Save(d.doc, false)
	doc, removed := d.doc.DeleteRange(d.doc.Cursor(), end)
	d.doc = doc
	d.clip.SetText(removed)
	return nil
}

func viChangeToEnd(d *Dispatcher, ctx *actionContext) error {
	if err := viDeleteToEnd(d, ctx); err != nil {
		return err
	}
	d.mode = keymap.ModeViInsert
	return nil
}

func viSubstitute(d *Dispatcher, ctx *actionContext) error {
	if d.doc.Cursor() < d.doc.LineEnd() {
		d.undo.Save(d.doc, false)
		doc, removed := d.doc.DeleteAtCursor(ctx.count)
		d.doc = doc
		d.clip.SetText(removed)
	}
	d.mode = keymap.ModeViInsert
	return nil
}

func viChangeLine(d *Dispatcher, _ *actionContext) error {
	start, end := d.doc.LineStart(), d.doc.LineEnd()
	if start != end {
		d.undo.Save(d.doc, false)
		doc, removed := d.doc.DeleteRange(start, end)
		d.doc = doc
		d.clip.Set(clipboard.Unnamed, clipboard.Entry{Text: removed, Mode: clipboard.Lines})
	}
	d.mode = keymap.ModeViInsert
	return nil
}

func viReplaceChar(d *Dispatcher, ctx *actionContext) error {
	d.replace = replaceState{active: true, count: ctx.count}
	return nil
}

// cursorExchangePointMark swaps the cursor with the mark. The mark
// starts at zero, so the first exchange jumps to the line start and a
// second one jumps back.
func cursorExchangePointMark(d *Dispatcher, _ *actionContext) error {
	c := d.doc.Cursor()
	target := d.mark
	d.mark = c
	d.moveCursor(target)
	return nil
}

// quotedInsert arms the sub-mode that inserts the next key literally.
func quotedInsert(d *Dispatcher, ctx *actionContext) error {
	d.quoted = quotedState{active: true, count: ctx.count}
	return nil
}

// handleQuotedKey inserts the key C-q armed for, control bytes
// included. Keys with no literal byte form are dropped.
func (d *Dispatcher) handleQuotedKey(ev key.Event) {
	pending := d.quoted
	d.quoted = quotedState{}

	r, ok := literalRune(ev)
	if !ok {
		return
	}
	d.insertText(strings.Repeat(string(r), pending.count), true)
}

// literalRune maps an event back to the byte the terminal sent, the
// inverse of the decoder's control mapping.
func literalRune(ev key.Event) (rune, bool) {
	switch {
	case ev.IsPlainRune():
		return ev.Rune, true
	case ev.IsRune() && ev.Modifiers.HasCtrl():
		switch r := ev.Rune; {
		case r == ' ':
			return 0x00, true
		case r >= 'a' && r <= 'z':
			return r - 'a' + 1, true
		case r == '\\':
			return 0x1c, true
		case r == ']':
			return 0x1d, true
		case r == '^':
			return 0x1e, true
		case r == '_':
			return 0x1f, true
		}
	}

	switch ev.Key {
	case key.KeyEnter:
		return '\r', true
	case key.KeyTab:
		return '\t', true
	case key.KeyEscape:
		return 0x1b, true
	case key.KeyBackspace:
		return 0x7f, true
	}
	return 0, false
}

// handleReplaceKey consumes the character argument of vi r. Replacing
// fails whole when fewer than count characters remain on the line.
func (d *Dispatcher) handleReplaceKey(ev key.Event) {
	pending := d.replace
	d.replace = replaceState{}

	if !ev.IsPlainRune() {
		return
	}

	c := d.doc.Cursor()
	if c+pending.count > d.doc.LineEnd() {
		return
	}
	d.undo.Save(d.doc, false)
	d.doc = d.doc.ReplaceRange(c, c+pending.count, strings.Repeat(string(ev.Rune), pending.count)).
		WithCursor(c + pending.count - 1)
}

func viToggleCaseChar(d *Dispatcher, ctx *actionContext) error {
	c := d.doc.Cursor()
	end := min(c+ctx.count, d.doc.LineEnd())
	if c == end {
		return nil
	}
	d.undo.Save(d.doc, false)
	d.doc = d.doc.TransformRange(c, end, swapCase).WithCursor(end)
	return nil
}

func swapCase(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case unicode.IsUpper(r):
			out[i] = unicode.ToLower(r)
		case unicode.IsLower(r):
			out[i] = unicode.ToUpper(r)
		}
	}
	return string(out)
}

func viYankLine(d *Dispatcher, _ *actionContext) error {
	d.clip.Set(clipboard.Unnamed, clipboard.Entry{Text: d.doc.CurrentLine(), Mode: clipboard.Lines})
	return nil
}

func viPasteAfter(d *Dispatcher, ctx *actionContext) error {
	return d.viPaste(ctx.count, true)
}

func viPasteBefore(d *Dispatcher, ctx *actionContext) error {
	return d.viPaste(ctx.count, false)
}

// viPaste reinserts the unnamed register. Line-wise content goes on a
// line of its own; character-wise content lands beside the cursor with
// the cursor on the last pasted rune.
func (d *Dispatcher) viPaste(count int, after bool) error {
	e, ok := d.clip.Get(clipboard.Unnamed)
	if !ok {
		return nil
	}

	d.undo.Save(d.doc, false)
	if e.Mode == clipboard.Lines {
		if after {
			end := d.doc.LineEnd()
			d.doc = d.doc.InsertAt(end, "\n"+e.Text).WithCursor(end + 1)
		} else {
			start := d.doc.LineStart()
			d.doc = d.doc.InsertAt(start, e.Text+"\n").WithCursor(start)
		}
		return nil
	}

	text := strings.Repeat(e.Text, count)
	pos := d.doc.Cursor()
	if after && pos < d.doc.LineEnd() {
		pos++
	}
	n := len([]rune(text))
	d.doc = d.doc.InsertAt(pos, text).WithCursor(pos + n - 1)
	return nil
}

func historyPrev(d *Dispatcher, ctx *actionContext) error {
	for i := 0; i < ctx.count; i++ {
		// In a multiline buffer Up moves within the buffer first.
		if d.doc.CursorRow() > 0 {
			doc, _ := d.doc.CursorUp()
			d.doc = doc
			d.undo.CloseBurst()
			continue
		}
		entry, ok := d.browser.Prev(d.doc.Text())
		if !ok {
			return nil
		}
		d.undo.Save(d.doc, false)
		d.doc = document.FromString(entry)
	}
	return nil
}

func historyNext(d *Dispatcher, ctx *actionContext) error {
	for i := 0; i < ctx.count; i++ {
		if d.doc.CursorRow() < d.doc.LineCount()-1 {
			doc, _ := d.doc.CursorDown()
			d.doc = doc
			d.undo.CloseBurst()
			continue
		}
		entry, ok := d.browser.Next()
		if !ok {
			return nil
		}
		d.undo.Save(d.doc, false)
		d.doc = document.FromString(entry)
	}
	return nil
}

func historyFirst(d *Dispatcher, _ *actionContext) error {
	entry, ok := d.browser.First(d.doc.Text())
	if !ok {
		return nil
	}
	d.undo.Save(d.doc, false)
	d.doc = document.FromString(entry)
	return nil
}

func historyLast(d *Dispatcher, _ *actionContext) error {
	entry, ok := d.browser.Last(d.doc.Text())
	if !ok {
		return nil
	}
	d.undo.Save(d.doc, false)
	d.doc = document.FromString(entry)
	return nil
}

func modeInsert(d *Dispatcher, _ *actionContext) error {
	d.mode = keymap.ModeViInsert
	d.undo.CloseBurst()
	return nil
}

func modeReplace(d *Dispatcher, _ *actionContext) error {
	d.mode = keymap.ModeViReplace
	d.undo.CloseBurst()
	return nil
}

func modeInsertLineStart(d *Dispatcher, _ *actionContext) error {
	d.doc = d.doc.WithCursor(d.doc.FirstNonBlank())
	return modeInsert(d, nil)
}

func modeAppend(d *Dispatcher, _ *actionContext) error {
	d.doc = d.doc.WithCursor(min(d.doc.Cursor()+1, d.doc.LineEnd()))
	return modeInsert(d, nil)
}

func modeAppendLineEnd(d *Dispatcher, _ *actionContext) error {
	d.doc = d.doc.WithCursor(d.doc.LineEnd())
	return modeInsert(d, nil)
}

func modeNormal(d *Dispatcher, _ *actionContext) error {
	d.mode = keymap.ModeViNormal
	d.viParser.Reset()
	// Leaving insert mode steps the cursor back, vi style.
	if c := d.doc.Cursor(); c > d.doc.LineStart() {
		d.doc = d.doc.WithCursor(c - 1)
	}
	d.undo.CloseBurst()
	return nil
}

func lineAccept(d *Dispatcher, _ *actionContext) error {
	d.accepted = d.doc.Text()
	d.hist.Append(d.accepted)
	d.browser.Reset()
	d.result = ResultAccept
	return nil
}

func lineInterrupt(d *Dispatcher, _ *actionContext) error {
	d.result = ResultInterrupt
	return nil
}

func lineAbort(d *Dispatcher, _ *actionContext) error {
	d.viParser.Reset()
	d.pendingSeq.Clear()
	d.pendingCount = 0
	d.arg = argState{}
	d.undo.CloseBurst()
	return nil
}

func lineClearScreen(d *Dispatcher, _ *actionContext) error {
	d.clearScreen = true
	return nil
}

func macroStart(d *Dispatcher, _ *actionContext) error {
	return d.macro.Start()
}

func macroEnd(d *Dispatcher, _ *actionContext) error {
	return d.macro.Stop(d.lastSeqLen)
}

func macroPlay(d *Dispatcher, ctx *actionContext) error {
	return d.playMacro(ctx.count)
}
