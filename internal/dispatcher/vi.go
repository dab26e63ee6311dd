package dispatcher

import (
	"strings"

	"github.com/dshills/keyline/internal/engine/clipboard"
	"github.com/dshills/keyline/internal/input/keymap"
	"github.com/dshills/keyline/internal/input/vi"
)

// execViCommand runs a command produced by the normal-mode grammar.
func (d *Dispatcher) execViCommand(cmd *vi.Command) {
	count := cmd.GetCount()

	switch {
	case cmd.TextObject != nil:
		d.execTextObject(cmd)
	case cmd.Linewise:
		d.execLinewise(cmd, count)
	case cmd.Operator != nil:
		d.execOperatorMotion(cmd, count)
	case cmd.Motion != nil:
		d.execBareMotion(cmd, count)
	}
}

// execBareMotion moves the cursor.
func (d *Dispatcher) execBareMotion(cmd *vi.Command, count int) {
	switch cmd.Motion.Name {
	case "up":
		historyPrev(d, &actionContext{count: count})
		return
	case "down":
		historyNext(d, &actionContext{count: count})
		return
	case "first":
		// gg walks within the buffer when it is multiline, else to the
		// oldest history entry.
		if d.doc.LineCount() > 1 {
			d.moveCursor(0)
			return
		}
		historyFirst(d, nil)
		return
	case "last":
		if d.doc.LineCount() > 1 {
			d.moveCursor(d.doc.Len())
			return
		}
		historyLast(d, nil)
		return
	}

	target, ok := d.motionTarget(cmd, count)
	if !ok {
		return
	}
	d.moveCursor(target)
}

// motionTarget resolves a charwise motion to a cursor offset.
func (d *Dispatcher) motionTarget(cmd *vi.Command, count int) (int, bool) {
	doc := d.doc

	switch cmd.Motion.Name {
	case "left":
		return max(doc.Cursor()-count, doc.LineStart()), true
	case "right":
		return min(doc.Cursor()+count, doc.LineEnd()), true
	case "lineStart":
		return doc.LineStart(), true
	case "lineEnd":
		return doc.LineEnd(), true
	case "firstNonBlank":
		return doc.FirstNonBlank(), true
	case "wordForward", "bigWordForward":
		big := cmd.Motion.Name == "bigWordForward"
		for i := 0; i < count; i++ {
			doc = doc.WithCursor(doc.WordForward(big))
		}
		return doc.Cursor(), true
	case "wordBackward", "bigWordBackward":
		big := cmd.Motion.Name == "bigWordBackward"
		for i := 0; i < count; i++ {
			doc = doc.WithCursor(doc.WordBackward(big))
		}
		return doc.Cursor(), true
	case "wordEnd", "bigWordEnd":
		big := cmd.Motion.Name == "bigWordEnd"
		for i := 0; i < count; i++ {
			doc = doc.WithCursor(doc.WordEnd(big))
		}
		return doc.Cursor(), true
	case "findForward", "findBackward", "tillForward", "tillBackward":
		forward := cmd.Motion.Name == "findForward" || cmd.Motion.Name == "tillForward"
		till := cmd.Motion.Name == "tillForward" || cmd.Motion.Name == "tillBackward"
		target, ok := doc.FindChar(cmd.CharArg, count, forward, till)
		if ok {
			d.lastFind = findState{set: true, char: cmd.CharArg, forward: forward, till: till}
		}
		return target, ok
	case "repeatFind", "repeatFindReverse":
		if !d.lastFind.set {
			return 0, false
		}
		forward := d.lastFind.forward
		if cmd.Motion.Name == "repeatFindReverse" {
			forward = !forward
		}
		return doc.FindChar(d.lastFind.char, count, forward, d.lastFind.till)
	}
	return 0, false
}

// motionRange builds the half-open range an operator acts on.
func (d *Dispatcher) motionRange(cmd *vi.Command, count int) (int, int, bool) {
	target, ok := d.motionTarget(cmd, count)
	if !ok {
		return 0, 0, false
	}

	cur := d.doc.Cursor()
	start, end := cur, target
	if start > end {
		start, end = end, start
	}

	if d.motionInclusive(cmd) {
		end = min(end+1, d.doc.Len())
	}
	if start == end {
		return 0, 0, false
	}
	return start, end, true
}

// motionInclusive resolves inclusivity per command: character searches
// include the target only in the forward direction.
func (d *Dispatcher) motionInclusive(cmd *vi.Command) bool {
	switch cmd.Motion.Name {
	case "findForward", "tillForward":
		return true
	case "findBackward", "tillBackward":
		return false
	case "repeatFind", "repeatFindReverse":
		forward := d.lastFind.forward
		if cmd.Motion.Name == "repeatFindReverse" {
			forward = !forward
		}
		return forward
	}
	return cmd.Motion.Inclusive
}

// execOperatorMotion applies an operator over a motion range. Linewise
// motions (j, k, G, gg) act on whole lines like the doubled form.
func (d *Dispatcher) execOperatorMotion(cmd *vi.Command, count int) {
	if cmd.Motion.Type == vi.MotionLinewise {
		d.execLinewise(cmd, count)
		return
	}

	start, end, ok := d.motionRange(cmd, count)
	if !ok {
		return
	}
	d.applyOperator(cmd, start, end, clipboard.Characters)
}

// execTextObject applies an operator over a text object range. A
// missing delimiter pair cancels the whole command.
func (d *Dispatcher) execTextObject(cmd *vi.Command) {
	obj := cmd.TextObject
	around := cmd.TextObjectPrefix == vi.PrefixAround

	var start, end int
	var ok bool
	if obj.Open != 0 {
		start, end, ok = d.doc.BalancedRange(obj.Open, obj.Close, around)
	} else {
		start, end, ok = d.doc.WordRange(obj.BigWord, around)
	}
	if !ok || start == end {
		return
	}
	d.applyOperator(cmd, start, end, clipboard.Characters)
}

// execLinewise applies the doubled-operator form over count lines.
func (d *Dispatcher) execLinewise(cmd *vi.Command, count int) {
	start := d.doc.LineStart()
	end := d.doc.LineEnd()
	for i := 1; i < count && end < d.doc.Len(); i++ {
		end = d.doc.LineEndAt(end + 1)
	}

	op := cmd.Operator
	reg := registerOf(cmd)
	text := d.doc.TextRange(start, end)

	switch op.Name {
	case "yank":
		d.clip.Set(reg, clipboard.Entry{Text: text, Mode: clipboard.Lines})
		d.moveCursor(start)
	case "delete":
		d.undo.Save(d.doc, false)
		// Deleting lines removes a bounding newline too.
		delStart, delEnd := start, end
		switch {
		case delEnd < d.doc.Len():
			delEnd++
		case delStart > 0:
			delStart--
		}
		doc, _ := d.doc.DeleteRange(delStart, delEnd)
		d.doc = doc
		d.clip.Set(reg, clipboard.Entry{Text: text, Mode: clipboard.Lines})
	case "change":
		d.undo.Save(d.doc, false)
		doc, _ := d.doc.DeleteRange(start, end)
		d.doc = doc
		d.clip.Set(reg, clipboard.Entry{Text: text, Mode: clipboard.Lines})
		d.mode = keymap.ModeViInsert
	case "toLower":
		d.transformRange(start, end, strings.ToLower)
	case "toUpper":
		d.transformRange(start, end, strings.ToUpper)
	case "toggleCase":
		d.transformRange(start, end, swapCase)
	}
}

// applyOperator runs a character-wise operator over [start, end).
func (d *Dispatcher) applyOperator(cmd *vi.Command, start, end int, mode clipboard.PasteMode) {
	op := cmd.Operator
	reg := registerOf(cmd)

	switch op.Name {
	case "yank":
		d.clip.Set(reg, clipboard.Entry{Text: d.doc.TextRange(start, end), Mode: mode})
		d.moveCursor(start)
	case "delete":
		d.undo.Save(d.doc, false)
		doc, removed := d.doc.DeleteRange(start, end)
		d.doc = doc
		d.clip.Set(reg, clipboard.Entry{Text: removed, Mode: mode})
	case "change":
		d.undo.Save(d.doc, false)
		doc, removed := d.doc.DeleteRange(start, end)
		d.doc = doc
		d.clip.Set(reg, clipboard.Entry{Text: removed, Mode: mode})
		d.mode = keymap.ModeViInsert
	case "toLower":
		d.transformRange(start, end, strings.ToLower)
	case "toUpper":
		d.transformRange(start, end, strings.ToUpper)
	case "toggleCase":
		d.transformRange(start, end, swapCase)
	}
}

func (d *Dispatcher) transformRange(start, end int, fn func(string) string) {
	d.undo.Save(d.doc, false)
	d.doc = d.doc.TransformRange(start, end, fn).WithCursor(start)
}

func registerOf(cmd *vi.Command) rune {
	if cmd.Register != 0 {
		return cmd.Register
	}
	return clipboard.Unnamed
}
