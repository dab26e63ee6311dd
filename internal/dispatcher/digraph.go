package dispatcher

import "github.com/dshills/keyline/internal/input/key"

// composeState is the digraph composition sub-mode entered by C-k: the
// next two printable keys name a character from the digraph table.
type composeState struct {
	active   bool
	first    rune
	hasFirst bool
}

func (c *composeState) prompt() string {
	if c.hasFirst {
		return "?" + string(c.first)
	}
	return "?"
}

func digraphEnter(d *Dispatcher, _ *actionContext) error {
	d.compose = composeState{active: true}
	return nil
}

// handleComposeKey consumes the two characters of a digraph. An
// unknown pair falls back to the second character as typed; any
// non-printable key cancels composition.
func (d *Dispatcher) handleComposeKey(ev key.Event) {
	if ev.IsPaste() {
		// A paste cannot name a digraph; cancel and insert it whole.
		d.compose = composeState{}
		d.handlePasteEvent(ev)
		return
	}

	if !ev.IsPlainRune() {
		d.compose = composeState{}
		return
	}

	if !d.compose.hasFirst {
		d.compose.first = ev.Rune
		d.compose.hasFirst = true
		return
	}

	first := d.compose.first
	d.compose = composeState{}

	r, ok := d.digraphs.Lookup(first, ev.Rune)
	if !ok {
		r = ev.Rune
	}
	d.insertText(string(r), true)
}
