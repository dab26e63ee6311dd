package dispatcher

import (
	"strings"

	"github.com/dshills/keyline/internal/engine/document"
	"github.com/dshills/keyline/internal/history"
	"github.com/dshills/keyline/internal/input/key"
)

// searchState is the incremental history search sub-mode.
type searchState struct {
	active   bool
	backward bool
	term     []rune

	// saved restores the line when the search is cancelled.
	saved document.Document

	// index is the history index of the current match, -1 for none.
	index  int
	failed bool
}

func (s *searchState) prompt() string {
	dir := "i-search"
	if s.backward {
		dir = "reverse-i-search"
	}
	if s.failed {
		dir = "failing " + dir
	}
	return "(" + dir + ")`" + string(s.term) + "'"
}

func searchReverse(d *Dispatcher, _ *actionContext) error {
	d.enterSearch(true)
	return nil
}

func searchForward(d *Dispatcher, _ *actionContext) error {
	d.enterSearch(false)
	return nil
}

func (d *Dispatcher) enterSearch(backward bool) {
	d.search = searchState{
		active:   true,
		backward: backward,
		saved:    d.doc,
		index:    -1,
	}
	d.undo.CloseBurst()
}

// handleSearchKey processes one key inside incremental search.
func (d *Dispatcher) handleSearchKey(ev key.Event) {
	switch {
	case ev.IsPlainRune():
		d.search.term = append(d.search.term, ev.Rune)
		d.searchFrom(d.anchor(), d.search.backward)

	case ev.IsPaste():
		// Pasting mid-search extends the term, readline style.
		if ev.Text == "" {
			return
		}
		d.search.term = append(d.search.term, []rune(ev.Text)...)
		d.searchFrom(d.anchor(), d.search.backward)

	case ev.IsCtrl('r'):
		d.search.backward = true
		d.searchStep()

	case ev.IsCtrl('s'):
		d.search.backward = false
		d.searchStep()

	case ev.IsBackspace():
		if n := len(d.search.term); n > 0 {
			d.search.term = d.search.term[:n-1]
		}
		if len(d.search.term) == 0 {
			d.search.index = -1
			d.search.failed = false
			d.doc = d.search.saved
			return
		}
		d.search.index = -1
		d.searchFrom(d.anchor(), d.search.backward)

	case ev.IsEnter():
		// Accept the match and keep editing it.
		d.acceptSearch()

	case ev.Key == key.KeyEscape || ev.IsCtrl('g'):
		d.cancelSearch()

	default:
		// Any other key ends the search and is handled normally.
		d.acceptSearch()
		d.route(ev)
	}
}

// anchor is the index the next search scans from, inclusive.
func (d *Dispatcher) anchor() int {
	if d.search.index >= 0 {
		return d.search.index
	}
	if d.search.backward {
		return d.hist.Len() - 1
	}
	return 0
}

// searchStep advances to the next match in the current direction.
func (d *Dispatcher) searchStep() {
	if len(d.search.term) == 0 {
		// Repeating with an empty term recalls the previous search.
		if d.lastSearch.term == "" {
			return
		}
		d.search.term = []rune(d.lastSearch.term)
		d.searchFrom(d.anchor(), d.search.backward)
		return
	}

	from := d.anchor()
	if d.search.index >= 0 {
		if d.search.backward {
			from--
		} else {
			from++
		}
	}
	d.searchFrom(from, d.search.backward)
}

// searchFrom scans the history for the current term and shows the
// match with the cursor at the match position.
func (d *Dispatcher) searchFrom(from int, backward bool) {
	term := string(d.search.term)

	var idx int
	var ok bool
	if backward {
		idx, ok = history.SearchBackward(d.hist, term, from)
	} else {
		idx, ok = history.SearchForward(d.hist, term, from)
	}
	if !ok {
		d.search.failed = true
		return
	}

	entry, _ := d.hist.At(idx)
	d.search.index = idx
	d.search.failed = false
	d.browser.JumpTo(idx, d.search.saved.Text())

	pos := strings.Index(entry, term)
	d.doc = document.FromStringAt(entry, len([]rune(entry[:pos])))
}

// acceptSearch leaves search mode keeping the matched line.
func (d *Dispatcher) acceptSearch() {
	if term := string(d.search.term); term != "" {
		d.lastSearch.term = term
		d.lastSearch.backward = d.search.backward
	}
	d.search = searchState{}
}

// cancelSearch leaves search mode restoring the original line.
func (d *Dispatcher) cancelSearch() {
	d.doc = d.search.saved
	d.browser.Reset()
	d.search = searchState{}
}

// searchNext repeats the last search toward older entries (vi n).
func searchNext(d *Dispatcher, _ *actionContext) error {
	return d.repeatSearch(false)
}

// searchPrev repeats the last search in the opposite direction (vi N).
func searchPrev(d *Dispatcher, _ *actionContext) error {
	return d.repeatSearch(true)
}

func (d *Dispatcher) repeatSearch(reverse bool) error {
	term := d.lastSearch.term
	if term == "" {
		return nil
	}
	backward := d.lastSearch.backward
	if reverse {
		backward = !backward
	}

	from := d.browser.Index()
	var idx int
	var ok bool
	if backward {
		idx, ok = history.SearchBackward(d.hist, term, from-1)
	} else {
		idx, ok = history.SearchForward(d.hist, term, from+1)
	}
	if !ok {
		return nil
	}

	entry, _ := d.hist.At(idx)
	d.browser.JumpTo(idx, d.doc.Text())
	pos := strings.Index(entry, term)
	d.doc = document.FromStringAt(entry, len([]rune(entry[:pos])))
	return nil
}
