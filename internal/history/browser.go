package history

// Browser walks a Store from newest to oldest. It stashes the line
// the user was composing when they first walk back, and hands it back
// when they walk forward past the newest entry.
type Browser struct {
	store Store

	// pos is the index currently shown; store.Len() means the live
	// line, not a history entry.
	pos int

	// stash holds the live line while browsing.
	stash    string
	browsing bool
}

// NewBrowser creates a browser positioned at the live line.
func NewBrowser(store Store) *Browser {
	return &Browser{store: store, pos: store.Len()}
}

// Browsing reports whether the browser is showing a history entry.
func (b *Browser) Browsing() bool {
	return b.browsing
}

// Index returns the current position. store.Len() means the live line.
func (b *Browser) Index() int {
	return b.pos
}

// Prev moves to the previous (older) entry. The first call stashes
// the live line. Returns false at the oldest entry.
func (b *Browser) Prev(live string) (string, bool) {
	if !b.browsing {
		b.pos = b.store.Len()
	}
	if b.pos == 0 {
		return "", false
	}

	if !b.browsing {
		b.stash = live
		b.browsing = true
	}

	b.pos--
	entry, ok := b.store.At(b.pos)
	if !ok {
		return "", false
	}
	return entry, true
}

// Next moves to the next (newer) entry. Walking past the newest entry
// restores the stashed live line and ends browsing. Returns false when
// already at the live line.
func (b *Browser) Next() (string, bool) {
	if !b.browsing {
		return "", false
	}

	b.pos++
	if b.pos >= b.store.Len() {
		b.pos = b.store.Len()
		b.browsing = false
		return b.stash, true
	}

	entry, ok := b.store.At(b.pos)
	if !ok {
		return "", false
	}
	return entry, true
}

// First jumps to the oldest entry.
func (b *Browser) First(live string) (string, bool) {
	if b.store.Len() == 0 {
		return "", false
	}
	if !b.browsing {
		b.stash = live
		b.browsing = true
	}
	b.pos = 0
	return b.store.At(0)
}

// Last jumps to the newest entry.
func (b *Browser) Last(live string) (string, bool) {
	n := b.store.Len()
	if n == 0 {
		return "", false
	}
	if !b.browsing {
		b.stash = live
		b.browsing = true
	}
	b.pos = n - 1
	return b.store.At(b.pos)
}

// JumpTo shows the entry at index i, used by reverse search to land
// on a match. The live line is stashed on the first jump.
func (b *Browser) JumpTo(i int, live string) (string, bool) {
	entry, ok := b.store.At(i)
	if !ok {
		return "", false
	}
	if !b.browsing {
		b.stash = live
		b.browsing = true
	}
	b.pos = i
	return entry, true
}

// Reset returns to the live line, discarding the browsing position.
// The stash is kept so an in-flight line is not lost.
func (b *Browser) Reset() {
	b.pos = b.store.Len()
	b.browsing = false
}
