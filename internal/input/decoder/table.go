package decoder

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/dshills/keyline/internal/input/key"
)

// Bracketed paste markers (xterm).
const (
	pasteStartSeq = "\x1b[200~"
	pasteEndSeq   = "\x1b[201~"
)

//go:embed sequences.json
var defaultSequencesJSON []byte

// Table maps terminal escape sequences to key events. It is a byte
// prefix tree so the decoder can distinguish a complete sequence, a
// strict prefix awaiting more bytes, and a mismatch in one walk.
type Table struct {
	root *tableNode
}

type tableNode struct {
	children map[byte]*tableNode
	entry    *tableEntry
}

type tableEntry struct {
	event      key.Event
	pasteStart bool
}

// NewTable creates an empty sequence table.
func NewTable() *Table {
	return &Table{root: &tableNode{children: make(map[byte]*tableNode)}}
}

// Add registers a sequence. A later Add for the same sequence replaces
// the earlier one, which is how user tables override the defaults.
func (t *Table) Add(seq string, ev key.Event) {
	t.add(seq, &tableEntry{event: ev})
}

func (t *Table) add(seq string, e *tableEntry) {
	n := t.root
	for i := 0; i < len(seq); i++ {
		b := seq[i]
		child, ok := n.children[b]
		if !ok {
			child = &tableNode{children: make(map[byte]*tableNode)}
			n.children[b] = child
		}
		n = child
	}
	n.entry = e
}

// walkResult describes one prefix-tree walk over buffered bytes.
type walkResult struct {
	// entry is the deepest complete match found, nil if none.
	entry *tableEntry

	// matchLen is the byte length of that match.
	matchLen int

	// partial is true if the buffer ended inside the tree with longer
	// matches still possible.
	partial bool
}

// walk matches buf against the table, longest match first.
func (t *Table) walk(buf []byte) walkResult {
	var res walkResult
	n := t.root
	for i := 0; i < len(buf); i++ {
		child, ok := n.children[buf[i]]
		if !ok {
			return res
		}
		n = child
		if n.entry != nil {
			res.entry = n.entry
			res.matchLen = i + 1
		}
	}
	// Buffer exhausted inside the tree.
	if len(n.children) > 0 {
		res.partial = true
	}
	return res
}

// MergeJSON reads a JSON object of {"sequence": "keyspec"} pairs and adds
// them to the table. Key specs use the key package notation ("Up",
// "<S-Left>", "Delete"). Sequences use standard JSON escapes for the
// escape byte ("\u001b[A").
func (t *Table) MergeJSON(r io.Reader) error {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return fmt.Errorf("decoding sequence table: %w", err)
	}

	// Deterministic order so a malformed entry reports stably.
	seqs := make([]string, 0, len(raw))
	for s := range raw {
		seqs = append(seqs, s)
	}
	sort.Strings(seqs)

	for _, seq := range seqs {
		spec := raw[seq]
		ev, err := key.Parse(spec)
		if err != nil {
			return fmt.Errorf("sequence %q: %w", seq, err)
		}
		t.Add(seq, ev)
	}
	return nil
}

// DefaultTable returns the built-in sequence table: the embedded default
// set plus the bracketed paste markers.
func DefaultTable() *Table {
	t := NewTable()
	if err := t.MergeJSON(bytes.NewReader(defaultSequencesJSON)); err != nil {
		// The embedded table is validated by tests; a failure here is a
		// build defect.
		panic("decoder: embedded sequence table invalid: " + err.Error())
	}
	t.add(pasteStartSeq, &tableEntry{pasteStart: true})
	return t
}
