package digraph

import (
	_ "embed"
	"fmt"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed digraphs.yaml
var builtinYAML []byte

type tableFile struct {
	Digraphs map[string]string `yaml:"digraphs"`
}

// Table maps two-character mnemonics to characters.
type Table struct {
	mu      sync.RWMutex
	entries map[[2]rune]rune
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[[2]rune]rune)}
}

// Default returns a table loaded with the built-in digraphs.
func Default() *Table {
	t := NewTable()
	if err := t.MergeYAML(builtinYAML); err != nil {
		// The built-in table is embedded and validated by tests.
		panic(fmt.Sprintf("digraph: built-in table: %v", err))
	}
	return t
}

// MergeYAML adds entries from a YAML document of the form
//
//	digraphs:
//	  "e'": "é"
//
// Each key must be exactly two characters and each value exactly one.
// Later entries override earlier ones.
func (t *Table) MergeYAML(data []byte) error {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse digraph table: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for k, v := range f.Digraphs {
		kr := []rune(k)
		if len(kr) != 2 {
			return fmt.Errorf("digraph key %q: want exactly 2 characters", k)
		}
		if utf8.RuneCountInString(v) != 1 {
			return fmt.Errorf("digraph value %q for key %q: want exactly 1 character", v, k)
		}
		r, _ := utf8.DecodeRuneInString(v)
		t.entries[[2]rune{kr[0], kr[1]}] = r
	}
	return nil
}

// Add defines or overrides a single digraph.
func (t *Table) Add(a, b, result rune) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[[2]rune{a, b}] = result
}

// Lookup resolves a digraph pair. The pair is tried as given, then
// reversed. Returns false when neither order is defined; the caller
// falls back to inserting the second character as typed.
func (t *Table) Lookup(a, b rune) (rune, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if r, ok := t.entries[[2]rune{a, b}]; ok {
		return r, true
	}
	if r, ok := t.entries[[2]rune{b, a}]; ok {
		return r, true
	}
	return 0, false
}

// Len returns the number of defined digraphs.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
