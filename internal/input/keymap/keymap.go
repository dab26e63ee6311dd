package keymap

import (
	"fmt"

	"github.com/dshills/keyline/internal/input/key"
)

// Keymap holds key bindings for a mode.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Mode is the mode this keymap applies to. Empty means global.
	Mode string

	// Bindings are the key-to-action mappings.
	Bindings []Binding

	// Priority determines precedence between keymaps; higher wins.
	Priority int

	// Source records where the keymap came from: "default", "user",
	// or a file path.
	Source string
}

// NewKeymap creates an empty keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{Name: name}
}

// ForMode sets the mode for this keymap.
func (k *Keymap) ForMode(mode string) *Keymap {
	k.Mode = mode
	return k
}

// WithPriority sets the keymap priority.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// Add appends a binding.
func (k *Keymap) Add(keys, action string) *Keymap {
	k.Bindings = append(k.Bindings, Binding{Keys: keys, Action: action})
	return k
}

// AddBinding appends a fully configured binding.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	k.Bindings = append(k.Bindings, b)
	return k
}

// Validate checks that every binding parses.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Action == "" {
			return fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		if _, err := key.ParseSequence(b.Keys); err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
	}
	return nil
}

// ParsedKeymap is a keymap with pre-parsed key sequences.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
}

// Parse parses all bindings in the keymap.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
	}

	for _, b := range k.Bindings {
		seq, err := key.ParseSequence(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", b.Keys, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding:  b,
			Sequence: seq,
		})
	}

	return parsed, nil
}
