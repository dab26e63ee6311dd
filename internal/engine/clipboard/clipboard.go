package clipboard

import (
	"sync"
	"unicode"
)

// PasteMode describes how register content is reinserted.
type PasteMode uint8

const (
	// Characters pastes inline at the cursor.
	Characters PasteMode = iota

	// Lines pastes on a line of its own.
	Lines
)

// String returns the mode name.
func (m PasteMode) String() string {
	switch m {
	case Characters:
		return "characters"
	case Lines:
		return "lines"
	default:
		return "unknown"
	}
}

// Entry is one register's content.
type Entry struct {
	Text string
	Mode PasteMode
}

// Unnamed is the register used when no register is selected.
const Unnamed = '"'

// Store holds the unnamed register and the named registers a-z.
type Store struct {
	mu        sync.RWMutex
	registers map[rune]Entry
}

// NewStore creates an empty register store.
func NewStore() *Store {
	return &Store{registers: make(map[rune]Entry)}
}

// IsValidRegister reports whether name selects a register this store
// accepts: the unnamed register or a letter.
func IsValidRegister(name rune) bool {
	return name == Unnamed ||
		(name >= 'a' && name <= 'z') ||
		(name >= 'A' && name <= 'Z')
}

// Get returns the content of a register. Uppercase names read the
// lowercase register. Unknown or empty registers return ok=false.
func (s *Store) Get(name rune) (Entry, bool) {
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.registers[name]
	if !ok || e.Text == "" {
		return Entry{}, false
	}
	return e, true
}

// Set stores content in a register. Uppercase names append to the
// lowercase register, joining line-wise content with a newline. Writes
// to a named register also update the unnamed register, mirroring vi.
func (s *Store) Set(name rune, e Entry) {
	if !IsValidRegister(name) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		if prev, ok := s.registers[name]; ok && prev.Text != "" {
			if prev.Mode == Lines {
				e.Text = prev.Text + "\n" + e.Text
			} else {
				e.Text = prev.Text + e.Text
			}
			e.Mode = prev.Mode
		}
	}

	s.registers[name] = e
	if name != Unnamed {
		s.registers[Unnamed] = e
	}
}

// SetText stores character-wise content in the unnamed register.
func (s *Store) SetText(text string) {
	s.Set(Unnamed, Entry{Text: text, Mode: Characters})
}

// Text returns the unnamed register's content, empty when unset.
func (s *Store) Text() string {
	e, _ := s.Get(Unnamed)
	return e.Text
}

// AppendText extends the unnamed register, for consecutive Emacs kill
// commands that accumulate into one yankable unit. Forward kills pass
// before=false, backward kills (kill-word-backward) pass before=true
// so the new text is prepended.
func (s *Store) AppendText(text string, before bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.registers[Unnamed]
	if before {
		e.Text = text + e.Text
	} else {
		e.Text += text
	}
	e.Mode = Characters
	s.registers[Unnamed] = e
}

// Clear empties every register.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registers = make(map[rune]Entry)
}
