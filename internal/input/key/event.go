package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single decoded input event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Text is the payload for KeyPaste events.
	Text string

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a named key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// NewPasteEvent creates an event carrying pasted text.
func NewPasteEvent(text string) Event {
	return Event{Key: KeyPaste, Text: text}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsPlainRune returns true for a printable character with no Ctrl/Alt.
// Shift alone does not count: it is already folded into the character.
func (e Event) IsPlainRune() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if Ctrl or Alt is pressed. For character
// events Shift is part of the character itself.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt) != 0
	}
	return e.Modifiers != ModNone
}

// IsPaste returns true if this event carries pasted text.
func (e Event) IsPaste() bool {
	return e.Key == KeyPaste
}

// IsCtrl returns true if this is Ctrl plus the given letter.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && e.Modifiers == ModCtrl
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key with no modifiers.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// IsBackspace returns true if this is Backspace with no modifiers.
func (e Event) IsBackspace() bool {
	return e.Key == KeyBackspace && e.Modifiers == ModNone
}

// Equals returns true if two events represent the same key press.
// Paste payloads are not compared; any two paste events match.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// String returns a canonical representation such as "a", "C-r", "Enter".
func (e Event) String() string {
	var parts []string

	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	var keyName string
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			keyName = "Space"
		} else {
			keyName = string(e.Rune)
		}
	case KeyPaste:
		keyName = fmt.Sprintf("Paste(%d)", len(e.Text))
	default:
		keyName = e.Key.String()
	}

	parts = append(parts, keyName)
	return strings.Join(parts, "-")
}
