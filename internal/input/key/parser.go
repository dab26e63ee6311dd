package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+A", "Alt+F", "Meta+<"
//   - Vim/Emacs style: "<C-a>", "<A-f>", "<M-b>", "<CR>", "<Esc>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseAngle(spec[1 : len(spec)-1])
	}

	// Bare dash notation: "C-a", "M-Backspace", "C-M-x".
	if len(spec) > 1 && strings.Contains(spec, "-") {
		if head, _, ok := strings.Cut(spec, "-"); ok && ModifierFromName(head) != ModNone {
			return parseAngle(spec)
		}
	}

	if strings.Contains(spec, "+") && len(spec) > 1 {
		return parsePlus(spec)
	}

	return parseSingle(spec)
}

// parseAngle parses "<C-a>" style notation with the brackets removed.
func parseAngle(inner string) (Event, error) {
	parts := strings.Split(inner, "-")

	var mods Modifier
	keyPart := parts[len(parts)-1]

	// A trailing empty part means the key itself is '-' ("<C-->").
	if keyPart == "" && len(parts) >= 2 {
		keyPart = "-"
		parts = parts[:len(parts)-1]
	}

	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(strings.TrimSpace(p))
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKeyPart(keyPart, mods)
}

// parsePlus parses "Ctrl+A" style notation.
func parsePlus(spec string) (Event, error) {
	parts := strings.Split(spec, "+")

	var mods Modifier
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) >= 2 {
		keyPart = "+"
		parts = parts[:len(parts)-1]
	}

	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(strings.TrimSpace(p))
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseKeyPart(keyPart, mods)
}

// parseSingle parses a bare character or key name.
func parseSingle(spec string) (Event, error) {
	if k := FromName(spec); k != KeyNone {
		return NewSpecialEvent(k, ModNone), nil
	}

	// Shift is already folded into the character itself.
	runes := []rune(spec)
	if len(runes) == 1 {
		return NewRuneEvent(runes[0], ModNone), nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseKeyPart parses a key name or character with known modifiers.
func parseKeyPart(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	case "minus":
		return NewRuneEvent('-', mods), nil
	case "bar":
		return NewRuneEvent('|', mods), nil
	case "bslash":
		return NewRuneEvent('\\', mods), nil
	}

	if k := FromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		// Ctrl combinations are case-insensitive at the terminal.
		if mods.HasCtrl() {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
