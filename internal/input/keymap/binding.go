package keymap

import (
	"github.com/dshills/keyline/internal/input/key"
)

// Editing mode names used by keymaps and the dispatcher.
const (
	// ModeEmacs is the default single-mode editing style.
	ModeEmacs = "emacs"

	// ModeViNormal is vi command mode.
	ModeViNormal = "vi-normal"

	// ModeViInsert is vi insert mode.
	ModeViInsert = "vi-insert"

	// ModeViReplace is vi overwrite mode (R).
	ModeViReplace = "vi-replace"
)

// Binding maps one key sequence to an action.
type Binding struct {
	// Keys is the key sequence, e.g. "C-a", "M-b", "C-x u", "Enter".
	Keys string

	// Action is the action name to dispatch, e.g. "cursor.lineStart".
	Action string

	// Args are fixed arguments passed to the action handler.
	Args map[string]any

	// Description documents the binding.
	Description string

	// Priority breaks ties between bindings; higher wins.
	Priority int
}

// NewBinding creates a binding with the given keys and action.
func NewBinding(keys, action string) Binding {
	return Binding{Keys: keys, Action: action}
}

// ParsedBinding is a binding with a pre-parsed key sequence.
type ParsedBinding struct {
	Binding
	Sequence *key.Sequence
}

// Match checks if the binding's sequence equals seq.
func (pb *ParsedBinding) Match(seq *key.Sequence) bool {
	if pb == nil || pb.Sequence == nil || seq == nil {
		return false
	}
	return pb.Sequence.Equals(seq)
}

// BindingMatch is a matched binding with its source keymap.
type BindingMatch struct {
	*ParsedBinding

	// Keymap is the keymap containing the binding.
	Keymap *Keymap

	// Score orders matches; higher comes first.
	Score int
}

// CalculateScore combines keymap and binding priority, preferring
// mode-specific keymaps over global ones.
func (bm *BindingMatch) CalculateScore() {
	if bm.Keymap == nil || bm.ParsedBinding == nil {
		bm.Score = 0
		return
	}

	bm.Score = bm.Keymap.Priority*100 + bm.ParsedBinding.Priority
	if bm.Keymap.Mode != "" {
		bm.Score += 50
	}
}

// Less returns true if this match should sort before other.
func (bm BindingMatch) Less(other BindingMatch) bool {
	if bm.Score != other.Score {
		return bm.Score > other.Score
	}
	// Prefer mode-specific over global.
	return bm.Keymap != nil && bm.Keymap.Mode != "" &&
		(other.Keymap == nil || other.Keymap.Mode == "")
}
