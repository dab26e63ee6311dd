// Package key defines the key event model shared by the byte decoder and
// the binding dispatcher.
//
// A key.Event is a single decoded unit of input: a literal character
// (KeyRune with the Rune field set), a named special key (arrows, Enter,
// function keys), or a pasted block of text (KeyPaste with the Text field
// set). Events carry a Modifier bitmask for Ctrl/Alt/Meta/Shift.
//
// The package also provides a small specification language for naming
// keys in binding tables and configuration files. Parse accepts single
// characters ("a"), key names ("Enter"), modifier notation ("Ctrl+A"),
// and Vim-style angle notation ("<C-a>", "<CR>"). ParseSequence parses a
// multi-key binding such as "g g" or "<C-x><C-u>".
package key
