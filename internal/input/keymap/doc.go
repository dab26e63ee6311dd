// Package keymap maps key sequences to named actions, per mode.
//
// A Keymap is a list of bindings for one mode (emacs, vi-normal,
// vi-insert) or for all modes. The Registry indexes every registered
// keymap in a prefix tree so the dispatcher can distinguish three
// outcomes for the keys typed so far: an exact binding, the prefix of
// a longer binding (keep waiting), or no match (fall back to the
// mode's default handling, usually self-insert).
//
// Mode-specific bindings shadow global ones, and among candidates the
// highest combined keymap+binding priority wins, so user keymaps
// loaded with a higher priority override the defaults.
package keymap
