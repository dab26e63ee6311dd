// Package undo provides snapshot-based undo and redo for the line
// editor.
//
// Because Document is an immutable value, undo does not need the
// command pattern: the stack stores whole Document snapshots taken
// before each edit, and Undo/Redo exchange the live document with a
// saved one. Cursor position is part of the snapshot, so it is
// restored for free.
//
// Bursts of self-insert keystrokes merge into one undo unit: the
// caller marks such saves as mergeable, and consecutive mergeable
// saves keep only the snapshot taken before the first keystroke of
// the burst. Any non-mergeable save (a deletion, a paste, a yank-put)
// closes the burst.
package undo
