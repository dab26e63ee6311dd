// Package document provides the editing buffer model: text content, a
// cursor offset in code points, and an optional selection.
//
// A Document is a value. Every operation is a pure transformation that
// returns a new Document and never mutates the receiver, which is what
// makes the snapshot undo stack in engine/undo trivially correct: a
// saved Document can be restored byte-for-byte, cursor included.
//
// Offsets are rune offsets, not byte offsets; the invariant
// 0 <= cursor <= len(text) holds for every Document this package
// produces. Constructors and transforms clamp rather than panic.
package document
