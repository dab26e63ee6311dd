// Package macro records the keyboard macro: the key events typed
// between a start and stop marker, replayable as if retyped.
package macro
