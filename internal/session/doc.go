// Package session binds the byte decoder and the dispatcher into one
// interactive prompt. The caller owns the terminal: it reads raw bytes,
// feeds them in, arms the escape timeout when EscapePending reports an
// ambiguous prefix, and renders Snapshots.
package session
