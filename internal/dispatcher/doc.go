// Package dispatcher routes decoded key events to editing actions.
//
// A Dispatcher owns the line state: the document, undo stack, clipboard
// registers, history browser, and the current editing mode. Each key
// event flows through the active sub-mode (incremental search, digraph
// composition, pending replace), then the vi command parser in normal
// mode, and finally the keymap registry. Unmatched printable keys
// self-insert in the insert-capable modes.
//
// Actions are named functions ("cursor.lineStart", "edit.killWordForward")
// so keymaps can rebind them without touching dispatch code.
package dispatcher
