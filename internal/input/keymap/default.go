package keymap

// LoadDefaults registers the built-in keymaps.
func LoadDefaults(r *Registry) error {
	keymaps := []*Keymap{
		DefaultGlobalKeymap(),
		DefaultEmacsKeymap(),
		DefaultViNormalKeymap(),
		DefaultViInsertKeymap(),
		DefaultViReplaceKeymap(),
	}
	for _, km := range keymaps {
		if err := r.Register(km); err != nil {
			return err
		}
	}
	return nil
}

// DefaultGlobalKeymap returns bindings shared by every mode.
func DefaultGlobalKeymap() *Keymap {
	return &Keymap{
		Name:   "default-global",
		Source: "default",
		Bindings: []Binding{
			{Keys: "Enter", Action: "line.accept", Description: "Accept the line"},
			{Keys: "C-j", Action: "line.accept", Description: "Accept the line"},
			{Keys: "C-c", Action: "line.interrupt", Description: "Interrupt"},
			{Keys: "C-l", Action: "line.clearScreen", Description: "Clear the screen"},

			{Keys: "Left", Action: "cursor.left", Description: "Move left"},
			{Keys: "Right", Action: "cursor.right", Description: "Move right"},
			{Keys: "Home", Action: "cursor.lineStart", Description: "Move to line start"},
			{Keys: "End", Action: "cursor.lineEnd", Description: "Move to line end"},
			{Keys: "Up", Action: "history.prev", Description: "Previous history entry"},
			{Keys: "Down", Action: "history.next", Description: "Next history entry"},
			{Keys: "Delete", Action: "edit.deleteForward", Description: "Delete forward"},
			{Keys: "Backspace", Action: "edit.deleteBackward", Description: "Delete backward"},
			{Keys: "C-h", Action: "edit.deleteBackward", Description: "Delete backward"},
			{Keys: "M-Enter", Action: "edit.insertNewline", Description: "Insert a newline"},
		},
	}
}

// DefaultEmacsKeymap returns the default Emacs-style bindings.
func DefaultEmacsKeymap() *Keymap {
	return &Keymap{
		Name:   "default-emacs",
		Mode:   ModeEmacs,
		Source: "default",
		Bindings: []Binding{
			// Movement
			{Keys: "C-a", Action: "cursor.lineStart", Description: "Move to line start"},
			{Keys: "C-e", Action: "cursor.lineEnd", Description: "Move to line end"},
			{Keys: "C-b", Action: "cursor.left", Description: "Move left"},
			{Keys: "C-f", Action: "cursor.right", Description: "Move right"},
			{Keys: "M-f", Action: "cursor.wordForward", Description: "Move word forward"},
			{Keys: "M-b", Action: "cursor.wordBackward", Description: "Move word backward"},
			{Keys: "C-x C-x", Action: "cursor.exchangePointMark", Description: "Exchange point and mark"},

			// Deletion and killing
			{Keys: "C-d", Action: "edit.deleteForwardOrEOF", Description: "Delete forward, EOF on empty line"},
			{Keys: "C-q", Action: "edit.quotedInsert", Description: "Insert the next key literally"},
			{Keys: "C-k", Action: "edit.killLineEnd", Description: "Kill to line end"},
			{Keys: "C-u", Action: "edit.killLineStart", Description: "Kill to line start"},
			{Keys: "C-w", Action: "edit.killWordBackward", Description: "Kill word backward"},
			{Keys: "M-Backspace", Action: "edit.killWordBackward", Description: "Kill word backward"},
			{Keys: "M-d", Action: "edit.killWordForward", Description: "Kill word forward"},
			{Keys: "C-y", Action: "edit.paste", Description: "Yank the kill ring"},

			// Transforms
			{Keys: "C-t", Action: "edit.transposeChars", Description: "Transpose characters"},
			{Keys: "M-u", Action: "edit.upcaseWord", Description: "Uppercase word"},
			{Keys: "M-l", Action: "edit.downcaseWord", Description: "Lowercase word"},
			{Keys: "M-c", Action: "edit.capitalizeWord", Description: "Capitalize word"},

			// Undo
			{Keys: "C-_", Action: "edit.undo", Description: "Undo"},
			{Keys: "C-x u", Action: "edit.undo", Description: "Undo"},
			{Keys: "C-x C-u", Action: "edit.redo", Description: "Redo"},

			// History
			{Keys: "C-p", Action: "history.prev", Description: "Previous history entry"},
			{Keys: "C-n", Action: "history.next", Description: "Next history entry"},
			{Keys: "M-<", Action: "history.first", Description: "Oldest history entry"},
			{Keys: "M->", Action: "history.last", Description: "Newest history entry"},

			// Search
			{Keys: "C-r", Action: "search.reverse", Description: "Reverse incremental search"},
			{Keys: "C-s", Action: "search.forward", Description: "Forward incremental search"},
			{Keys: "C-g", Action: "line.abort", Description: "Abort"},

			// Keyboard macros
			{Keys: "C-x (", Action: "macro.start", Description: "Start keyboard macro"},
			{Keys: "C-x )", Action: "macro.end", Description: "End keyboard macro"},
			{Keys: "C-x e", Action: "macro.play", Description: "Play keyboard macro"},
		},
	}
}

// DefaultViNormalKeymap returns normal-mode bindings for the keys the
// vi command grammar does not claim.
func DefaultViNormalKeymap() *Keymap {
	return &Keymap{
		Name:   "default-vi-normal",
		Mode:   ModeViNormal,
		Source: "default",
		Bindings: []Binding{
			// Mode switching
			{Keys: "i", Action: "mode.insert", Description: "Insert before cursor"},
			{Keys: "I", Action: "mode.insertLineStart", Description: "Insert at line start"},
			{Keys: "a", Action: "mode.append", Description: "Append after cursor"},
			{Keys: "A", Action: "mode.appendLineEnd", Description: "Append at line end"},
			{Keys: "R", Action: "mode.replace", Description: "Enter overwrite mode"},

			{Keys: "C-d", Action: "edit.deleteForwardOrEOF", Description: "Delete forward, EOF on empty line"},

			// Edits
			{Keys: "x", Action: "edit.deleteForward", Description: "Delete under cursor"},
			{Keys: "X", Action: "edit.deleteBackward", Description: "Delete before cursor"},
			{Keys: "D", Action: "edit.deleteToEnd", Description: "Delete to line end"},
			{Keys: "C", Action: "edit.changeToEnd", Description: "Change to line end"},
			{Keys: "s", Action: "edit.substitute", Description: "Substitute character"},
			{Keys: "S", Action: "edit.changeLine", Description: "Change whole line"},
			{Keys: "r", Action: "edit.replaceChar", Description: "Replace character"},
			{Keys: "~", Action: "edit.toggleCaseChar", Description: "Toggle case"},

			// Clipboard
			{Keys: "p", Action: "edit.pasteAfter", Description: "Paste after cursor"},
			{Keys: "P", Action: "edit.pasteBefore", Description: "Paste before cursor"},
			{Keys: "Y", Action: "edit.yankLine", Description: "Yank whole line"},

			// Undo
			{Keys: "u", Action: "edit.undo", Description: "Undo"},
			{Keys: "C-r", Action: "edit.redo", Description: "Redo"},

			// Search. / walks older entries, ? newer, as in readline's
			// vi mode; n and N repeat in the same or opposite direction.
			{Keys: "/", Action: "search.reverse", Description: "Search older history"},
			{Keys: "?", Action: "search.forward", Description: "Search newer history"},
			{Keys: "n", Action: "search.next", Description: "Repeat search"},
			{Keys: "N", Action: "search.prev", Description: "Repeat search reversed"},
		},
	}
}

// DefaultViInsertKeymap returns vi insert-mode bindings.
func DefaultViInsertKeymap() *Keymap {
	return &Keymap{
		Name:   "default-vi-insert",
		Mode:   ModeViInsert,
		Source: "default",
		Bindings: []Binding{
			{Keys: "Escape", Action: "mode.normal", Description: "Enter normal mode"},

			{Keys: "C-w", Action: "edit.killWordBackward", Description: "Kill word backward"},
			{Keys: "C-u", Action: "edit.killLineStart", Description: "Kill to line start"},
			{Keys: "C-d", Action: "edit.deleteForwardOrEOF", Description: "Delete forward, EOF on empty line"},
			{Keys: "C-k", Action: "digraph.enter", Description: "Compose a digraph"},
			{Keys: "C-r", Action: "search.reverse", Description: "Reverse incremental search"},

			{Keys: "C-a", Action: "cursor.lineStart", Description: "Move to line start"},
			{Keys: "C-e", Action: "cursor.lineEnd", Description: "Move to line end"},
		},
	}
}

// DefaultViReplaceKeymap returns overwrite-mode bindings. Printable
// keys overwrite through the dispatcher fallback.
func DefaultViReplaceKeymap() *Keymap {
	return &Keymap{
		Name:   "default-vi-replace",
		Mode:   ModeViReplace,
		Source: "default",
		Bindings: []Binding{
			{Keys: "Escape", Action: "mode.normal", Description: "Enter normal mode"},
			// Backspace steps back without deleting; overwrites stand.
			{Keys: "Backspace", Action: "cursor.left", Description: "Move left"},
			{Keys: "C-d", Action: "edit.deleteForwardOrEOF", Description: "Delete forward, EOF on empty line"},
		},
	}
}
