package undo

import (
	"errors"
	"sync"

	"github.com/dshills/keyline/internal/engine/document"
)

// Common errors for undo operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// Stack holds Document snapshots for undo and redo.
type Stack struct {
	mu sync.Mutex

	undoStack []document.Document
	redoStack []document.Document

	// merging is true while the top undo entry covers an open burst
	// of self-insert keystrokes.
	merging bool

	maxEntries int
}

// NewStack creates an undo stack capped at maxEntries snapshots.
func NewStack(maxEntries int) *Stack {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Stack{maxEntries: maxEntries}
}

// Save records the state before an edit. Mergeable saves from a
// contiguous burst collapse into the first snapshot of the burst, so
// typing a word undoes as one unit. Saving clears the redo stack.
func (s *Stack) Save(doc document.Document, mergeable bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.redoStack = nil

	if mergeable && s.merging && len(s.undoStack) > 0 {
		return
	}
	s.merging = mergeable

	s.undoStack = append(s.undoStack, doc)
	if len(s.undoStack) > s.maxEntries {
		excess := len(s.undoStack) - s.maxEntries
		s.undoStack = s.undoStack[excess:]
	}
}

// CloseBurst ends the current merge run without saving, so the next
// mergeable save starts a new undo unit. Cursor motion calls this.
func (s *Stack) CloseBurst() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.merging = false
}

// Undo exchanges the live document for the most recent snapshot. The
// live document is pushed onto the redo stack.
func (s *Stack) Undo(current document.Document) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undoStack) == 0 {
		return current, ErrNothingToUndo
	}

	top := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.redoStack = append(s.redoStack, current)
	s.merging = false
	return top, nil
}

// Redo exchanges the live document for the most recently undone
// snapshot. The live document is pushed back onto the undo stack.
func (s *Stack) Redo(current document.Document) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.redoStack) == 0 {
		return current, ErrNothingToRedo
	}

	top := s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.undoStack = append(s.undoStack, current)
	s.merging = false
	return top, nil
}

// CanUndo returns true if undo is available.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redoStack) > 0
}

// UndoCount returns the number of undo snapshots available.
func (s *Stack) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undoStack)
}

// RedoCount returns the number of redo snapshots available.
func (s *Stack) RedoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redoStack)
}

// Clear removes all undo and redo state.
func (s *Stack) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undoStack = nil
	s.redoStack = nil
	s.merging = false
}
