// Package history implements linear undo/redo over whole-collection
// snapshots taken before each structural edit.
package history

import (
	"errors"

	"github.com/aeroclub-poitou/preflight/pkg/checklist"
)

// ErrNoOp is returned when there is nothing to undo or redo. Callers
// surface it as a status message, never as a failure.
var ErrNoOp = errors.New("history: nothing to do")

// Stack records prior states of the checklist collection. Snapshots are
// deep copies; later edits to live state never alter a pushed snapshot.
// The zero value is ready to use.
type Stack struct {
	undo []checklist.Collection
	redo []checklist.Collection
}

// Record pushes the state that is about to be replaced and clears the
// redo stack. Call it before applying a structural edit.
func (s *Stack) Record(prior checklist.Collection) {
	s.undo = append(s.undo, prior.Clone())
	s.redo = nil
}

// Undo exchanges the current state for the most recent snapshot. The
// current state becomes redoable.
func (s *Stack) Undo(current checklist.Collection) (checklist.Collection, error) {
	if len(s.undo) == 0 {
		return checklist.Collection{}, ErrNoOp
	}
	top := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append([]checklist.Collection{current.Clone()}, s.redo...)
	return top, nil
}

// Redo exchanges the current state for the most recently undone one.
func (s *Stack) Redo(current checklist.Collection) (checklist.Collection, error) {
	if len(s.redo) == 0 {
		return checklist.Collection{}, ErrNoOp
	}
	next := s.redo[0]
	s.redo = s.redo[1:]
	s.undo = append(s.undo, current.Clone())
	return next, nil
}

// CanUndo reports whether Undo would succeed.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// Reset drops both stacks. Undo never crosses an edit-mode boundary, so
// this runs on every mode switch.
func (s *Stack) Reset() {
	s.undo = nil
	s.redo = nil
}
