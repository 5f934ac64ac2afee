package history

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aeroclub-poitou/preflight/pkg/checklist"
)

func state(title string) checklist.Collection {
	return checklist.Collection{
		Checklists: []checklist.Checklist{{ID: "cl-1", Title: title}},
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	var s Stack
	v0 := state("v0")
	v1 := state("v1")
	v2 := state("v2")

	// apply edit E1 then E2
	s.Record(v0)
	s.Record(v1)
	cur := v2

	var err error
	if cur, err = s.Undo(cur); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if cur, err = s.Undo(cur); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if diff := cmp.Diff(v0, cur); diff != "" {
		t.Fatalf("two undos should restore pre-E1 state (-want +got):\n%s", diff)
	}

	if cur, err = s.Redo(cur); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if cur, err = s.Redo(cur); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if diff := cmp.Diff(v2, cur); diff != "" {
		t.Fatalf("two redos should restore post-E2 state (-want +got):\n%s", diff)
	}
}

func TestUndoEmptyIsNoOp(t *testing.T) {
	var s Stack
	if _, err := s.Undo(state("cur")); !errors.Is(err, ErrNoOp) {
		t.Fatalf("expected ErrNoOp, got %v", err)
	}
	if _, err := s.Redo(state("cur")); !errors.Is(err, ErrNoOp) {
		t.Fatalf("expected ErrNoOp, got %v", err)
	}
}

func TestEditAfterUndoClearsRedo(t *testing.T) {
	var s Stack
	s.Record(state("v0"))
	cur, err := s.Undo(state("v1"))
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !s.CanRedo() {
		t.Fatal("redo should be available after undo")
	}

	s.Record(cur) // new structural edit
	if s.CanRedo() {
		t.Fatal("a new edit must clear the redo stack")
	}
	if _, err := s.Redo(state("v2")); !errors.Is(err, ErrNoOp) {
		t.Fatalf("redo after edit must be a no-op, got %v", err)
	}
}

func TestResetDropsBothStacks(t *testing.T) {
	var s Stack
	s.Record(state("v0"))
	if _, err := s.Undo(state("v1")); err != nil {
		t.Fatalf("undo: %v", err)
	}
	s.Reset()
	if s.CanUndo() || s.CanRedo() {
		t.Fatal("mode switch must clear both stacks")
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	var s Stack
	live := state("before")
	live.Checklists[0].Sections = []checklist.Section{{
		ID:    "s1",
		Title: "SECTION",
		Items: []checklist.Item{{ID: "i1", Label: "item"}},
	}}

	s.Record(live)
	live.Checklists[0].Sections[0].Items[0].Checked = true
	live.Checklists[0].Title = "after"

	restored, err := s.Undo(live)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if restored.Checklists[0].Title != "before" {
		t.Fatalf("snapshot title mutated: %q", restored.Checklists[0].Title)
	}
	if restored.Checklists[0].Sections[0].Items[0].Checked {
		t.Fatal("snapshot shares item storage with live state")
	}
}
