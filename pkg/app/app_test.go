package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aeroclub-poitou/preflight/pkg/checklist"
	"github.com/aeroclub-poitou/preflight/pkg/history"
	"github.com/aeroclub-poitou/preflight/pkg/store"
)

// memoryPersistence keeps everything in process so Service logic can be
// exercised without touching disk.
type memoryPersistence struct {
	collection  *checklist.Collection
	activeView  string
	startupView store.StartupView
	backups     map[string]store.Backup
	saveErr     error
	saves       int
}

func newMemoryPersistence(c checklist.Collection) *memoryPersistence {
	cp := c.Clone()
	return &memoryPersistence{
		collection:  &cp,
		startupView: store.StartupSummary,
		backups:     make(map[string]store.Backup),
	}
}

func (m *memoryPersistence) LoadCollection() checklist.Collection {
	return m.collection.Clone()
}

func (m *memoryPersistence) SaveCollection(c checklist.Collection) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := c.Clone()
	m.collection = &cp
	m.saves++
	return nil
}

func (m *memoryPersistence) ActiveView() string { return m.activeView }

func (m *memoryPersistence) SetActiveView(id string) error { m.activeView = id; return nil }

func (m *memoryPersistence) StartupView() store.StartupView { return m.startupView }
func (m *memoryPersistence) SetStartupView(v store.StartupView) error {
	m.startupView = v
	return nil
}

func (m *memoryPersistence) Backups(_ context.Context) []store.Backup {
	out := make([]store.Backup, 0, len(m.backups))
	for _, b := range m.backups {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.After(out[j].Created) })
	return out
}

func (m *memoryPersistence) SaveBackup(b store.Backup) error {
	m.backups[b.ID] = b
	return nil
}

func (m *memoryPersistence) DeleteBackup(id string) error {
	delete(m.backups, id)
	return nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	close(ch)
	return ch, nil
}

func testCollection() checklist.Collection {
	return checklist.Collection{
		Checklists: []checklist.Checklist{
			{
				ID:    "cl-1",
				Title: "F-BUBK",
				Sections: []checklist.Section{
					{
						ID:    "s-1",
						Title: "AVANT MISE EN ROUTE",
						Items: []checklist.Item{
							{ID: "i-1", Label: "Frein de parc", Action: "SERRÉ"},
							{ID: "i-2", Label: "Ceintures", Action: "ATTACHÉES"},
						},
					},
					{
						ID:             "s-2",
						Title:          "VISITE PRÉVOL",
						DefaultChecked: true,
						Items: []checklist.Item{
							{ID: "i-3", Label: "Documentation", Action: "À BORD"},
						},
					},
				},
			},
		},
		Links: []checklist.Link{{ID: "l-1", Title: "OpenFlyers", URL: "https://openflyers.com/acp/"}},
	}
}

func newTestService() (*Service, *memoryPersistence) {
	mp := newMemoryPersistence(testCollection())
	svc := New(mp)
	n := 0
	svc.NewID = func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
	return svc, mp
}

func TestToggleOutsideEditModePersists(t *testing.T) {
	svc, mp := newTestService()

	cl, err := svc.Toggle("cl-1", "i-1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !cl.Sections[0].Items[0].Checked {
		t.Fatal("item should be checked")
	}
	if mp.saves != 1 {
		t.Fatalf("expected one persist, got %d", mp.saves)
	}
}

func TestToggleRejectedInEditMode(t *testing.T) {
	svc, _ := newTestService()
	svc.SetEditMode(true)
	if _, err := svc.Toggle("cl-1", "i-1"); !errors.Is(err, ErrEditForbidden) {
		t.Fatalf("expected ErrEditForbidden, got %v", err)
	}
}

func TestStructuralEditRequiresEditMode(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.AddSection("cl-1", "ROULAGE"); !errors.Is(err, ErrEditRequired) {
		t.Fatalf("expected ErrEditRequired, got %v", err)
	}
}

func TestResetChecksRespectsDefaultChecked(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Toggle("cl-1", "i-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	cl, err := svc.ResetChecks("cl-1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if cl.Sections[0].Items[0].Checked {
		t.Fatal("regular item should be unchecked after reset")
	}
	if !cl.Sections[1].Items[0].Checked {
		t.Fatal("default-checked section should come back checked")
	}
}

func TestSetSectionChecked(t *testing.T) {
	svc, _ := newTestService()
	cl, err := svc.SetSectionChecked("cl-1", "s-1", true)
	if err != nil {
		t.Fatalf("check all: %v", err)
	}
	if !cl.Sections[0].Complete() {
		t.Fatal("section should be complete")
	}
	cl, err = svc.SetSectionChecked("cl-1", "s-1", false)
	if err != nil {
		t.Fatalf("uncheck all: %v", err)
	}
	if cl.Sections[0].Complete() {
		t.Fatal("section should no longer be complete")
	}
}

func TestUndoRedoAcrossEdits(t *testing.T) {
	svc, _ := newTestService()
	svc.SetEditMode(true)

	before, _ := svc.State()
	if _, err := svc.AddSection("cl-1", "ROULAGE"); err != nil {
		t.Fatalf("add section: %v", err)
	}
	if err := svc.RenameChecklist("cl-1", "F-NEUF"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if err := svc.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if err := svc.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	got, _ := svc.State()
	if diff := cmp.Diff(before, got); diff != "" {
		t.Fatalf("two undos should restore the initial state (-want +got):\n%s", diff)
	}
	if err := svc.Undo(); !errors.Is(err, history.ErrNoOp) {
		t.Fatalf("expected ErrNoOp on exhausted undo, got %v", err)
	}

	if err := svc.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if err := svc.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	got, _ = svc.State()
	if got.Checklists[0].Title != "F-NEUF" {
		t.Fatal("redo should restore the rename")
	}
	if len(got.Checklists[0].Sections) != 3 {
		t.Fatal("redo should restore the added section")
	}
}

func TestEditAfterUndoClearsRedo(t *testing.T) {
	svc, _ := newTestService()
	svc.SetEditMode(true)

	if _, err := svc.AddSection("cl-1", "ROULAGE"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, err := svc.AddSection("cl-1", "CROISIÈRE"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Redo(); !errors.Is(err, history.ErrNoOp) {
		t.Fatalf("redo after a fresh edit must be a no-op, got %v", err)
	}
}

func TestModeSwitchClearsHistory(t *testing.T) {
	svc, _ := newTestService()
	svc.SetEditMode(true)

	if _, err := svc.AddSection("cl-1", "ROULAGE"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !svc.CanUndo() {
		t.Fatal("undo should be available after an edit")
	}

	svc.SetEditMode(false)
	svc.SetEditMode(true)
	if svc.CanUndo() {
		t.Fatal("undo must not survive a mode switch")
	}
	if err := svc.Undo(); !errors.Is(err, history.ErrNoOp) {
		t.Fatalf("expected ErrNoOp, got %v", err)
	}
}

func TestValidationFailureLeavesStateUntouched(t *testing.T) {
	svc, mp := newTestService()
	svc.SetEditMode(true)
	before := mp.saves

	if _, err := svc.AddChecklist("  "); !errors.Is(err, checklist.ErrBlankTitle) {
		t.Fatalf("expected ErrBlankTitle, got %v", err)
	}
	if _, err := svc.AddChecklist("F-BUBK"); !errors.Is(err, checklist.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	if mp.saves != before {
		t.Fatal("failed validations must not persist anything")
	}
	if svc.CanUndo() {
		t.Fatal("failed validations must not enter history")
	}
}

func TestDuplicateChecklistAssignsFreshIDs(t *testing.T) {
	svc, _ := newTestService()
	svc.SetEditMode(true)

	newID, err := svc.DuplicateChecklist("cl-1")
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}

	state, _ := svc.State()
	seen := make(map[string]int)
	for _, cl := range state.Checklists {
		seen[cl.ID]++
		for _, a := range cl.Aircraft {
			seen[a.ID]++
		}
		for _, s := range cl.Sections {
			seen[s.ID]++
			for _, it := range s.Items {
				seen[it.ID]++
			}
		}
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("id %q appears %d times after duplication", id, n)
		}
	}

	dup := state.Find(newID)
	if dup == nil {
		t.Fatal("duplicate not found")
	}
	if dup.Title != "F-BUBK (copie)" {
		t.Fatalf("unexpected duplicate title %q", dup.Title)
	}
	if len(dup.Sections) != 2 || len(dup.Sections[0].Items) != 2 {
		t.Fatal("duplicate should preserve structure")
	}
}

func TestActiveViewDanglingFallsBackToSummary(t *testing.T) {
	svc, mp := newTestService()
	mp.startupView = store.StartupLastViewed
	mp.activeView = "deleted-checklist"

	if got := svc.ActiveView(); got != ViewSummary {
		t.Fatalf("dangling view should resolve to summary, got %q", got)
	}

	mp.activeView = "cl-1"
	if got := svc.ActiveView(); got != "cl-1" {
		t.Fatalf("existing checklist should resolve, got %q", got)
	}
}

func TestActiveViewHonorsStartupPreference(t *testing.T) {
	svc, mp := newTestService()
	mp.activeView = "cl-1"
	mp.startupView = store.StartupSummary

	if got := svc.ActiveView(); got != ViewSummary {
		t.Fatalf("summary preference should win, got %q", got)
	}
}

func TestSetActiveViewNormalizesUnknownIDs(t *testing.T) {
	svc, mp := newTestService()
	if err := svc.SetActiveView("nope"); err != nil {
		t.Fatalf("set active view: %v", err)
	}
	if mp.activeView != ViewSummary {
		t.Fatalf("unknown id should be stored as summary, got %q", mp.activeView)
	}
	if err := svc.SetActiveView(ViewGuide); err != nil {
		t.Fatalf("set active view: %v", err)
	}
	if mp.activeView != ViewGuide {
		t.Fatalf("guide view should persist, got %q", mp.activeView)
	}
}

func TestSetNotesBypassesHistory(t *testing.T) {
	svc, _ := newTestService()
	svc.SetEditMode(true)

	if err := svc.SetNotes("cl-1", "pression pneus 1.8 bar"); err != nil {
		t.Fatalf("set notes: %v", err)
	}
	if svc.CanUndo() {
		t.Fatal("notes edits must not be undoable")
	}
	cl, _ := svc.Checklist("cl-1")
	if cl.Notes != "pression pneus 1.8 bar" {
		t.Fatalf("notes not applied: %q", cl.Notes)
	}
}

func TestBackupLifecycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b, err := svc.CreateBackup("avant démo")
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}

	// mutate live state after the backup
	svc.SetEditMode(true)
	if err := svc.DeleteChecklist("cl-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	svc.SetEditMode(false)

	if err := svc.RestoreBackup(ctx, b.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	state, _ := svc.State()
	if state.Find("cl-1") == nil {
		t.Fatal("restore should bring the deleted checklist back")
	}

	if err := svc.DeleteBackup(b.ID); err != nil {
		t.Fatalf("delete backup: %v", err)
	}
	backups, err := svc.Backups(ctx)
	if err != nil {
		t.Fatalf("backups: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("expected no backups, got %d", len(backups))
	}

	if err := svc.RestoreBackup(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBackupSnapshotIsIndependent(t *testing.T) {
	svc, mp := newTestService()
	if _, err := svc.CreateBackup("instantané"); err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if _, err := svc.Toggle("cl-1", "i-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	for _, b := range mp.backups {
		if b.State.Checklists[0].Sections[0].Items[0].Checked {
			t.Fatal("backup state mutated by a later toggle")
		}
	}
}

func TestPasteSectionReidentifies(t *testing.T) {
	svc, _ := newTestService()
	svc.SetEditMode(true)

	src, _ := svc.Checklist("cl-1")
	if err := svc.PasteSection("cl-1", src.Sections[0]); err != nil {
		t.Fatalf("paste: %v", err)
	}

	state, _ := svc.State()
	cl := state.Find("cl-1")
	if len(cl.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(cl.Sections))
	}
	pasted := cl.Sections[2]
	if pasted.ID == "s-1" {
		t.Fatal("pasted section must get a fresh id")
	}
	for _, it := range pasted.Items {
		if it.ID == "i-1" || it.ID == "i-2" {
			t.Fatalf("pasted item kept original id %s", it.ID)
		}
	}
	if pasted.Title != "AVANT MISE EN ROUTE" {
		t.Fatal("pasted section should keep its title")
	}
}

func TestMoveOperations(t *testing.T) {
	svc, _ := newTestService()
	svc.SetEditMode(true)

	if err := svc.MoveSection("cl-1", 0, 1); err != nil {
		t.Fatalf("move section: %v", err)
	}
	state, _ := svc.State()
	if state.Checklists[0].Sections[0].ID != "s-2" {
		t.Fatal("sections should be reordered")
	}

	if err := svc.MoveItem("cl-1", "s-1", 0, 1); err != nil {
		t.Fatalf("move item: %v", err)
	}
	state, _ = svc.State()
	sec := state.Checklists[0].Sections[1]
	if sec.Items[0].ID != "i-2" {
		t.Fatal("items should be reordered")
	}
}
