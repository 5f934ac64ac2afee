// Package app provides the high-level operations shared by the TUI and
// the CLI: view resolution, check tracking, edit-mode structural edits
// with undo/redo, and backups.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aeroclub-poitou/preflight/pkg/checklist"
	"github.com/aeroclub-poitou/preflight/pkg/history"
	"github.com/aeroclub-poitou/preflight/pkg/store"
)

// Fixed views. Anything else is a checklist id.
const (
	ViewSummary = "summary"
	ViewLinks   = "links"
	ViewGuide   = "guide"
)

var (
	// ErrEditRequired gates structural edits on edit mode.
	ErrEditRequired = errors.New("app: operation requires edit mode")
	// ErrEditForbidden gates check-state changes on normal mode.
	ErrEditForbidden = errors.New("app: operation not permitted in edit mode")
	// ErrNotFound reports a missing checklist, section, item, or link.
	ErrNotFound = errors.New("app: not found")
)

// Service owns the in-memory state tree. All mutation happens through
// its methods; structural edits replace the whole collection so a
// half-applied edit can never be observed.
type Service struct {
	Persistence store.Persistence
	NewID       checklist.IDGenerator

	state    checklist.Collection
	loaded   bool
	editMode bool
	hist     history.Stack
}

// New returns a Service backed by p. State loads lazily on first use.
func New(p store.Persistence) *Service {
	return &Service{Persistence: p, NewID: checklist.UUIDGenerator}
}

func (s *Service) ensureLoaded() error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	if !s.loaded {
		s.state = s.Persistence.LoadCollection()
		s.loaded = true
	}
	return nil
}

func (s *Service) persist() error {
	return s.Persistence.SaveCollection(s.state)
}

// State returns a deep copy of the current collection, safe to hold
// across later edits.
func (s *Service) State() (checklist.Collection, error) {
	if err := s.ensureLoaded(); err != nil {
		return checklist.Collection{}, err
	}
	return s.state.Clone(), nil
}

// Reload drops in-memory state so the next read hits the store again.
// Used when Watch reports an external write.
func (s *Service) Reload() {
	s.loaded = false
}

// Checklist returns a deep copy of the checklist with the given id.
func (s *Service) Checklist(id string) (checklist.Checklist, error) {
	if err := s.ensureLoaded(); err != nil {
		return checklist.Checklist{}, err
	}
	if cl := s.state.Find(id); cl != nil {
		return cl.Clone(), nil
	}
	return checklist.Checklist{}, fmt.Errorf("%w: checklist %q", ErrNotFound, id)
}

// ChecklistByTitle resolves a checklist by its title (tail number).
func (s *Service) ChecklistByTitle(title string) (checklist.Checklist, error) {
	if err := s.ensureLoaded(); err != nil {
		return checklist.Checklist{}, err
	}
	for _, cl := range s.state.Checklists {
		if strings.EqualFold(cl.Title, title) {
			return cl.Clone(), nil
		}
	}
	return checklist.Checklist{}, fmt.Errorf("%w: checklist %q", ErrNotFound, title)
}

// Links returns the useful-links list.
func (s *Service) Links() ([]checklist.Link, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	return append([]checklist.Link(nil), s.state.Links...), nil
}

// ActiveView resolves the persisted active view. A dangling checklist id
// falls back to the summary view; the startup preference applies when
// nothing was stored or the preference demands summary.
func (s *Service) ActiveView() string {
	if err := s.ensureLoaded(); err != nil {
		return ViewSummary
	}
	if s.Persistence.StartupView() == store.StartupSummary {
		return ViewSummary
	}
	return s.resolveView(s.Persistence.ActiveView())
}

func (s *Service) resolveView(id string) string {
	switch id {
	case ViewSummary, ViewLinks, ViewGuide:
		return id
	}
	if s.state.Find(id) != nil {
		return id
	}
	return ViewSummary
}

// SetActiveView persists the view the user navigated to. Unknown ids
// are stored as the summary view.
func (s *Service) SetActiveView(id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	return s.Persistence.SetActiveView(s.resolveView(id))
}

// StartupView reads the startup preference.
func (s *Service) StartupView() store.StartupView {
	if s.Persistence == nil {
		return store.StartupSummary
	}
	return s.Persistence.StartupView()
}

// SetStartupView stores the startup preference.
func (s *Service) SetStartupView(v store.StartupView) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return s.Persistence.SetStartupView(v)
}

// EditMode reports whether structural editing is enabled.
func (s *Service) EditMode() bool { return s.editMode }

// SetEditMode switches modes. Undo never crosses a mode boundary, so
// both history stacks are dropped on every switch.
func (s *Service) SetEditMode(on bool) {
	if s.editMode == on {
		return
	}
	s.editMode = on
	s.hist.Reset()
}

// --- Check-state operations (normal mode only, never in history) ---

func (s *Service) checkState(mutate func(cl *checklist.Checklist) error, id string) (checklist.Checklist, error) {
	if err := s.ensureLoaded(); err != nil {
		return checklist.Checklist{}, err
	}
	if s.editMode {
		return checklist.Checklist{}, ErrEditForbidden
	}
	cl := s.state.Find(id)
	if cl == nil {
		return checklist.Checklist{}, fmt.Errorf("%w: checklist %q", ErrNotFound, id)
	}
	if err := mutate(cl); err != nil {
		return checklist.Checklist{}, err
	}
	if err := s.persist(); err != nil {
		return checklist.Checklist{}, err
	}
	return cl.Clone(), nil
}

// Toggle flips one item's checked flag.
func (s *Service) Toggle(checklistID, itemID string) (checklist.Checklist, error) {
	return s.checkState(func(cl *checklist.Checklist) error {
		if !cl.Toggle(itemID) {
			return fmt.Errorf("%w: item %q", ErrNotFound, itemID)
		}
		return nil
	}, checklistID)
}

// SetSectionChecked checks or unchecks every item of one section.
func (s *Service) SetSectionChecked(checklistID, sectionID string, checked bool) (checklist.Checklist, error) {
	return s.checkState(func(cl *checklist.Checklist) error {
		for i := range cl.Sections {
			if cl.Sections[i].ID == sectionID {
				cl.Sections[i].SetAllChecked(checked)
				return nil
			}
		}
		return fmt.Errorf("%w: section %q", ErrNotFound, sectionID)
	}, checklistID)
}

// ResetChecks unchecks everything; default-checked sections come back
// checked.
func (s *Service) ResetChecks(checklistID string) (checklist.Checklist, error) {
	return s.checkState(func(cl *checklist.Checklist) error {
		cl.Reset()
		return nil
	}, checklistID)
}

// --- Structural operations (edit mode only, snapshotted) ---

// structural applies a whole-collection mutation: validate against a
// scratch copy, snapshot the prior state, then swap and persist. A
// failing mutation leaves no trace.
func (s *Service) structural(mutate func(c *checklist.Collection) error) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if !s.editMode {
		return ErrEditRequired
	}
	next := s.state.Clone()
	if err := mutate(&next); err != nil {
		return err
	}
	s.hist.Record(s.state)
	s.state = next
	return s.persist()
}

// AddChecklist creates an empty checklist and returns its id.
func (s *Service) AddChecklist(title string) (string, error) {
	var id string
	err := s.structural(func(c *checklist.Collection) error {
		if err := c.ValidateTitle(title, ""); err != nil {
			return err
		}
		id = s.NewID()
		c.Checklists = append(c.Checklists, checklist.Checklist{ID: id, Title: title})
		return nil
	})
	return id, err
}

// RenameChecklist retitles a checklist.
func (s *Service) RenameChecklist(id, title string) error {
	return s.structural(func(c *checklist.Collection) error {
		if err := c.ValidateTitle(title, id); err != nil {
			return err
		}
		cl := c.Find(id)
		if cl == nil {
			return fmt.Errorf("%w: checklist %q", ErrNotFound, id)
		}
		cl.Title = title
		return nil
	})
}

// DeleteChecklist removes a checklist. If it was the active view the
// next resolution falls back to summary.
func (s *Service) DeleteChecklist(id string) error {
	return s.structural(func(c *checklist.Collection) error {
		for i := range c.Checklists {
			if c.Checklists[i].ID == id {
				c.Checklists = append(c.Checklists[:i], c.Checklists[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: checklist %q", ErrNotFound, id)
	})
}

// DuplicateChecklist deep-copies a checklist with fresh ids throughout
// and returns the new id.
func (s *Service) DuplicateChecklist(id string) (string, error) {
	var newID string
	err := s.structural(func(c *checklist.Collection) error {
		src := c.Find(id)
		if src == nil {
			return fmt.Errorf("%w: checklist %q", ErrNotFound, id)
		}
		dup := src.CloneWithIDs(s.NewID)
		dup.Title = src.Title + " (copie)"
		if err := c.ValidateTitle(dup.Title, ""); err != nil {
			return err
		}
		newID = dup.ID
		c.Checklists = append(c.Checklists, dup)
		return nil
	})
	return newID, err
}

// PasteSection inserts a deep, re-identified copy of the given section
// at the end of the target checklist.
func (s *Service) PasteSection(checklistID string, src checklist.Section) error {
	return s.structural(func(c *checklist.Collection) error {
		cl := c.Find(checklistID)
		if cl == nil {
			return fmt.Errorf("%w: checklist %q", ErrNotFound, checklistID)
		}
		cl.Sections = append(cl.Sections, src.CloneWithIDs(s.NewID))
		return nil
	})
}

// AddSection appends an empty section and returns its id.
func (s *Service) AddSection(checklistID, title string) (string, error) {
	var id string
	err := s.structural(func(c *checklist.Collection) error {
		if strings.TrimSpace(title) == "" {
			return checklist.ErrBlankTitle
		}
		cl := c.Find(checklistID)
		if cl == nil {
			return fmt.Errorf("%w: checklist %q", ErrNotFound, checklistID)
		}
		id = s.NewID()
		cl.Sections = append(cl.Sections, checklist.Section{ID: id, Title: title})
		return nil
	})
	return id, err
}

// RenameSection retitles a section.
func (s *Service) RenameSection(checklistID, sectionID, title string) error {
	return s.structural(func(c *checklist.Collection) error {
		if strings.TrimSpace(title) == "" {
			return checklist.ErrBlankTitle
		}
		sec, err := findSection(c, checklistID, sectionID)
		if err != nil {
			return err
		}
		sec.Title = title
		return nil
	})
}

// SetSectionDefaultChecked marks a section as satisfied-on-reset.
func (s *Service) SetSectionDefaultChecked(checklistID, sectionID string, on bool) error {
	return s.structural(func(c *checklist.Collection) error {
		sec, err := findSection(c, checklistID, sectionID)
		if err != nil {
			return err
		}
		sec.DefaultChecked = on
		return nil
	})
}

// DeleteSection removes a section and all its items.
func (s *Service) DeleteSection(checklistID, sectionID string) error {
	return s.structural(func(c *checklist.Collection) error {
		cl := c.Find(checklistID)
		if cl == nil {
			return fmt.Errorf("%w: checklist %q", ErrNotFound, checklistID)
		}
		for i := range cl.Sections {
			if cl.Sections[i].ID == sectionID {
				cl.Sections = append(cl.Sections[:i], cl.Sections[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: section %q", ErrNotFound, sectionID)
	})
}

// MoveSection reorders sections within a checklist.
func (s *Service) MoveSection(checklistID string, from, to int) error {
	return s.structural(func(c *checklist.Collection) error {
		cl := c.Find(checklistID)
		if cl == nil {
			return fmt.Errorf("%w: checklist %q", ErrNotFound, checklistID)
		}
		cl.MoveSection(from, to)
		return nil
	})
}

// AddItem appends an item to a section and returns its id.
func (s *Service) AddItem(checklistID, sectionID, label, action string) (string, error) {
	var id string
	err := s.structural(func(c *checklist.Collection) error {
		if strings.TrimSpace(label) == "" {
			return checklist.ErrBlankTitle
		}
		sec, err := findSection(c, checklistID, sectionID)
		if err != nil {
			return err
		}
		id = s.NewID()
		sec.Items = append(sec.Items, checklist.Item{ID: id, Label: label, Action: action})
		return nil
	})
	return id, err
}

// EditItem rewrites an item's label, action, and critical flag.
func (s *Service) EditItem(checklistID, itemID, label, action string, critical bool) error {
	return s.structural(func(c *checklist.Collection) error {
		if strings.TrimSpace(label) == "" {
			return checklist.ErrBlankTitle
		}
		cl := c.Find(checklistID)
		if cl == nil {
			return fmt.Errorf("%w: checklist %q", ErrNotFound, checklistID)
		}
		for si := range cl.Sections {
			for ii := range cl.Sections[si].Items {
				if cl.Sections[si].Items[ii].ID == itemID {
					it := &cl.Sections[si].Items[ii]
					it.Label, it.Action, it.Critical = label, action, critical
					return nil
				}
			}
		}
		return fmt.Errorf("%w: item %q", ErrNotFound, itemID)
	})
}

// DeleteItem removes one item.
func (s *Service) DeleteItem(checklistID, itemID string) error {
	return s.structural(func(c *checklist.Collection) error {
		cl := c.Find(checklistID)
		if cl == nil {
			return fmt.Errorf("%w: checklist %q", ErrNotFound, checklistID)
		}
		for si := range cl.Sections {
			items := cl.Sections[si].Items
			for ii := range items {
				if items[ii].ID == itemID {
					cl.Sections[si].Items = append(items[:ii], items[ii+1:]...)
					return nil
				}
			}
		}
		return fmt.Errorf("%w: item %q", ErrNotFound, itemID)
	})
}

// MoveItem reorders items within a section.
func (s *Service) MoveItem(checklistID, sectionID string, from, to int) error {
	return s.structural(func(c *checklist.Collection) error {
		sec, err := findSection(c, checklistID, sectionID)
		if err != nil {
			return err
		}
		sec.MoveItem(from, to)
		return nil
	})
}

// AddAircraft attaches a tail number to a checklist.
func (s *Service) AddAircraft(checklistID, name, url string) (string, error) {
	var id string
	err := s.structural(func(c *checklist.Collection) error {
		if strings.TrimSpace(name) == "" {
			return checklist.ErrBlankTitle
		}
		cl := c.Find(checklistID)
		if cl == nil {
			return fmt.Errorf("%w: checklist %q", ErrNotFound, checklistID)
		}
		id = s.NewID()
		cl.Aircraft = append(cl.Aircraft, checklist.Aircraft{ID: id, Name: name, URL: url})
		return nil
	})
	return id, err
}

// DeleteAircraft detaches a tail number.
func (s *Service) DeleteAircraft(checklistID, aircraftID string) error {
	return s.structural(func(c *checklist.Collection) error {
		cl := c.Find(checklistID)
		if cl == nil {
			return fmt.Errorf("%w: checklist %q", ErrNotFound, checklistID)
		}
		for i := range cl.Aircraft {
			if cl.Aircraft[i].ID == aircraftID {
				cl.Aircraft = append(cl.Aircraft[:i], cl.Aircraft[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: aircraft %q", ErrNotFound, aircraftID)
	})
}

// AddLink appends a useful link.
func (s *Service) AddLink(title, url string) (string, error) {
	var id string
	err := s.structural(func(c *checklist.Collection) error {
		if strings.TrimSpace(title) == "" || strings.TrimSpace(url) == "" {
			return checklist.ErrBlankTitle
		}
		id = s.NewID()
		c.Links = append(c.Links, checklist.Link{ID: id, Title: title, URL: url})
		return nil
	})
	return id, err
}

// DeleteLink removes a useful link.
func (s *Service) DeleteLink(id string) error {
	return s.structural(func(c *checklist.Collection) error {
		for i := range c.Links {
			if c.Links[i].ID == id {
				c.Links = append(c.Links[:i], c.Links[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: link %q", ErrNotFound, id)
	})
}

// --- Undo / redo ---

// Undo restores the state before the last structural edit. Returns
// history.ErrNoOp when there is nothing to undo.
func (s *Service) Undo() error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if !s.editMode {
		return ErrEditRequired
	}
	prev, err := s.hist.Undo(s.state)
	if err != nil {
		return err
	}
	s.state = prev
	return s.persist()
}

// Redo reapplies the most recently undone edit.
func (s *Service) Redo() error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	if !s.editMode {
		return ErrEditRequired
	}
	next, err := s.hist.Redo(s.state)
	if err != nil {
		return err
	}
	s.state = next
	return s.persist()
}

// CanUndo reports whether Undo would succeed.
func (s *Service) CanUndo() bool { return s.hist.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (s *Service) CanRedo() bool { return s.hist.CanRedo() }

// --- Notes ---

// SetNotes replaces a checklist's free-text notes. Notes edits are
// debounced by the caller and deliberately bypass the history stack so
// every keystroke does not become an undo step.
func (s *Service) SetNotes(checklistID, notes string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	cl := s.state.Find(checklistID)
	if cl == nil {
		return fmt.Errorf("%w: checklist %q", ErrNotFound, checklistID)
	}
	cl.Notes = notes
	return s.persist()
}

// --- Backups ---

// CreateBackup stores a named deep copy of the full state.
func (s *Service) CreateBackup(name string) (store.Backup, error) {
	if err := s.ensureLoaded(); err != nil {
		return store.Backup{}, err
	}
	if strings.TrimSpace(name) == "" {
		return store.Backup{}, checklist.ErrBlankTitle
	}
	b := store.Backup{
		ID:      s.NewID(),
		Name:    name,
		Created: time.Now().UTC(),
		State:   s.state.Clone(),
		Startup: s.Persistence.StartupView(),
	}
	if err := s.Persistence.SaveBackup(b); err != nil {
		return store.Backup{}, err
	}
	return b, nil
}

// Backups lists stored backups, newest first.
func (s *Service) Backups(ctx context.Context) ([]store.Backup, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Backups(ctx), nil
}

// RestoreBackup replaces the live state with the backup's copy. The
// history stacks are dropped; undo across a restore is not meaningful.
func (s *Service) RestoreBackup(ctx context.Context, id string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	for _, b := range s.Persistence.Backups(ctx) {
		if b.ID == id {
			s.state = b.State.Clone()
			s.hist.Reset()
			if b.Startup != "" {
				if err := s.Persistence.SetStartupView(b.Startup); err != nil {
					return err
				}
			}
			return s.persist()
		}
	}
	return fmt.Errorf("%w: backup %q", ErrNotFound, id)
}

// DeleteBackup removes a stored backup.
func (s *Service) DeleteBackup(id string) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return s.Persistence.DeleteBackup(id)
}

func findSection(c *checklist.Collection, checklistID, sectionID string) (*checklist.Section, error) {
	cl := c.Find(checklistID)
	if cl == nil {
		return nil, fmt.Errorf("%w: checklist %q", ErrNotFound, checklistID)
	}
	for i := range cl.Sections {
		if cl.Sections[i].ID == sectionID {
			return &cl.Sections[i], nil
		}
	}
	return nil, fmt.Errorf("%w: section %q", ErrNotFound, sectionID)
}
