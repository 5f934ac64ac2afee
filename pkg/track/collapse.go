package track

import "github.com/aeroclub-poitou/preflight/pkg/checklist"

// CollapseSet is the set of currently collapsed section ids. It is pure
// rendering state; it never touches item data.
type CollapseSet map[string]bool

// NewCollapseSet returns an empty set.
func NewCollapseSet() CollapseSet { return make(CollapseSet) }

// Collapsed reports whether the section is collapsed.
func (c CollapseSet) Collapsed(sectionID string) bool { return c[sectionID] }

// Toggle flips a section's collapse state. Manual toggles are always
// honored; the highlight rule in Advance may re-expand on the next
// recompute.
func (c CollapseSet) Toggle(sectionID string) {
	if c[sectionID] {
		delete(c, sectionID)
	} else {
		c[sectionID] = true
	}
}

// CollapseAll collapses every section of the checklist.
func (c CollapseSet) CollapseAll(cl checklist.Checklist) {
	for _, s := range cl.Sections {
		c[s.ID] = true
	}
}

// ExpandAll clears the set.
func (c CollapseSet) ExpandAll() {
	for id := range c {
		delete(c, id)
	}
}

// AllCollapsed reports whether every section of the checklist is in the
// set, driving the collapse-all/expand-all toggle button.
func (c CollapseSet) AllCollapsed(cl checklist.Checklist) bool {
	if len(cl.Sections) == 0 {
		return false
	}
	for _, s := range cl.Sections {
		if !c[s.ID] {
			return false
		}
	}
	return true
}

// Advance applies the automatic rules after an item-state change, given
// the section states before (prev) and after (cur) the change and the
// fresh analysis of cur:
//
//  1. a section crossing not-complete -> complete is collapsed;
//  2. a section crossing complete -> not-complete is expanded;
//  3. the section holding the highlighted item is always expanded.
//
// Completion is edge-triggered: a section that stays complete stays
// collapsed only because it already is, and empty sections are never
// complete so never auto-collapse.
func (c CollapseSet) Advance(prev, cur checklist.Checklist, a Analysis) {
	before := make(map[string]bool, len(prev.Sections))
	for _, s := range prev.Sections {
		before[s.ID] = s.Complete()
	}
	for _, s := range cur.Sections {
		was, known := before[s.ID]
		if !known {
			continue
		}
		now := s.Complete()
		switch {
		case now && !was:
			c[s.ID] = true
		case was && !now:
			delete(c, s.ID)
		}
	}
	if a.HighlightID != "" {
		if sid := cur.SectionOf(a.HighlightID); sid != "" {
			delete(c, sid)
		}
	}
}

// InitFromCompletion seeds collapse state when leaving edit mode or
// opening a checklist: every non-empty fully-checked section starts
// collapsed.
func (c CollapseSet) InitFromCompletion(cl checklist.Checklist) {
	c.ExpandAll()
	for _, s := range cl.Sections {
		if s.Complete() {
			c[s.ID] = true
		}
	}
}
