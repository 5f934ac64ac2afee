// Package track derives sequential-completion state from a checklist:
// which item is expected next, which earlier items look skipped, and
// which sections should be collapsed.
package track

import "github.com/aeroclub-poitou/preflight/pkg/checklist"

// Analysis is the transient UI state recomputed after every toggle. It
// is a pure function of the flattened item order, never persisted.
type Analysis struct {
	// HighlightID is the id of the next item expected to be checked,
	// or "" when everything is checked or the next item is itself warned.
	HighlightID string
	// Warned holds ids of unchecked items that sit before the last
	// checked item in flattened order.
	Warned map[string]bool
}

// Highlighted reports whether the item id is the current highlight.
func (a Analysis) Highlighted(id string) bool { return id != "" && a.HighlightID == id }

// IsWarned reports whether the item id is flagged as skipped.
func (a Analysis) IsWarned(id string) bool { return a.Warned[id] }

// Analyze scans the checklist's flattened item order.
//
// The warned set is every unchecked item strictly before the last checked
// index. The scan only runs when the last checked index is greater than
// zero: an unchecked item at position 0 is the normal starting state, not
// a skip. The highlight is the first unchecked item in forward order,
// suppressed when that item is already warned so it is not flagged twice.
func Analyze(cl checklist.Checklist) Analysis {
	items := cl.Flatten()
	a := Analysis{Warned: make(map[string]bool)}

	lastChecked := -1
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Checked {
			lastChecked = i
			break
		}
	}

	if lastChecked > 0 {
		for i := 0; i < lastChecked; i++ {
			if !items[i].Checked {
				a.Warned[items[i].ID] = true
			}
		}
	}

	for _, it := range items {
		if !it.Checked {
			if !a.Warned[it.ID] {
				a.HighlightID = it.ID
			}
			break
		}
	}
	return a
}
