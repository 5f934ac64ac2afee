// Package checklist defines the aircraft checklist domain model.
package checklist

import (
	"errors"
	"fmt"
	"strings"
)

// Item is a single checklist line: a label on the left, the expected
// action on the right, and a checked flag flipped during normal use.
type Item struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Action   string `json:"action"`
	Checked  bool   `json:"checked"`
	Critical bool   `json:"isCritical,omitempty"`
}

// Section is an ordered group of items. Order is the execution sequence.
// DefaultChecked sections come back fully checked on reset; they cover
// phases already satisfied before the pilot picks up the list.
type Section struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Items          []Item `json:"items"`
	DefaultChecked bool   `json:"defaultChecked,omitempty"`
}

// Aircraft is a tail number attached to a checklist, with an optional
// documentation link. Owned by exactly one checklist.
type Aircraft struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Checklist is one aircraft type's full procedure set.
type Checklist struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Aircraft []Aircraft `json:"aircrafts"`
	Sections []Section  `json:"sections"`
	Notes    string     `json:"notes,omitempty"`
}

// Link is a useful external reference shown on the links view.
type Link struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Collection is the whole persisted state: every checklist plus the
// shared link list.
type Collection struct {
	Checklists []Checklist `json:"checklists"`
	Links      []Link      `json:"usefulLinks"`
}

// Complete reports whether every item in the section is checked. A
// section with no items is never complete.
func (s Section) Complete() bool {
	if len(s.Items) == 0 {
		return false
	}
	for _, it := range s.Items {
		if !it.Checked {
			return false
		}
	}
	return true
}

// Flatten returns all items in execution order: sections in order, items
// in order within each section. This ordering is the sole basis for
// earlier/later comparisons.
func (c Checklist) Flatten() []Item {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Items)
	}
	out := make([]Item, 0, n)
	for _, s := range c.Sections {
		out = append(out, s.Items...)
	}
	return out
}

// SectionOf returns the id of the section containing the item, or "".
func (c Checklist) SectionOf(itemID string) string {
	for _, s := range c.Sections {
		for _, it := range s.Items {
			if it.ID == itemID {
				return s.ID
			}
		}
	}
	return ""
}

// Find returns the checklist with the given id, or nil.
func (c *Collection) Find(id string) *Checklist {
	for i := range c.Checklists {
		if c.Checklists[i].ID == id {
			return &c.Checklists[i]
		}
	}
	return nil
}

var (
	// ErrBlankTitle rejects empty or whitespace-only names on edit forms.
	ErrBlankTitle = errors.New("checklist: title must not be blank")
	// ErrDuplicateTitle rejects a checklist title already in use.
	ErrDuplicateTitle = errors.New("checklist: title already in use")
)

// ValidateTitle checks a proposed checklist title against the collection.
// The exclude id allows renaming a checklist to its own current title.
func (c *Collection) ValidateTitle(title, excludeID string) error {
	if strings.TrimSpace(title) == "" {
		return ErrBlankTitle
	}
	for _, cl := range c.Checklists {
		if cl.ID != excludeID && cl.Title == title {
			return fmt.Errorf("%w: %q", ErrDuplicateTitle, title)
		}
	}
	return nil
}
