package track

import (
	"fmt"
	"testing"

	"github.com/aeroclub-poitou/preflight/pkg/checklist"
)

func newTestChecklist(sections ...checklist.Section) checklist.Checklist {
	return checklist.Checklist{ID: "cl", Title: "Test", Sections: sections}
}

func section(id string, checked ...bool) checklist.Section {
	s := checklist.Section{ID: id, Title: id}
	for i, c := range checked {
		s.Items = append(s.Items, checklist.Item{
			ID:      fmt.Sprintf("%s-%d", id, i),
			Label:   fmt.Sprintf("item %d", i),
			Checked: c,
		})
	}
	return s
}

func TestAnalyzeNothingChecked(t *testing.T) {
	cl := newTestChecklist(section("s1", false, false), section("s2", false))
	a := Analyze(cl)
	if len(a.Warned) != 0 {
		t.Fatalf("expected no warnings, got %v", a.Warned)
	}
	if a.HighlightID != "s1-0" {
		t.Fatalf("expected first item highlighted, got %q", a.HighlightID)
	}
}

func TestAnalyzeEmptyChecklist(t *testing.T) {
	a := Analyze(newTestChecklist())
	if a.HighlightID != "" || len(a.Warned) != 0 {
		t.Fatalf("empty checklist should yield no state, got %+v", a)
	}
}

func TestAnalyzeAllChecked(t *testing.T) {
	cl := newTestChecklist(section("s1", true, true), section("s2", true))
	a := Analyze(cl)
	if a.HighlightID != "" {
		t.Fatalf("expected no highlight, got %q", a.HighlightID)
	}
	if len(a.Warned) != 0 {
		t.Fatalf("expected no warnings, got %v", a.Warned)
	}
}

func TestAnalyzeSkippedItemsAreWarned(t *testing.T) {
	// S1=[A,B] unchecked, S2=[C] checked. Flattened [A,B,C], last checked
	// index 2, so both A and B are warned and nothing is highlighted.
	cl := newTestChecklist(section("s1", false, false), section("s2", true))
	a := Analyze(cl)
	if !a.IsWarned("s1-0") || !a.IsWarned("s1-1") {
		t.Fatalf("expected both skipped items warned, got %v", a.Warned)
	}
	if len(a.Warned) != 2 {
		t.Fatalf("expected exactly two warnings, got %v", a.Warned)
	}
	if a.HighlightID != "" {
		t.Fatalf("first unchecked is warned, highlight must be empty, got %q", a.HighlightID)
	}
}

func TestAnalyzeFirstItemCheckedNoWarning(t *testing.T) {
	// [X checked, Y unchecked]: last checked index is 0, the warning scan
	// does not run, Y becomes the highlight.
	cl := newTestChecklist(section("s1", true, false))
	a := Analyze(cl)
	if len(a.Warned) != 0 {
		t.Fatalf("expected no warnings, got %v", a.Warned)
	}
	if a.HighlightID != "s1-1" {
		t.Fatalf("expected Y highlighted, got %q", a.HighlightID)
	}
}

func TestAnalyzeUncheckedIndexZeroNeverWarnedAlone(t *testing.T) {
	// Only the second item checked: index 0 is before the last checked
	// index so it IS in the scan range and warned.
	cl := newTestChecklist(section("s1", false, true))
	a := Analyze(cl)
	if !a.IsWarned("s1-0") {
		t.Fatalf("expected index 0 warned when a later item is checked, got %v", a.Warned)
	}
	if a.HighlightID != "" {
		t.Fatalf("expected no highlight, got %q", a.HighlightID)
	}
}

func TestAnalyzeInOrderCompletionNeverWarns(t *testing.T) {
	cl := newTestChecklist(section("s1", false, false), section("s2", false, false))
	flat := cl.Flatten()
	for _, it := range flat {
		cl.Toggle(it.ID)
		a := Analyze(cl)
		if len(a.Warned) != 0 {
			t.Fatalf("checking %s in order produced warnings: %v", it.ID, a.Warned)
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	cl := newTestChecklist(section("s1", true, false, true), section("s2", false))
	a1 := Analyze(cl)
	a2 := Analyze(cl)
	if a1.HighlightID != a2.HighlightID || len(a1.Warned) != len(a2.Warned) {
		t.Fatalf("analysis not idempotent: %+v vs %+v", a1, a2)
	}
	for id := range a1.Warned {
		if !a2.Warned[id] {
			t.Fatalf("warned sets differ: %v vs %v", a1.Warned, a2.Warned)
		}
	}
}

func TestAnalyzeHighlightSkipsPastChecked(t *testing.T) {
	// [checked, unchecked, unchecked]: highlight is the second item and
	// checking strictly forward keeps the warned set empty.
	cl := newTestChecklist(section("s1", true, false, false))
	a := Analyze(cl)
	if a.HighlightID != "s1-1" {
		t.Fatalf("expected s1-1 highlighted, got %q", a.HighlightID)
	}
	if len(a.Warned) != 0 {
		t.Fatalf("expected no warnings, got %v", a.Warned)
	}
}
