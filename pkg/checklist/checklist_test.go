package checklist

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func counterGen() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func sampleChecklist() Checklist {
	return Checklist{
		ID:    "cl-1",
		Title: "F-TEST",
		Aircraft: []Aircraft{
			{ID: "ac-1", Name: "F-TEST", URL: "https://example.org/manual"},
		},
		Sections: []Section{
			{
				ID:    "s-1",
				Title: "AVANT MISE EN ROUTE",
				Items: []Item{
					{ID: "i-1", Label: "Frein de parc", Action: "SERRÉ"},
					{ID: "i-2", Label: "Contact magnétos", Action: "OFF", Critical: true},
				},
			},
			{
				ID:             "s-2",
				Title:          "VISITE PRÉVOL",
				DefaultChecked: true,
				Items: []Item{
					{ID: "i-3", Label: "Documentation", Action: "À BORD", Checked: true},
				},
			},
		},
		Notes: "remarques",
	}
}

func TestFlattenOrder(t *testing.T) {
	cl := sampleChecklist()
	flat := cl.Flatten()
	want := []string{"i-1", "i-2", "i-3"}
	if len(flat) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(flat))
	}
	for i, id := range want {
		if flat[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, flat[i].ID)
		}
	}
}

func TestSectionComplete(t *testing.T) {
	tests := []struct {
		name string
		s    Section
		want bool
	}{
		{"empty never complete", Section{ID: "s"}, false},
		{"all checked", Section{Items: []Item{{Checked: true}, {Checked: true}}}, true},
		{"one unchecked", Section{Items: []Item{{Checked: true}, {}}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.Complete(); got != tc.want {
				t.Fatalf("Complete() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCloneWithIDsAssignsFreshUniqueIDs(t *testing.T) {
	orig := sampleChecklist()
	dup := orig.CloneWithIDs(counterGen())

	// Structurally equal apart from ids.
	ignoreIDs := cmpopts.IgnoreFields(Item{}, "ID")
	if diff := cmp.Diff(orig.Sections[0].Items, dup.Sections[0].Items, ignoreIDs); diff != "" {
		t.Fatalf("duplicate changed item content (-want +got):\n%s", diff)
	}

	seen := map[string]bool{orig.ID: true}
	for _, s := range orig.Sections {
		seen[s.ID] = true
		for _, it := range s.Items {
			seen[it.ID] = true
		}
	}
	for _, a := range orig.Aircraft {
		seen[a.ID] = true
	}

	check := func(id string) {
		t.Helper()
		if seen[id] {
			t.Fatalf("id %q collides with an existing id", id)
		}
		seen[id] = true
	}
	check(dup.ID)
	for _, a := range dup.Aircraft {
		check(a.ID)
	}
	for _, s := range dup.Sections {
		check(s.ID)
		for _, it := range s.Items {
			check(it.ID)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := sampleChecklist()
	cp := orig.Clone()
	cp.Sections[0].Items[0].Checked = true
	cp.Aircraft[0].Name = "F-MUTATED"
	if orig.Sections[0].Items[0].Checked {
		t.Fatal("clone shares item storage")
	}
	if orig.Aircraft[0].Name != "F-TEST" {
		t.Fatal("clone shares aircraft storage")
	}
}

func TestResetRespectsDefaultChecked(t *testing.T) {
	cl := sampleChecklist()
	cl.Sections[0].Items[0].Checked = true
	cl.Sections[1].Items[0].Checked = false

	cl.Reset()

	if cl.Sections[0].Items[0].Checked || cl.Sections[0].Items[1].Checked {
		t.Fatal("regular section should reset unchecked")
	}
	if !cl.Sections[1].Items[0].Checked {
		t.Fatal("default-checked section should reset checked")
	}
}

func TestMoveSection(t *testing.T) {
	cl := Checklist{Sections: []Section{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	cl.MoveSection(0, 2)
	got := []string{cl.Sections[0].ID, cl.Sections[1].ID, cl.Sections[2].ID}
	want := []string{"b", "c", "a"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}

	// out of range is ignored
	cl.MoveSection(5, 0)
	if cl.Sections[0].ID != "b" {
		t.Fatal("out-of-range move must be a no-op")
	}
}

func TestMoveItem(t *testing.T) {
	s := Section{Items: []Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	s.MoveItem(2, 0)
	got := []string{s.Items[0].ID, s.Items[1].ID, s.Items[2].ID}
	want := []string{"c", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestToggle(t *testing.T) {
	cl := sampleChecklist()
	if !cl.Toggle("i-1") {
		t.Fatal("expected toggle to find i-1")
	}
	if !cl.Sections[0].Items[0].Checked {
		t.Fatal("toggle should check the item")
	}
	if cl.Toggle("missing") {
		t.Fatal("unknown id must report false")
	}
}

func TestValidateTitle(t *testing.T) {
	col := Collection{Checklists: []Checklist{{ID: "cl-1", Title: "F-BUBK"}}}

	if err := col.ValidateTitle("  ", ""); !errors.Is(err, ErrBlankTitle) {
		t.Fatalf("expected ErrBlankTitle, got %v", err)
	}
	if err := col.ValidateTitle("F-BUBK", ""); !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	// renaming to its own title is allowed
	if err := col.ValidateTitle("F-BUBK", "cl-1"); err != nil {
		t.Fatalf("self-rename rejected: %v", err)
	}
	if err := col.ValidateTitle("F-GIYA", ""); err != nil {
		t.Fatalf("fresh title rejected: %v", err)
	}
}

func TestSectionOf(t *testing.T) {
	cl := sampleChecklist()
	if got := cl.SectionOf("i-3"); got != "s-2" {
		t.Fatalf("SectionOf(i-3) = %q, want s-2", got)
	}
	if got := cl.SectionOf("nope"); got != "" {
		t.Fatalf("SectionOf(nope) = %q, want empty", got)
	}
}
