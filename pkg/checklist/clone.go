package checklist

import "github.com/google/uuid"

// IDGenerator mints fresh unique ids. It is injectable so duplication is
// deterministic under test.
type IDGenerator func() string

// UUIDGenerator is the production generator.
func UUIDGenerator() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the collection. Ids are preserved; this is
// the snapshot used by the edit history stack, so the copy must share no
// slices with the receiver.
func (c Collection) Clone() Collection {
	out := Collection{
		Checklists: make([]Checklist, len(c.Checklists)),
		Links:      append([]Link(nil), c.Links...),
	}
	for i, cl := range c.Checklists {
		out.Checklists[i] = cl.Clone()
	}
	return out
}

// Clone returns a deep copy of the checklist, ids preserved.
func (c Checklist) Clone() Checklist {
	out := c
	out.Aircraft = append([]Aircraft(nil), c.Aircraft...)
	out.Sections = make([]Section, len(c.Sections))
	for i, s := range c.Sections {
		out.Sections[i] = s
		out.Sections[i].Items = append([]Item(nil), s.Items...)
	}
	return out
}

// Clone returns a deep copy of the section, ids preserved.
func (s Section) Clone() Section {
	out := s
	out.Items = append([]Item(nil), s.Items...)
	return out
}

// CloneWithIDs deep-copies the checklist and assigns a fresh id to the
// checklist itself and to every section, item, and aircraft, so pasted or
// duplicated copies never collide with the original.
func (c Checklist) CloneWithIDs(gen IDGenerator) Checklist {
	out := c.Clone()
	out.ID = gen()
	for i := range out.Aircraft {
		out.Aircraft[i].ID = gen()
	}
	for i := range out.Sections {
		out.Sections[i] = out.Sections[i].CloneWithIDs(gen)
	}
	return out
}

// CloneWithIDs deep-copies the section with fresh ids throughout.
func (s Section) CloneWithIDs(gen IDGenerator) Section {
	out := s
	out.ID = gen()
	out.Items = append([]Item(nil), s.Items...)
	for i := range out.Items {
		out.Items[i].ID = gen()
	}
	return out
}
