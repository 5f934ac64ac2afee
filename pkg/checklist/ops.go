package checklist

// Reordering is expressed as explicit index moves so it can be exercised
// without simulating any pointer input.

// MoveSection moves the section at from to position to. Out-of-range
// indexes are ignored.
func (c *Checklist) MoveSection(from, to int) {
	c.Sections = move(c.Sections, from, to)
}

// MoveItem moves an item within the section.
func (s *Section) MoveItem(from, to int) {
	s.Items = move(s.Items, from, to)
}

func move[T any](xs []T, from, to int) []T {
	if from < 0 || from >= len(xs) || to < 0 || to >= len(xs) || from == to {
		return xs
	}
	v := xs[from]
	xs = append(xs[:from], xs[from+1:]...)
	xs = append(xs, v)
	copy(xs[to+1:], xs[to:len(xs)-1])
	xs[to] = v
	return xs
}

// SetAllChecked sets every item's checked flag in the section.
func (s *Section) SetAllChecked(checked bool) {
	for i := range s.Items {
		s.Items[i].Checked = checked
	}
}

// Reset unchecks every item, except that outside edit flows sections
// marked DefaultChecked come back checked.
func (c *Checklist) Reset() {
	for i := range c.Sections {
		c.Sections[i].SetAllChecked(c.Sections[i].DefaultChecked)
	}
}

// Toggle flips the checked flag of the item with the given id and reports
// whether the item was found.
func (c *Checklist) Toggle(itemID string) bool {
	for si := range c.Sections {
		for ii := range c.Sections[si].Items {
			if c.Sections[si].Items[ii].ID == itemID {
				c.Sections[si].Items[ii].Checked = !c.Sections[si].Items[ii].Checked
				return true
			}
		}
	}
	return false
}
