package notes

import "slices"

// pinnedSet is a set of note ids kept in pin order
type pinnedSet []string

func (p pinnedSet) has(id string) bool {
	return slices.Contains(p, id)
}

// toggle returns a new set with id's membership flipped; p is not modified
func (p pinnedSet) toggle(id string) pinnedSet {
	if p.has(id) {
		return p.remove(id)
	}
	return append(slices.Clip(p), id)
}

// remove returns a new set without id; removing an absent id is fine
func (p pinnedSet) remove(id string) pinnedSet {
	return slices.DeleteFunc(slices.Clone(p), func(v string) bool { return v == id })
}
