package query

import "sort"

// MatchSet is the set of record identifiers one clause matched. Only
// membership matters; ordering happens once at the end of evaluation.
type MatchSet map[string]struct{}

func (m MatchSet) Add(id string) {
	m[id] = struct{}{}
}

// Merge adds every member of other into m.
func (m MatchSet) Merge(other MatchSet) {
	for id := range other {
		m[id] = struct{}{}
	}
}

// Intersect returns the members present in both sets.
func (m MatchSet) Intersect(other MatchSet) MatchSet {
	small, large := m, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(MatchSet, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// SortedIDs returns the members in ascending lexicographic order.
func (m MatchSet) SortedIDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
