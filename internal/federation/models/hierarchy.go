package models

import (
	"slices"

	id "sportify/pkg/domain"
)

// Hierarchy is the federation forest as a child to parent adjacency map.
// Roots are absent from the map.
type Hierarchy map[id.FederationID]id.FederationID

// NewHierarchy indexes the parent links of feds.
func NewHierarchy(feds []*Federation) Hierarchy {
	h := make(Hierarchy, len(feds))
	for _, f := range feds {
		if f.ParentID != nil {
			h[f.ID] = *f.ParentID
		}
	}
	return h
}

// Ancestors lists the parents of child from nearest to root. A cycle in the
// stored links stops the walk.
func (h Hierarchy) Ancestors(child id.FederationID) []id.FederationID {
	var out []id.FederationID
	seen := map[id.FederationID]bool{child: true}
	for cur, ok := h[child]; ok; cur, ok = h[cur] {
		if seen[cur] {
			break
		}
		seen[cur] = true
		out = append(out, cur)
	}
	return out
}

// WouldCycle reports whether making parent the parent of child closes a loop.
func (h Hierarchy) WouldCycle(child, parent id.FederationID) bool {
	if child == parent {
		return true
	}
	return slices.Contains(h.Ancestors(parent), child)
}

// Children lists the direct children of parent in ascending id order.
func (h Hierarchy) Children(parent id.FederationID) []id.FederationID {
	var out []id.FederationID
	for child, p := range h {
		if p == parent {
			out = append(out, child)
		}
	}
	slices.Sort(out)
	return out
}
