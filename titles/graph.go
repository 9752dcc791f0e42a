package titles

import "sort"

// =============================================================================
// PROMOTIONAL RELATIONSHIP GRAPH
// =============================================================================

// Graph holds the promotional links between titles, browsable in both
// directions. Like the catalog it is built once from loaded reference
// data and never mutated.
type Graph struct {
	parents  map[string][]string
	children map[string][]string
}

// NewGraph builds the bidirectional index from the relationship list.
// Duplicate links collapse; both directions come back sorted so
// traversal is deterministic.
func NewGraph(links []Relationship) *Graph {
	parentSet := make(map[string]map[string]struct{})
	childSet := make(map[string]map[string]struct{})
	for _, l := range links {
		if l.Child == "" || l.Parent == "" || l.Child == l.Parent {
			continue
		}
		child := normalizeTitle(l.Child)
		parent := normalizeTitle(l.Parent)
		if parentSet[child] == nil {
			parentSet[child] = make(map[string]struct{})
		}
		parentSet[child][l.Parent] = struct{}{}
		if childSet[parent] == nil {
			childSet[parent] = make(map[string]struct{})
		}
		childSet[parent][l.Child] = struct{}{}
	}

	return &Graph{
		parents:  flatten(parentSet),
		children: flatten(childSet),
	}
}

// Parents returns the titles this title is promotional FROM: the roles
// an employee holds before promoting into the given title.
func (g *Graph) Parents(title string) []string {
	return copied(g.parents[normalizeTitle(title)])
}

// Children returns the titles reachable by promotion from this title.
func (g *Graph) Children(title string) []string {
	return copied(g.children[normalizeTitle(title)])
}

func flatten(sets map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(sets))
	for key, set := range sets {
		names := make([]string, 0, len(set))
		for name := range set {
			names = append(names, name)
		}
		sort.Strings(names)
		out[key] = names
	}
	return out
}

func copied(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
