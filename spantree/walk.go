package spantree

// Visitor is called once per node with its depth (roots are depth 0).
// Returning false skips the node's descendants.
type Visitor func(n *Node, depth int) bool

// Walk traverses nodes depth-first in pre-order, following Kids order.
// Nil nodes and nodes with an invalid span are skipped together with their
// subtrees.
func Walk(nodes []*Node, fn Visitor) {
	if fn == nil {
		return
	}
	seen := make(map[*Node]struct{})
	walk(nodes, 0, fn, seen)
}

func walk(nodes []*Node, depth int, fn Visitor, seen map[*Node]struct{}) {
	for _, n := range nodes {
		if n == nil || !n.Span.Valid() {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		if !fn(n, depth) {
			continue
		}
		walk(n.Kids(), depth+1, fn, seen)
	}
}

// Find returns the innermost node satisfying match. Nodes rejected by descend
// are pruned with their subtrees. For every accepted node its descendants are
// searched first, so a deeper match wins over the node itself, and the first
// subtree that yields a match wins over later siblings.
func Find(nodes []*Node, descend, match func(*Node) bool) *Node {
	seen := make(map[*Node]struct{})
	return find(nodes, descend, match, seen)
}

func find(nodes []*Node, descend, match func(*Node) bool, seen map[*Node]struct{}) *Node {
	for _, n := range nodes {
		if n == nil || !n.Span.Valid() {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		if descend != nil && !descend(n) {
			continue
		}
		if hit := find(n.Kids(), descend, match, seen); hit != nil {
			return hit
		}
		if match == nil || match(n) {
			return n
		}
	}
	return nil
}

// Count returns the number of nodes Walk would visit.
func Count(nodes []*Node) int {
	n := 0
	Walk(nodes, func(*Node, int) bool {
		n++
		return true
	})
	return n
}
