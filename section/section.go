// Package section groups a document's top-level nodes into a tree of
// header-delimited sections, the structure used for folding, outlines and
// scroll sync.
package section

import (
	"strconv"

	"github.com/iw2rmb/smedit/spantree"
)

// Section is a header and everything it owns up to the next header of the
// same or a shallower level.
type Section struct {
	Level  int
	Folded bool
	// Index is the engine's section number for the header.
	Index int
	// Path is the dotted outline position, e.g. "2.1".
	Path    string
	Header  *spantree.Node
	Content []*spantree.Node
	Sub     []*Section
}

// Span covers the header and all owned content, including subsections.
func (s *Section) Span() spantree.Span {
	sp := s.Header.Span
	grow := func(n *spantree.Node) {
		if n.Span.End > sp.End {
			sp.End = n.Span.End
		}
	}
	for _, n := range s.Content {
		grow(n)
	}
	if len(s.Sub) > 0 {
		if end := s.Sub[len(s.Sub)-1].Span().End; end > sp.End {
			sp.End = end
		}
	}
	return sp
}

// Tree is the header outline of a document.
type Tree struct {
	// Preamble holds the nodes before the first header.
	Preamble []*spantree.Node
	Sections []*Section
}

// Build splits top-level nodes into sections. nil entries and nodes with an
// invalid span are dropped.
func Build(nodes []*spantree.Node) Tree {
	var clean []*spantree.Node
	for _, n := range nodes {
		if n != nil && n.Span.Valid() {
			clean = append(clean, n)
		}
	}

	var t Tree
	i := 0
	for i < len(clean) && clean[i].Type != spantree.Header {
		t.Preamble = append(t.Preamble, clean[i])
		i++
	}
	for counter := 1; i < len(clean); counter++ {
		var s *Section
		s, i = build(clean, i, strconv.Itoa(counter))
		t.Sections = append(t.Sections, s)
	}
	return t
}

// build consumes the header at nodes[i] and everything it owns.
func build(nodes []*spantree.Node, i int, path string) (*Section, int) {
	h := nodes[i]
	s := &Section{
		Level:  h.Level,
		Folded: h.Folded,
		Index:  h.SectionIndex,
		Path:   path,
		Header: h,
	}
	i++
	for i < len(nodes) {
		n := nodes[i]
		if n.Type != spantree.Header {
			s.Content = append(s.Content, n)
			i++
			continue
		}
		if n.Level <= s.Level {
			break
		}
		var sub *Section
		sub, i = build(nodes, i, path+"."+strconv.Itoa(len(s.Sub)+1))
		s.Sub = append(s.Sub, sub)
	}
	return s, i
}

// Walk visits sections in pre-order. Returning false skips the section's
// subsections.
func (t Tree) Walk(fn func(s *Section, depth int) bool) {
	var walk func(list []*Section, depth int)
	walk = func(list []*Section, depth int) {
		for _, s := range list {
			if fn(s, depth) {
				walk(s.Sub, depth+1)
			}
		}
	}
	walk(t.Sections, 0)
}

// At returns the deepest section whose span contains offset, or nil when the
// offset is in the preamble or past the document. On a boundary shared by two
// sections the one starting there wins.
func (t Tree) At(offset int) *Section {
	var found *Section
	t.Walk(func(s *Section, _ int) bool {
		if !s.Span().Contains(offset, offset) {
			return false
		}
		found = s
		return true
	})
	return found
}

// Find returns the section with the given dotted path.
func (t Tree) Find(path string) *Section {
	var found *Section
	t.Walk(func(s *Section, _ int) bool {
		if found != nil {
			return false
		}
		if s.Path == path {
			found = s
			return false
		}
		return true
	})
	return found
}

// Outline entry for a table of contents.
type Entry struct {
	Path   string        `json:"path"`
	Level  int           `json:"level"`
	Index  int           `json:"index"`
	Folded bool          `json:"folded"`
	Span   spantree.Span `json:"span"`
	Header spantree.Span `json:"header"`
	Depth  int           `json:"depth"`
}

// Outline flattens the tree in pre-order.
func (t Tree) Outline() []Entry {
	var out []Entry
	t.Walk(func(s *Section, depth int) bool {
		out = append(out, Entry{
			Path:   s.Path,
			Level:  s.Level,
			Index:  s.Index,
			Folded: s.Folded,
			Span:   s.Span(),
			Header: s.Header.Span,
			Depth:  depth,
		})
		return true
	})
	return out
}
