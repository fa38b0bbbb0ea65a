// Package preview maps rendered HTML back to source offsets for scroll sync
// between the editor and the preview pane.
//
// The engine wraps every rendered block in
//
//	<span class="sm-render-block" data-start="N" data-end="M">…</span>
//
// with N and M in UTF-16 units of the source.
package preview

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/iw2rmb/smedit/spantree"
)

// BlockClass marks a span carrying source offsets.
const BlockClass = "sm-render-block"

// Anchor is one rendered block and the source range it came from.
type Anchor struct {
	Span spantree.Span `json:"span"`
	// Depth counts enclosing anchors.
	Depth int `json:"depth"`
	// ID is the first id attribute inside the block, e.g. a section header.
	ID string `json:"id,omitempty"`
}

// Anchors extracts every block anchor in document order. Blocks with missing
// or malformed offsets are skipped but their children are still scanned.
func Anchors(doc string) ([]Anchor, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []Anchor
	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		if n.Type == html.ElementNode && hasClass(n, BlockClass) {
			if sp, ok := blockSpan(n); ok {
				out = append(out, Anchor{Span: sp, Depth: depth, ID: firstID(n)})
				depth++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, depth)
		}
	}
	walk(root, 0)
	return out, nil
}

// AnchorAt returns the innermost anchor containing offset.
func AnchorAt(anchors []Anchor, offset int) (Anchor, bool) {
	best, found := Anchor{}, false
	for _, a := range anchors {
		if !a.Span.Contains(offset, offset) {
			continue
		}
		if !found || a.Depth > best.Depth || (a.Depth == best.Depth && a.Span.Len() < best.Span.Len()) {
			best, found = a, true
		}
	}
	return best, found
}

// Nearest returns the anchor containing offset, or else the last anchor that
// ends before it, or else the first anchor.
func Nearest(anchors []Anchor, offset int) (Anchor, bool) {
	if a, ok := AnchorAt(anchors, offset); ok {
		return a, true
	}
	if len(anchors) == 0 {
		return Anchor{}, false
	}
	sorted := append([]Anchor(nil), anchors...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Span.End < sorted[j].Span.End })
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i].Span.End > offset })
	if i == 0 {
		return sorted[0], true
	}
	return sorted[i-1], true
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, f := range strings.Fields(a.Val) {
			if f == class {
				return true
			}
		}
	}
	return false
}

func blockSpan(n *html.Node) (spantree.Span, bool) {
	start, end := -1, -1
	for _, a := range n.Attr {
		switch a.Key {
		case "data-start":
			if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil {
				start = v
			}
		case "data-end":
			if v, err := strconv.Atoi(strings.TrimSpace(a.Val)); err == nil {
				end = v
			}
		}
	}
	sp := spantree.Span{Start: start, End: end}
	return sp, sp.Valid()
}

func firstID(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		for _, a := range c.Attr {
			if a.Key == "id" && a.Val != "" {
				return a.Val
			}
		}
		if id := firstID(c); id != "" {
			return id
		}
	}
	return ""
}
