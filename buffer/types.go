package buffer

import (
	"github.com/iw2rmb/smedit/spantree"
	"github.com/iw2rmb/smedit/toggle"
)

// Pos points into the document by (row, col). Col counts UTF-16 units from
// the start of the row. Row and Col are 0-based.
type Pos struct {
	Row int
	Col int
}

// Selection is an anchor/head pair in UTF-16 offsets.
type Selection = toggle.Selection

// TextEdit replaces Span with Text.
type TextEdit = toggle.TextEdit

func ComparePos(a, b Pos) int {
	if a.Row < b.Row {
		return -1
	}
	if a.Row > b.Row {
		return 1
	}
	if a.Col < b.Col {
		return -1
	}
	if a.Col > b.Col {
		return 1
	}
	return 0
}

// Normalize returns sel as a forward span.
func Normalize(sel Selection) spantree.Span {
	if sel.Anchor <= sel.Head {
		return spantree.Span{Start: sel.Anchor, End: sel.Head}
	}
	return spantree.Span{Start: sel.Head, End: sel.Anchor}
}

// Caret returns an empty selection at off.
func Caret(off int) Selection {
	return Selection{Anchor: off, Head: off}
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
