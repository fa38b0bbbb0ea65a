package table

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/iw2rmb/smedit/spantree"
)

// attrToken matches one leading cell attribute, e.g. `#x="2" `. Tokens start
// right after "[[" or after the single blank ending the previous token, so
// content that begins with a blank is never read as attributes.
var attrToken = regexp.MustCompile(`^#([xy])="([^"\n]*)" ?`)

// Parse reads the grid of a Table node. Rows are the node's Row children and
// cells are each row's Cell children; anything else is ignored.
func Parse(node *spantree.Node, src spantree.Source) Grid {
	if node == nil {
		return nil
	}
	var g Grid
	for _, row := range node.ChildrenOfType(spantree.Row) {
		cells := []Cell{}
		for _, cell := range row.ChildrenOfType(spantree.Cell) {
			cells = append(cells, ParseCell(src.SliceSpan(cell.Span)))
		}
		g = append(g, cells)
	}
	return g
}

// ParseCell reads one cell from its markup, normally `[[#x="N" #y="M" text]]`.
//
// The body is the text between the first "[[" and the last "]]", or the whole
// input when either is missing. Attribute tokens are stripped from the front
// in any order; a value that is not an integer in [1, MaxSpan] leaves the
// span at 1.
// One separator blank after the attributes is dropped.
func ParseCell(raw string) Cell {
	body := raw
	if i := strings.Index(raw, "[["); i >= 0 {
		if j := strings.LastIndex(raw, "]]"); j >= i+2 {
			body = raw[i+2 : j]
		}
	}

	c := NewCell("")
	for {
		m := attrToken.FindStringSubmatchIndex(body)
		if m == nil {
			break
		}
		key := body[m[2]:m[3]]
		if n, err := strconv.Atoi(body[m[4]:m[5]]); err == nil && n >= 1 && n <= MaxSpan {
			if key == "x" {
				c.Colspan = n
			} else {
				c.Rowspan = n
			}
		}
		body = body[m[1]:]
	}
	if strings.HasPrefix(body, " ") {
		body = body[1:]
	}
	c.Content = body
	return c
}

// Serialize writes g as table markup:
//
//	{{{#table
//	[[ [[ a]] [[#x="2"  b]] ]]
//	}}}
func Serialize(g Grid) string {
	var b strings.Builder
	b.WriteString("{{{#table\n")
	for _, row := range g {
		b.WriteString("[[ ")
		for _, c := range row {
			b.WriteString("[[")
			if n := c.cols(); n > 1 {
				b.WriteString(`#x="` + strconv.Itoa(n) + `" `)
			}
			if n := c.rows(); n > 1 {
				b.WriteString(`#y="` + strconv.Itoa(n) + `" `)
			}
			b.WriteString(" ")
			b.WriteString(c.Content)
			b.WriteString("]] ")
		}
		b.WriteString("]]\n")
	}
	b.WriteString("}}}")
	return b.String()
}
