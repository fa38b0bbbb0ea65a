// Package enginetest provides a stand-in markup engine for tests. It
// recognizes a small subset of SevenMark (bold, headers and tables written
// in serialized form) and emits the same tagged AST JSON as the real engine.
package enginetest

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/iw2rmb/smedit/spantree"
)

var ErrDown = errors.New("enginetest: engine down")

// Engine is safe for concurrent use.
type Engine struct {
	mu      sync.Mutex
	calls   int
	renders int
	fail    bool
}

func New() *Engine { return &Engine{} }

// Calls reports how many times Highlight ran.
func (e *Engine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

func (e *Engine) Renders() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renders
}

// SetFailing makes every call return ErrDown.
func (e *Engine) SetFailing(fail bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fail = fail
}

func (e *Engine) Highlight(_ context.Context, src string) ([]byte, error) {
	e.mu.Lock()
	e.calls++
	fail := e.fail
	e.mu.Unlock()
	if fail {
		return nil, ErrDown
	}
	return Encode(Scan(src))
}

// Render wraps every top-level node in a render block.
func (e *Engine) Render(_ context.Context, src string) (string, error) {
	e.mu.Lock()
	e.renders++
	fail := e.fail
	e.mu.Unlock()
	if fail {
		return "", ErrDown
	}
	doc := spantree.NewSource(src)
	var b strings.Builder
	for _, n := range Scan(src) {
		b.WriteString(`<span class="sm-render-block" data-start="`)
		b.WriteString(strconv.Itoa(n.Span.Start))
		b.WriteString(`" data-end="`)
		b.WriteString(strconv.Itoa(n.Span.End))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(doc.SliceSpan(n.Span)))
		b.WriteString(`</span>`)
	}
	return b.String(), nil
}

var (
	boldRe   = regexp.MustCompile(`\*\*[^*\n]+\*\*`)
	headerRe = regexp.MustCompile(`(?m)^(#{1,6}) [^\n]*`)
	tableRe  = regexp.MustCompile(`(?s)\{\{\{#table\n.*?\}\}\}`)
)

// Scan builds the top-level nodes of src. Bold inside a header becomes a
// child of the header.
func Scan(src string) []*spantree.Node {
	doc := spantree.NewSource(src)
	span := func(from, to int) spantree.Span {
		return spantree.Span{Start: doc.Offset(from), End: doc.Offset(to)}
	}

	var tables []*spantree.Node
	var tableBytes [][]int
	for _, m := range tableRe.FindAllStringIndex(src, -1) {
		tables = append(tables, scanTable(src, m[0], m[1], span))
		tableBytes = append(tableBytes, m)
	}
	inTable := func(pos int) bool {
		for _, m := range tableBytes {
			if pos >= m[0] && pos < m[1] {
				return true
			}
		}
		return false
	}

	var out []*spantree.Node
	out = append(out, tables...)

	var headers []*spantree.Node
	section := 0
	for _, m := range headerRe.FindAllStringSubmatchIndex(src, -1) {
		if inTable(m[0]) {
			continue
		}
		h := &spantree.Node{
			Type:         spantree.Header,
			Span:         span(m[0], m[1]),
			Level:        m[3] - m[2],
			SectionIndex: section,
		}
		section++
		headers = append(headers, h)
		out = append(out, h)
	}

	for _, m := range boldRe.FindAllStringIndex(src, -1) {
		if inTable(m[0]) {
			continue
		}
		b := &spantree.Node{
			Type:    spantree.Bold,
			Span:    span(m[0], m[1]),
			Content: &spantree.Span{Start: doc.Offset(m[0] + 2), End: doc.Offset(m[1] - 2)},
		}
		parent := false
		for _, h := range headers {
			if h.Span.Contains(b.Span.Start, b.Span.End) {
				h.Children = append(h.Children, b)
				parent = true
				break
			}
		}
		if !parent {
			out = append(out, b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Span.Start < out[j].Span.Start })
	return out
}

func scanTable(src string, start, end int, span func(int, int) spantree.Span) *spantree.Node {
	node := &spantree.Node{Type: spantree.Table, Span: span(start, end)}
	pos := start + len("{{{#table\n")
	for strings.HasPrefix(src[pos:end], "[[ ") {
		i := strings.Index(src[pos:end], "]]\n")
		if i < 0 {
			break
		}
		rowEnd := pos + i + 2
		row := &spantree.Node{Type: spantree.Row, Span: span(pos, rowEnd)}
		p := pos + len("[[ ")
		for p < rowEnd && strings.HasPrefix(src[p:rowEnd], "[[") {
			j := strings.Index(src[p:rowEnd], "]] ")
			if j < 0 {
				break
			}
			cellEnd := p + j + 2
			row.Children = append(row.Children, &spantree.Node{Type: spantree.Cell, Span: span(p, cellEnd)})
			p = cellEnd + 1
		}
		node.Children = append(node.Children, row)
		pos = rowEnd + 1
	}
	return node
}

// Encode writes nodes as externally tagged AST JSON.
func Encode(nodes []*spantree.Node) ([]byte, error) {
	return json.Marshal(encodeList(nodes))
}

func encodeList(nodes []*spantree.Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, map[string]any{string(n.Type): encodePayload(n)})
	}
	return out
}

func encodePayload(n *spantree.Node) map[string]any {
	p := map[string]any{
		"span":     encodeSpan(n.Span),
		"children": encodeList(n.Children),
	}
	if n.Content != nil {
		p["content_span"] = encodeSpan(*n.Content)
	}
	if n.Type == spantree.Header {
		p["level"] = n.Level
		p["is_folded"] = n.Folded
		p["section_index"] = n.SectionIndex
	}
	return p
}

func encodeSpan(sp spantree.Span) map[string]int {
	return map[string]int{"start": sp.Start, "end": sp.End}
}
