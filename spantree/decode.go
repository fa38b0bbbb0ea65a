package spantree

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses the engine's AST JSON.
//
// Elements are externally tagged: {"Bold": {"span": {...}, "children": [...]}}.
// The engine output is untrusted, so shape problems never fail the decode:
// a root that is not an array yields an empty tree, and elements without a
// span, with a non-object payload or with several tags are dropped together
// with their subtrees. Only syntactically invalid JSON is an error.
func Decode(data []byte) ([]*Node, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("decode ast: invalid json")
	}
	return decodeList(json.RawMessage(bytes.TrimSpace(data))), nil
}

type payload struct {
	Span         *rawSpan        `json:"span"`
	ContentSpan  *rawSpan        `json:"content_span"`
	Content      json.RawMessage `json:"content"`
	Children     json.RawMessage `json:"children"`
	Summary      json.RawMessage `json:"summary"`
	Details      json.RawMessage `json:"details"`
	Level        json.RawMessage `json:"level"`
	IsFolded     json.RawMessage `json:"is_folded"`
	SectionIndex json.RawMessage `json:"section_index"`
}

type rawSpan struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

func (r *rawSpan) span() (Span, bool) {
	if r == nil || r.Start == nil || r.End == nil {
		return Span{}, false
	}
	sp := Span{Start: *r.Start, End: *r.End}
	return sp, sp.Valid()
}

func decodeList(raw json.RawMessage) []*Node {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]*Node, 0, len(items))
	for _, item := range items {
		if n := decodeElement(item); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func decodeElement(raw json.RawMessage) *Node {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tagged); err != nil || len(tagged) != 1 {
		return nil
	}
	for tag, body := range tagged {
		return decodePayload(Type(tag), body)
	}
	return nil
}

func decodePayload(t Type, raw json.RawMessage) *Node {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	sp, ok := p.Span.span()
	if !ok {
		return nil
	}

	n := &Node{Type: t, Span: sp}
	if cs, ok := p.ContentSpan.span(); ok {
		n.Content = &cs
	} else if len(p.Content) > 0 {
		var rs rawSpan
		if json.Unmarshal(p.Content, &rs) == nil {
			if cs, ok := rs.span(); ok {
				n.Content = &cs
			}
		}
	}
	if len(p.Children) > 0 {
		n.Children = decodeList(p.Children)
	}
	n.Summary = decodeAux(p.Summary, Summary)
	n.Details = decodeAux(p.Details, Details)
	// Header metadata of an unexpected shape is ignored, not fatal.
	_ = json.Unmarshal(p.Level, &n.Level)
	_ = json.Unmarshal(p.IsFolded, &n.Folded)
	_ = json.Unmarshal(p.SectionIndex, &n.SectionIndex)
	return n
}

// decodeAux accepts either a tagged element or a bare payload carrying a
// span, which is typed with fallback.
func decodeAux(raw json.RawMessage, fallback Type) *Node {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil
	}
	if _, bare := keys["span"]; bare {
		return decodePayload(fallback, raw)
	}
	return decodeElement(raw)
}
