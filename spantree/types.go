package spantree

// Span is a half-open UTF-16 offset range [Start, End).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Valid reports whether 0 <= Start <= End.
func (s Span) Valid() bool {
	return s.Start >= 0 && s.Start <= s.End
}

// Len returns End-Start, or 0 for an invalid span.
func (s Span) Len() int {
	if !s.Valid() {
		return 0
	}
	return s.End - s.Start
}

// Contains reports whether [from, to] lies inside s. Both ends are inclusive
// so a caret sitting on either boundary counts as inside.
func (s Span) Contains(from, to int) bool {
	return s.Valid() && s.Start <= from && to <= s.End
}

// Type is the engine's tag for a node. Unknown tags are kept verbatim.
type Type string

const (
	Text      Type = "Text"
	SoftBreak Type = "SoftBreak"
	HardBreak Type = "HardBreak"

	Bold          Type = "Bold"
	Italic        Type = "Italic"
	Underline     Type = "Underline"
	Strikethrough Type = "Strikethrough"
	Superscript   Type = "Superscript"
	Subscript     Type = "Subscript"

	Header     Type = "Header"
	BlockQuote Type = "BlockQuote"
	HLine      Type = "HLine"
	Code       Type = "Code"
	TeX        Type = "TeX"

	Table Type = "Table"
	Row   Type = "Row"
	Cell  Type = "Cell"

	Fold    Type = "Fold"
	Summary Type = "Summary"
	Details Type = "Details"
	Styled  Type = "Styled"
	Literal Type = "Literal"
	Ruby    Type = "Ruby"

	Media         Type = "Media"
	ExternalMedia Type = "ExternalMedia"
	Category      Type = "Category"
	Redirect      Type = "Redirect"
	Include       Type = "Include"

	Mention     Type = "Mention"
	Variable    Type = "Variable"
	Age         Type = "Age"
	TimeNow     Type = "TimeNow"
	FootnoteRef Type = "FootnoteRef"
	Footnote    Type = "Footnote"
	Null        Type = "Null"
	If          Type = "If"
	Define      Type = "Define"

	Comment Type = "Comment"
	Escape  Type = "Escape"
	Error   Type = "Error"
)

// IsHighlightable reports whether nodes of type t produce decorations and
// take part in the active set. Plain text and line breaks do not.
func IsHighlightable(t Type) bool {
	switch t {
	case Text, SoftBreak, HardBreak:
		return false
	default:
		return true
	}
}

// Node is one element of the tree.
type Node struct {
	Type Type
	// Span covers the node's full source text including delimiters.
	Span Span
	// Content is the inner content span, when the engine reports one.
	Content *Span

	Children []*Node
	// Summary and Details hold the auxiliary sub-trees of foldable sections.
	Summary *Node
	Details *Node

	// Header fields.
	Level        int
	Folded       bool
	SectionIndex int
}

// Kids returns the node's descendants roots in traversal order: children,
// then summary, then details.
func (n *Node) Kids() []*Node {
	if n == nil {
		return nil
	}
	if n.Summary == nil && n.Details == nil {
		return n.Children
	}
	out := make([]*Node, 0, len(n.Children)+2)
	out = append(out, n.Children...)
	if n.Summary != nil {
		out = append(out, n.Summary)
	}
	if n.Details != nil {
		out = append(out, n.Details)
	}
	return out
}

// ChildrenOfType returns direct children tagged t.
func (n *Node) ChildrenOfType(t Type) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c != nil && c.Type == t && c.Span.Valid() {
			out = append(out, c)
		}
	}
	return out
}
