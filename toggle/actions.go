package toggle

import (
	"strings"

	"github.com/iw2rmb/smedit/locate"
	"github.com/iw2rmb/smedit/spantree"
)

// Action is a toolbar formatting command.
type Action struct {
	Name    string
	Markers Markers
	Target  spantree.Type
	// Default is inserted between the markers when nothing is selected.
	Default string
}

// Built-in actions, mirroring the editor toolbar.
var (
	Bold          = Action{Name: "bold", Markers: Markers{Before: "**", After: "**"}, Target: spantree.Bold}
	Italic        = Action{Name: "italic", Markers: Markers{Before: "*", After: "*"}, Target: spantree.Italic}
	Underline     = Action{Name: "underline", Markers: Markers{Before: "__", After: "__"}, Target: spantree.Underline}
	Strikethrough = Action{Name: "strikethrough", Markers: Markers{Before: "~~", After: "~~"}, Target: spantree.Strikethrough}
	Superscript   = Action{Name: "superscript", Markers: Markers{Before: "^^", After: "^^"}, Target: spantree.Superscript}
	Subscript     = Action{Name: "subscript", Markers: Markers{Before: ",,", After: ",,"}, Target: spantree.Subscript}
	BlockQuote    = Action{Name: "quote", Markers: Markers{Before: "{{{#quote\n", After: "\n}}}"}, Target: spantree.BlockQuote}
	Fold          = Action{
		Name:    "fold",
		Markers: Markers{Before: "{{{#fold\n[[sum]]\n[[", After: "]]\n}}}"},
		Target:  spantree.Fold,
		Default: "default text",
	}
)

// Header returns the action for a header of the given level (clamped to 1..6).
// Headers have no closing marker. Run on a header of the same level removes
// the "# " prefix; on a header of another level it rewrites the prefix to
// this level.
func Header(level int) Action {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Action{
		Name:    "h" + string(rune('0'+level)),
		Markers: Markers{Before: strings.Repeat("#", level) + " "},
		Target:  spantree.Header,
	}
}

// Actions lists every built-in action in toolbar order.
func Actions() []Action {
	out := []Action{Bold, Italic, Underline, Strikethrough, Superscript, Subscript}
	for level := 1; level <= 6; level++ {
		out = append(out, Header(level))
	}
	return append(out, BlockQuote, Fold)
}

// Lookup finds a built-in action by name.
func Lookup(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range Actions() {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// Run plans the action against src.
func (a Action) Run(src string, nodes []*spantree.Node, sel locate.Selection) Result {
	if a.Target == spantree.Header {
		if res, ok := relevel(src, nodes, sel, a.Markers.Before); ok {
			return res
		}
	}
	return Toggle(src, nodes, sel, a.Markers, a.Target, a.Default)
}

// relevel swaps the "#… " prefix of the header enclosing sel for prefix. It
// declines when there is no such header, when its prefix already equals
// prefix, or when its source does not start with one.
func relevel(src string, nodes []*spantree.Node, sel locate.Selection, prefix string) (Result, bool) {
	doc := spantree.NewSource(src)
	sel = clampSelection(doc, sel)
	n := locate.FindEnclosing(nodes, sel, spantree.Header)
	if n == nil || n.Span.End > doc.Len() {
		return Result{}, false
	}
	head := doc.SliceSpan(n.Span)
	hashes := len(head) - len(strings.TrimLeft(head, "#"))
	if hashes < 1 || hashes > 6 || !strings.HasPrefix(head[hashes:], " ") {
		return Result{}, false
	}
	old := head[:hashes+1]
	if old == prefix {
		return Result{}, false
	}

	s := n.Span.Start
	oldEnd, newEnd := s+len(old), s+len(prefix)
	move := func(p int) int {
		if p >= oldEnd {
			return p + newEnd - oldEnd
		}
		return minInt(p, newEnd)
	}
	edit := TextEdit{Span: spantree.Span{Start: s, End: oldEnd}, Text: prefix}
	return Result{
		Text:      apply(doc, edit),
		Edit:      edit,
		Selection: Selection{Anchor: move(sel.From), Head: move(sel.To)},
		Changed:   true,
	}, true
}
