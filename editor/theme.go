package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/smedit/spantree"
)

// Theme styles the editor. Tags maps a decoration tag to its style; tags
// without an entry render like plain text.
type Theme struct {
	Name string

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Status       lipgloss.Style
	StatusActive lipgloss.Style
	StatusError  lipgloss.Style

	Tags map[spantree.Type]lipgloss.Style
}

type palette struct {
	text, lineNum, selection string

	comment, escape, errFg, errBg string

	bold, italic, strike, underline, script string

	header, quote, quoteBg, hline string
	code, codeBg, tex                string

	media, extmedia, category, redirect, include string

	mention, variable, timenow, timenowBg, footnote, null, control string

	literal, literalBg, fold, ruby, tableBg string

	statusFg, statusBg string
}

var lightPalette = palette{
	text: "#24292e", lineNum: "#858585", selection: "#e1e4e8",

	comment: "#6a737d", escape: "#d73a49", errFg: "#b31d28", errBg: "#ffeef0",

	bold: "#1b1f23", italic: "#c551bb", strike: "#7c4fe6", underline: "#313de2", script: "#005cc5",

	header: "#0366d6", quote: "#596068", quoteBg: "#f8f9fa", hline: "#e1e4e8",
	code: "#218b99", codeBg: "#f3f3f3", tex: "#005cc5",

	media: "#005cc5", extmedia: "#0652dd", category: "#2ecc71", redirect: "#e67e22", include: "#8e44ad",

	mention: "#6f42c1", variable: "#e36209", timenow: "#16a085", timenowBg: "#e8f8f5",
	footnote: "#7f8c8d", null: "#bdc3c7", control: "#d63031",

	literal: "#2d3436", literalBg: "#dfe6e9", fold: "#6c5ce7", ruby: "#e84393", tableBg: "#fdfdfe",

	statusFg: "#586069", statusBg: "#f6f8fa",
}

var darkPalette = palette{
	text: "#e8e8e8", lineNum: "#858585", selection: "#505050",

	comment: "#6a9955", escape: "#f48771", errFg: "#f14c4c", errBg: "#5a1d1d",

	bold: "#ffffff", italic: "#c586c0", strike: "#b392f0", underline: "#79b8ff", script: "#4fc1ff",

	header: "#569cd6", quote: "#9cdcfe", quoteBg: "#252526", hline: "#3e3e42",
	code: "#4ec9b0", codeBg: "#3c3c3c", tex: "#4fc1ff",

	media: "#4fc1ff", extmedia: "#79b8ff", category: "#4ec9b0", redirect: "#ce9178", include: "#c586c0",

	mention: "#b392f0", variable: "#dcdcaa", timenow: "#4ec9b0", timenowBg: "#1e3a32",
	footnote: "#808080", null: "#6a737d", control: "#f48771",

	literal: "#ce9178", literalBg: "#3c3c3c", fold: "#b392f0", ruby: "#c586c0", tableBg: "#252526",

	statusFg: "#cccccc", statusBg: "#323232",
}

// LightTheme returns the light palette. A nil renderer uses lipgloss's
// default renderer.
func LightTheme(r *lipgloss.Renderer) Theme { return newTheme("light", r, lightPalette) }

// DarkTheme returns the dark palette.
func DarkTheme(r *lipgloss.Renderer) Theme { return newTheme("dark", r, darkPalette) }

// ThemeNamed resolves "light" or "dark".
func ThemeNamed(name string, r *lipgloss.Renderer) (Theme, bool) {
	switch name {
	case "light":
		return LightTheme(r), true
	case "dark":
		return DarkTheme(r), true
	}
	return Theme{}, false
}

func newTheme(name string, r *lipgloss.Renderer, p palette) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }
	bg := func(c string) lipgloss.Color { return lipgloss.Color(c) }

	timenow := fg(p.timenow).Background(bg(p.timenowBg))
	footnote := fg(p.footnote)
	control := fg(p.control).Bold(true)

	return Theme{
		Name:      name,
		Text:      fg(p.text),
		Selection: r.NewStyle().Background(bg(p.selection)),
		Cursor:    r.NewStyle().Reverse(true),

		Gutter:        fg(p.lineNum),
		LineNum:       fg(p.lineNum),
		LineNumActive: fg(p.text).Bold(true),

		Status:       fg(p.statusFg).Background(bg(p.statusBg)),
		StatusActive: fg(p.header).Background(bg(p.statusBg)).Bold(true),
		StatusError:  fg(p.errFg).Background(bg(p.errBg)),

		Tags: map[spantree.Type]lipgloss.Style{
			spantree.Comment: fg(p.comment).Italic(true),
			spantree.Escape:  fg(p.escape).Bold(true),
			spantree.Error:   fg(p.errFg).Background(bg(p.errBg)).Underline(true),

			spantree.Bold:          fg(p.bold).Bold(true),
			spantree.Italic:        fg(p.italic).Italic(true),
			spantree.Strikethrough: fg(p.strike),
			spantree.Underline:     fg(p.underline),
			spantree.Superscript:   fg(p.script),
			spantree.Subscript:     fg(p.script),

			spantree.Header:     fg(p.header).Bold(true),
			spantree.BlockQuote: fg(p.quote).Background(bg(p.quoteBg)).Italic(true),
			spantree.HLine:      fg(p.hline),
			spantree.Code:       fg(p.code).Background(bg(p.codeBg)),
			spantree.TeX:        fg(p.tex).Bold(true),

			spantree.Media:         fg(p.media).Underline(true),
			spantree.ExternalMedia: fg(p.extmedia).Underline(true),
			spantree.Category:      fg(p.category).Bold(true),
			spantree.Redirect:      fg(p.redirect).Italic(true),
			spantree.Include:       fg(p.include),

			spantree.Mention:     fg(p.mention).Bold(true),
			spantree.Variable:    fg(p.variable),
			spantree.Age:         timenow,
			spantree.TimeNow:     timenow,
			spantree.FootnoteRef: footnote,
			spantree.Footnote:    footnote,
			spantree.Null:        fg(p.null).Strikethrough(true),
			spantree.If:          control,
			spantree.Define:      control,

			spantree.Literal: fg(p.literal).Background(bg(p.literalBg)),
			spantree.Fold:    fg(p.fold).Bold(true),
			spantree.Ruby:    fg(p.ruby).Underline(true),
			spantree.Table:   r.NewStyle().Background(bg(p.tableBg)),
		},
	}
}

// runStyle composes the styles of a decoration stack ordered outer to
// inner. Inner tags win where both set a property.
func (t Theme) runStyle(tags []spantree.Type) lipgloss.Style {
	st := t.Text
	for _, tag := range tags {
		if ts, ok := t.Tags[tag]; ok {
			st = ts.Inherit(st)
		}
	}
	return st
}
