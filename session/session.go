// Package session binds a document buffer to the markup engine. A Session
// owns one document: it caches the parsed tree per text version and turns
// toolbar and table operations into buffer transactions. A Registry keeps
// sessions by id so hosts pass explicit handles around instead of relying
// on a global "current editor".
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/iw2rmb/smedit/buffer"
	"github.com/iw2rmb/smedit/decorate"
	"github.com/iw2rmb/smedit/engine"
	"github.com/iw2rmb/smedit/locate"
	"github.com/iw2rmb/smedit/section"
	"github.com/iw2rmb/smedit/spantree"
	"github.com/iw2rmb/smedit/table"
	"github.com/iw2rmb/smedit/toggle"
)

var (
	ErrNoTable = errors.New("session: no table at selection")

	// ErrStaleTable is returned when the document changed after the table
	// session was opened.
	ErrStaleTable = errors.New("session: document changed since table was opened")

	ErrForeignTable = errors.New("session: table session belongs to another document")
)

// Options configures a Session. The zero value keeps unlimited history and
// discards logs.
type Options struct {
	HistoryLimit      int // buffer undo depth, see buffer.Options
	TableHistoryLimit int // grid snapshots kept; zero keeps all
	Logger            *slog.Logger
}

// Session is one open document: its text buffer, the engine that parses it
// and the table sessions opened on it. All methods are safe for concurrent
// use.
type Session struct {
	mu  sync.Mutex
	id  string
	eng engine.Engine
	buf *buffer.Buffer
	log *slog.Logger
	opt Options

	tree        []*spantree.Node
	treeVersion uint64
	hasTree     bool

	// tables maps open table sessions to the text version they were read at.
	tables map[*table.Session]uint64
}

// New returns a session holding text. id names the session in logs.
func New(id, text string, e engine.Engine, opt Options) *Session {
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Session{
		id:     id,
		eng:    e,
		buf:    buffer.New(text, buffer.Options{HistoryLimit: opt.HistoryLimit}),
		log:    log.With("session", id),
		opt:    opt,
		tables: make(map[*table.Session]uint64),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Text()
}

func (s *Session) Selection() buffer.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Selection()
}

// Version changes on every text or selection change.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Version()
}

// Select sets the selection, clamped and snapped to cluster boundaries.
func (s *Session) Select(sel buffer.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.SetSelection(sel)
}

// Do runs fn with the buffer locked. fn must not retain b.
func (s *Session) Do(fn func(b *buffer.Buffer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.buf)
}

// Tree returns the parsed document. The result is shared and must not be
// modified.
func (s *Session) Tree(ctx context.Context) ([]*spantree.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.treeLocked(ctx)
}

func (s *Session) treeLocked(ctx context.Context) ([]*spantree.Node, error) {
	v := s.buf.TextVersion()
	if s.hasTree && s.treeVersion == v {
		return s.tree, nil
	}
	nodes, err := engine.Parse(ctx, s.eng, s.buf.Text())
	if err != nil {
		s.log.Warn("parse failed", "text_version", v, "error", err)
		return nil, err
	}
	s.tree, s.treeVersion, s.hasTree = nodes, v, true
	return nodes, nil
}

// Decorations returns the highlight decorations of the current text.
func (s *Session) Decorations(ctx context.Context) ([]decorate.Decoration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes, err := s.treeLocked(ctx)
	if err != nil {
		return nil, err
	}
	return decorate.Collect(nodes), nil
}

// Runs returns the document cut into non-overlapping decoration runs.
func (s *Session) Runs(ctx context.Context) ([]decorate.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes, err := s.treeLocked(ctx)
	if err != nil {
		return nil, err
	}
	return decorate.Flatten(decorate.Collect(nodes), s.buf.Len()), nil
}

// Active returns the set of node types enclosing the selection.
func (s *Session) Active(ctx context.Context) (locate.TypeSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes, err := s.treeLocked(ctx)
	if err != nil {
		return nil, err
	}
	return locate.ActiveTypes(nodes, s.locSel()), nil
}

// Path returns the chain of nodes enclosing the selection, outer first.
func (s *Session) Path(ctx context.Context) ([]*spantree.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes, err := s.treeLocked(ctx)
	if err != nil {
		return nil, err
	}
	return locate.Path(nodes, s.locSel()), nil
}

// Sections returns the header outline of the current text.
func (s *Session) Sections(ctx context.Context) (section.Tree, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes, err := s.treeLocked(ctx)
	if err != nil {
		return section.Tree{}, err
	}
	return section.Build(nodes), nil
}

// Render returns the engine's HTML preview of the current text.
func (s *Session) Render(ctx context.Context) (string, error) {
	s.mu.Lock()
	text := s.buf.Text()
	s.mu.Unlock()
	return s.eng.Render(ctx, text)
}

// Toggle runs a formatting action and applies its result as one undo step.
// When the engine cannot parse the document the action degrades to plain
// marker wrapping.
func (s *Session) Toggle(ctx context.Context, a toggle.Action) toggle.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := s.buf.Text()
	var res toggle.Result
	if nodes, err := s.treeLocked(ctx); err != nil {
		res = toggle.WrapSelection(text, s.locSel(), a.Markers)
	} else {
		res = a.Run(text, nodes, s.locSel())
	}
	s.commit(a.Name, res)
	return res
}

// Wrap toggles m around the selection by text alone.
func (s *Session) Wrap(m toggle.Markers) toggle.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := toggle.WrapSelection(s.buf.Text(), s.locSel(), m)
	s.commit("wrap", res)
	return res
}

func (s *Session) commit(action string, res toggle.Result) {
	if !res.Changed {
		return
	}
	s.buf.ApplyWithSelection(res.Selection, res.Edit)
	s.log.Debug("edit applied",
		"action", action,
		"unwrapped", res.Unwrapped,
		"start", res.Edit.Span.Start,
		"end", res.Edit.Span.End,
		"text_version", s.buf.TextVersion(),
	)
}

// Insert replaces the selection with text.
func (s *Session) Insert(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.InsertText(text)
}

// SetText replaces the whole document as one undo step.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Apply(buffer.TextEdit{Span: spantree.Span{Start: 0, End: s.buf.Len()}, Text: text})
}

// Undo reverts the last text edit. It reports whether there was one.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Undo()
}

func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Redo()
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.CanRedo()
}

// Table opens a table editing session for the innermost table enclosing the
// selection.
func (s *Session) Table(ctx context.Context) (*table.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodes, err := s.treeLocked(ctx)
	if err != nil {
		return nil, err
	}
	n := locate.FindEnclosing(nodes, s.locSel(), spantree.Table)
	if n == nil {
		return nil, ErrNoTable
	}
	ts := table.NewSession(s.opt.TableHistoryLimit)
	if err := ts.Begin(n, s.buf.Source()); err != nil {
		return nil, err
	}
	s.tables[ts] = s.buf.TextVersion()
	return ts, nil
}

// ApplyTable writes the table session's grid back into the document as one
// undo step and leaves the caret at the start of the table. It fails with
// ErrStaleTable, without consuming ts, if the text changed since Table.
func (s *Session) ApplyTable(ts *table.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.tables[ts]
	if !ok {
		return ErrForeignTable
	}
	if v != s.buf.TextVersion() {
		return ErrStaleTable
	}
	edit, err := ts.Apply()
	if err != nil {
		return err
	}
	delete(s.tables, ts)

	s.buf.ApplyWithSelection(buffer.Caret(edit.Span.Start), edit)
	s.log.Debug("table applied",
		"start", edit.Span.Start,
		"end", edit.Span.End,
		"text_version", s.buf.TextVersion(),
	)
	return nil
}

// DiscardTable forgets an open table session without applying it.
func (s *Session) DiscardTable(ts *table.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, ts)
}

func (s *Session) locSel() locate.Selection {
	sel := s.buf.Selection()
	return locate.Selection{From: sel.Anchor, To: sel.Head}
}
