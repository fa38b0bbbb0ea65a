package table

import (
	"errors"
	"sync"

	"github.com/iw2rmb/smedit/spantree"
	"github.com/iw2rmb/smedit/toggle"
)

var (
	ErrNotTable   = errors.New("table: node is not a table")
	ErrNotStarted = errors.New("table: session not started")
	ErrApplied    = errors.New("table: session already applied")
)

// State is the lifecycle stage of a Session.
type State int

const (
	StateInit State = iota
	StateEditing
	StateApplied
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateEditing:
		return "editing"
	case StateApplied:
		return "applied"
	default:
		return "unknown"
	}
}

// Session edits one table: Begin loads it, edits go through the history, and
// Apply produces the replacement markup. A session cannot be reused after
// Apply.
type Session struct {
	mu    sync.Mutex
	state State
	span  spantree.Span
	limit int
	hist  *History
}

// NewSession returns a session in StateInit. historyLimit caps the undo
// stack; zero or less means unlimited.
func NewSession(historyLimit int) *Session {
	return &Session{limit: historyLimit}
}

// Begin loads the grid of a Table node. Calling it again while editing starts
// over with the new node. Tables failing Check are refused with ErrTooLarge.
func (s *Session) Begin(node *spantree.Node, src spantree.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateApplied {
		return ErrApplied
	}
	if node == nil || node.Type != spantree.Table {
		return ErrNotTable
	}
	g := Parse(node, src)
	if err := Check(g); err != nil {
		return err
	}
	s.span = node.Span
	s.hist = NewHistory(g, s.limit)
	s.state = StateEditing
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Span is the source range of the table being edited.
func (s *Session) Span() spantree.Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.span
}

// Grid returns a copy of the live grid.
func (s *Session) Grid() (Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return nil, err
	}
	return s.hist.Current(), nil
}

// Merge, Split, SetContent, AddRow and AddColumn apply the grid function of
// the same name to the live grid and record the result in the history.
func (s *Session) Merge(r0, c0, r1, c1 int) error {
	return s.edit(func(g Grid) Grid { return Merge(g, r0, c0, r1, c1) })
}

func (s *Session) Split(r0, c0, r1, c1 int) error {
	return s.edit(func(g Grid) Grid { return Split(g, r0, c0, r1, c1) })
}

func (s *Session) SetContent(r, c int, text string) error {
	return s.edit(func(g Grid) Grid { return SetContent(g, r, c, text) })
}

func (s *Session) AddRow() error { return s.edit(AddRow) }

func (s *Session) AddColumn() error { return s.edit(AddColumn) }

// Replace swaps the whole grid, e.g. for imported rows. Like every edit it
// fails with ErrTooLarge when the result does not pass Check.
func (s *Session) Replace(g Grid) error {
	return s.edit(func(Grid) Grid { return g })
}

// Undo steps back one edit. The bool is false when there was nothing to undo.
func (s *Session) Undo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return false, err
	}
	_, ok := s.hist.Undo()
	return ok, nil
}

// Redo steps forward one edit. The bool is false when there was nothing to
// redo.
func (s *Session) Redo() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return false, err
	}
	_, ok := s.hist.Redo()
	return ok, nil
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist != nil && s.state == StateEditing && s.hist.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist != nil && s.state == StateEditing && s.hist.CanRedo()
}

// Apply ends the session and returns the edit replacing the table's source
// with the serialized grid.
func (s *Session) Apply() (toggle.TextEdit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return toggle.TextEdit{}, err
	}
	s.state = StateApplied
	return toggle.TextEdit{Span: s.span, Text: Serialize(s.hist.Current())}, nil
}

func (s *Session) edit(fn func(Grid) Grid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return err
	}
	next := fn(s.hist.Current())
	if err := Check(next); err != nil {
		return err
	}
	s.hist.Push(next)
	return nil
}

func (s *Session) editable() error {
	switch s.state {
	case StateInit:
		return ErrNotStarted
	case StateApplied:
		return ErrApplied
	}
	return nil
}
