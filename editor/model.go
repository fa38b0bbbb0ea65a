package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/smedit/buffer"
	"github.com/iw2rmb/smedit/decorate"
	"github.com/iw2rmb/smedit/engine"
	"github.com/iw2rmb/smedit/session"
	"github.com/iw2rmb/smedit/spantree"
)

var lenient = buffer.ConvertPolicy{ClampMode: buffer.OffsetClamp}

// Model is a Bubble Tea component that renders and edits a session.
type Model struct {
	cfg  Config
	sess *session.Session

	focused bool
	width   int

	viewport viewport.Model
	xOffset  int

	// Snapshot of the session taken at lastVersion.
	lastVersion uint64
	lines       []string
	starts      []int
	sel         buffer.Selection
	cursor      buffer.Pos
	runs        []decorate.Run
	active      []spantree.Type
	engineErr   error

	mouseAnchor   int
	mouseDragging bool
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	sess := cfg.Session
	if sess == nil {
		sess = session.New("editor", cfg.Text, engine.Funcs{}, session.Options{HistoryLimit: cfg.HistoryLimit})
	}
	m := Model{
		cfg:      cfg,
		sess:     sess,
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) Session() *session.Session { return m.sess }

func (m Model) Text() string { return m.sess.Text() }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if m.cfg.ShowStatus && height > 0 {
		height--
	}
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = height

	m.followHorizontal()
	m.rebuildContent()
	m.followVertical()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followVertical()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m = m.updateKey(msg)
		m.sync()
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.updateMouse(msg)
		m.sync()
		return m, cmd
	default:
		// The host may have edited the session directly.
		m.sync()
		return m, nil
	}
}

func (m Model) View() string {
	v := m.viewport.View()
	if m.cfg.ShowStatus {
		v += "\n" + m.statusLine()
	}
	return v
}

func (m *Model) sync() {
	if m.sess.Version() == m.lastVersion {
		return
	}
	m.refresh()
}

// refresh re-reads the session and rebuilds the viewport around the cursor.
func (m *Model) refresh() {
	m.sess.Do(func(b *buffer.Buffer) {
		n := b.LineCount()
		m.lines = make([]string, n)
		m.starts = make([]int, n)
		for row := range n {
			m.lines[row] = b.Line(row)
			m.starts[row], _ = b.OffsetFromPos(buffer.Pos{Row: row}, lenient)
		}
		m.sel = b.Selection()
		m.cursor = b.CursorPos()
		m.lastVersion = b.Version()
	})

	ctx := m.cfg.Context
	runs, err := m.sess.Runs(ctx)
	m.runs, m.engineErr = runs, err
	if err == nil {
		set, aerr := m.sess.Active(ctx)
		m.active, m.engineErr = set.Sorted(), aerr
	} else {
		m.active = nil
	}

	m.followHorizontal()
	m.rebuildContent()
	m.followVertical()
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followVertical() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	row := m.cursor.Row
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}

func (m *Model) followHorizontal() {
	w := m.contentWidth()
	if w <= 0 || m.cursor.Row >= len(m.lines) {
		return
	}
	col := cellsBefore(m.lines[m.cursor.Row], m.cursor.Col, m.cfg.TabWidth)
	if col < m.xOffset {
		m.xOffset = col
	}
	if col >= m.xOffset+w {
		m.xOffset = col - w + 1
	}
}

func (m Model) cursorOffset() int {
	if m.cursor.Row >= len(m.starts) {
		return 0
	}
	return m.starts[m.cursor.Row] + m.cursor.Col
}
