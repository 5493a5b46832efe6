package diagram

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	diagramdto "depflow/internal/modules/diagram/dto"
	sentencedto "depflow/internal/modules/sentence/dto"
	"depflow/internal/ui/components"
	"depflow/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type DiagramPort interface {
	GetSentence(ctx context.Context, id int) (sentencedto.SentenceDetailOutput, error)
	Open(ctx context.Context, text string, sentenceID int, sentence string) (diagramdto.DiagramOutput, error)
	Toggle(ctx context.Context, nodeID string) (diagramdto.DiagramOutput, error)
	ExpandAll(ctx context.Context) (diagramdto.DiagramOutput, error)
	Reset(ctx context.Context) (diagramdto.DiagramOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SentenceLoadedMsg carries graph data fetched off the update loop. Parsing
// and every later state change happen in Update.
type SentenceLoadedMsg struct {
	Detail sentencedto.SentenceDetailOutput
	Err    error
}

// OpenedMsg tells the parent a new diagram is on screen.
type OpenedMsg struct {
	Out diagramdto.DiagramOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     DiagramPort
	out      diagramdto.DiagramOutput
	rows     []components.TreeRow
	cursor   string
	open     bool
	err      error
	viewport viewport.Model
	width    int
	height   int
}

func New(port DiagramPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1)
	return Model{port: port, viewport: vp}
}

func (m Model) Init() tea.Cmd { return nil }

// LoadSentence fetches a sentence's graph data in the background.
func (m Model) LoadSentence(id int) tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return SentenceLoadedMsg{Err: fmt.Errorf("diagram adapter not configured")}
		}
		detail, err := m.port.GetSentence(context.Background(), id)
		return SentenceLoadedMsg{Detail: detail, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refresh()

	case SentenceLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, openedCmd(diagramdto.DiagramOutput{}, msg.Err)
		}
		out, err := m.port.Open(context.Background(), msg.Detail.GraphData, msg.Detail.ID, msg.Detail.Text)
		m.reinit(out, err)
		return m, openedCmd(out, err)

	case tea.KeyMsg:
		if !m.open {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		case "home", "g":
			m.moveCursor(-len(m.rows))
		case "end", "G":
			m.moveCursor(len(m.rows))
		case "enter", " ":
			if m.cursor != "" {
				m.apply(m.port.Toggle(context.Background(), m.cursor))
			}
		case "a":
			m.apply(m.port.ExpandAll(context.Background()))
		case "r":
			m.apply(m.port.Reset(context.Background()))
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	header := m.renderHeader()
	body := m.viewport.View()
	if !m.open {
		body = lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Pick a sentence and press enter to draw its diagram"))
	}
	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(m.width-2, 0)).
		Height(max(m.height-lipgloss.Height(header)-2, 0)).
		Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, pane)
}

// ExpandAll and Reset let the command palette drive the open diagram.
func (m *Model) ExpandAll() {
	if m.open {
		m.apply(m.port.ExpandAll(context.Background()))
	}
}

func (m *Model) Reset() {
	if m.open {
		m.apply(m.port.Reset(context.Background()))
	}
}

// Cursor returns the id of the selected node, or "" when nothing is open.
func (m Model) Cursor() string { return m.cursor }

func (m Model) Output() diagramdto.DiagramOutput { return m.out }

// ─── private ─────────────────────────────────────────────────────────────────

// reinit throws away everything from the previous diagram.
func (m *Model) reinit(out diagramdto.DiagramOutput, err error) {
	m.out = diagramdto.DiagramOutput{}
	m.rows = nil
	m.cursor = ""
	m.err = err
	m.open = err == nil
	if err != nil {
		return
	}
	m.out = out
	m.rows = components.TreeRows(out)
	m.cursor = out.RootID
	m.viewport.GotoTop()
	m.refresh()
}

// apply takes the state after a change and re-fits the view around it.
func (m *Model) apply(out diagramdto.DiagramOutput, err error) {
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.out = out
	m.rows = components.TreeRows(out)
	if m.rowIndex(m.cursor) < 0 {
		m.cursor = ""
		if len(m.rows) > 0 {
			m.cursor = m.rows[0].Node.ID
		}
	}
	m.refresh()
}

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	i := m.rowIndex(m.cursor) + delta
	i = max(0, min(i, len(m.rows)-1))
	m.cursor = m.rows[i].Node.ID
	m.refresh()
}

func (m Model) rowIndex(id string) int {
	for i, row := range m.rows {
		if row.Node.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) refresh() {
	if !m.open {
		return
	}
	m.viewport.SetContent(components.RenderTree(m.out, m.cursor))
	line := m.rowIndex(m.cursor)
	if line < 0 || m.viewport.Height <= 0 {
		return
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m *Model) resize() {
	m.viewport.Width = max(m.width-4, 0)
	m.viewport.Height = max(m.height-6, 0)
}

func (m Model) renderHeader() string {
	var sb strings.Builder
	title := "Diagram"
	if m.out.Sentence != "" {
		title = fmt.Sprintf("#%d  %s", m.out.SentenceID, m.out.Sentence)
	}
	sb.WriteString(theme.Title.Render(title) + "\n")
	switch {
	case m.err != nil:
		sb.WriteString(theme.Hot.Render("error: " + m.err.Error()))
	case !m.open:
		sb.WriteString(theme.Muted.Render("no diagram open"))
	case m.out.Empty:
		sb.WriteString(theme.Hot.Render("graph data has no root line"))
	default:
		status := fmt.Sprintf("%d of %d nodes visible", len(m.out.Nodes), m.out.TotalNodes)
		if len(m.out.Dangling) > 0 {
			status += fmt.Sprintf("  (%d unattached: %s)", len(m.out.Dangling), strings.Join(m.out.Dangling, ", "))
		}
		sb.WriteString(theme.Muted.Render(status + "   ↑/↓ move  enter toggle  a expand all  r reset"))
	}
	return sb.String()
}

func openedCmd(out diagramdto.DiagramOutput, err error) tea.Cmd {
	return func() tea.Msg { return OpenedMsg{Out: out, Err: err} }
}
