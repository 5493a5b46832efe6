package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	diagramdto "depflow/internal/modules/diagram/dto"
	diagramin "depflow/internal/modules/diagram/port/in"
	sentencedto "depflow/internal/modules/sentence/dto"
	"depflow/internal/ui/components"
	"depflow/internal/ui/theme"
	diagramview "depflow/internal/ui/views/diagram"
	sentencesview "depflow/internal/ui/views/sentences"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sentencePort interface {
	List(ctx context.Context) ([]sentencedto.SentenceOutput, error)
	Search(ctx context.Context, input sentencedto.SearchInput) ([]sentencedto.SentenceOutput, error)
	Get(ctx context.Context, id int) (sentencedto.SentenceDetailOutput, error)
}

type diagramPort interface {
	OpenText(ctx context.Context, input diagramin.OpenTextInput) (diagramdto.DiagramOutput, error)
	Toggle(ctx context.Context, input diagramin.ToggleInput) (diagramdto.DiagramOutput, error)
	ExpandAll(ctx context.Context) (diagramdto.DiagramOutput, error)
	Reset(ctx context.Context) (diagramdto.DiagramOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSentences tabID = iota
	tabDiagram
	tabCount
)

var tabLabels = [tabCount]string{"Sentences", "Diagram"}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab       key.Binding
	Help      key.Binding
	Palette   key.Binding
	Quit      key.Binding
	Open      key.Binding
	Move      key.Binding
	Toggle    key.Binding
	ExpandAll key.Binding
	Reset     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open diagram")),
		Move:      key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "select node")),
		Toggle:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "expand or collapse")),
		ExpandAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "expand all")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "show root only")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Open},
		{k.Move, k.Toggle, k.ExpandAll, k.Reset},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay and the command palette. Rendering is delegated to sub-views.
type Model struct {
	workspacePath string

	sentenceView sentencesview.Model
	diagramView  diagramview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(workspacePath string, sentences sentencePort, diagrams diagramPort) Model {
	return Model{
		workspacePath: workspacePath,
		sentenceView:  sentencesview.New(sentencePortBridge{p: sentences}),
		diagramView:   diagramview.New(diagramPortBridge{sentences: sentences, diagrams: diagrams}),
		activeTab:     tabSentences,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(),
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sentenceView.Init(), m.diagramView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	// Graph data loads in the background; the diagram view parses it on the
	// update loop, so route it there whatever tab is showing.
	case diagramview.SentenceLoadedMsg:
		var cmd tea.Cmd
		m.diagramView, cmd = m.diagramView.Update(msg)
		return m, cmd

	case diagramview.OpenedMsg:
		if msg.Err != nil {
			m.status = "diagram: " + msg.Err.Error()
			return m, nil
		}
		m.activeTab = tabDiagram
		switch {
		case msg.Out.Empty:
			m.status = "diagram: graph data has no root line"
		case len(msg.Out.Dangling) > 0:
			m.status = fmt.Sprintf("diagram #%d opened; %d nodes have unknown heads", msg.Out.SentenceID, len(msg.Out.Dangling))
		default:
			m.status = fmt.Sprintf("diagram #%d opened", msg.Out.SentenceID)
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "enter":
			if m.activeTab == tabSentences {
				if id, ok := m.sentenceView.SelectedID(); ok {
					m.status = fmt.Sprintf("loading sentence #%d", id)
					return m, m.diagramView.LoadSentence(id)
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view. List loading
	// messages always go to the sentence view.
	var tabCmd tea.Cmd
	switch {
	case m.activeTab == tabSentences || isSentenceMsg(msg):
		m.sentenceView, tabCmd = m.sentenceView.Update(msg)
	case m.activeTab == tabDiagram:
		m.diagramView, tabCmd = m.diagramView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)
	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabSentences:
		return m.sentenceView.View()
	case tabDiagram:
		return m.diagramView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "depflow  " + strings.Join(parts, sep) + "  " + theme.Muted.Render(m.workspacePath)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "diagram:open":
		if len(parts) < 2 {
			if id, ok := m.sentenceView.SelectedID(); ok {
				return m, m.diagramView.LoadSentence(id)
			}
			m.status = "usage: diagram:open <id>"
			return m, nil
		}
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid sentence id: " + parts[1]
			return m, nil
		}
		return m, m.diagramView.LoadSentence(id)
	case "diagram:expand-all":
		m.diagramView.ExpandAll()
		m.activeTab = tabDiagram
	case "diagram:reset":
		m.diagramView.Reset()
		m.activeTab = tabDiagram
	case "sentence:search":
		query := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		m.activeTab = tabSentences
		m.status = "searching: " + query
		return m, m.sentenceView.Search(query)
	case "sentence:reload":
		m.activeTab = tabSentences
		m.status = "ready"
		return m, m.sentenceView.Reload()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	return m.activeTab == tabSentences && m.sentenceView.Filtering()
}

func isSentenceMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case sentencesview.SentencesLoadedMsg, sentencesview.DetailLoadedMsg, spinner.TickMsg:
		return true
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.sentenceView, _ = m.sentenceView.Update(sz)
	m.diagramView, _ = m.diagramView.Update(sz)
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type sentencePortBridge struct{ p sentencePort }

func (b sentencePortBridge) ListSentences(ctx context.Context) ([]sentencedto.SentenceOutput, error) {
	return b.p.List(ctx)
}
func (b sentencePortBridge) SearchSentences(ctx context.Context, query string) ([]sentencedto.SentenceOutput, error) {
	return b.p.Search(ctx, sentencedto.SearchInput{Query: query})
}
func (b sentencePortBridge) GetSentence(ctx context.Context, id int) (sentencedto.SentenceDetailOutput, error) {
	return b.p.Get(ctx, id)
}

type diagramPortBridge struct {
	sentences sentencePort
	diagrams  diagramPort
}

func (b diagramPortBridge) GetSentence(ctx context.Context, id int) (sentencedto.SentenceDetailOutput, error) {
	return b.sentences.Get(ctx, id)
}
func (b diagramPortBridge) Open(ctx context.Context, text string, sentenceID int, sentence string) (diagramdto.DiagramOutput, error) {
	return b.diagrams.OpenText(ctx, diagramin.OpenTextInput{Text: text, SentenceID: sentenceID, Sentence: sentence})
}
func (b diagramPortBridge) Toggle(ctx context.Context, nodeID string) (diagramdto.DiagramOutput, error) {
	return b.diagrams.Toggle(ctx, diagramin.ToggleInput{NodeID: nodeID})
}
func (b diagramPortBridge) ExpandAll(ctx context.Context) (diagramdto.DiagramOutput, error) {
	return b.diagrams.ExpandAll(ctx)
}
func (b diagramPortBridge) Reset(ctx context.Context) (diagramdto.DiagramOutput, error) {
	return b.diagrams.Reset(ctx)
}
