package sentences

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	sentencedto "depflow/internal/modules/sentence/dto"
	"depflow/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SentencePort interface {
	ListSentences(ctx context.Context) ([]sentencedto.SentenceOutput, error)
	SearchSentences(ctx context.Context, query string) ([]sentencedto.SentenceOutput, error)
	GetSentence(ctx context.Context, id int) (sentencedto.SentenceDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SentencesLoadedMsg struct {
	Sentences []sentencedto.SentenceOutput
	Query     string
	Err       error
}

type DetailLoadedMsg struct {
	Detail sentencedto.SentenceDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type sentenceItem struct {
	sentence sentencedto.SentenceOutput
}

func (i sentenceItem) Title() string { return i.sentence.Text }
func (i sentenceItem) Description() string {
	return fmt.Sprintf("#%d  %d questions", i.sentence.ID, i.sentence.QuestionCount)
}
func (i sentenceItem) FilterValue() string { return i.sentence.Text }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     SentencePort
	list     list.Model
	detail   sentencedto.SentenceDetailOutput
	preview  viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	loading  bool
	width    int
	height   int
}

func New(port SentencePort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Sentences"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{
		port:     port,
		list:     l,
		preview:  vp,
		spinner:  sp,
		renderer: r,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case SentencesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Sentences — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Sentences"
		if msg.Query != "" {
			m.list.Title = fmt.Sprintf("Sentences matching %q", msg.Query)
		}
		items := make([]list.Item, len(msg.Sentences))
		for i, s := range msg.Sentences {
			items[i] = sentenceItem{sentence: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Sentences) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Sentences[0].ID))
		} else {
			m.detail = sentencedto.SentenceDetailOutput{}
			m.preview.SetContent(m.renderDetail())
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(sentenceItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.sentence.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading sentences…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Reload lists every sentence in the workspace.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return SentencesLoadedMsg{}
		}
		sentences, err := m.port.ListSentences(context.Background())
		return SentencesLoadedMsg{Sentences: sentences, Err: err}
	}
}

// Search narrows the list to sentences whose text contains query.
func (m Model) Search(query string) tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return SentencesLoadedMsg{}
		}
		sentences, err := m.port.SearchSentences(context.Background(), query)
		return SentencesLoadedMsg{Sentences: sentences, Query: query, Err: err}
	}
}

// SelectedID returns the id of the highlighted sentence, if any.
func (m Model) SelectedID() (int, bool) {
	if item, ok := m.list.SelectedItem().(sentenceItem); ok {
		return item.sentence.ID, true
	}
	return 0, false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4

	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.preview.Width),
	); err == nil {
		m.renderer = r
	}
	if m.detail.ID != 0 {
		m.preview.SetContent(m.renderDetail())
	}
}

func (m Model) renderDetail() string {
	if m.detail.ID == 0 {
		return theme.Muted.Render("Select a sentence to see its graph and questions")
	}
	sheet := QuestionSheet(m.detail)
	if m.renderer != nil {
		if out, err := m.renderer.Render(sheet); err == nil {
			sheet = out
		}
	}
	return sheet + "\n" + theme.Muted.Render("enter: open diagram")
}

// QuestionSheet lays a sentence out as Markdown: the text, its graph data and
// the comprehension questions with the answer marked.
func QuestionSheet(d sentencedto.SentenceDetailOutput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", d.Text)
	fmt.Fprintf(&sb, "```\n%s\n```\n", strings.TrimRight(d.GraphData, "\n"))
	if len(d.Questions) == 0 {
		return sb.String()
	}
	sb.WriteString("\n## Questions\n\n")
	for i, q := range d.Questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q.Prompt)
		for _, opt := range q.Options {
			if opt == q.Answer {
				fmt.Fprintf(&sb, "   - **%s** ✓\n", opt)
			} else {
				fmt.Fprintf(&sb, "   - %s\n", opt)
			}
		}
	}
	return sb.String()
}

func (m Model) loadDetailCmd(id int) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.GetSentence(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
