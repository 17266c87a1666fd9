package catalog

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "promptatlas/internal/modules/catalog/dto"
	"promptatlas/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type CatalogPort interface {
	ListTechniques(ctx context.Context, categoryID, query string) ([]catalogdto.TechniqueOutput, error)
	GetTechnique(ctx context.Context, id string) (catalogdto.TechniqueDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type TechniquesLoadedMsg struct {
	Techniques []catalogdto.TechniqueOutput
	Err        error
}

type DetailLoadedMsg struct {
	Detail catalogdto.TechniqueDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type techniqueItem struct {
	technique catalogdto.TechniqueOutput
}

func (i techniqueItem) Title() string       { return i.technique.Name }
func (i techniqueItem) Description() string { return i.technique.CategoryName }
func (i techniqueItem) FilterValue() string {
	return i.technique.Name + " " + strings.Join(i.technique.Aliases, " ")
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    CatalogPort
	list    list.Model
	detail  catalogdto.TechniqueDetailOutput
	preview viewport.Model
	spinner spinner.Model
	query   string
	loading bool
	width   int
	height  int
}

func New(port CatalogPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Techniques"
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

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTechniquesCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case TechniquesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Techniques: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Techniques"
		if m.query != "" {
			m.list.Title = "Techniques matching " + m.query
		}
		items := make([]list.Item, len(msg.Techniques))
		for i, t := range msg.Techniques {
			items[i] = techniqueItem{technique: t}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Techniques) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Techniques[0].ID))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
			m.preview.GotoTop()
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
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
			if item, ok := m.list.SelectedItem().(techniqueItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.technique.ID))
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
			m.spinner.View()+" Loading catalogue…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := theme.Pane.
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Search reloads the list with techniques matching query; an empty query
// lists everything.
func (m *Model) Search(query string) tea.Cmd {
	m.query = strings.TrimSpace(query)
	return m.loadTechniquesCmd()
}

// Reload fetches the catalogue again, keeping the current query.
func (m *Model) Reload() tea.Cmd {
	return m.loadTechniquesCmd()
}

func (m Model) SelectedTechnique() (catalogdto.TechniqueOutput, bool) {
	if item, ok := m.list.SelectedItem().(techniqueItem); ok {
		return item.technique, true
	}
	return catalogdto.TechniqueOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
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
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a technique to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Name) + "\n")
	sb.WriteString(theme.Muted.Render(d.ID+"  ·  "+d.CategoryName) + "\n\n")
	sb.WriteString(d.Description + "\n")
	if len(d.Aliases) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("aliases: ") + strings.Join(d.Aliases, ", ") + "\n")
	}
	sections := []struct{ label, text string }{
		{"Use case", d.UseCase},
		{"Example", d.Example},
		{"Tips", d.Tips},
		{"Common mistakes", d.CommonMistakes},
	}
	for _, s := range sections {
		if strings.TrimSpace(s.text) == "" {
			continue
		}
		sb.WriteString("\n" + theme.Hot.Render(s.label) + "\n" + s.text + "\n")
	}
	if len(d.Related) > 0 {
		sb.WriteString("\n" + theme.Muted.Render("related: ") + strings.Join(d.Related, ", ") + "\n")
	}
	if len(d.Sources) > 0 {
		sb.WriteString(theme.Muted.Render("sources: ") + strings.Join(d.Sources, "; ") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: add to builder"))
	return sb.String()
}

func (m Model) loadTechniquesCmd() tea.Cmd {
	query := m.query
	return func() tea.Msg {
		if m.port == nil {
			return TechniquesLoadedMsg{}
		}
		techniques, err := m.port.ListTechniques(context.Background(), "", query)
		return TechniquesLoadedMsg{Techniques: techniques, Err: err}
	}
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return DetailLoadedMsg{}
		}
		detail, err := m.port.GetTechnique(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
