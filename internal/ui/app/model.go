package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "promptatlas/internal/modules/catalog/dto"
	graphdto "promptatlas/internal/modules/graph/dto"
	promptdto "promptatlas/internal/modules/prompt/dto"
	"promptatlas/internal/ui/components"
	"promptatlas/internal/ui/theme"
	builderview "promptatlas/internal/ui/views/builder"
	catalogview "promptatlas/internal/ui/views/catalog"
	graphview "promptatlas/internal/ui/views/graph"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// The root model needs a little more than its views do (reindex, for one);
// each view package declares the narrower port it renders from.

type catalogPort interface {
	ListTechniques(ctx context.Context, categoryID, query string) ([]catalogdto.TechniqueOutput, error)
	GetTechnique(ctx context.Context, id string) (catalogdto.TechniqueDetailOutput, error)
	Reindex(ctx context.Context) (catalogdto.ReindexOutput, error)
}

type graphPort interface {
	Build(ctx context.Context, categories []string, minConnections int, search string) (graphdto.GraphOutput, error)
	Stats(ctx context.Context) (graphdto.StatsOutput, error)
	Colors(ctx context.Context) ([]graphdto.ColorOutput, error)
	Neighbors(ctx context.Context, nodeID string, depth int) (graphdto.NeighborsOutput, error)
}

type promptPort interface {
	Generate(ctx context.Context, input promptdto.PromptInput, techniqueIDs []string, export bool) (promptdto.GenerateOutput, error)
	Suggest(ctx context.Context, text string, exclude []string) ([]promptdto.SuggestionOutput, error)
	Template(ctx context.Context, id string) (promptdto.TemplateOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabCatalog tabID = iota
	tabGraph
	tabBuilder
	tabCount
)

var tabLabels = [tabCount]string{
	"Catalog", "Graph", "Builder",
}

// ─── async messages ───────────────────────────────────────────────────────────

type reindexedMsg struct {
	out catalogdto.ReindexOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Edit    key.Binding
	Field   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add technique / explore node")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit builder field")),
		Field:   key.NewBinding(key.WithKeys("j", "k"), key.WithHelp("j/k", "builder field")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter},
		{k.Edit, k.Field},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model routes keys and palette commands across the Catalog, Graph and
// Builder tabs. Views do their own loading and rendering.
type Model struct {
	workspace string

	catalog catalogPort

	catalogView catalogview.Model
	graphView   graphview.Model
	builderView builderview.Model

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

func NewModel(workspace string, catalog catalogPort, graph graphPort, prompt promptPort) Model {
	var catalogV catalogview.Model
	if catalog != nil {
		catalogV = catalogview.New(catalogPortBridge{p: catalog})
	} else {
		catalogV = catalogview.New(nil)
	}

	var graphV graphview.Model
	if graph != nil {
		graphV = graphview.New(graph)
	} else {
		graphV = graphview.New(nil)
	}

	var builderV builderview.Model
	if prompt != nil {
		builderV = builderview.New(prompt)
	} else {
		builderV = builderview.New(nil)
	}

	return Model{
		workspace:   workspace,
		catalog:     catalog,
		catalogView: catalogV,
		graphView:   graphV,
		builderView: builderV,
		activeTab:   tabCatalog,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.catalogView.Init(),
		m.graphView.Init(),
		m.builderView.Init(),
	)
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

	// Async results go to the view that asked for them, whichever tab is active.
	switch msg.(type) {
	case catalogview.TechniquesLoadedMsg, catalogview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.catalogView, cmd = m.catalogView.Update(msg)
		return m, cmd
	case graphview.GraphLoadedMsg, graphview.NeighborsLoadedMsg:
		var cmd tea.Cmd
		m.graphView, cmd = m.graphView.Update(msg)
		return m, cmd
	case builderview.GeneratedMsg, builderview.SuggestedMsg, builderview.TemplateLoadedMsg:
		var cmd tea.Cmd
		m.builderView, cmd = m.builderView.Update(msg)
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

	case reindexedMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("reindexed %d categories, %d techniques", msg.out.Categories, msg.out.Techniques)
		return m, tea.Batch(m.catalogView.Reload(), m.graphView.Reload())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter or a text field is active.
		if m.subViewCapturing() {
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
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "enter":
			if m.activeTab == tabCatalog {
				if t, ok := m.catalogView.SelectedTechnique(); ok {
					cmd := m.builderView.AddTechnique(t.ID)
					m.status = "builder: added " + t.Name
					return m, cmd
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabCatalog:
		m.catalogView, tabCmd = m.catalogView.Update(msg)
	case tabGraph:
		m.graphView, tabCmd = m.graphView.Update(msg)
	case tabBuilder:
		m.builderView, tabCmd = m.builderView.Update(msg)
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
	case tabCatalog:
		return m.catalogView.View()
	case tabGraph:
		return m.graphView.View()
	case tabBuilder:
		return m.builderView.View()
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
	bar := "promptatlas  " + strings.Join(parts, sep)
	if m.workspace != "" {
		bar += "  " + theme.Muted.Render(filepath.Base(m.workspace))
	}
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if n := len(m.builderView.Techniques()); n > 0 {
		left = theme.Hot.Render(fmt.Sprintf("● %d techniques", n)) + "  " + left
	}
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
	c, ok := components.ParseCommand(input)
	if !ok {
		return m, nil
	}

	switch c.Name {
	case "graph:category":
		if len(c.Args) == 0 {
			m.status = "usage: graph:category <id> [id...]"
			return m, nil
		}
		f := m.graphView.Filter()
		f.Categories = c.Args
		m.activeTab = tabGraph
		cmd := m.graphView.SetFilter(f)
		return m, cmd

	case "graph:min":
		if len(c.Args) != 1 {
			m.status = "usage: graph:min <connections>"
			return m, nil
		}
		n, err := strconv.Atoi(c.Args[0])
		if err != nil || n < 0 {
			m.status = "invalid connection count"
			return m, nil
		}
		f := m.graphView.Filter()
		f.MinConnections = n
		m.activeTab = tabGraph
		cmd := m.graphView.SetFilter(f)
		return m, cmd

	case "graph:search":
		f := m.graphView.Filter()
		f.Search = c.Rest()
		m.activeTab = tabGraph
		cmd := m.graphView.SetFilter(f)
		return m, cmd

	case "graph:reset":
		m.activeTab = tabGraph
		m.status = "graph filter cleared"
		cmd := m.graphView.SetFilter(graphview.Filter{})
		return m, cmd

	case "graph:depth":
		if len(c.Args) != 1 {
			m.status = "usage: graph:depth <n>"
			return m, nil
		}
		n, err := strconv.Atoi(c.Args[0])
		if err != nil || n < 1 {
			m.status = "invalid depth"
			return m, nil
		}
		m.graphView.SetDepth(n)
		m.status = fmt.Sprintf("neighbour depth %d", n)
		return m, nil

	case "builder:add":
		if len(c.Args) == 0 {
			m.status = "usage: builder:add <technique>"
			return m, nil
		}
		m.activeTab = tabBuilder
		cmd := m.builderView.AddTechniques(c.Args...)
		return m, cmd

	case "builder:remove":
		if len(c.Args) == 0 {
			m.status = "usage: builder:remove <technique>"
			return m, nil
		}
		m.activeTab = tabBuilder
		cmd := m.builderView.RemoveTechniques(c.Args...)
		return m, cmd

	case "builder:template":
		if len(c.Args) != 1 {
			m.status = "usage: builder:template <id>"
			return m, nil
		}
		m.activeTab = tabBuilder
		return m, m.builderView.ApplyTemplate(c.Args[0])

	case "builder:suggest":
		m.activeTab = tabBuilder
		return m, m.builderView.Suggest()

	case "builder:export":
		m.activeTab = tabBuilder
		cmd := m.builderView.Export()
		return m, cmd

	case "builder:clear":
		m.activeTab = tabBuilder
		m.status = "builder cleared"
		cmd := m.builderView.Clear()
		return m, cmd

	case "catalog:find":
		m.activeTab = tabCatalog
		cmd := m.catalogView.Search(c.Rest())
		return m, cmd

	case "reindex":
		m.status = "reindexing…"
		return m, m.reindexCmd()

	default:
		m.status = "unknown command: " + c.Name
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewCapturing reports whether the active tab is taking free text,
// in which case global key bindings must yield.
func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabCatalog:
		return m.catalogView.Filtering()
	case tabGraph:
		return m.graphView.Filtering()
	case tabBuilder:
		return m.builderView.Editing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.catalogView, _ = m.catalogView.Update(sz)
	m.graphView, _ = m.graphView.Update(sz)
	m.builderView, _ = m.builderView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) reindexCmd() tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		if catalog == nil {
			return reindexedMsg{err: fmt.Errorf("catalog adapter not configured")}
		}
		out, err := catalog.Reindex(context.Background())
		return reindexedMsg{out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// The catalog view must not see Reindex, so it gets a bridge.

type catalogPortBridge struct{ p catalogPort }

func (b catalogPortBridge) ListTechniques(ctx context.Context, categoryID, query string) ([]catalogdto.TechniqueOutput, error) {
	return b.p.ListTechniques(ctx, categoryID, query)
}
func (b catalogPortBridge) GetTechnique(ctx context.Context, id string) (catalogdto.TechniqueDetailOutput, error) {
	return b.p.GetTechnique(ctx, id)
}
