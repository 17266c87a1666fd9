package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	graphdto "promptatlas/internal/modules/graph/dto"
	"promptatlas/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type GraphPort interface {
	Build(ctx context.Context, categories []string, minConnections int, search string) (graphdto.GraphOutput, error)
	Stats(ctx context.Context) (graphdto.StatsOutput, error)
	Colors(ctx context.Context) ([]graphdto.ColorOutput, error)
	Neighbors(ctx context.Context, nodeID string, depth int) (graphdto.NeighborsOutput, error)
}

// Filter narrows the node list. Zero fields are ignored.
type Filter struct {
	Categories     []string
	MinConnections int
	Search         string
}

func (f Filter) String() string {
	parts := []string{}
	if len(f.Categories) > 0 {
		parts = append(parts, "categories="+strings.Join(f.Categories, ","))
	}
	if f.MinConnections > 0 {
		parts = append(parts, fmt.Sprintf("min=%d", f.MinConnections))
	}
	if f.Search != "" {
		parts = append(parts, "search="+f.Search)
	}
	if len(parts) == 0 {
		return "no filter"
	}
	return strings.Join(parts, "  ")
}

// ─── messages ────────────────────────────────────────────────────────────────

type GraphLoadedMsg struct {
	Graph  graphdto.GraphOutput
	Stats  graphdto.StatsOutput
	Colors []graphdto.ColorOutput
	Err    error
}

type NeighborsLoadedMsg struct {
	Out graphdto.NeighborsOutput
	Err error
}

// ─── list item ───────────────────────────────────────────────────────────────

type nodeItem struct {
	node  graphdto.NodeOutput
	color string
}

func (i nodeItem) Title() string {
	if i.color == "" {
		return i.node.Name
	}
	return theme.Swatch(i.color) + " " + i.node.Name
}

func (i nodeItem) Description() string {
	return fmt.Sprintf("%s  ·  %d connections", i.node.CategoryName, i.node.ConnectionCount)
}

func (i nodeItem) FilterValue() string { return i.node.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      GraphPort
	list      list.Model
	detail    viewport.Model
	spinner   spinner.Model
	filter    Filter
	depth     int
	graph     graphdto.GraphOutput
	stats     graphdto.StatsOutput
	colors    []graphdto.ColorOutput
	neighbors graphdto.NeighborsOutput
	loading   bool
	width     int
	height    int
}

func New(port GraphPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Green).BorderForeground(theme.Green)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Green)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Graph"
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
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		depth:   1,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadGraphCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case GraphLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Graph: " + msg.Err.Error()
			return m, nil
		}
		m.graph = msg.Graph
		m.stats = msg.Stats
		m.colors = msg.Colors
		m.neighbors = graphdto.NeighborsOutput{}
		colorOf := map[string]string{}
		for _, c := range msg.Colors {
			colorOf[c.CategoryID] = c.Color
		}
		items := make([]list.Item, len(msg.Graph.Nodes))
		for i, n := range msg.Graph.Nodes {
			items[i] = nodeItem{node: n, color: colorOf[n.CategoryID]}
		}
		m.list.Title = fmt.Sprintf("Graph  %d/%d", len(msg.Graph.Nodes), msg.Stats.TotalNodes)
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case NeighborsLoadedMsg:
		if msg.Err == nil {
			m.neighbors = msg.Out
			m.detail.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(nodeItem); ok {
				cmds = append(cmds, m.loadNeighborsCmd(item.node.ID))
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Building graph…")
	}

	listW := m.width * 35 / 100
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := theme.Pane.
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SetFilter replaces the active filter and rebuilds the node list.
func (m *Model) SetFilter(f Filter) tea.Cmd {
	m.filter = f
	return m.loadGraphCmd()
}

func (m Model) Filter() Filter {
	return m.filter
}

// SetDepth changes the neighbourhood depth used when a node is opened.
func (m *Model) SetDepth(depth int) {
	if depth < 1 {
		depth = 1
	}
	m.depth = depth
}

// Reload rebuilds the graph with the current filter.
func (m *Model) Reload() tea.Cmd {
	return m.loadGraphCmd()
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys (e.g. "q") during
// a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 35 / 100
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	var sb strings.Builder
	s := m.stats
	sb.WriteString(theme.Title.Render("Overview") + "\n")
	sb.WriteString(fmt.Sprintf("%d techniques  ·  %d links  ·  avg %.2f  ·  %d isolated\n",
		s.TotalNodes, s.TotalLinks, s.AvgConnections, s.IsolatedNodes))
	if s.MostConnected != nil {
		sb.WriteString(theme.Muted.Render("most connected:  ") + fmt.Sprintf("%s (%d)\n", s.MostConnected.Name, s.MostConnected.Connections))
	}
	if s.LeastConnected != nil {
		sb.WriteString(theme.Muted.Render("least connected: ") + fmt.Sprintf("%s (%d)\n", s.LeastConnected.Name, s.LeastConnected.Connections))
	}
	sb.WriteString(theme.Muted.Render("filter: "+m.filter.String()) + "\n\n")

	for _, c := range m.colors {
		sb.WriteString(theme.Swatch(c.Color) + " " + c.CategoryName + "\n")
	}

	sb.WriteString("\n")
	if m.neighbors.FocusID == "" {
		sb.WriteString(theme.Muted.Render("Select a technique and press enter to explore its neighbours"))
		return sb.String()
	}
	sb.WriteString(theme.Title.Render("Neighbours of "+m.neighbors.FocusID) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("depth %d  ·  %d nodes", m.neighbors.Depth, len(m.neighbors.Nodes))) + "\n\n")
	colorOf := map[string]string{}
	for _, c := range m.colors {
		colorOf[c.CategoryID] = c.Color
	}
	for _, n := range m.neighbors.Nodes {
		icon := "○"
		if hex := colorOf[n.CategoryID]; hex != "" {
			icon = theme.Swatch(hex)
		}
		sb.WriteString(fmt.Sprintf(" %s  %s  %s\n", icon, n.Name, theme.Muted.Render(n.ID)))
	}
	return sb.String()
}

func (m Model) loadGraphCmd() tea.Cmd {
	f := m.filter
	return func() tea.Msg {
		if m.port == nil {
			return GraphLoadedMsg{}
		}
		ctx := context.Background()
		graph, err := m.port.Build(ctx, f.Categories, f.MinConnections, f.Search)
		if err != nil {
			return GraphLoadedMsg{Err: err}
		}
		stats, err := m.port.Stats(ctx)
		if err != nil {
			return GraphLoadedMsg{Err: err}
		}
		colors, err := m.port.Colors(ctx)
		return GraphLoadedMsg{Graph: graph, Stats: stats, Colors: colors, Err: err}
	}
}

func (m Model) loadNeighborsCmd(nodeID string) tea.Cmd {
	depth := m.depth
	return func() tea.Msg {
		if m.port == nil {
			return NeighborsLoadedMsg{}
		}
		out, err := m.port.Neighbors(context.Background(), nodeID, depth)
		return NeighborsLoadedMsg{Out: out, Err: err}
	}
}
