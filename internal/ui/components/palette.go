package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"promptatlas/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"graph:category <id> [id...]",
	"graph:min <connections>",
	"graph:search <text>",
	"graph:reset",
	"graph:depth <n>",
	"builder:add <technique>",
	"builder:remove <technique>",
	"builder:template <id>",
	"builder:suggest",
	"builder:export",
	"builder:clear",
	"catalog:find <text>",
	"reindex",
}

// Palette is a command-palette overlay backed by bubbles/textinput.
// Matching hints are shown as the user types.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "graph:search reason, builder:template code-review…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.visible = false
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	matching := Hints(p.input.Value(), 5)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Commands") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}

// Hints returns up to limit palette hints starting with prefix.
func Hints(prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := []string{}
	for _, h := range paletteHints {
		if prefix != "" && !strings.HasPrefix(h, prefix) {
			continue
		}
		out = append(out, h)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Command is a parsed palette input such as "graph:min 2".
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits input on whitespace. Empty input is not a command.
func ParseCommand(input string) (Command, bool) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Command{}, false
	}
	return Command{Name: strings.ToLower(parts[0]), Args: parts[1:]}, true
}

// Rest joins the arguments back into free text.
func (c Command) Rest() string {
	return strings.Join(c.Args, " ")
}
