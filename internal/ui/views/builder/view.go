package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	promptdto "promptatlas/internal/modules/prompt/dto"
	"promptatlas/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type PromptPort interface {
	Generate(ctx context.Context, input promptdto.PromptInput, techniqueIDs []string, export bool) (promptdto.GenerateOutput, error)
	Suggest(ctx context.Context, text string, exclude []string) ([]promptdto.SuggestionOutput, error)
	Template(ctx context.Context, id string) (promptdto.TemplateOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// GeneratedMsg carries the result of one generate request. Seq orders
// requests so a slow, older result cannot replace a newer preview.
type GeneratedMsg struct {
	Seq      int
	Out      promptdto.GenerateOutput
	Exported bool
	Err      error
}

type SuggestedMsg struct {
	Items []promptdto.SuggestionOutput
	Err   error
}

type TemplateLoadedMsg struct {
	Template promptdto.TemplateOutput
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldRole = iota
	fieldTask
	fieldContext
	fieldOutput
	fieldCount
)

var fieldLabels = [fieldCount]string{"Role", "Task", "Context", "Output"}

type Model struct {
	port        PromptPort
	inputs      [fieldCount]textinput.Model
	focus       int
	editing     bool
	techniques  []string
	suggestions []promptdto.SuggestionOutput
	out         promptdto.GenerateOutput
	seq         int
	preview     viewport.Model
	status      string
	width       int
	height      int
}

func New(port PromptPort) Model {
	placeholders := [fieldCount]string{
		"You are a senior backend engineer",
		"Review this pull request for concurrency bugs",
		"The service handles payment webhooks",
		"A numbered list of findings",
	}
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 4000
		inputs[i] = ti
	}

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	m := Model{
		port:    port,
		inputs:  inputs,
		preview: vp,
	}
	m.preview.SetContent(m.renderPreview())
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case GeneratedMsg:
		if msg.Err != nil {
			if msg.Exported || msg.Seq == m.seq {
				m.status = "generate: " + msg.Err.Error()
			}
			return m, nil
		}
		if msg.Exported {
			m.status = "exported to " + msg.Out.ExportPath
		}
		if msg.Seq < m.seq {
			return m, nil
		}
		if !msg.Exported {
			m.status = ""
		}
		m.out = msg.Out
		m.preview.SetContent(m.renderPreview())

	case SuggestedMsg:
		if msg.Err != nil {
			m.status = "suggest: " + msg.Err.Error()
			return m, nil
		}
		m.suggestions = msg.Items
		m.status = fmt.Sprintf("%d suggestions", len(msg.Items))
		m.preview.SetContent(m.renderPreview())

	case TemplateLoadedMsg:
		if msg.Err != nil {
			m.status = "template: " + msg.Err.Error()
			return m, nil
		}
		t := msg.Template
		for i, v := range [fieldCount]string{t.Role, t.Task, t.Context, t.Output} {
			m.inputs[i].SetValue(v)
		}
		m.techniques = append([]string(nil), t.Techniques...)
		m.suggestions = nil
		m.status = "template " + t.ID + " applied"
		cmd := m.generateCmd(false)
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			switch msg.String() {
			case "esc", "enter":
				m.editing = false
				m.inputs[m.focus].Blur()
				cmd := m.generateCmd(false)
				return m, cmd
			case "up", "shift+tab":
				cmd := m.moveFocus(-1)
				return m, cmd
			case "down", "tab":
				cmd := m.moveFocus(1)
				return m, cmd
			}
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "enter", "e":
			m.editing = true
			cmd := m.inputs[m.focus].Focus()
			return m, cmd
		case "up", "k":
			m.focus = (m.focus + fieldCount - 1) % fieldCount
			return m, nil
		case "down", "j":
			m.focus = (m.focus + 1) % fieldCount
			return m, nil
		case "d":
			if n := len(m.techniques); n > 0 {
				cmd := m.RemoveTechnique(m.techniques[n-1])
				return m, cmd
			}
			return m, nil
		}
	}

	var vCmd tea.Cmd
	m.preview, vCmd = m.preview.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	formW := m.width * 45 / 100
	previewW := m.width - formW

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Builder") + "\n\n")
	for i := range m.inputs {
		label := fieldLabels[i]
		if i == m.focus {
			label = theme.Hot.Render("› " + label)
		} else {
			label = theme.Muted.Render("  " + label)
		}
		sb.WriteString(label + "\n  " + m.inputs[i].View() + "\n\n")
	}

	sb.WriteString(theme.Title.Render("Techniques") + "\n")
	if len(m.techniques) == 0 {
		sb.WriteString(theme.Muted.Render("  none, add from the catalog with enter") + "\n")
	}
	for _, id := range m.techniques {
		sb.WriteString("  • " + id + "\n")
	}
	if len(m.suggestions) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Suggested") + "\n")
		for _, s := range m.suggestions {
			sb.WriteString("  + " + s.Name + theme.Muted.Render("  "+s.ID) + "\n")
		}
	}
	if m.status != "" {
		sb.WriteString("\n" + theme.Muted.Render(m.status) + "\n")
	}
	hint := "e: edit  j/k: field  d: drop last technique"
	if m.editing {
		hint = "esc: done  ↑/↓: field"
	}
	sb.WriteString("\n" + theme.Muted.Render(hint))

	formPane := lipgloss.NewStyle().
		Width(formW).
		Height(m.height).
		Padding(0, 1).
		Render(sb.String())

	previewPane := theme.Pane.
		Width(previewW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, formPane, previewPane)
}

// Editing reports whether a text field has focus. The app model yields
// global keys while it does.
func (m Model) Editing() bool {
	return m.editing
}

// Techniques returns the selected technique IDs in order.
func (m Model) Techniques() []string {
	return append([]string(nil), m.techniques...)
}

// Preview is the most recent generate result the preview shows.
func (m Model) Preview() promptdto.GenerateOutput {
	return m.out
}

// AddTechnique appends id unless it is already selected.
func (m *Model) AddTechnique(id string) tea.Cmd {
	return m.AddTechniques(id)
}

// AddTechniques appends each new id in order and regenerates once.
func (m *Model) AddTechniques(ids ...string) tea.Cmd {
	var added []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || m.selected(id) {
			continue
		}
		m.techniques = append(m.techniques, id)
		added = append(added, id)
	}
	if len(added) == 0 {
		if len(ids) > 0 {
			m.status = strings.Join(ids, ", ") + " already selected"
		}
		return nil
	}
	m.status = "added " + strings.Join(added, ", ")
	return m.generateCmd(false)
}

func (m *Model) RemoveTechnique(id string) tea.Cmd {
	return m.RemoveTechniques(id)
}

// RemoveTechniques drops each id and regenerates once.
func (m *Model) RemoveTechniques(ids ...string) tea.Cmd {
	drop := map[string]bool{}
	for _, id := range ids {
		drop[strings.TrimSpace(id)] = true
	}
	kept := make([]string, 0, len(m.techniques))
	var removed []string
	for _, existing := range m.techniques {
		if drop[existing] {
			removed = append(removed, existing)
			continue
		}
		kept = append(kept, existing)
	}
	if len(removed) == 0 {
		m.status = strings.Join(ids, ", ") + " is not selected"
		return nil
	}
	m.techniques = kept
	m.status = "removed " + strings.Join(removed, ", ")
	return m.generateCmd(false)
}

// ApplyTemplate replaces the fields and techniques with a template's.
func (m *Model) ApplyTemplate(id string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return TemplateLoadedMsg{}
		}
		t, err := port.Template(context.Background(), id)
		return TemplateLoadedMsg{Template: t, Err: err}
	}
}

func (m *Model) Clear() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.editing = false
	m.focus = fieldRole
	m.techniques = nil
	m.suggestions = nil
	m.out = promptdto.GenerateOutput{}
	// results still in flight belong to the old selection
	m.seq++
	m.status = "cleared"
	m.preview.SetContent(m.renderPreview())
	return nil
}

// Export generates the prompt and writes it to the export directory.
func (m *Model) Export() tea.Cmd {
	return m.generateCmd(true)
}

// Suggest asks for techniques matching the task and context text.
func (m *Model) Suggest() tea.Cmd {
	text := strings.TrimSpace(m.inputs[fieldTask].Value() + " " + m.inputs[fieldContext].Value())
	exclude := m.Techniques()
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return SuggestedMsg{}
		}
		items, err := port.Suggest(context.Background(), text, exclude)
		return SuggestedMsg{Items: items, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) selected(id string) bool {
	for _, existing := range m.techniques {
		if existing == id {
			return true
		}
	}
	return false
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + fieldCount + delta) % fieldCount
	return m.inputs[m.focus].Focus()
}

func (m *Model) resize() {
	formW := m.width * 45 / 100
	previewW := m.width - formW
	for i := range m.inputs {
		m.inputs[i].Width = formW - 6
	}
	m.preview.Width = previewW - 4
	m.preview.Height = m.height - 4
}

func (m Model) input() promptdto.PromptInput {
	return promptdto.PromptInput{
		Role:    m.inputs[fieldRole].Value(),
		Task:    m.inputs[fieldTask].Value(),
		Context: m.inputs[fieldContext].Value(),
		Output:  m.inputs[fieldOutput].Value(),
	}
}

func (m Model) renderPreview() string {
	out := m.out
	if strings.TrimSpace(out.Prompt) == "" {
		return theme.Muted.Render("Fill in a field or apply a template to preview the prompt")
	}
	var sb strings.Builder
	q := out.Quality
	sb.WriteString(theme.Level(q.Level).Render(fmt.Sprintf("%s  %d/100", q.Level, q.Score)))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("  ·  ~%d tokens  ·  %d chars  ·  %d techniques",
		out.Stats.EstimatedTokens, out.Stats.CharCount, out.Stats.TechniqueCount)) + "\n")
	for _, issue := range out.Validation.Errors {
		sb.WriteString(lipgloss.NewStyle().Foreground(theme.Red).Render("✗ "+issue.Message) + "\n")
	}
	for _, issue := range out.Validation.Warnings {
		sb.WriteString(lipgloss.NewStyle().Foreground(theme.Yellow).Render("! "+issue.Message) + "\n")
	}
	for _, s := range q.Suggestions {
		sb.WriteString(theme.Muted.Render("· "+s) + "\n")
	}
	sb.WriteString("\n" + out.Prompt + "\n")
	return sb.String()
}

func (m *Model) generateCmd(export bool) tea.Cmd {
	m.seq++
	seq := m.seq
	input := m.input()
	ids := m.Techniques()
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return GeneratedMsg{Seq: seq}
		}
		out, err := port.Generate(context.Background(), input, ids, export)
		return GeneratedMsg{Seq: seq, Out: out, Exported: export, Err: err}
	}
}
