package builder_test

import (
	"context"
	"reflect"
	"testing"

	promptdto "promptatlas/internal/modules/prompt/dto"
	"promptatlas/internal/ui/views/builder"
)

type fakePrompt struct {
	generated []string
	exported  bool
	calls     int
}

func (f *fakePrompt) Generate(_ context.Context, input promptdto.PromptInput, ids []string, export bool) (promptdto.GenerateOutput, error) {
	f.calls++
	f.generated = ids
	f.exported = export
	out := promptdto.GenerateOutput{Prompt: input.Task, TechniqueIDs: ids}
	if export {
		out.ExportPath = "/tmp/exports/x.json"
	}
	return out, nil
}

func (f *fakePrompt) Suggest(context.Context, string, []string) ([]promptdto.SuggestionOutput, error) {
	return []promptdto.SuggestionOutput{{ID: "few-shot", Name: "Few-Shot"}}, nil
}

func (f *fakePrompt) Template(_ context.Context, id string) (promptdto.TemplateOutput, error) {
	return promptdto.TemplateOutput{ID: id, Task: "Review", Techniques: []string{"role-prompting", "chain-of-verification"}}, nil
}

func TestAddTechniqueSkipsDuplicates(t *testing.T) {
	t.Parallel()
	port := &fakePrompt{}
	m := builder.New(port)

	if cmd := m.AddTechnique("chain-of-thought"); cmd == nil {
		t.Fatal("expected a regenerate command")
	}
	if cmd := m.AddTechnique("chain-of-thought"); cmd != nil {
		t.Fatal("duplicate add should not regenerate")
	}
	cmd := m.AddTechnique("few-shot")
	cmd()
	if want := []string{"chain-of-thought", "few-shot"}; !reflect.DeepEqual(port.generated, want) {
		t.Fatalf("generated with %v, want %v", port.generated, want)
	}
}

func TestRemoveTechnique(t *testing.T) {
	t.Parallel()
	m := builder.New(&fakePrompt{})
	m.AddTechnique("a")
	m.AddTechnique("b")

	if cmd := m.RemoveTechnique("missing"); cmd != nil {
		t.Fatal("removing an unselected technique should be a no-op")
	}
	m.RemoveTechnique("a")
	if got := m.Techniques(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("techniques = %v", got)
	}
}

func TestApplyTemplateReplacesTechniques(t *testing.T) {
	t.Parallel()
	port := &fakePrompt{}
	m := builder.New(port)
	m.AddTechnique("few-shot")

	msg := m.ApplyTemplate("code-review")()
	m, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("expected regenerate after template")
	}
	if got := m.Techniques(); !reflect.DeepEqual(got, []string{"role-prompting", "chain-of-verification"}) {
		t.Fatalf("techniques = %v", got)
	}
	cmd()
	if port.exported {
		t.Fatal("template preview must not export")
	}
}

func TestExportPassesFlag(t *testing.T) {
	t.Parallel()
	port := &fakePrompt{}
	m := builder.New(port)
	msg := m.Export()()
	if !port.exported {
		t.Fatal("expected export flag")
	}
	got, ok := msg.(builder.GeneratedMsg)
	if !ok || !got.Exported || got.Out.ExportPath == "" {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestClearResetsSelection(t *testing.T) {
	t.Parallel()
	m := builder.New(&fakePrompt{})
	m.AddTechnique("few-shot")
	m.Clear()
	if len(m.Techniques()) != 0 || m.Editing() {
		t.Fatal("expected empty, non-editing builder")
	}
}

func TestOlderGenerateResultDoesNotReplaceNewer(t *testing.T) {
	t.Parallel()
	m := builder.New(&fakePrompt{})
	first := m.AddTechnique("a")
	second := m.AddTechnique("b")
	older, newer := first(), second()

	m, _ = m.Update(newer)
	m, _ = m.Update(older)

	if got := m.Preview().TechniqueIDs; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("preview shows %v, want the latest selection [a b]", got)
	}
}

func TestAddTechniquesRegeneratesOnce(t *testing.T) {
	t.Parallel()
	port := &fakePrompt{}
	m := builder.New(port)

	cmd := m.AddTechniques("a", "b", "a")
	if cmd == nil {
		t.Fatal("expected a regenerate command")
	}
	m, _ = m.Update(cmd())
	if port.calls != 1 {
		t.Fatalf("expected one generate call, got %d", port.calls)
	}
	if got := m.Preview().TechniqueIDs; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("preview shows %v", got)
	}

	cmd = m.RemoveTechniques("a", "b")
	m, _ = m.Update(cmd())
	if port.calls != 2 || len(m.Techniques()) != 0 {
		t.Fatalf("expected one more call and no selection, got %d calls and %v", port.calls, m.Techniques())
	}
}

func TestClearDropsResultsInFlight(t *testing.T) {
	t.Parallel()
	m := builder.New(&fakePrompt{})
	pending := m.AddTechnique("a")
	m.Clear()

	m, _ = m.Update(pending())
	if got := m.Preview().TechniqueIDs; len(got) != 0 {
		t.Fatalf("cleared builder shows %v", got)
	}
}
