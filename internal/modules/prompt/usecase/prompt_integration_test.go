package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	catalog "promptatlas/internal/modules/catalog/domain"
	promptout "promptatlas/internal/modules/prompt/adapter/out"
	"promptatlas/internal/modules/prompt/domain"
	"promptatlas/internal/modules/prompt/dto"
	promptin "promptatlas/internal/modules/prompt/port/in"
	"promptatlas/internal/modules/prompt/service"
	"promptatlas/internal/modules/prompt/usecase"
	"promptatlas/internal/platform/clock"
	apperrors "promptatlas/internal/platform/errors"
	"promptatlas/internal/platform/logging"
)

type staticSource struct{ cat catalog.Catalogue }

func (s staticSource) Load(context.Context) (catalog.Catalogue, error) {
	return s.cat, nil
}

type fixedID string

func (f fixedID) New(time.Time) string {
	return string(f)
}

func techniques() catalog.Catalogue {
	return catalog.Catalogue{Categories: []catalog.Category{
		{ID: "reasoning", Name: "Reasoning", Techniques: []catalog.Technique{
			{ID: "chain-of-thought", Name: "Chain of Thought", Description: "Reason step by step."},
			{ID: "zero-shot-cot", Name: "Zero-Shot CoT", Description: "Add a reasoning trigger."},
		}},
		{ID: "examples", Name: "Examples", Techniques: []catalog.Technique{
			{ID: "few-shot", Name: "Few-Shot", Description: "Show worked examples."},
		}},
	}}
}

func newUsecase(t *testing.T, workspace string) promptin.Usecase {
	t.Helper()
	at := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	svc := service.NewPromptService(
		clock.Fixed(at),
		fixedID("01JTEST0000000000000000000"),
		staticSource{cat: techniques()},
		promptout.NewFileExportStore(filepath.Join(workspace, ".promptatlas", "exports")),
		promptout.NewYAMLTemplateStore(filepath.Join(workspace, ".promptatlas", "templates")),
	)
	return usecase.NewInteractor(svc, logging.Discard())
}

func TestGenerateExportAndImport(t *testing.T) {
	t.Parallel()
	workspace := t.TempDir()
	uc := newUsecase(t, workspace)
	ctx := context.Background()

	out, err := uc.Generate(ctx, dto.GenerateInput{
		PromptInput:  dto.PromptInput{Role: "You are a maths tutor", Task: "Solve 12 * 13"},
		TechniqueIDs: []string{"chain-of-thought", "unknown", "chain-of-thought"},
		Export:       true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(out.Prompt, "You are a maths tutor\n\nChain of Thought: Reason step by step.") {
		t.Fatalf("unexpected prompt: %q", out.Prompt)
	}
	if len(out.TechniqueIDs) != 1 || out.Stats.TechniqueCount != 1 {
		t.Fatalf("expected one resolved technique, got %v", out.TechniqueIDs)
	}
	if out.Stats.EstimatedTokens != domain.EstimateTokens(out.Prompt) || !out.Validation.Valid {
		t.Fatalf("unexpected stats or validation: %+v %+v", out.Stats, out.Validation)
	}
	if out.Instructions != "**Chain of Thought**: Reason step by step." {
		t.Fatalf("unexpected instructions: %q", out.Instructions)
	}
	if out.ExportID != "01JTEST0000000000000000000" || filepath.Base(out.ExportPath) != out.ExportID+".json" {
		t.Fatalf("unexpected export location: %s %s", out.ExportID, out.ExportPath)
	}

	raw, err := os.ReadFile(out.ExportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	meta, ok := doc["metadata"].(map[string]any)
	if !ok || meta["exportedAt"] != "2026-05-04T10:30:00Z" {
		t.Fatalf("unexpected metadata: %v", doc["metadata"])
	}

	imported, err := uc.Import(ctx, out.ExportPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.Prompt != out.Prompt || imported.Task != "Solve 12 * 13" || len(imported.Missing) != 0 {
		t.Fatalf("unexpected import: %+v", imported)
	}
}

func TestGenerateRejectsEmptyExport(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t, t.TempDir())

	out, err := uc.Generate(context.Background(), dto.GenerateInput{})
	if err != nil {
		t.Fatalf("generate without export: %v", err)
	}
	if out.Prompt != "" || out.Validation.Valid || out.Quality.Level != string(domain.LevelPoor) {
		t.Fatalf("unexpected empty generation: %+v", out)
	}
	if _, err := uc.Generate(context.Background(), dto.GenerateInput{Export: true}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty export, got %v", err)
	}
}

func TestImportReportsProblems(t *testing.T) {
	t.Parallel()
	workspace := t.TempDir()
	uc := newUsecase(t, workspace)
	ctx := context.Background()

	if _, err := uc.Import(ctx, filepath.Join(workspace, "missing.json")); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	bad := filepath.Join(workspace, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"prompt": 1}`), 0o644); err != nil {
		t.Fatalf("write bad export: %v", err)
	}
	if _, err := uc.Import(ctx, bad); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}

	stale := filepath.Join(workspace, "stale.json")
	content := `{"prompt":"p","configuration":{"task":"t"},"techniques":[{"id":"few-shot","name":"Few-Shot"},{"id":"retired","name":"Retired"}]}`
	if err := os.WriteFile(stale, []byte(content), 0o644); err != nil {
		t.Fatalf("write stale export: %v", err)
	}
	imported, err := uc.Import(ctx, stale)
	if err != nil {
		t.Fatalf("import stale: %v", err)
	}
	if len(imported.Missing) != 1 || imported.Missing[0] != "retired" || len(imported.TechniqueIDs) != 2 {
		t.Fatalf("unexpected import result: %+v", imported)
	}
}

func TestSuggestAndValidate(t *testing.T) {
	t.Parallel()
	uc := newUsecase(t, t.TempDir())
	ctx := context.Background()

	suggestions, err := uc.Suggest(ctx, dto.SuggestInput{Text: "Walk through it step by step", Exclude: []string{"zero-shot-cot"}})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].ID != "chain-of-thought" || suggestions[0].Name != "Chain of Thought" {
		t.Fatalf("unexpected suggestions: %+v", suggestions)
	}

	result, err := uc.Validate(ctx, dto.PromptInput{Role: "Dev"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid || len(result.Errors) != 1 || len(result.Warnings) != 1 {
		t.Fatalf("unexpected validation: %+v", result)
	}
}

func TestWorkspaceTemplatesOverrideDefaults(t *testing.T) {
	t.Parallel()
	workspace := t.TempDir()
	dir := filepath.Join(workspace, ".promptatlas", "templates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create templates dir: %v", err)
	}
	custom := "id: code-review\nname: Team Review\ntechniques: [few-shot]\ntask: Review against our style guide\n"
	if err := os.WriteFile(filepath.Join(dir, "review.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	extra := "id: tutoring\nname: Tutoring\ntask: Explain the concept to a beginner\n"
	if err := os.WriteFile(filepath.Join(dir, "tutoring.yaml"), []byte(extra), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	uc := newUsecase(t, workspace)

	templates, err := uc.Templates(context.Background())
	if err != nil {
		t.Fatalf("templates: %v", err)
	}
	if len(templates) != len(domain.DefaultTemplates())+1 || templates[len(templates)-1].ID != "tutoring" {
		t.Fatalf("unexpected templates: %+v", templates)
	}
	review, err := uc.Template(context.Background(), "code-review")
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	if review.Name != "Team Review" || len(review.Techniques) != 1 {
		t.Fatalf("workspace template did not replace default: %+v", review)
	}
	if _, err := uc.Template(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
