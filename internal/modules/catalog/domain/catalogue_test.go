package domain_test

import (
	"errors"
	"testing"

	"promptatlas/internal/modules/catalog/domain"
	apperrors "promptatlas/internal/platform/errors"
)

func sample() domain.Catalogue {
	return domain.Catalogue{Categories: []domain.Category{
		{ID: "reasoning", Name: "Reasoning", Techniques: []domain.Technique{
			{ID: "chain-of-thought", Name: "Chain of Thought", Description: "Think step by step", Aliases: []string{"CoT"}},
			{ID: "tree-of-thoughts", Name: "Tree of Thoughts", Description: "Explore branches"},
		}},
		{ID: "examples", Name: "Examples", Techniques: []domain.Technique{
			{ID: "few-shot", Name: "Few-Shot", Description: "Show worked examples"},
		}},
	}}
}

func TestCatalogueValidate(t *testing.T) {
	t.Parallel()
	if err := sample().Validate(); err != nil {
		t.Fatalf("sample should be valid: %v", err)
	}

	dupTechnique := sample()
	dupTechnique.Categories[1].Techniques = append(dupTechnique.Categories[1].Techniques, domain.Technique{ID: "chain-of-thought"})
	if err := dupTechnique.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("duplicate technique across categories should fail, got %v", err)
	}

	dupCategory := sample()
	dupCategory.Categories[1].ID = "reasoning"
	if err := dupCategory.Validate(); err == nil {
		t.Fatalf("duplicate category should fail")
	}

	missingID := sample()
	missingID.Categories[0].Techniques[0].ID = " "
	if err := missingID.Validate(); err == nil {
		t.Fatalf("blank technique id should fail")
	}

	if err := (domain.Catalogue{}).Validate(); err != nil {
		t.Fatalf("empty catalogue is valid: %v", err)
	}
}

func TestFindTechniqueAndIndex(t *testing.T) {
	t.Parallel()
	cat := sample()
	entry, ok := cat.FindTechnique("few-shot")
	if !ok || entry.CategoryID != "examples" || entry.CategoryName != "Examples" {
		t.Fatalf("unexpected entry %+v %v", entry, ok)
	}
	if _, ok := cat.FindTechnique("missing"); ok {
		t.Fatalf("missing id should not resolve")
	}
	idx := cat.Index()
	if len(idx) != 3 || idx["tree-of-thoughts"].CategoryID != "reasoning" {
		t.Fatalf("unexpected index %+v", idx)
	}
	if cat.TechniqueCount() != 3 {
		t.Fatalf("expected 3 techniques, got %d", cat.TechniqueCount())
	}
}

func TestRelatedNeverNil(t *testing.T) {
	t.Parallel()
	if got := (domain.Technique{}).Related(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()
	cat := sample()
	if got := cat.Search(domain.Filter{}); len(got) != 3 {
		t.Fatalf("no filter should list all, got %d", len(got))
	}
	if got := cat.Search(domain.Filter{Query: "cot"}); len(got) != 1 || got[0].Technique.ID != "chain-of-thought" {
		t.Fatalf("alias match failed: %+v", got)
	}
	if got := cat.Search(domain.Filter{Query: "EXAMPLES"}); len(got) != 1 || got[0].Technique.ID != "few-shot" {
		t.Fatalf("description match failed: %+v", got)
	}
	if got := cat.Search(domain.Filter{CategoryID: "reasoning", Query: "few"}); len(got) != 0 {
		t.Fatalf("criteria must combine, got %+v", got)
	}
}

func TestSplitRelated(t *testing.T) {
	t.Parallel()
	cat := sample()
	tech := domain.Technique{ID: "chain-of-thought", RelatedTechniques: []string{"few-shot", "ghost", "chain-of-thought", "few-shot", "tree-of-thoughts"}}

	resolved, unresolved := cat.SplitRelated(tech)
	if len(resolved) != 2 || resolved[0] != "few-shot" || resolved[1] != "tree-of-thoughts" {
		t.Fatalf("unexpected resolved ids: %v", resolved)
	}
	if len(unresolved) != 1 || unresolved[0] != "ghost" {
		t.Fatalf("unexpected unresolved ids: %v", unresolved)
	}

	resolved, unresolved = cat.SplitRelated(domain.Technique{ID: "few-shot"})
	if resolved == nil || unresolved == nil || len(resolved)+len(unresolved) != 0 {
		t.Fatalf("expected empty non-nil slices, got %v %v", resolved, unresolved)
	}
}
