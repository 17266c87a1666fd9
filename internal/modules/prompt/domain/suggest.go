package domain

import (
	"strings"

	catalog "promptatlas/internal/modules/catalog/domain"
)

const MaxSuggestions = 5

type keywordRule struct {
	keyword    string
	techniques []string
}

// keywordTable is scanned in order; earlier rules win when the cap is hit.
var keywordTable = []keywordRule{
	{"step by step", []string{"chain-of-thought", "zero-shot-cot"}},
	{"solve", []string{"chain-of-thought", "least-to-most", "tree-of-thoughts"}},
	{"reason", []string{"chain-of-thought", "self-consistency"}},
	{"math", []string{"chain-of-thought", "program-of-thoughts"}},
	{"calculate", []string{"program-of-thoughts", "chain-of-thought"}},
	{"analyze", []string{"chain-of-thought", "self-ask"}},
	{"analyse", []string{"chain-of-thought", "self-ask"}},
	{"code", []string{"program-of-thoughts", "chain-of-thought"}},
	{"few-shot", []string{"few-shot", "few-shot-cot"}},
	{"example", []string{"few-shot", "few-shot-cot"}},
	{"compare", []string{"tree-of-thoughts", "self-consistency"}},
	{"multiple", []string{"self-consistency", "tree-of-thoughts"}},
	{"plan", []string{"plan-and-solve", "least-to-most"}},
	{"break down", []string{"least-to-most", "decomposed-prompting"}},
	{"complex", []string{"least-to-most", "tree-of-thoughts"}},
	{"research", []string{"react", "self-ask"}},
	{"search", []string{"react"}},
	{"tool", []string{"react"}},
	{"verify", []string{"chain-of-verification", "self-refine"}},
	{"fact", []string{"chain-of-verification"}},
	{"review", []string{"self-refine", "chain-of-verification"}},
	{"improve", []string{"self-refine"}},
	{"creative", []string{"tree-of-thoughts"}},
	{"persona", []string{"role-prompting"}},
	{"expert", []string{"role-prompting"}},
}

// SuggestTechniques matches the keyword table against taskText and returns
// up to MaxSuggestions technique IDs that exist in the catalogue and are not
// excluded.
func SuggestTechniques(taskText string, cat catalog.Catalogue, excludeIDs []string) []string {
	text := strings.ToLower(taskText)
	out := []string{}
	if strings.TrimSpace(text) == "" {
		return out
	}
	index := cat.Index()
	skip := map[string]struct{}{}
	for _, id := range excludeIDs {
		skip[id] = struct{}{}
	}

	for _, rule := range keywordTable {
		if !strings.Contains(text, rule.keyword) {
			continue
		}
		for _, id := range rule.techniques {
			if _, ok := index[id]; !ok {
				continue
			}
			if _, ok := skip[id]; ok {
				continue
			}
			skip[id] = struct{}{}
			out = append(out, id)
			if len(out) == MaxSuggestions {
				return out
			}
		}
	}
	return out
}
