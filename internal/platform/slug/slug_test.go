package slug_test

import (
	"testing"

	"promptatlas/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Chain-of-Thought":     "chain-of-thought",
		"  Tree of Thoughts  ": "tree-of-thoughts",
		"ReAct (Reason+Act)":   "react-reason-act",
		"???":                  "untitled",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
	if got := slug.Wikilink("Few Shot"); got != "[[few-shot]]" {
		t.Fatalf("unexpected wikilink %q", got)
	}
}
