package markdown_test

import (
	"strings"
	"testing"

	"promptatlas/internal/platform/markdown"
)

type header struct {
	ID      string   `yaml:"id"`
	Aliases []string `yaml:"aliases"`
}

func TestFrontmatterRoundTrip(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.RenderFrontmatter(header{ID: "cot", Aliases: []string{"CoT"}}, "# Body\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var got header
	body, err := markdown.SplitFrontmatter(rendered, &got)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if got.ID != "cot" || len(got.Aliases) != 1 || got.Aliases[0] != "CoT" {
		t.Fatalf("unexpected header %+v", got)
	}
	if strings.TrimSpace(body) != "# Body" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestSplitFrontmatterRejectsUnclosedHeader(t *testing.T) {
	t.Parallel()
	var got header
	if _, err := markdown.SplitFrontmatter("---\nid: x\n", &got); err == nil {
		t.Fatalf("expected error for unclosed header")
	}
	body, err := markdown.SplitFrontmatter("plain", &got)
	if err != nil || body != "plain" {
		t.Fatalf("plain content should pass through, got %q %v", body, err)
	}
}

func TestReplaceManagedBlockKeepsUserText(t *testing.T) {
	t.Parallel()
	const start, end = "<!-- s -->", "<!-- e -->"
	first := markdown.ReplaceManagedBlock("my notes\n", start, end, "[[a]]")
	if !strings.HasPrefix(first, "my notes\n") || !strings.Contains(first, "[[a]]") {
		t.Fatalf("unexpected first render %q", first)
	}
	second := markdown.ReplaceManagedBlock(first, start, end, "[[b]]")
	if strings.Contains(second, "[[a]]") || !strings.Contains(second, "[[b]]") || !strings.HasPrefix(second, "my notes\n") {
		t.Fatalf("unexpected second render %q", second)
	}
	if got := markdown.ReplaceManagedBlock("  ", start, end, "x"); got != start+"\nx\n"+end+"\n" {
		t.Fatalf("unexpected empty-body render %q", got)
	}
}
