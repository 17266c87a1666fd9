package domain

import (
	"fmt"
	"strings"
)

type Template struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Techniques  []string `json:"techniques" yaml:"techniques"`
	Role        string   `json:"role" yaml:"role"`
	Task        string   `json:"task" yaml:"task"`
	Context     string   `json:"context" yaml:"context"`
	Output      string   `json:"output" yaml:"output"`
}

func (t Template) Data() Data {
	return Data{Role: t.Role, Task: t.Task, Context: t.Context, Output: t.Output}
}

func (t Template) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("template id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("template %q: name is required", t.ID)
	}
	return nil
}

// DefaultTemplates returns the built-in starting points. Technique IDs are
// not checked against any catalogue here.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:          "problem-solving",
			Name:        "Problem Solving",
			Description: "Work through a problem with explicit intermediate reasoning.",
			Techniques:  []string{"chain-of-thought", "self-consistency"},
			Role:        "You are a careful analytical problem solver who explains each step of your reasoning.",
			Task:        "Solve the following problem step by step, checking each intermediate result before moving on.",
			Context:     "The audience needs to follow and verify the reasoning, not just the answer.",
			Output:      "A numbered list of reasoning steps followed by a clearly marked final answer.",
		},
		{
			ID:          "code-review",
			Name:        "Code Review",
			Description: "Review a change for correctness, clarity and risk.",
			Techniques:  []string{"role-prompting", "chain-of-verification"},
			Role:        "You are a senior software engineer performing a thorough code review.",
			Task:        "Review the code below and identify bugs, unclear naming, missing tests and risky changes.",
			Context:     "The change will be merged into a production service maintained by a small team.",
			Output:      "Findings grouped by severity, each with the file, the problem and a suggested fix.",
		},
		{
			ID:          "creative-writing",
			Name:        "Creative Writing",
			Description: "Explore several creative directions before committing to one.",
			Techniques:  []string{"tree-of-thoughts", "few-shot"},
			Role:        "You are an imaginative writer with a strong sense of voice and pacing.",
			Task:        "Write a short story based on the premise below after sketching three possible directions.",
			Context:     "The story is for a general adult audience and should stay under 800 words.",
			Output:      "The three sketched directions, the chosen one, then the finished story.",
		},
		{
			ID:          "data-analysis",
			Name:        "Data Analysis",
			Description: "Analyze a dataset and report findings with supporting evidence.",
			Techniques:  []string{"chain-of-thought", "program-of-thoughts"},
			Role:        "You are a data analyst who backs every claim with numbers.",
			Task:        "Analyze the dataset below, identify the main trends and flag anomalies.",
			Context:     "Decision makers will act on the findings, so uncertainty must be stated.",
			Output:      "A summary paragraph, a bullet list of findings, and any code used for calculations.",
		},
		{
			ID:          "research-summary",
			Name:        "Research Summary",
			Description: "Answer a research question by decomposing it into sub-questions.",
			Techniques:  []string{"self-ask", "react"},
			Role:        "You are a meticulous research assistant.",
			Task:        "Answer the research question below by breaking it into sub-questions and answering each one.",
			Context:     "Sources may disagree; note conflicts instead of hiding them.",
			Output:      "Sub-questions with short answers, then a synthesized conclusion with cited sources.",
		},
	}
}

// MergeTemplates appends extra templates after base; an extra template with
// an existing ID replaces the base entry in place.
func MergeTemplates(base, extra []Template) []Template {
	out := make([]Template, 0, len(base)+len(extra))
	out = append(out, base...)
	position := map[string]int{}
	for i, t := range out {
		position[t.ID] = i
	}
	for _, t := range extra {
		if i, ok := position[t.ID]; ok {
			out[i] = t
			continue
		}
		position[t.ID] = len(out)
		out = append(out, t)
	}
	return out
}

func FindTemplate(templates []Template, id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
