package domain

import "strings"

const minFieldLength = 5

type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// ValidatePromptData requires a task and warns about very short fields.
func ValidatePromptData(data Data) ValidationResult {
	out := ValidationResult{Errors: []Issue{}, Warnings: []Issue{}}

	task := trimmedLen(data.Task)
	switch {
	case task == 0:
		out.Errors = append(out.Errors, Issue{Field: SectionTask, Message: "task is required"})
	case task < minFieldLength:
		out.Warnings = append(out.Warnings, Issue{Field: SectionTask, Message: "task is very short; describe what you want in more detail"})
	}

	if role := trimmedLen(data.Role); role > 0 && role < minFieldLength {
		out.Warnings = append(out.Warnings, Issue{Field: SectionRole, Message: "role is very short; name the expertise the model should adopt"})
	}

	out.Valid = len(out.Errors) == 0
	return out
}

// HasContent reports whether any field carries non-blank text.
func (d Data) HasContent() bool {
	for _, s := range []string{d.Role, d.Task, d.Context, d.Output} {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
