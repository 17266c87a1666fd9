package dto

type PromptInput struct {
	Role    string
	Task    string
	Context string
	Output  string
}

type GenerateInput struct {
	PromptInput
	TechniqueIDs []string
	Export       bool
}

type SuggestInput struct {
	Text    string
	Exclude []string
}

type IssueOutput struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationOutput struct {
	Valid    bool          `json:"valid"`
	Errors   []IssueOutput `json:"errors"`
	Warnings []IssueOutput `json:"warnings"`
}

type QualityOutput struct {
	Score       int            `json:"score"`
	Level       string         `json:"level"`
	Breakdown   map[string]int `json:"breakdown"`
	Suggestions []string       `json:"suggestions"`
}

type StatsOutput struct {
	CharCount       int `json:"char_count"`
	EstimatedTokens int `json:"estimated_tokens"`
	TechniqueCount  int `json:"technique_count"`
}

type GenerateOutput struct {
	Prompt       string            `json:"prompt"`
	Sections     map[string]string `json:"sections"`
	Instructions string            `json:"instructions"`
	TechniqueIDs []string          `json:"technique_ids"`
	Quality      QualityOutput     `json:"quality"`
	Stats        StatsOutput       `json:"stats"`
	Validation   ValidationOutput  `json:"validation"`
	ExportID     string            `json:"export_id,omitempty"`
	ExportPath   string            `json:"export_path,omitempty"`
}

type SuggestionOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TemplateOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Techniques  []string `json:"techniques"`
	Role        string   `json:"role"`
	Task        string   `json:"task"`
	Context     string   `json:"context"`
	Output      string   `json:"output"`
}

type ImportOutput struct {
	Prompt       string   `json:"prompt"`
	Role         string   `json:"role"`
	Task         string   `json:"task"`
	Context      string   `json:"context"`
	Output       string   `json:"output"`
	TechniqueIDs []string `json:"technique_ids"`
	Missing      []string `json:"missing_techniques"`
	ExportID     string   `json:"export_id,omitempty"`
	ExportedAt   string   `json:"exported_at,omitempty"`
}
