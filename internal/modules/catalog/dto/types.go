package dto

type ListTechniquesInput struct {
	CategoryID string
	Query      string
}

type ExportNotesInput struct {
	Dir string
}

type ReindexInput struct{}

type CategoryOutput struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	TechniqueCount int    `json:"technique_count"`
}

type TechniqueOutput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	CategoryID   string   `json:"category_id"`
	CategoryName string   `json:"category_name"`
	Aliases      []string `json:"aliases,omitempty"`
}

type TechniqueDetailOutput struct {
	TechniqueOutput
	Example        string   `json:"example,omitempty"`
	Sources        []string `json:"sources,omitempty"`
	UseCase        string   `json:"use_case,omitempty"`
	Tips           string   `json:"tips,omitempty"`
	CommonMistakes string   `json:"common_mistakes,omitempty"`
	Related        []string `json:"related"`
	Unresolved     []string `json:"unresolved_related"`
}

type ReindexOutput struct {
	Categories int `json:"categories"`
	Techniques int `json:"techniques"`
}

type ExportNotesOutput struct {
	Dir   string   `json:"dir"`
	Paths []string `json:"paths"`
}
