package domain

import (
	"fmt"
	"strings"

	apperrors "promptatlas/internal/platform/errors"
)

const (
	ManagedLinksStart = "<!-- promptatlas:related:start -->"
	ManagedLinksEnd   = "<!-- promptatlas:related:end -->"
	NoteSchemaVersion = 1
)

// Catalogue is the parsed technique dataset. It is read-only once loaded.
type Catalogue struct {
	Version     string         `json:"version"`
	LastUpdated string         `json:"lastUpdated"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Categories  []Category     `json:"categories"`
}

type Category struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Techniques  []Technique `json:"techniques"`
}

type Technique struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Aliases           []string `json:"aliases,omitempty"`
	Example           string   `json:"example,omitempty"`
	Sources           []string `json:"sources,omitempty"`
	UseCase           string   `json:"useCase,omitempty"`
	Tips              string   `json:"tips,omitempty"`
	CommonMistakes    string   `json:"commonMistakes,omitempty"`
	RelatedTechniques []string `json:"relatedTechniques,omitempty"`
}

// Related returns the declared related IDs; never nil.
func (t Technique) Related() []string {
	if t.RelatedTechniques == nil {
		return []string{}
	}
	return t.RelatedTechniques
}

// Entry locates a technique inside its category.
type Entry struct {
	Technique    Technique
	CategoryID   string
	CategoryName string
}

func (c Catalogue) Validate() error {
	categories := map[string]struct{}{}
	techniques := map[string]string{}
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat.ID) == "" {
			return fmt.Errorf("%w: category without id", apperrors.ErrInvalidInput)
		}
		if _, dup := categories[cat.ID]; dup {
			return fmt.Errorf("%w: duplicate category id %q", apperrors.ErrInvalidInput, cat.ID)
		}
		categories[cat.ID] = struct{}{}
		for _, tech := range cat.Techniques {
			if strings.TrimSpace(tech.ID) == "" {
				return fmt.Errorf("%w: technique without id in category %q", apperrors.ErrInvalidInput, cat.ID)
			}
			if owner, dup := techniques[tech.ID]; dup {
				return fmt.Errorf("%w: duplicate technique id %q in categories %q and %q", apperrors.ErrInvalidInput, tech.ID, owner, cat.ID)
			}
			techniques[tech.ID] = cat.ID
		}
	}
	return nil
}

// FindTechnique scans categories in order; first match wins.
func (c Catalogue) FindTechnique(id string) (Entry, bool) {
	for _, cat := range c.Categories {
		for _, tech := range cat.Techniques {
			if tech.ID == id {
				return Entry{Technique: tech, CategoryID: cat.ID, CategoryName: cat.Name}, true
			}
		}
	}
	return Entry{}, false
}

// Index maps every technique ID to its entry. Earlier entries win on
// duplicate IDs, matching FindTechnique.
func (c Catalogue) Index() map[string]Entry {
	out := map[string]Entry{}
	for _, cat := range c.Categories {
		for _, tech := range cat.Techniques {
			if _, seen := out[tech.ID]; seen {
				continue
			}
			out[tech.ID] = Entry{Technique: tech, CategoryID: cat.ID, CategoryName: cat.Name}
		}
	}
	return out
}

func (c Catalogue) TechniqueCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Techniques)
	}
	return n
}

type Filter struct {
	CategoryID string
	Query      string
}

// Search lists techniques in catalogue order that satisfy every set
// criterion. The query matches name, description and aliases.
func (c Catalogue) Search(filter Filter) []Entry {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := []Entry{}
	for _, cat := range c.Categories {
		if filter.CategoryID != "" && cat.ID != filter.CategoryID {
			continue
		}
		for _, tech := range cat.Techniques {
			if query != "" && !tech.matches(query) {
				continue
			}
			out = append(out, Entry{Technique: tech, CategoryID: cat.ID, CategoryName: cat.Name})
		}
	}
	return out
}

func (t Technique) matches(lowerQuery string) bool {
	if strings.Contains(strings.ToLower(t.Name), lowerQuery) || strings.Contains(strings.ToLower(t.Description), lowerQuery) {
		return true
	}
	for _, alias := range t.Aliases {
		if strings.Contains(strings.ToLower(alias), lowerQuery) {
			return true
		}
	}
	return false
}
