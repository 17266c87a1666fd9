package domain

// NoteMeta is the YAML header of an exported technique note.
type NoteMeta struct {
	SchemaVersion int      `yaml:"schema_version"`
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Category      string   `yaml:"category"`
	Aliases       []string `yaml:"aliases,omitempty"`
	Sources       []string `yaml:"sources,omitempty"`
}

// Note is one markdown file per technique. Body is only used when the note
// does not exist yet; Links always replace the managed block.
type Note struct {
	Slug  string
	Meta  NoteMeta
	Body  string
	Links []string
}

// SplitRelated partitions the declared related IDs of t into those present
// in the catalogue and those that are not, keeping declaration order and
// dropping self references and repeats.
func (c Catalogue) SplitRelated(t Technique) (resolved, unresolved []string) {
	index := c.Index()
	resolved, unresolved = []string{}, []string{}
	seen := map[string]struct{}{t.ID: {}}
	for _, id := range t.Related() {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := index[id]; ok {
			resolved = append(resolved, id)
		} else {
			unresolved = append(unresolved, id)
		}
	}
	return resolved, unresolved
}
