package domain

// NodeRef is a lightweight node view returned by neighbourhood and path
// queries over the projected graph.
type NodeRef struct {
	ID         string
	Name       string
	CategoryID string
}
