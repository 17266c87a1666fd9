// Package domain derives the technique relationship graph from a catalogue.
// Every function is pure: inputs are never mutated and results are freshly
// allocated on each call.
package domain

import (
	catalog "promptatlas/internal/modules/catalog/domain"
)

const (
	minNodeSize      = 5
	maxNodeSize      = 50
	sizePerConnected = 3
)

type Node struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	CategoryID      string   `json:"categoryId"`
	CategoryName    string   `json:"categoryName"`
	ConnectionCount int      `json:"connectionCount"`
	Size            float64  `json:"size"`
	X               *float64 `json:"x,omitempty"`
	Y               *float64 `json:"y,omitempty"`
}

type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

type Data struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

type edgeKey struct{ a, b string }

// canonicalEdge orders a pair so that a <= b.
func canonicalEdge(x, y string) edgeKey {
	if y < x {
		return edgeKey{a: y, b: x}
	}
	return edgeKey{a: x, b: y}
}

// BuildGraphData turns the directed relatedTechniques lists into an
// undirected graph with one link per related pair. References to unknown
// techniques are dropped.
func BuildGraphData(cat catalog.Catalogue) Data {
	index := cat.Index()

	seen := map[edgeKey]struct{}{}
	links := []Link{}
	counts := map[string]int{}
	for _, category := range cat.Categories {
		for _, tech := range category.Techniques {
			for _, related := range tech.Related() {
				if _, ok := index[related]; !ok || related == tech.ID {
					continue
				}
				key := canonicalEdge(tech.ID, related)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				links = append(links, Link{Source: key.a, Target: key.b, Value: 1})
				counts[key.a]++
				counts[key.b]++
			}
		}
	}

	nodes := []Node{}
	emitted := map[string]struct{}{}
	for _, category := range cat.Categories {
		for _, tech := range category.Techniques {
			if _, dup := emitted[tech.ID]; dup {
				continue
			}
			emitted[tech.ID] = struct{}{}
			entry := index[tech.ID]
			nodes = append(nodes, Node{
				ID:              tech.ID,
				Name:            entry.Technique.Name,
				CategoryID:      entry.CategoryID,
				CategoryName:    entry.CategoryName,
				ConnectionCount: counts[tech.ID],
				Size:            CalculateNodeSize(counts[tech.ID]),
			})
		}
	}
	return Data{Nodes: nodes, Links: links}
}

// CalculateNodeSize maps a connection count onto a display radius in
// [minNodeSize, maxNodeSize]. Negative counts are treated as zero.
func CalculateNodeSize(connectionCount int) float64 {
	if connectionCount < 0 {
		connectionCount = 0
	}
	size := minNodeSize + connectionCount*sizePerConnected
	if size > maxNodeSize {
		size = maxNodeSize
	}
	return float64(size)
}

// GetConnectedNodes lists the distinct direct neighbours of nodeID in link
// order, checking both link directions.
func GetConnectedNodes(graph Data, nodeID string) []string {
	out := []string{}
	seen := map[string]struct{}{nodeID: {}}
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, link := range graph.Links {
		switch nodeID {
		case link.Source:
			add(link.Target)
		case link.Target:
			add(link.Source)
		}
	}
	return out
}
