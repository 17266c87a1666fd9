package domain

import "strings"

// Filter criteria are optional and combine with AND. The zero value of each
// field means the criterion was not provided.
type Filter struct {
	Categories     []string
	MinConnections int
	SearchQuery    string
}

func (f Filter) IsZero() bool {
	return len(f.Categories) == 0 && f.MinConnections <= 0 && strings.TrimSpace(f.SearchQuery) == ""
}

// FilterGraph keeps the nodes matching every criterion and only the links
// whose endpoints both survive.
func FilterGraph(graph Data, filter Filter) Data {
	categories := map[string]struct{}{}
	for _, id := range filter.Categories {
		categories[id] = struct{}{}
	}
	query := strings.ToLower(strings.TrimSpace(filter.SearchQuery))

	nodes := []Node{}
	kept := map[string]struct{}{}
	for _, node := range graph.Nodes {
		if len(categories) > 0 {
			if _, ok := categories[node.CategoryID]; !ok {
				continue
			}
		}
		if node.ConnectionCount < filter.MinConnections {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(node.Name), query) {
			continue
		}
		nodes = append(nodes, node)
		kept[node.ID] = struct{}{}
	}

	links := []Link{}
	for _, link := range graph.Links {
		_, okSource := kept[link.Source]
		_, okTarget := kept[link.Target]
		if okSource && okTarget {
			links = append(links, link)
		}
	}
	return Data{Nodes: nodes, Links: links}
}
