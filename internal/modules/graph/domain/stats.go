package domain

type NodeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Connections int    `json:"connections"`
}

type Stats struct {
	TotalNodes     int          `json:"totalNodes"`
	TotalLinks     int          `json:"totalLinks"`
	AvgConnections float64      `json:"avgConnections"`
	IsolatedNodes  int          `json:"isolatedNodes"`
	MostConnected  *NodeSummary `json:"mostConnected"`
	LeastConnected *NodeSummary `json:"leastConnected"`
}

// GetGraphStats summarises connectivity. Isolated nodes never qualify as
// most or least connected; ties keep the first node in node order.
func GetGraphStats(graph Data) Stats {
	stats := Stats{
		TotalNodes: len(graph.Nodes),
		TotalLinks: len(graph.Links),
	}
	sum := 0
	var most, least *Node
	for i := range graph.Nodes {
		node := &graph.Nodes[i]
		sum += node.ConnectionCount
		if node.ConnectionCount == 0 {
			stats.IsolatedNodes++
			continue
		}
		if most == nil || node.ConnectionCount > most.ConnectionCount {
			most = node
		}
		if least == nil || node.ConnectionCount < least.ConnectionCount {
			least = node
		}
	}
	if stats.TotalNodes > 0 {
		stats.AvgConnections = float64(sum) / float64(stats.TotalNodes)
	}
	stats.MostConnected = summarize(most)
	stats.LeastConnected = summarize(least)
	return stats
}

func summarize(node *Node) *NodeSummary {
	if node == nil {
		return nil
	}
	return &NodeSummary{ID: node.ID, Name: node.Name, Connections: node.ConnectionCount}
}
