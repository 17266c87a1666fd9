package dto

type NodeOutput struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CategoryID      string  `json:"category_id"`
	CategoryName    string  `json:"category_name"`
	ConnectionCount int     `json:"connection_count"`
	Size            float64 `json:"size"`
}

type LinkOutput struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

type GraphOutput struct {
	Nodes []NodeOutput `json:"nodes"`
	Links []LinkOutput `json:"links"`
}

type NodeSummaryOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Connections int    `json:"connections"`
}

type StatsOutput struct {
	TotalNodes     int                `json:"total_nodes"`
	TotalLinks     int                `json:"total_links"`
	AvgConnections float64            `json:"avg_connections"`
	IsolatedNodes  int                `json:"isolated_nodes"`
	MostConnected  *NodeSummaryOutput `json:"most_connected,omitempty"`
	LeastConnected *NodeSummaryOutput `json:"least_connected,omitempty"`
}

type ColorOutput struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Color        string `json:"color"`
}

type NodeRefOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

type ConnectedOutput struct {
	FocusID string          `json:"focus_id"`
	Nodes   []NodeRefOutput `json:"nodes"`
}

type NeighborsOutput struct {
	FocusID string          `json:"focus_id"`
	Depth   int             `json:"depth"`
	Nodes   []NodeRefOutput `json:"nodes"`
}

type PathOutput struct {
	FromID string          `json:"from_id"`
	ToID   string          `json:"to_id"`
	Found  bool            `json:"found"`
	Nodes  []NodeRefOutput `json:"nodes"`
}
