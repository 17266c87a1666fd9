package domain_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "promptatlas/internal/modules/catalog/domain"
	"promptatlas/internal/modules/graph/domain"
)

func cotCatalogue() catalog.Catalogue {
	return catalog.Catalogue{Categories: []catalog.Category{
		{ID: "reasoning", Name: "Reasoning", Techniques: []catalog.Technique{
			{ID: "chain-of-thought", Name: "Chain of Thought", RelatedTechniques: []string{"zero-shot-cot", "few-shot-cot"}},
			{ID: "zero-shot-cot", Name: "Zero-Shot CoT", RelatedTechniques: []string{"chain-of-thought"}},
		}},
		{ID: "examples", Name: "Examples", Techniques: []catalog.Technique{
			{ID: "few-shot-cot", Name: "Few-Shot CoT", RelatedTechniques: []string{"chain-of-thought", "zero-shot-cot"}},
			{ID: "isolated-technique", Name: "Isolated"},
		}},
	}}
}

func nodeByID(t *testing.T, data domain.Data, id string) domain.Node {
	t.Helper()
	for _, n := range data.Nodes {
		if n.ID == id {
			return n
		}
	}
	t.Fatalf("node %s not found", id)
	return domain.Node{}
}

func linkSet(data domain.Data) []string {
	out := make([]string, 0, len(data.Links))
	for _, l := range data.Links {
		out = append(out, l.Source+"|"+l.Target)
	}
	sort.Strings(out)
	return out
}

func TestBuildGraphData(t *testing.T) {
	t.Run("empty catalogue returns empty graph", func(t *testing.T) {
		data := domain.BuildGraphData(catalog.Catalogue{})

		assert.NotNil(t, data.Nodes)
		assert.NotNil(t, data.Links)
		assert.Empty(t, data.Nodes)
		assert.Empty(t, data.Links)
	})

	t.Run("chain of thought scenario", func(t *testing.T) {
		data := domain.BuildGraphData(cotCatalogue())

		require.Len(t, data.Nodes, 4)
		assert.Equal(t, []string{
			"chain-of-thought|few-shot-cot",
			"chain-of-thought|zero-shot-cot",
			"few-shot-cot|zero-shot-cot",
		}, linkSet(data))
		assert.Equal(t, 0, nodeByID(t, data, "isolated-technique").ConnectionCount)
		assert.Equal(t, 2, nodeByID(t, data, "chain-of-thought").ConnectionCount)
		assert.Equal(t, 2, nodeByID(t, data, "zero-shot-cot").ConnectionCount)

		stats := domain.GetGraphStats(data)
		assert.Equal(t, 1, stats.IsolatedNodes)
		assert.Equal(t, 3, stats.TotalLinks)
	})

	t.Run("one link regardless of declared direction", func(t *testing.T) {
		cases := []struct {
			name       string
			relA, relB []string
		}{
			{name: "a to b only", relA: []string{"b"}},
			{name: "b to a only", relB: []string{"a"}},
			{name: "both directions", relA: []string{"b"}, relB: []string{"a"}},
		}
		for _, tc := range cases {
			cat := catalog.Catalogue{Categories: []catalog.Category{{ID: "c", Techniques: []catalog.Technique{
				{ID: "b", Name: "B", RelatedTechniques: tc.relB},
				{ID: "a", Name: "A", RelatedTechniques: tc.relA},
			}}}}
			data := domain.BuildGraphData(cat)
			require.Len(t, data.Links, 1, tc.name)
			assert.Equal(t, domain.Link{Source: "a", Target: "b", Value: 1}, data.Links[0], tc.name)
			assert.Equal(t, 1, nodeByID(t, data, "a").ConnectionCount, tc.name)
			assert.Equal(t, 1, nodeByID(t, data, "b").ConnectionCount, tc.name)
		}
	})

	t.Run("unknown and self references are dropped", func(t *testing.T) {
		cat := catalog.Catalogue{Categories: []catalog.Category{{ID: "c", Name: "C", Techniques: []catalog.Technique{
			{ID: "a", Name: "A", RelatedTechniques: []string{"ghost", "a"}},
		}}}}
		data := domain.BuildGraphData(cat)

		require.Len(t, data.Nodes, 1)
		assert.Empty(t, data.Links)
		assert.Equal(t, 0, data.Nodes[0].ConnectionCount)
		assert.Equal(t, "C", data.Nodes[0].CategoryName)
		assert.Nil(t, data.Nodes[0].X)
	})

	t.Run("node size follows connection count", func(t *testing.T) {
		data := domain.BuildGraphData(cotCatalogue())
		for _, n := range data.Nodes {
			assert.Equal(t, domain.CalculateNodeSize(n.ConnectionCount), n.Size)
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		cat := cotCatalogue()
		_ = domain.BuildGraphData(cat)
		assert.Equal(t, cotCatalogue(), cat)
	})
}

func TestCalculateNodeSize(t *testing.T) {
	assert.Equal(t, 5.0, domain.CalculateNodeSize(0))
	assert.Equal(t, 8.0, domain.CalculateNodeSize(1))
	assert.Equal(t, 50.0, domain.CalculateNodeSize(15))
	assert.Equal(t, 50.0, domain.CalculateNodeSize(1000))
	assert.Equal(t, domain.CalculateNodeSize(0), domain.CalculateNodeSize(-5))

	prev := domain.CalculateNodeSize(-10)
	for c := -9; c <= 40; c++ {
		size := domain.CalculateNodeSize(c)
		assert.GreaterOrEqual(t, size, prev, "count %d", c)
		assert.GreaterOrEqual(t, size, 5.0)
		assert.LessOrEqual(t, size, 50.0)
		prev = size
	}
}

func TestGetConnectedNodes(t *testing.T) {
	data := domain.BuildGraphData(cotCatalogue())

	assert.ElementsMatch(t, []string{"zero-shot-cot", "few-shot-cot"}, domain.GetConnectedNodes(data, "chain-of-thought"))
	assert.ElementsMatch(t, []string{"chain-of-thought", "few-shot-cot"}, domain.GetConnectedNodes(data, "zero-shot-cot"))
	assert.Empty(t, domain.GetConnectedNodes(data, "isolated-technique"))
	assert.Empty(t, domain.GetConnectedNodes(data, "missing"))

	looped := domain.Data{Links: []domain.Link{
		{Source: "a", Target: "a", Value: 1},
		{Source: "a", Target: "b", Value: 1},
		{Source: "a", Target: "b", Value: 1},
	}}
	assert.Equal(t, []string{"b"}, domain.GetConnectedNodes(looped, "a"))
}
