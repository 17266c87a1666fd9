package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"promptatlas/internal/modules/graph/domain"
)

func assertIntegrity(t *testing.T, data domain.Data) {
	t.Helper()
	ids := map[string]struct{}{}
	for _, n := range data.Nodes {
		ids[n.ID] = struct{}{}
	}
	for _, l := range data.Links {
		_, okS := ids[l.Source]
		_, okT := ids[l.Target]
		assert.True(t, okS && okT, "dangling link %+v", l)
	}
}

func TestFilterGraph(t *testing.T) {
	full := domain.BuildGraphData(cotCatalogue())

	t.Run("no criteria returns equivalent copy", func(t *testing.T) {
		out := domain.FilterGraph(full, domain.Filter{})
		assert.Equal(t, full, out)
		out.Nodes[0].Name = "changed"
		assert.NotEqual(t, "changed", full.Nodes[0].Name)
	})

	t.Run("category criterion", func(t *testing.T) {
		out := domain.FilterGraph(full, domain.Filter{Categories: []string{"reasoning"}})
		assert.Len(t, out.Nodes, 2)
		assert.Equal(t, []string{"chain-of-thought|zero-shot-cot"}, linkSet(out))
	})

	t.Run("min connections criterion", func(t *testing.T) {
		out := domain.FilterGraph(full, domain.Filter{MinConnections: 1})
		assert.Len(t, out.Nodes, 3)
		assert.Len(t, out.Links, 3)
	})

	t.Run("search is case insensitive on name", func(t *testing.T) {
		out := domain.FilterGraph(full, domain.Filter{SearchQuery: "COT"})
		assert.Len(t, out.Nodes, 2)
		assert.Equal(t, []string{"few-shot-cot|zero-shot-cot"}, linkSet(out))
	})

	t.Run("criteria combine with and", func(t *testing.T) {
		out := domain.FilterGraph(full, domain.Filter{Categories: []string{"examples"}, SearchQuery: "cot"})
		assert.Len(t, out.Nodes, 1)
		assert.Equal(t, "few-shot-cot", out.Nodes[0].ID)
		assert.Empty(t, out.Links)
	})

	t.Run("no survivors", func(t *testing.T) {
		out := domain.FilterGraph(full, domain.Filter{SearchQuery: "nothing matches"})
		assert.NotNil(t, out.Nodes)
		assert.NotNil(t, out.Links)
		assert.Empty(t, out.Nodes)
		assert.Empty(t, out.Links)
	})

	t.Run("referential integrity across combinations", func(t *testing.T) {
		filters := []domain.Filter{}
		for _, cats := range [][]string{nil, {"reasoning"}, {"examples"}, {"reasoning", "examples"}, {"missing"}} {
			for _, min := range []int{0, 1, 2, 3} {
				for _, q := range []string{"", "cot", "chain", "iso"} {
					filters = append(filters, domain.Filter{Categories: cats, MinConnections: min, SearchQuery: q})
				}
			}
		}
		for _, f := range filters {
			assertIntegrity(t, domain.FilterGraph(full, f))
		}
	})

	t.Run("is zero", func(t *testing.T) {
		assert.True(t, domain.Filter{SearchQuery: "  "}.IsZero())
		assert.False(t, domain.Filter{MinConnections: 1}.IsZero())
	})
}
