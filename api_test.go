package gridpath_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/grid"
)

type mapGraph map[string][]gridpath.Neighbor[string]

func (g mapGraph) Neighbors(node string) []gridpath.Neighbor[string] { return g[node] }

func zero(string, string) float64 { return 0 }

func TestSearchFindsCheapestPath(t *testing.T) {
	graph := mapGraph{
		"S": {{ID: "A", Cost: 1}, {ID: "B", Cost: 5}},
		"A": {{ID: "B", Cost: 1}},
		"B": {{ID: "G", Cost: 1}},
	}

	result, err := gridpath.Search(context.Background(), graph, "S", "G", zero)
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, []string{"S", "A", "B", "G"}, result.Path)
	assert.InDelta(t, 3.0, result.TotalCost, 1e-9)
}

func TestSearchNoPathIsNotAnError(t *testing.T) {
	graph := mapGraph{
		"S": {{ID: "A", Cost: 1}},
		"G": {{ID: "S", Cost: 1}},
	}

	result, err := gridpath.Search(context.Background(), graph, "S", "G", zero)
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Nil(t, result.Path)
	assert.Equal(t, 2, result.ExpandedNodes)
}

func TestSearchStartIsGoal(t *testing.T) {
	result, err := gridpath.Search(context.Background(), mapGraph{}, "S", "S", zero)
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, []string{"S"}, result.Path)
	assert.Zero(t, result.TotalCost)
	assert.Equal(t, 1, result.ExpandedNodes)
}

func TestSearchCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := gridpath.Search(ctx, mapGraph{"S": {{ID: "G", Cost: 1}}}, "S", "G", zero)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, result.Found)
	assert.Zero(t, result.ExpandedNodes)
}

func TestSearchExpansionLimit(t *testing.T) {
	graph := mapGraph{
		"S": {{ID: "A", Cost: 1}},
		"A": {{ID: "B", Cost: 1}},
		"B": {{ID: "G", Cost: 1}},
	}

	result, err := gridpath.Search(context.Background(), graph, "S", "G", zero, gridpath.WithExpansionLimit(2))
	assert.ErrorIs(t, err, gridpath.ErrExpansionLimit)
	assert.False(t, result.Found)
	assert.Equal(t, 2, result.ExpandedNodes)
}

const openTenByTen = `
o.........
..........
...####...
...#..#...
...#..#...
...#......
..........
.......##.
.......#x.
..........
`

func TestSearchWorkersMatchInline(t *testing.T) {
	g, err := grid.Parse(openTenByTen, grid.Symbols{Wall: '#', Start: 'o', Goal: 'x'})
	require.NoError(t, err)
	graph := grid.NewGraph(g, grid.DefaultCosts())
	heuristic := grid.Euclidean(grid.DefaultCosts())

	inline, err := gridpath.Search(context.Background(), graph, g.Start(), g.Goal(), heuristic)
	require.NoError(t, err)
	require.True(t, inline.Found)

	for _, workers := range []int{1, 2, 8} {
		pooled, err := gridpath.Search(context.Background(), graph, g.Start(), g.Goal(), heuristic, gridpath.WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, inline, pooled, "workers=%d", workers)
	}
}

func TestSearchRepeatable(t *testing.T) {
	g, err := grid.Parse(openTenByTen, grid.Symbols{Wall: '#', Start: 'o', Goal: 'x'})
	require.NoError(t, err)
	graph := grid.NewGraph(g, grid.DefaultCosts())
	heuristic := grid.Euclidean(grid.DefaultCosts())

	first, err := gridpath.Search(context.Background(), graph, g.Start(), g.Goal(), heuristic)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := gridpath.Search(context.Background(), graph, g.Start(), g.Goal(), heuristic)
		require.NoError(t, err)
		assert.Equal(t, first.Path, again.Path)
	}
}
