package grid

import "github.com/pdrpinto/gridpath"

// Actions returns the legal moves from c: those whose destination is inside
// the grid and not a wall. Order follows Moves().
func Actions(g *Grid, c Cell) []Move {
	actions := make([]Move, 0, len(allMoves))
	for _, m := range allMoves {
		if !g.IsBlocked(Apply(c, m)) {
			actions = append(actions, m)
		}
	}
	return actions
}

// Graph adapts a Grid and CostModel to gridpath.Graph.
type Graph struct {
	grid  *Grid
	costs CostModel
}

var _ gridpath.Graph[Cell] = (*Graph)(nil)

// NewGraph returns the eight-direction search graph over g.
func NewGraph(g *Grid, costs CostModel) *Graph {
	return &Graph{grid: g, costs: costs}
}

// Neighbors returns every legal successor of c with its move cost.
func (gr *Graph) Neighbors(c Cell) []gridpath.Neighbor[Cell] {
	actions := Actions(gr.grid, c)
	out := make([]gridpath.Neighbor[Cell], 0, len(actions))
	for _, m := range actions {
		out = append(out, gridpath.Neighbor[Cell]{ID: Apply(c, m), Cost: gr.costs.Cost(m)})
	}
	return out
}
