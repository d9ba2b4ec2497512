package grid

import "math"

// Reference move costs. The diagonal rate is deliberately above √2.
const (
	DefaultOrthogonalCost = 1.0
	DefaultDiagonalCost   = 1.7
)

// CostModel assigns a fixed cost to orthogonal and diagonal moves.
type CostModel struct {
	Orthogonal float64 `json:"orthogonal" yaml:"orthogonal" mapstructure:"orthogonal"`
	Diagonal   float64 `json:"diagonal" yaml:"diagonal" mapstructure:"diagonal"`
}

// DefaultCosts returns the reference cost model {1.0, 1.7}.
func DefaultCosts() CostModel {
	return CostModel{Orthogonal: DefaultOrthogonalCost, Diagonal: DefaultDiagonalCost}
}

// Validate rejects costs that are not positive finite numbers.
func (c CostModel) Validate() error {
	if !positiveFinite(c.Orthogonal) {
		return configErrorf("orthogonal cost must be a positive number, got %v", c.Orthogonal)
	}
	if !positiveFinite(c.Diagonal) {
		return configErrorf("diagonal cost must be a positive number, got %v", c.Diagonal)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Cost returns the cost of m.
func (c CostModel) Cost(m Move) float64 {
	if m.Diagonal() {
		return c.Diagonal
	}
	return c.Orthogonal
}

// PathCost sums the cost of every move.
func (c CostModel) PathCost(moves []Move) float64 {
	total := 0.0
	for _, m := range moves {
		total += c.Cost(m)
	}
	return total
}

// HeuristicScale is the largest factor by which Euclidean distance can be
// multiplied while never exceeding the cheapest per-unit movement cost.
// It is 1 for the reference costs.
func (c CostModel) HeuristicScale() float64 {
	return math.Min(c.Orthogonal, c.Diagonal/math.Sqrt2)
}

// Euclidean returns the straight-line heuristic for c.
func Euclidean(c CostModel) func(from, to Cell) float64 {
	scale := c.HeuristicScale()
	return func(from, to Cell) float64 {
		dx := float64(from.Col - to.Col)
		dy := float64(from.Row - to.Row)
		distance := math.Sqrt(dx*dx + dy*dy)
		if scale == 1 {
			return distance
		}
		return distance * scale
	}
}
