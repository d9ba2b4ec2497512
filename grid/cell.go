package grid

import (
	"encoding/json"
	"fmt"
)

// Cell is a zero-indexed (column, row) grid position.
type Cell struct {
	Col int
	Row int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// MarshalJSON encodes the cell as [col,row].
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Col, c.Row})
}

// UnmarshalJSON decodes a [col,row] pair. Any other length is an error.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("cell must be a [col,row] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("cell must be a [col,row] pair, got %d values", len(pair))
	}
	c.Col, c.Row = pair[0], pair[1]
	return nil
}
