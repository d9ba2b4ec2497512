package grid

import "fmt"

// Move is one of the eight movement directions.
type Move uint8

const (
	Up Move = iota
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
)

type moveInfo struct {
	name     string
	dCol     int
	dRow     int
	diagonal bool
}

var moveTable = [...]moveInfo{
	Up:        {name: "up", dRow: -1},
	Down:      {name: "down", dRow: 1},
	Left:      {name: "left", dCol: -1},
	Right:     {name: "right", dCol: 1},
	UpLeft:    {name: "up-left", dCol: -1, dRow: -1, diagonal: true},
	UpRight:   {name: "up-right", dCol: 1, dRow: -1, diagonal: true},
	DownLeft:  {name: "down-left", dCol: -1, dRow: 1, diagonal: true},
	DownRight: {name: "down-right", dCol: 1, dRow: 1, diagonal: true},
}

var allMoves = [...]Move{Up, Down, Left, Right, UpLeft, UpRight, DownLeft, DownRight}

// Moves returns the eight moves in generation order.
func Moves() []Move {
	out := allMoves
	return out[:]
}

// Valid reports whether m is one of the eight moves.
func (m Move) Valid() bool { return int(m) < len(moveTable) }

// Delta returns the column and row offsets of m.
func (m Move) Delta() (dCol, dRow int) {
	info := moveTable[m]
	return info.dCol, info.dRow
}

// Diagonal reports whether m changes both column and row.
func (m Move) Diagonal() bool { return moveTable[m].diagonal }

func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Move(%d)", uint8(m))
	}
	return moveTable[m].name
}

// MarshalText encodes the move by name.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("unknown move %d", uint8(m))
	}
	return []byte(moveTable[m].name), nil
}

func (m *Move) UnmarshalText(text []byte) error {
	for candidate, info := range moveTable {
		if info.name == string(text) {
			*m = Move(candidate)
			return nil
		}
	}
	return fmt.Errorf("unknown move %q", text)
}

// Apply returns the cell reached from c by m. It performs no bounds checks.
func Apply(c Cell, m Move) Cell {
	dCol, dRow := m.Delta()
	return Cell{Col: c.Col + dCol, Row: c.Row + dRow}
}

// MoveBetween returns the single move that takes from to to, if any.
func MoveBetween(from, to Cell) (Move, bool) {
	dCol, dRow := to.Col-from.Col, to.Row-from.Row
	for _, m := range allMoves {
		if mc, mr := m.Delta(); mc == dCol && mr == dRow {
			return m, true
		}
	}
	return 0, false
}

// MovesAlong converts a path into the moves between consecutive cells.
func MovesAlong(path []Cell) ([]Move, error) {
	if len(path) < 2 {
		return []Move{}, nil
	}
	moves := make([]Move, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		m, ok := MoveBetween(path[i-1], path[i])
		if !ok {
			return nil, fmt.Errorf("cells %s and %s are not adjacent", path[i-1], path[i])
		}
		moves = append(moves, m)
	}
	return moves, nil
}
