package grid

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// Grid is an immutable obstacle map with a start and a goal cell.
// It is safe to share between goroutines.
type Grid struct {
	width      int
	height     int
	walls      []bool // row-major, never written after construction
	start      Cell
	goal       Cell
	goalMarked bool
}

// New builds a grid of the given size with walls at the listed cells.
func New(width, height int, walls []Cell, start, goal Cell) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, configErrorf("grid must be at least 1x1, got %dx%d", width, height)
	}
	g := &Grid{
		width:      width,
		height:     height,
		walls:      make([]bool, width*height),
		goalMarked: true,
	}
	for _, w := range walls {
		if !g.InBounds(w) {
			return nil, configErrorf("wall %s outside %dx%d grid", w, width, height)
		}
		g.walls[g.index(w)] = true
	}
	return g.WithEndpoints(start, goal)
}

func (g *Grid) index(c Cell) int { return c.Row*g.width + c.Col }

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Start() Cell { return g.start }
func (g *Grid) Goal() Cell  { return g.goal }

// GoalMarked is false when the map had no goal marker and the goal fell back to (0,0).
func (g *Grid) GoalMarked() bool { return g.goalMarked }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Col < g.width && c.Row >= 0 && c.Row < g.height
}

// IsBlocked reports whether c is a wall or out of bounds.
func (g *Grid) IsBlocked(c Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.walls[g.index(c)]
}

// WithEndpoints returns a copy of g with new start and goal cells.
// The wall mask is shared, not copied.
func (g *Grid) WithEndpoints(start, goal Cell) (*Grid, error) {
	if err := g.checkEndpoint("start", start); err != nil {
		return nil, err
	}
	if err := g.checkEndpoint("goal", goal); err != nil {
		return nil, err
	}
	out := *g
	out.start, out.goal, out.goalMarked = start, goal, true
	return &out, nil
}

// ValidateEndpoints checks that the current start and goal are searchable.
func (g *Grid) ValidateEndpoints() error {
	if err := g.checkEndpoint("start", g.start); err != nil {
		return err
	}
	return g.checkEndpoint("goal", g.goal)
}

func (g *Grid) checkEndpoint(role string, c Cell) error {
	if !g.InBounds(c) {
		return &EndpointError{Role: role, Cell: c, Reason: "is out of bounds"}
	}
	if g.walls[g.index(c)] {
		return &EndpointError{Role: role, Cell: c, Reason: "is blocked"}
	}
	return nil
}

// Fingerprint identifies the grid contents and endpoints.
func (g *Grid) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	for _, v := range []int{g.width, g.height, g.start.Col, g.start.Row, g.goal.Col, g.goal.Row} {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	packed := make([]byte, (len(g.walls)+7)/8)
	for i, wall := range g.walls {
		if wall {
			packed[i/8] |= 1 << (i % 8)
		}
	}
	h.Write(packed)
	return hex.EncodeToString(h.Sum(nil))
}

// Render writes the map back as text using symbols. Open cells are spaces.
func (g *Grid) Render(symbols Symbols) string {
	var b strings.Builder
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			c := Cell{Col: col, Row: row}
			switch {
			case c == g.start:
				b.WriteRune(symbols.Start)
			case c == g.goal && g.goalMarked:
				b.WriteRune(symbols.Goal)
			case g.walls[g.index(c)]:
				b.WriteRune(symbols.Wall)
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
