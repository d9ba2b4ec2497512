package grid

import (
	"strings"
	"unicode/utf8"
)

// Parse reads a map where each non-empty line is a row.
func Parse(text string, symbols Symbols) (*Grid, error) {
	return ParseRows(SplitRows(text), symbols)
}

// ParseWithEndpoints reads a map and places the start and goal at the given
// cells, ignoring any markers in the text. Marker characters are open floor.
func ParseWithEndpoints(text string, symbols Symbols, start, goal Cell) (*Grid, error) {
	g, err := parseRows(SplitRows(text), symbols, false)
	if err != nil {
		return nil, err
	}
	return g.WithEndpoints(start, goal)
}

// SplitRows splits map text into rows, dropping blank lines.
func SplitRows(text string) []string {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	return rows
}

// ParseRows builds a grid from rows of equal rune length.
//
// The map must contain exactly one start marker. A missing goal marker leaves
// the goal at (0,0) with GoalMarked false; callers should treat that as a
// likely configuration mistake.
func ParseRows(rows []string, symbols Symbols) (*Grid, error) {
	return parseRows(rows, symbols, true)
}

func parseRows(rows []string, symbols Symbols, requireStart bool) (*Grid, error) {
	if err := symbols.Validate(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, configErrorf("map has no rows")
	}
	width := utf8.RuneCountInString(rows[0])
	if width == 0 {
		return nil, configErrorf("map row 0 is empty")
	}

	g := &Grid{
		width:  width,
		height: len(rows),
		walls:  make([]bool, width*len(rows)),
	}
	startFound := false
	for row, text := range rows {
		if n := utf8.RuneCountInString(text); n != width {
			return nil, configErrorf("map row %d has %d columns, want %d", row, n, width)
		}
		col := 0
		for _, r := range text {
			c := Cell{Col: col, Row: row}
			switch {
			case r == symbols.Wall:
				g.walls[g.index(c)] = true
			case requireStart && symbols.isStart(r):
				if startFound {
					return nil, configErrorf("map has more than one start marker: %s and %s", g.start, c)
				}
				g.start, startFound = c, true
			case requireStart && symbols.isGoal(r):
				if g.goalMarked {
					return nil, configErrorf("map has more than one goal marker: %s and %s", g.goal, c)
				}
				g.goal, g.goalMarked = c, true
			}
			col++
		}
	}
	if requireStart && !startFound {
		return nil, configErrorf("map has no start marker %q", symbols.Start)
	}
	return g, nil
}
