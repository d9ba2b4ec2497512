package grid

import "unicode"

// Symbols are the map characters for walls and endpoint markers.
// Start and goal markers match case-insensitively; every other
// non-wall character is open floor.
type Symbols struct {
	Wall  rune
	Start rune
	Goal  rune
}

// DefaultSymbols returns '#' for walls, 'o' for start and 'x' for goal.
func DefaultSymbols() Symbols {
	return Symbols{Wall: '#', Start: 'o', Goal: 'x'}
}

// Validate requires three distinct, non-space symbols.
func (s Symbols) Validate() error {
	for _, r := range []rune{s.Wall, s.Start, s.Goal} {
		if r == 0 || unicode.IsSpace(r) {
			return configErrorf("map symbols must be printable, got %q", r)
		}
	}
	start, goal := unicode.ToLower(s.Start), unicode.ToLower(s.Goal)
	if start == goal || s.Wall == s.Start || s.Wall == s.Goal ||
		unicode.ToLower(s.Wall) == start || unicode.ToLower(s.Wall) == goal {
		return configErrorf("wall %q, start %q and goal %q symbols must differ", s.Wall, s.Start, s.Goal)
	}
	return nil
}

func (s Symbols) isStart(r rune) bool { return unicode.ToLower(r) == unicode.ToLower(s.Start) }

func (s Symbols) isGoal(r rune) bool { return unicode.ToLower(r) == unicode.ToLower(s.Goal) }
