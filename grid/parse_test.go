package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFindsMarkersCaseInsensitively(t *testing.T) {
	g, err := Parse("\n#####\n#O  #\n#  X#\n#####\n\n", DefaultSymbols())
	require.NoError(t, err)

	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 4, g.Height())
	assert.Equal(t, Cell{Col: 1, Row: 1}, g.Start())
	assert.Equal(t, Cell{Col: 3, Row: 2}, g.Goal())
	assert.True(t, g.GoalMarked())
	assert.False(t, g.IsBlocked(g.Start()))
	assert.False(t, g.IsBlocked(g.Goal()))
	assert.True(t, g.IsBlocked(Cell{Col: 0, Row: 0}))
}

func TestParseTrimsCarriageReturns(t *testing.T) {
	g, err := Parse("o  \r\n  x\r\n", DefaultSymbols())
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, Cell{Col: 2, Row: 1}, g.Goal())
}

func TestParseMissingGoalFallsBack(t *testing.T) {
	g, err := Parse("#o\n  ", DefaultSymbols())
	require.NoError(t, err)
	assert.Equal(t, Cell{}, g.Goal())
	assert.False(t, g.GoalMarked())

	// The fallback lands on a wall here, which only the endpoint check catches.
	assert.ErrorIs(t, g.ValidateEndpoints(), ErrInvalidEndpoint)
}

func TestParseConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: "\n\n"},
		{name: "no start", text: "###\n# x\n###"},
		{name: "ragged rows", text: "####\n#o x#\n####"},
		{name: "two starts", text: "o o x"},
		{name: "two goals", text: "o x x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, DefaultSymbols())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
			var cfgErr *ConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestParseCustomSymbols(t *testing.T) {
	symbols := Symbols{Wall: 'W', Start: 's', Goal: 'g'}
	g, err := Parse("sWg\n...", symbols)
	require.NoError(t, err)
	assert.True(t, g.IsBlocked(Cell{Col: 1, Row: 0}))
	assert.Equal(t, Cell{Col: 2, Row: 0}, g.Goal())
}

func TestParseRejectsClashingSymbols(t *testing.T) {
	_, err := Parse("o x", Symbols{Wall: '#', Start: 'o', Goal: 'O'})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestParseWithEndpoints(t *testing.T) {
	text := "##########\n#        #\n##########"

	g, err := ParseWithEndpoints(text, DefaultSymbols(), Cell{Col: 1, Row: 1}, Cell{Col: 8, Row: 1})
	require.NoError(t, err)
	assert.Equal(t, Cell{Col: 1, Row: 1}, g.Start())
	assert.Equal(t, Cell{Col: 8, Row: 1}, g.Goal())

	_, err = ParseWithEndpoints(text, DefaultSymbols(), Cell{Col: 0, Row: 0}, Cell{Col: 8, Row: 1})
	assert.ErrorIs(t, err, ErrInvalidEndpoint)

	_, err = ParseWithEndpoints(text, DefaultSymbols(), Cell{Col: 1, Row: 1}, Cell{Col: 10, Row: 1})
	var endpointErr *EndpointError
	require.ErrorAs(t, err, &endpointErr)
	assert.Equal(t, "goal", endpointErr.Role)
}

func TestParseWithEndpointsIgnoresMarkers(t *testing.T) {
	g, err := ParseWithEndpoints("o o\nx x", DefaultSymbols(), Cell{Col: 1, Row: 0}, Cell{Col: 1, Row: 1})
	require.NoError(t, err)
	assert.False(t, g.IsBlocked(Cell{Col: 0, Row: 0}))
}

func TestRenderRoundTrip(t *testing.T) {
	text := "#####\n#o  #\n# #x#\n#####\n"
	g, err := Parse(text, DefaultSymbols())
	require.NoError(t, err)
	assert.Equal(t, text, g.Render(DefaultSymbols()))
}
