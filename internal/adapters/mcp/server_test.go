package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/gridpath/grid"
	"github.com/pdrpinto/gridpath/internal/mazes"
	"github.com/pdrpinto/gridpath/solver"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	sv, err := solver.New()
	require.NoError(t, err)
	return NewServer(sv, grid.DefaultSymbols(), "test")
}

func num(v float64) *float64 { return &v }

func TestHandleSolveWithMarkers(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.handleSolve(context.Background(), mcp.CallToolRequest{}, SolveArgs{Map: "o#x\n   "})
	require.NoError(t, err)

	assert.True(t, resp.Found)
	assert.Equal(t, [][2]int{{0, 0}, {1, 1}, {2, 0}}, resp.Path)
	assert.Equal(t, []string{"down-right", "up-right"}, resp.Moves)
	assert.InDelta(t, 3.4, resp.Cost, 1e-9)
}

func TestHandleSolveWithCoordinates(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.handleSolve(context.Background(), mcp.CallToolRequest{}, SolveArgs{
		Map:      mazes.Sample,
		StartCol: num(28),
		StartRow: num(8),
		GoalCol:  num(1),
		GoalRow:  num(1),
	})
	require.NoError(t, err)
	require.True(t, resp.Found)
	assert.Equal(t, [2]int{28, 8}, resp.Path[0])
	assert.Equal(t, [2]int{1, 1}, resp.Path[len(resp.Path)-1])
	assert.Len(t, resp.Moves, len(resp.Path)-1)
}

func TestHandleSolveUnreachable(t *testing.T) {
	s := newTestServer(t)
	resp, err := s.handleSolve(context.Background(), mcp.CallToolRequest{}, SolveArgs{Map: "o#.\n##.\n..x"})
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.NotNil(t, resp.Path)
	assert.Empty(t, resp.Path)
}

func TestHandleSolveErrors(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleSolve(context.Background(), mcp.CallToolRequest{}, SolveArgs{Map: "o..", StartCol: num(0)})
	assert.ErrorContains(t, err, "must be given together")

	_, err = s.handleSolve(context.Background(), mcp.CallToolRequest{}, SolveArgs{Map: "..x"})
	assert.ErrorIs(t, err, grid.ErrConfiguration)

	_, err = s.handleSolve(context.Background(), mcp.CallToolRequest{}, SolveArgs{
		Map:      "...",
		StartCol: num(0),
		StartRow: num(0),
		GoalCol:  num(5),
		GoalRow:  num(0),
	})
	assert.ErrorIs(t, err, grid.ErrInvalidEndpoint)
}

func TestHandleSolveRejectsFractionalCoordinates(t *testing.T) {
	s := newTestServer(t)
	_, err := s.handleSolve(context.Background(), mcp.CallToolRequest{}, SolveArgs{
		Map:      "...",
		StartCol: num(0),
		StartRow: num(0.5),
		GoalCol:  num(2),
		GoalRow:  num(0),
	})
	assert.ErrorContains(t, err, "start_row must be a whole number")
}

func TestToResponseEmptySolution(t *testing.T) {
	resp := toResponse(solver.Solution{Expanded: 3})
	assert.Equal(t, SolveResponse{Path: [][2]int{}, Moves: []string{}, Expanded: 3}, resp)
}
