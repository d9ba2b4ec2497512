// Package mcp exposes the solver as a Model Context Protocol server.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pdrpinto/gridpath/grid"
	"github.com/pdrpinto/gridpath/internal/mazes"
	"github.com/pdrpinto/gridpath/solver"
)

const sampleURI = "maze://sample"

// SolveArgs are the solve_maze tool arguments.
type SolveArgs struct {
	Map      string   `json:"map"`
	StartCol *float64 `json:"start_col,omitempty"`
	StartRow *float64 `json:"start_row,omitempty"`
	GoalCol  *float64 `json:"goal_col,omitempty"`
	GoalRow  *float64 `json:"goal_row,omitempty"`
}

// SolveResponse is the structured solve_maze result.
type SolveResponse struct {
	Found    bool     `json:"found" jsonschema_description:"False when the goal is unreachable"`
	Path     [][2]int `json:"path" jsonschema_description:"Visited cells as [col,row] pairs, start to goal"`
	Moves    []string `json:"moves" jsonschema_description:"Move names between consecutive cells"`
	Cost     float64  `json:"cost" jsonschema_description:"Total path cost"`
	Expanded int      `json:"expanded" jsonschema_description:"Number of expanded nodes"`
}

// Server wraps a Solver and exposes it as an MCP Server.
type Server struct {
	solver    *solver.Solver
	symbols   grid.Symbols
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(sv *solver.Solver, symbols grid.Symbols, version string) *Server {
	s := &Server{
		solver:    sv,
		symbols:   symbols,
		mcpServer: server.NewMCPServer("gridpath-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over Server-Sent Events until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	solveTool := mcp.NewTool("solve_maze",
		mcp.WithDescription("Find the cheapest eight-direction path through a text maze. "+
			"Walls are '#', the start is 'o' and the goal is 'x' unless start/goal coordinates are given."),
		mcp.WithString("map", mcp.Required(), mcp.Description("Maze text, one row per line")),
		mcp.WithNumber("start_col", mcp.Description("Start column (zero-based whole number), overrides the map marker")),
		mcp.WithNumber("start_row", mcp.Description("Start row (zero-based)")),
		mcp.WithNumber("goal_col", mcp.Description("Goal column (zero-based whole number), overrides the map marker")),
		mcp.WithNumber("goal_row", mcp.Description("Goal row (zero-based)")),
		mcp.WithOutputSchema[SolveResponse](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolve))
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest, args SolveArgs) (SolveResponse, error) {
	g, err := s.parse(args)
	if err != nil {
		return SolveResponse{}, err
	}
	solution, err := s.solver.Solve(ctx, g)
	if err != nil {
		return SolveResponse{}, err
	}
	return toResponse(solution), nil
}

func (s *Server) parse(args SolveArgs) (*grid.Grid, error) {
	coords := []struct {
		name  string
		value *float64
	}{
		{"start_col", args.StartCol},
		{"start_row", args.StartRow},
		{"goal_col", args.GoalCol},
		{"goal_row", args.GoalRow},
	}
	given := 0
	values := make([]int, len(coords))
	for i, coord := range coords {
		if coord.value == nil {
			continue
		}
		given++
		v := *coord.value
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s must be a whole number, got %v", coord.name, v)
		}
		values[i] = int(v)
	}
	switch given {
	case 0:
		return grid.Parse(args.Map, s.symbols)
	case len(coords):
		start := grid.Cell{Col: values[0], Row: values[1]}
		goal := grid.Cell{Col: values[2], Row: values[3]}
		return grid.ParseWithEndpoints(args.Map, s.symbols, start, goal)
	default:
		return nil, errors.New("start_col, start_row, goal_col and goal_row must be given together")
	}
}

func toResponse(solution solver.Solution) SolveResponse {
	resp := SolveResponse{
		Found:    solution.Found,
		Path:     make([][2]int, 0, len(solution.Path)),
		Moves:    make([]string, 0, len(solution.Moves)),
		Cost:     solution.Cost,
		Expanded: solution.Expanded,
	}
	for _, c := range solution.Path {
		resp.Path = append(resp.Path, [2]int{c.Col, c.Row})
	}
	for _, m := range solution.Moves {
		resp.Moves = append(resp.Moves, m.String())
	}
	return resp
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(sampleURI, "Sample maze",
		mcp.WithResourceDescription("A 30x10 maze with start and goal markers"),
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      sampleURI,
				MIMEType: "text/plain",
				Text:     mazes.Sample,
			},
		}, nil
	})
}
