package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridpath/grid"
	"github.com/pdrpinto/gridpath/internal/mazes"
	"github.com/pdrpinto/gridpath/solver"
)

// Exit codes for solve.
const (
	exitNoPath      = 2
	exitBadEndpoint = 3
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a maze and print the path",
	Long: `Reads a maze file (or stdin with --map -) and prints the cheapest path.
Without --map the built-in sample maze is used. --start and --goal take
col,row coordinates and replace the markers in the map.

Exit status is 2 when the goal is unreachable and 3 for an invalid endpoint.`,
	Run: func(cmd *cobra.Command, args []string) {
		if code := runSolve(cmd); code != 0 {
			os.Exit(code)
		}
	},
}

// runSolve returns the process exit code so deferred cleanup runs before exit.
func runSolve(cmd *cobra.Command) int {
	env, err := newEnvironment(cmd, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing gridpath: %v\n", err)
		return 1
	}
	defer env.Close()

	mapPath, _ := cmd.Flags().GetString("map")
	startFlag, _ := cmd.Flags().GetString("start")
	goalFlag, _ := cmd.Flags().GetString("goal")
	asJSON, _ := cmd.Flags().GetBool("json")

	text, err := readMap(mapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading map: %v\n", err)
		return 1
	}
	if mapPath == "" {
		text = mazes.Sample
	}

	g, err := loadGrid(text, env.symbols, startFlag, goalFlag)
	if err != nil {
		return exitCode(os.Stderr, err)
	}

	solution, err := env.solver.Solve(commandContext(cmd), g)
	if err != nil {
		return exitCode(os.Stderr, err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(solution); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding solution: %v\n", err)
			return 1
		}
	} else {
		printSolution(os.Stdout, g, solution)
	}
	if !solution.Found {
		return exitNoPath
	}
	return 0
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringP("map", "m", "", "Maze file, or - for stdin (default: built-in sample)")
	solveCmd.Flags().String("start", "", "Start cell as col,row")
	solveCmd.Flags().String("goal", "", "Goal cell as col,row")
	solveCmd.Flags().Bool("json", false, "Print the solution as JSON")
}

func loadGrid(text string, symbols grid.Symbols, startFlag, goalFlag string) (*grid.Grid, error) {
	if startFlag == "" && goalFlag == "" {
		return grid.Parse(text, symbols)
	}
	if startFlag == "" || goalFlag == "" {
		return nil, errors.New("--start and --goal must be given together")
	}
	start, err := parseCell(startFlag)
	if err != nil {
		return nil, err
	}
	goal, err := parseCell(goalFlag)
	if err != nil {
		return nil, err
	}
	return grid.ParseWithEndpoints(text, symbols, start, goal)
}

// exitCode reports err on w and maps it to an exit status.
func exitCode(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	if errors.Is(err, grid.ErrInvalidEndpoint) {
		return exitBadEndpoint
	}
	return 1
}

func printSolution(w io.Writer, g *grid.Grid, solution solver.Solution) {
	if !solution.Found {
		fmt.Fprintf(w, "no path from %s to %s (%d nodes expanded)\n", g.Start(), g.Goal(), solution.Expanded)
		return
	}
	cells := make([]string, 0, len(solution.Path))
	for _, c := range solution.Path {
		cells = append(cells, c.String())
	}
	moves := make([]string, 0, len(solution.Moves))
	for _, m := range solution.Moves {
		moves = append(moves, m.String())
	}
	fmt.Fprintf(w, "path:     %s\n", strings.Join(cells, " -> "))
	fmt.Fprintf(w, "moves:    %d (%s)\n", len(solution.Moves), strings.Join(moves, ", "))
	fmt.Fprintf(w, "cost:     %.2f\n", solution.Cost)
	fmt.Fprintf(w, "expanded: %d\n", solution.Expanded)
}
