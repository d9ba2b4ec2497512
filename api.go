package gridpath

import (
	"context"
	"errors"
)

// ErrExpansionLimit is returned when a search stops after WithExpansionLimit expansions.
var ErrExpansionLimit = errors.New("gridpath: expansion limit reached")

// Graph is generic over node type N.
// N must be comparable so it can be used in maps.
type Graph[NodeType comparable] interface {
	// Neighbors returns only the legal successors of node.
	Neighbors(node NodeType) []Neighbor[NodeType]
}

// Neighbor represents a reachable node with a cost.
type Neighbor[NodeType comparable] struct {
	ID   NodeType
	Cost float64
}

// Heuristic returns the estimated cost from node a to node b
type Heuristic[NodeType comparable] func(from NodeType, to NodeType) float64

// Result contains the outcome of a search.
// Found is false when the open set was exhausted without reaching the goal;
// that is a normal outcome, not an error.
type Result[NodeType comparable] struct {
	Path          []NodeType
	TotalCost     float64
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	// NumberOfWorkers is the size of the relaxation pool. Zero relaxes
	// neighbours inline on the calling goroutine.
	NumberOfWorkers int
	// ExpansionLimit caps the number of expanded nodes. Zero means no cap.
	ExpansionLimit int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many worker goroutines should expand neighbors.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithExpansionLimit stops the search with ErrExpansionLimit after limit expansions.
func WithExpansionLimit(limit int) Option {
	return func(options *Options) { options.ExpansionLimit = limit }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 0 {
		searchOptions.NumberOfWorkers = 0
	}
	return searchOptions
}

// Search executes A* graph search from startNode to goalNode.
//
// The context is checked before every expansion. When it is done the search
// returns the number of expansions performed, no path, and the context error.
func Search[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) (Result[NodeType], error) {
	searchOptions := applyOptions(options)

	state := newFrontier(contextObject, graph, startNode, goalNode, heuristic, searchOptions)
	defer state.close()

	for {
		if err := contextObject.Err(); err != nil {
			return Result[NodeType]{ExpandedNodes: state.expandedNodes}, err
		}
		if state.limitReached() {
			return Result[NodeType]{ExpandedNodes: state.expandedNodes}, ErrExpansionLimit
		}

		currentItem, ok := state.pop()
		if !ok {
			return Result[NodeType]{ExpandedNodes: state.expandedNodes}, nil
		}

		if currentItem.Node == goalNode {
			return Result[NodeType]{
				Path:          state.path(currentItem.Node),
				TotalCost:     currentItem.GScore,
				ExpandedNodes: state.expandedNodes,
				Found:         true,
			}, nil
		}

		if err := state.expand(currentItem); err != nil {
			return Result[NodeType]{ExpandedNodes: state.expandedNodes}, err
		}
	}
}
