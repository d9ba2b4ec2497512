// Package gridpath provides a generic A* pathfinding implementation.
//
// It exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// The search is graph search: a node is expanded at most once. The open set
// orders entries by f = g + h, then by larger g, then by insertion order, so
// identical inputs always produce identical paths.
//
// Neighbour relaxation runs inline by default. WithWorkers moves it onto a
// goroutine pool while a single orchestrator keeps ownership of the frontier.
//
// The grid and solver subpackages build the eight-direction maze model on top
// of this engine.
package gridpath
