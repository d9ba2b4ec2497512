// Package grid is the logical maze model: cells, the eight moves and their
// costs, the obstacle map and its text format.
//
// A Grid never changes after construction. Re-placing the endpoints returns
// a new Grid that shares the wall mask, so concurrent searches over one map
// need no coordination.
package grid
