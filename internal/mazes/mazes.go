// Package mazes bundles the built-in sample map.
package mazes

import _ "embed"

// Sample is a 30x10 maze with the start at (1,1) and the goal at (28,8).
//
//go:embed sample.txt
var Sample string
