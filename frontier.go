package gridpath

import (
	"container/heap"
	"context"

	"github.com/pdrpinto/gridpath/internal/pathutil"
)

// frontier is the open/closed bookkeeping owned by a single search.
type frontier[NodeType comparable] struct {
	graph     Graph[NodeType]
	startNode NodeType
	goalNode  NodeType
	heuristic Heuristic[NodeType]
	limit     int

	openSet           PriorityQueue[NodeType]
	openSetMap        map[NodeType]*PriorityQueueItem[NodeType]
	closedSet         map[NodeType]bool
	cameFrom          map[NodeType]NodeType
	pathCostFromStart map[NodeType]float64

	pool      *workerPool[NodeType]
	tasks     []ExpandTask[NodeType]
	proposals []RelaxProposal[NodeType]

	sequence      uint64
	expandedNodes int
}

func newFrontier[NodeType comparable](
	contextObject context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	searchOptions Options,
) *frontier[NodeType] {
	f := &frontier[NodeType]{
		graph:             graph,
		startNode:         startNode,
		goalNode:          goalNode,
		heuristic:         heuristic,
		limit:             searchOptions.ExpansionLimit,
		openSet:           make(PriorityQueue[NodeType], 0),
		openSetMap:        make(map[NodeType]*PriorityQueueItem[NodeType]),
		closedSet:         make(map[NodeType]bool),
		cameFrom:          make(map[NodeType]NodeType),
		pathCostFromStart: map[NodeType]float64{startNode: 0.0},
	}
	heap.Init(&f.openSet)
	f.push(startNode, 0.0, heuristic(startNode, goalNode))

	if searchOptions.NumberOfWorkers > 0 {
		f.pool = startWorkerPool[NodeType](contextObject, searchOptions.NumberOfWorkers)
	}
	return f
}

func (f *frontier[NodeType]) push(node NodeType, gScore, fCost float64) {
	item := &PriorityQueueItem[NodeType]{
		Node:     node,
		GScore:   gScore,
		FCost:    fCost,
		Sequence: f.sequence,
	}
	f.sequence++
	heap.Push(&f.openSet, item)
	f.openSetMap[node] = item
}

// pop removes the best open entry, closes it and counts it as expanded.
// It reports false once the open set is exhausted.
func (f *frontier[NodeType]) pop() (*PriorityQueueItem[NodeType], bool) {
	for f.openSet.Len() > 0 {
		currentItem := heap.Pop(&f.openSet).(*PriorityQueueItem[NodeType])
		delete(f.openSetMap, currentItem.Node)
		if f.closedSet[currentItem.Node] {
			continue
		}
		f.closedSet[currentItem.Node] = true
		f.expandedNodes++
		return currentItem, true
	}
	return nil, false
}

// limitReached reports whether another expansion would exceed the configured limit.
func (f *frontier[NodeType]) limitReached() bool {
	return f.limit > 0 && f.expandedNodes >= f.limit
}

// expand relaxes every neighbour of currentItem.
func (f *frontier[NodeType]) expand(currentItem *PriorityQueueItem[NodeType]) error {
	neighbors := f.graph.Neighbors(currentItem.Node)
	if len(neighbors) == 0 {
		return nil
	}

	f.tasks = f.tasks[:0]
	for i, neighbor := range neighbors {
		f.tasks = append(f.tasks, ExpandTask[NodeType]{
			Index:         i,
			FromNode:      currentItem.Node,
			Neighbor:      neighbor,
			CurrentGScore: currentItem.GScore,
			GoalNode:      f.goalNode,
			HeuristicFunc: f.heuristic,
		})
	}
	if cap(f.proposals) < len(neighbors) {
		f.proposals = make([]RelaxProposal[NodeType], len(neighbors))
	}
	f.proposals = f.proposals[:len(neighbors)]

	if f.pool != nil {
		if err := f.pool.relaxAll(f.tasks, f.proposals); err != nil {
			return err
		}
	} else {
		for i, task := range f.tasks {
			f.proposals[i] = relax(task)
		}
	}

	for _, proposal := range f.proposals {
		if f.closedSet[proposal.ToNode] {
			continue
		}
		currentG, exists := f.pathCostFromStart[proposal.ToNode]
		if exists && proposal.GScore >= currentG {
			continue
		}
		f.pathCostFromStart[proposal.ToNode] = proposal.GScore
		f.cameFrom[proposal.ToNode] = proposal.FromNode
		if item, inOpen := f.openSetMap[proposal.ToNode]; inOpen {
			item.GScore = proposal.GScore
			item.FCost = proposal.FCost
			item.Sequence = f.sequence
			f.sequence++
			heap.Fix(&f.openSet, item.IndexInQueue)
		} else {
			f.push(proposal.ToNode, proposal.GScore, proposal.FCost)
		}
	}
	return nil
}

func (f *frontier[NodeType]) path(goal NodeType) []NodeType {
	return pathutil.ReconstructPath(f.cameFrom, goal, f.startNode)
}

func (f *frontier[NodeType]) close() {
	if f.pool != nil {
		f.pool.stop()
	}
}
