package gridpath

import (
	"context"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[NodeType comparable] struct {
	Current   NodeType
	Open      map[NodeType]bool
	Closed    map[NodeType]bool
	CameFrom  map[NodeType]NodeType
	Done      bool
	Found     bool
	Path      []NodeType
	TotalCost float64
	StepIndex int
}

// Stepper runs the same search as Search one expansion at a time.
// A Stepper is not safe for concurrent use.
type Stepper[NodeType comparable] struct {
	ctx    context.Context
	cancel context.CancelFunc
	state  *frontier[NodeType]

	stepCount int
	done      bool
	found     bool
	current   NodeType
	path      []NodeType
	totalCost float64
	err       error
}

// NewStepper creates a new stepper using the same expansion logic as Search
func NewStepper[NodeType comparable](
	parent context.Context,
	graph Graph[NodeType],
	startNode NodeType,
	goalNode NodeType,
	heuristic Heuristic[NodeType],
	options ...Option,
) *Stepper[NodeType] {
	ctx, cancel := context.WithCancel(parent)
	return &Stepper[NodeType]{
		ctx:    ctx,
		cancel: cancel,
		state:  newFrontier(ctx, graph, startNode, goalNode, heuristic, applyOptions(options)),
	}
}

// Close stops the workers
func (s *Stepper[NodeType]) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.state.close()
}

// Done reports whether the search has finished.
func (s *Stepper[NodeType]) Done() bool { return s.done }

// Step advances the search by one node expansion and returns a snapshot.
// Once the search is done further calls return the final snapshot again,
// together with the error that ended it, if any.
func (s *Stepper[NodeType]) Step() (StepSnapshot[NodeType], error) {
	if s.done {
		return s.snapshot(), s.err
	}
	if err := s.ctx.Err(); err != nil {
		return s.fail(err)
	}
	if s.state.limitReached() {
		return s.fail(ErrExpansionLimit)
	}

	currentItem, ok := s.state.pop()
	if !ok {
		s.done = true
		return s.snapshot(), nil
	}
	s.stepCount++
	s.current = currentItem.Node

	if currentItem.Node == s.state.goalNode {
		s.done = true
		s.found = true
		s.path = s.state.path(currentItem.Node)
		s.totalCost = currentItem.GScore
		return s.snapshot(), nil
	}

	if err := s.state.expand(currentItem); err != nil {
		return s.fail(err)
	}
	return s.snapshot(), nil
}

func (s *Stepper[NodeType]) fail(err error) (StepSnapshot[NodeType], error) {
	s.done = true
	s.err = err
	return s.snapshot(), err
}

func (s *Stepper[NodeType]) snapshot() StepSnapshot[NodeType] {
	return StepSnapshot[NodeType]{
		Current:   s.current,
		Open:      s.openSetToBoolMap(),
		Closed:    copyBoolMap(s.state.closedSet),
		CameFrom:  copyCameFrom(s.state.cameFrom),
		Done:      s.done,
		Found:     s.found,
		Path:      append([]NodeType(nil), s.path...),
		TotalCost: s.totalCost,
		StepIndex: s.stepCount,
	}
}

func (s *Stepper[NodeType]) openSetToBoolMap() map[NodeType]bool {
	m := make(map[NodeType]bool, len(s.state.openSetMap))
	for k := range s.state.openSetMap {
		m[k] = true
	}
	return m
}

func copyBoolMap[T comparable](m map[T]bool) map[T]bool {
	if m == nil {
		return nil
	}
	c := make(map[T]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func copyCameFrom[T comparable](m map[T]T) map[T]T {
	if m == nil {
		return nil
	}
	c := make(map[T]T, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
