package gridpath

import "context"

// ExpandTask represents a request from the orchestrator to the workers.
type ExpandTask[NodeType comparable] struct {
	Index         int
	FromNode      NodeType
	Neighbor      Neighbor[NodeType]
	CurrentGScore float64
	GoalNode      NodeType
	HeuristicFunc Heuristic[NodeType]
}

// RelaxProposal is the worker's suggestion for updating a path
type RelaxProposal[NodeType comparable] struct {
	Index    int
	FromNode NodeType
	ToNode   NodeType
	GScore   float64
	FCost    float64
}

func relax[NodeType comparable](task ExpandTask[NodeType]) RelaxProposal[NodeType] {
	tentativeG := task.CurrentGScore + task.Neighbor.Cost
	return RelaxProposal[NodeType]{
		Index:    task.Index,
		FromNode: task.FromNode,
		ToNode:   task.Neighbor.ID,
		GScore:   tentativeG,
		FCost:    tentativeG + task.HeuristicFunc(task.Neighbor.ID, task.GoalNode),
	}
}

// workerPool computes relax proposals on a fixed set of goroutines.
// Proposals are written back by task index so the orchestrator applies them
// in neighbour order regardless of which worker finished first.
type workerPool[NodeType comparable] struct {
	ctx       context.Context
	cancel    context.CancelFunc
	tasks     chan ExpandTask[NodeType]
	proposals chan RelaxProposal[NodeType]
}

func startWorkerPool[NodeType comparable](parent context.Context, numberOfWorkers int) *workerPool[NodeType] {
	ctx, cancel := context.WithCancel(parent)
	pool := &workerPool[NodeType]{
		ctx:       ctx,
		cancel:    cancel,
		tasks:     make(chan ExpandTask[NodeType]),
		proposals: make(chan RelaxProposal[NodeType]),
	}
	for i := 0; i < numberOfWorkers; i++ {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case task := <-pool.tasks:
					select {
					case <-ctx.Done():
						return
					case pool.proposals <- relax(task):
					}
				}
			}
		}()
	}
	return pool
}

func (pool *workerPool[NodeType]) relaxAll(tasks []ExpandTask[NodeType], out []RelaxProposal[NodeType]) error {
	go func() {
		for _, task := range tasks {
			select {
			case <-pool.ctx.Done():
				return
			case pool.tasks <- task:
			}
		}
	}()
	for range tasks {
		select {
		case <-pool.ctx.Done():
			return pool.ctx.Err()
		case proposal := <-pool.proposals:
			out[proposal.Index] = proposal
		}
	}
	return nil
}

func (pool *workerPool[NodeType]) stop() {
	pool.cancel()
}
