package gridpath

// PriorityQueueItem is one open-set entry ordered by FCost.
type PriorityQueueItem[NodeType comparable] struct {
	Node         NodeType
	GScore       float64
	FCost        float64
	Sequence     uint64
	IndexInQueue int
}

// PriorityQueue is a container/heap implementation of the open set.
//
// Ordering: lowest FCost first. Equal FCost prefers the larger GScore, which is
// the entry with the smaller remaining estimate. Equal GScore falls back to
// insertion order (lower Sequence first).
type PriorityQueue[NodeType comparable] []*PriorityQueueItem[NodeType]

func (queue PriorityQueue[NodeType]) Len() int { return len(queue) }

func (queue PriorityQueue[NodeType]) Less(i, j int) bool {
	left, right := queue[i], queue[j]
	if left.FCost != right.FCost {
		return left.FCost < right.FCost
	}
	if left.GScore != right.GScore {
		return left.GScore > right.GScore
	}
	return left.Sequence < right.Sequence
}

func (queue PriorityQueue[NodeType]) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].IndexInQueue = i
	queue[j].IndexInQueue = j
}

func (queue *PriorityQueue[NodeType]) Push(x any) {
	item := x.(*PriorityQueueItem[NodeType])
	item.IndexInQueue = len(*queue)
	*queue = append(*queue, item)
}

func (queue *PriorityQueue[NodeType]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = nil
	item.IndexInQueue = -1
	*queue = oldQueue[:n-1]
	return item
}
