package gridpath

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityQueueOrdering(t *testing.T) {
	queue := make(PriorityQueue[string], 0)
	heap.Init(&queue)

	items := []*PriorityQueueItem[string]{
		{Node: "late-fifo", FCost: 3, GScore: 1, Sequence: 4},
		{Node: "high-f", FCost: 5, GScore: 5, Sequence: 0},
		{Node: "deep", FCost: 3, GScore: 2, Sequence: 3},
		{Node: "early-fifo", FCost: 3, GScore: 1, Sequence: 1},
		{Node: "low-f", FCost: 2, GScore: 0, Sequence: 2},
	}
	for _, item := range items {
		heap.Push(&queue, item)
	}

	var order []string
	for queue.Len() > 0 {
		order = append(order, heap.Pop(&queue).(*PriorityQueueItem[string]).Node)
	}
	assert.Equal(t, []string{"low-f", "deep", "early-fifo", "late-fifo", "high-f"}, order)
}

func TestPriorityQueueFixKeepsIndex(t *testing.T) {
	queue := make(PriorityQueue[int], 0)
	heap.Init(&queue)
	var tracked *PriorityQueueItem[int]
	for i := 0; i < 10; i++ {
		item := &PriorityQueueItem[int]{Node: i, FCost: float64(10 + i), Sequence: uint64(i)}
		heap.Push(&queue, item)
		if i == 7 {
			tracked = item
		}
	}
	assert.Equal(t, tracked, queue[tracked.IndexInQueue])

	tracked.FCost = 1
	heap.Fix(&queue, tracked.IndexInQueue)

	top := heap.Pop(&queue).(*PriorityQueueItem[int])
	assert.Equal(t, 7, top.Node)
	assert.Equal(t, -1, top.IndexInQueue)
}
