package hnsw

import "github.com/contextvault/hnswkv/model"

// item is an entry in a priorityQueue: a candidate id and its distance to
// the query.
type item struct {
	id       model.ID
	distance float32
}

// priorityQueue is a binary heap over items, with an explicit isMaxHeap flag
// rather than negated distances, so the same type serves as both the
// min-heap "candidates" and the max-heap "results" search_layer needs.
type priorityQueue struct {
	isMaxHeap bool
	items     []item
}

// newPriorityQueue creates an empty queue. isMaxHeap selects max-heap
// (largest distance on top) or min-heap (smallest distance on top) order.
func newPriorityQueue(isMaxHeap bool) *priorityQueue {
	return &priorityQueue{isMaxHeap: isMaxHeap, items: make([]item, 0, 16)}
}

func (pq *priorityQueue) Len() int { return len(pq.items) }

// worst returns the item furthest from the query: an O(n) scan for the
// largest distance in a min-heap, or the heap top for a max-heap.
func (pq *priorityQueue) worst() (item, bool) {
	if len(pq.items) == 0 {
		return item{}, false
	}
	if pq.isMaxHeap {
		return pq.items[0], true
	}
	worst := pq.items[0]
	for _, it := range pq.items[1:] {
		if it.distance > worst.distance {
			worst = it
		}
	}
	return worst, true
}

func (pq *priorityQueue) push(it item) {
	pq.items = append(pq.items, it)
	pq.siftUp(len(pq.items) - 1)
}

func (pq *priorityQueue) pop() (item, bool) {
	n := len(pq.items)
	if n == 0 {
		return item{}, false
	}
	it := pq.items[0]
	pq.items[0] = pq.items[n-1]
	pq.items = pq.items[:n-1]
	if len(pq.items) > 0 {
		pq.siftDown(0)
	}
	return it, true
}

// drain returns the queue's items sorted ascending by distance, leaving the
// queue empty.
func (pq *priorityQueue) drain() []item {
	out := make([]item, 0, len(pq.items))
	for {
		it, ok := pq.pop()
		if !ok {
			break
		}
		out = append(out, it)
	}
	if pq.isMaxHeap {
		// pop() yields a max-heap's items largest-first; reverse for
		// ascending order.
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func (pq *priorityQueue) less(i, j int) bool {
	if pq.isMaxHeap {
		return pq.items[i].distance > pq.items[j].distance
	}
	return pq.items[i].distance < pq.items[j].distance
}

func (pq *priorityQueue) swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

func (pq *priorityQueue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !pq.less(i, parent) {
			break
		}
		pq.swap(i, parent)
		i = parent
	}
}

func (pq *priorityQueue) siftDown(i int) {
	n := len(pq.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		right := left + 1
		if right < n && pq.less(right, left) {
			child = right
		}
		if !pq.less(child, i) {
			break
		}
		pq.swap(i, child)
		i = child
	}
}
