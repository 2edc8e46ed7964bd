package search

import "container/heap"

// item is a frontier entry. The same state may be queued several times with
// different priorities; stale entries are skipped when popped.
type item[S comparable] struct {
	state    S
	priority float64
	sequence uint64 // insertion order, breaks priority ties
}

// itemHeap implements heap.Interface for a min-heap of items
type itemHeap[S comparable] []item[S]

func (h itemHeap[S]) Len() int { return len(h) }

func (h itemHeap[S]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].sequence < h[j].sequence
}

func (h itemHeap[S]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap[S]) Push(x any) {
	*h = append(*h, x.(item[S]))
}

func (h *itemHeap[S]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// frontier is a priority queue ordered by (priority, sequence).
// Sequences are local to one search so results never depend on other searches.
type frontier[S comparable] struct {
	h    itemHeap[S]
	next uint64
}

func newFrontier[S comparable]() *frontier[S] {
	f := &frontier[S]{h: make(itemHeap[S], 0, 64)}
	heap.Init(&f.h)
	return f
}

func (f *frontier[S]) push(state S, priority float64) {
	f.next++
	heap.Push(&f.h, item[S]{state: state, priority: priority, sequence: f.next})
}

func (f *frontier[S]) pop() item[S] {
	return heap.Pop(&f.h).(item[S])
}

func (f *frontier[S]) empty() bool {
	return len(f.h) == 0
}

func (f *frontier[S]) len() int {
	return len(f.h)
}
