package leaves

import (
	"container/heap"
	"math"
	"testing"

	"github.com/napolitain/solver-leaves/internal/economy"
	"github.com/napolitain/solver-leaves/internal/models"
)

// reducedModel builds a model with fewer levels and leaves so that full
// searches finish in test time
func reducedModel(t testing.TB, maxLevel uint8, setSize int) *economy.Model {
	t.Helper()

	c := models.DefaultConstants()
	c.MaxLevel = maxLevel
	c.LeavesPerSet = setSize

	m, err := economy.New(c)
	if err != nil {
		t.Fatalf("economy.New: %v", err)
	}
	return m
}

// parse reads a configuration in compact notation
func parse(t testing.TB, s string) models.Leaves {
	t.Helper()

	l, err := models.ParseLeaves(s)
	if err != nil {
		t.Fatalf("ParseLeaves(%q): %v", s, err)
	}
	return l
}

func fullSet(tier models.Tier, level uint8, n int) models.Leaves {
	return models.FullSetOf(models.Leaf{Tier: tier, Level: level}, n)
}

// allConfigurations enumerates every sorted configuration of n leaves
func allConfigurations(maxLevel uint8, n int) []models.Leaves {
	var items []models.Leaf
	for _, t := range models.AllTiers() {
		for lvl := uint8(0); lvl <= maxLevel; lvl++ {
			items = append(items, models.Leaf{Tier: t, Level: lvl})
		}
	}

	var out []models.Leaves
	current := make([]models.Leaf, 0, n)
	var walk func(from int)
	walk = func(from int) {
		if len(current) == n {
			out = append(out, models.MustLeaves(current...))
			return
		}
		for i := from; i < len(items); i++ {
			current = append(current, items[i])
			walk(i)
			current = current[:len(current)-1]
		}
	}
	walk(0)
	return out
}

type distEntry struct {
	state models.Leaves
	dist  float64
}

type distHeap []distEntry

func (h distHeap) Len() int           { return len(h) }
func (h distHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)        { *h = append(*h, x.(distEntry)) }
func (h *distHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// dijkstra is a plain reference shortest path, independent of the bounded search
func dijkstra(start, end models.Leaves, neighbors func(models.Leaves) []Edge) float64 {
	dist := map[models.Leaves]float64{start: 0}
	done := map[models.Leaves]bool{}
	h := &distHeap{{state: start}}

	for h.Len() > 0 {
		cur := heap.Pop(h).(distEntry)
		if done[cur.state] {
			continue
		}
		done[cur.state] = true
		if cur.state == end {
			return cur.dist
		}
		for _, e := range neighbors(cur.state) {
			d := cur.dist + e.Cost
			if old, ok := dist[e.To]; !ok || d < old {
				dist[e.To] = d
				heap.Push(h, distEntry{state: e.To, dist: d})
			}
		}
	}
	return math.Inf(1)
}

// dijkstraFrom returns the cheapest cost from start to every reachable configuration
func dijkstraFrom(start models.Leaves, neighbors func(models.Leaves) []Edge) map[models.Leaves]float64 {
	dist := map[models.Leaves]float64{start: 0}
	done := map[models.Leaves]bool{}
	h := &distHeap{{state: start}}

	for h.Len() > 0 {
		cur := heap.Pop(h).(distEntry)
		if done[cur.state] {
			continue
		}
		done[cur.state] = true
		for _, e := range neighbors(cur.state) {
			d := cur.dist + e.Cost
			if old, ok := dist[e.To]; !ok || d < old {
				dist[e.To] = d
				heap.Push(h, distEntry{state: e.To, dist: d})
			}
		}
	}
	return dist
}

// forEachPair calls fn for every start and end of the given shape where end
// lies above start position by position, with the true optimum between them
// (+Inf when the generator cannot get there)
func forEachPair(g *Graph, maxLevel uint8, setSize int, fn func(start, end models.Leaves, optimum float64)) {
	configs := allConfigurations(maxLevel, setSize)

	for _, start := range configs {
		byCeiling := map[models.Leaf]map[models.Leaves]float64{}
		for _, end := range configs {
			if !start.Covers(end) {
				continue
			}
			ceiling := end.Max()
			dist, ok := byCeiling[ceiling]
			if !ok {
				dist = dijkstraFrom(start, func(c models.Leaves) []Edge { return g.Successors(c, ceiling) })
				byCeiling[ceiling] = dist
			}

			optimum, ok := dist[end]
			if !ok {
				optimum = math.Inf(1)
			}
			fn(start, end, optimum)
		}
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
