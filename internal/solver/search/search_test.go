package search

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line is the integer toy graph: every n links to n-1 and n+1 at cost 1
func line(n int) []Edge[int] {
	return []Edge[int]{{To: n - 1, Cost: 1}, {To: n + 1, Cost: 1}}
}

func distance(from, to int) float64 {
	return math.Abs(float64(to - from))
}

func TestBoundedIntegerLine(t *testing.T) {
	zero := func(int, int) float64 { return 0 }

	res, err := Bounded(1, 10, line, zero, nil)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, 9.0, res.Cost)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, res.Path)
	assert.True(t, math.IsInf(res.Bound, 1))
}

func TestBoundedSuccessorOnly(t *testing.T) {
	next := func(n int) []Edge[int] {
		if n >= 10 {
			return nil
		}
		return []Edge[int]{{To: n + 1, Cost: 1}}
	}

	res, err := Bounded(1, 10, next, nil, nil)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, 9.0, res.Cost)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, res.Path)

	// same graph without the edge into 10
	broken := func(n int) []Edge[int] {
		if n >= 9 {
			return nil
		}
		return next(n)
	}
	res, err = Bounded(1, 10, broken, nil, nil)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, 9, res.Expansions)
}

func TestBoundedExactHeuristics(t *testing.T) {
	res, err := Bounded(1, 10, line, distance, distance)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, 9.0, res.Cost)
	assert.Len(t, res.Path, 10)

	// with both bounds exact nothing off the optimal path is ever queued
	assert.Equal(t, 10, res.Expansions)
	assert.Equal(t, 9.0, res.Bound)
}

func TestBoundedStartIsEnd(t *testing.T) {
	res, err := Bounded(4, 4, line, distance, distance)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, 0.0, res.Cost)
	assert.Equal(t, []int{4}, res.Path)
}

func TestBoundedExhaustion(t *testing.T) {
	// only moves right, so 0 is unreachable from 5
	right := func(n int) []Edge[int] {
		if n >= 20 {
			return nil
		}
		return []Edge[int]{{To: n + 1, Cost: 1}}
	}

	res, err := Bounded(5, 0, right, nil, nil)
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Nil(t, res.Path)
	assert.Equal(t, 16, res.Expansions)
}

func TestBoundedUpperPrunes(t *testing.T) {
	// a cheap route and a long detour; the exact upper bound keeps the detour
	// from being explored past its first node
	graph := map[string][]Edge[string]{
		"s":  {{To: "a", Cost: 1}, {To: "d1", Cost: 0.5}},
		"a":  {{To: "t", Cost: 1}},
		"d1": {{To: "d2", Cost: 5}},
		"d2": {{To: "t", Cost: 5}},
	}
	neighbors := func(s string) []Edge[string] { return graph[s] }
	remaining := map[string]float64{"s": 2, "a": 1, "d1": 10, "d2": 5, "t": 0}
	exact := func(from, _ string) float64 { return remaining[from] }

	res, err := Bounded("s", "t", neighbors, nil, exact)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []string{"s", "a", "t"}, res.Path)
	assert.Equal(t, 2.0, res.Cost)
	assert.Equal(t, 4, res.Pushes, "d2 must never be queued")
	assert.Equal(t, 2.0, res.Bound)
}

func TestBoundedTieBreakIsInsertionOrder(t *testing.T) {
	graph := map[int][]Edge[int]{
		0: {{To: 1, Cost: 1}, {To: 2, Cost: 1}},
		1: {{To: 3, Cost: 1}},
		2: {{To: 3, Cost: 1}},
	}
	neighbors := func(n int) []Edge[int] { return graph[n] }

	for i := 0; i < 20; i++ {
		res, err := Bounded(0, 3, neighbors, nil, nil)
		require.NoError(t, err)
		require.Equal(t, []int{0, 1, 3}, res.Path)
	}
}

func TestBoundedErrors(t *testing.T) {
	_, err := Bounded[int](0, 1, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNilNeighbors)

	negative := func(n int) []Edge[int] { return []Edge[int]{{To: n + 1, Cost: -1}} }
	_, err = Bounded(0, 3, negative, nil, nil)
	assert.ErrorIs(t, err, ErrNegativeCost)
}

func TestBoundedProgress(t *testing.T) {
	var reports []Progress
	res, err := Bounded(0, 50, line, nil, nil,
		WithProgress(func(p Progress) { reports = append(reports, p) }),
		WithProgressEvery(10),
	)
	require.NoError(t, err)
	require.True(t, res.Found)

	pops := res.Expansions + res.Pruned
	require.Len(t, reports, pops/10)
	for i, p := range reports {
		assert.Equal(t, (i+1)*10, p.Iteration)
		assert.GreaterOrEqual(t, p.Frontier, 0)
	}
}

func TestBoundedContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Bounded(0, 1000, line, nil, nil, WithContext(ctx), WithProgressEvery(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// grid is a random weighted 4-neighbor grid used to cross-check the search
// against a plain Dijkstra
type grid struct {
	w, h   int
	weight []float64
}

type cell struct{ x, y int }

func newGrid(seed int64, w, h int) *grid {
	r := rand.New(rand.NewSource(seed))
	g := &grid{w: w, h: h, weight: make([]float64, w*h)}
	for i := range g.weight {
		g.weight[i] = 1 + float64(r.Intn(9))
	}
	return g
}

func (g *grid) cost(c cell) float64 { return g.weight[c.y*g.w+c.x] }

func (g *grid) neighbors(c cell) []Edge[cell] {
	var out []Edge[cell]
	for _, d := range []cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		n := cell{c.x + d.x, c.y + d.y}
		if n.x < 0 || n.y < 0 || n.x >= g.w || n.y >= g.h {
			continue
		}
		out = append(out, Edge[cell]{To: n, Cost: g.cost(n)})
	}
	return out
}

// lower: every step costs at least 1
func (g *grid) lower(from, to cell) float64 {
	return math.Abs(float64(to.x-from.x)) + math.Abs(float64(to.y-from.y))
}

// upper: walk along x then along y, a real path
func (g *grid) upper(from, to cell) float64 {
	total := 0.0
	c := from
	for c.x != to.x {
		if c.x < to.x {
			c.x++
		} else {
			c.x--
		}
		total += g.cost(c)
	}
	for c.y != to.y {
		if c.y < to.y {
			c.y++
		} else {
			c.y--
		}
		total += g.cost(c)
	}
	return total
}

func (g *grid) dijkstra(start, end cell) float64 {
	dist := map[cell]float64{start: 0}
	done := map[cell]bool{}
	for {
		best, bestDist := cell{}, math.Inf(1)
		for c, d := range dist {
			if !done[c] && d < bestDist {
				best, bestDist = c, d
			}
		}
		if math.IsInf(bestDist, 1) {
			return bestDist
		}
		if best == end {
			return bestDist
		}
		done[best] = true
		for _, e := range g.neighbors(best) {
			if d, ok := dist[e.To]; !ok || bestDist+e.Cost < d {
				dist[e.To] = bestDist + e.Cost
			}
		}
	}
}

func TestBoundedMatchesDijkstra(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := newGrid(seed, 8, 6)
		start, end := cell{0, 0}, cell{7, 5}

		want := g.dijkstra(start, end)
		res, err := Bounded(start, end, g.neighbors, g.lower, g.upper)
		require.NoError(t, err)
		require.True(t, res.Found, "seed %d", seed)
		assert.InDelta(t, want, res.Cost, 1e-9, "seed %d", seed)

		// the path must be contiguous and cost what it claims
		sum := 0.0
		for i := 1; i < len(res.Path); i++ {
			sum += g.cost(res.Path[i])
			assert.Equal(t, 1.0, g.lower(res.Path[i-1], res.Path[i]))
		}
		assert.InDelta(t, res.Cost, sum, 1e-9)
		assert.LessOrEqual(t, res.Cost, res.Bound+1e-9)
	}
}
