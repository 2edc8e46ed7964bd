package leaves

import (
	"math"

	"github.com/napolitain/solver-leaves/internal/models"
)

// blocked is the cost of pairing two leaves that cannot upgrade into each
// other. It dwarfs any real sum of transition costs.
const blocked = int64(1) << 40

// pairing is the cheapest way to assign every leaf of start to a leaf of end
type pairing struct {
	dark      int // total dark essence of the assigned transitions
	reachable bool
}

// cheapestPairing matches start leaves to end leaves so that every pair can
// be upgraded and the summed dark essence is minimal. Sorted positions are
// not always the best match: keeping a leaf in its tier saves the ascension
// shards already spent on it.
//
// Any real plan upgrades each start leaf into some end leaf and pays at least
// that pair's dark essence, so the result prices every plan from below.
func (g *Graph) cheapestPairing(start, end models.Leaves) pairing {
	if start == end {
		return pairing{reachable: true}
	}
	// every pairing has to cover position by position once sorted
	if !start.Covers(end) {
		return pairing{}
	}

	n := start.Len()
	var cost [models.MaxSetSize][models.MaxSetSize]int64
	for i := 0; i < n; i++ {
		from := start.At(i)
		for j := 0; j < n; j++ {
			to := end.At(j)
			if g.model.CanUpgrade(from, to) {
				cost[i][j] = int64(g.model.TransitionCost(from, to))
			} else {
				cost[i][j] = blocked
			}
		}
	}

	assigned := assign(&cost, n)

	total := int64(0)
	for j := 0; j < n; j++ {
		total += cost[assigned[j]][j]
	}
	if total >= blocked {
		return pairing{}
	}
	return pairing{dark: int(total), reachable: true}
}

// assign solves the n x n assignment problem over cost with the Hungarian
// method and returns, for every column, the row assigned to it.
func assign(cost *[models.MaxSetSize][models.MaxSetSize]int64, n int) [models.MaxSetSize]int {
	const inf = int64(math.MaxInt64 / 4)

	// 1-based: row and column 0 are the virtual start of each augmenting path
	var (
		u, v   [models.MaxSetSize + 1]int64
		p, way [models.MaxSetSize + 1]int
	)

	for i := 1; i <= n; i++ {
		p[0] = i
		col := 0

		var (
			minv [models.MaxSetSize + 1]int64
			used [models.MaxSetSize + 1]bool
		)
		for j := 0; j <= n; j++ {
			minv[j] = inf
		}

		for {
			used[col] = true
			row := p[col]
			delta, next := inf, 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				reduced := cost[row-1][j-1] - u[row] - v[j]
				if reduced < minv[j] {
					minv[j] = reduced
					way[j] = col
				}
				if minv[j] < delta {
					delta = minv[j]
					next = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			col = next
			if p[col] == 0 {
				break
			}
		}

		for col != 0 {
			prev := way[col]
			p[col] = p[prev]
			col = prev
		}
	}

	var assigned [models.MaxSetSize]int
	for j := 1; j <= n; j++ {
		assigned[j-1] = p[j] - 1
	}
	return assigned
}
