// Package leaves plans the cheapest way to upgrade a set of leaves.
//
// The state space is every sorted configuration of K leaves. Edges change a
// single leaf and cost the hours needed to farm the dark essence for that
// change at the configuration's current throughput.
package leaves

import (
	"math"

	"github.com/napolitain/solver-leaves/internal/economy"
	"github.com/napolitain/solver-leaves/internal/models"
	"github.com/napolitain/solver-leaves/internal/solver/search"
)

// Edge is a single leaf change between two configurations
type Edge = search.Edge[models.Leaves]

// Graph generates neighbors and bounds over configurations
type Graph struct {
	model    *economy.Model
	maxLevel uint8
}

// NewGraph returns a graph over the model's tables
func NewGraph(model *economy.Model) *Graph {
	return &Graph{
		model:    model,
		maxLevel: model.Constants().MaxLevel,
	}
}

// Successors returns every configuration reachable by upgrading one leaf,
// never going past ceiling. Each distinct leaf value is upgraded once: either
// one level up, or to the smallest level of a higher tier that beats it.
func (g *Graph) Successors(config models.Leaves, ceiling models.Leaf) []Edge {
	factor := g.model.Factor(config)
	edges := make([]Edge, 0, 2*config.Len())

	for i := 0; i < config.Len(); i++ {
		leaf := config.At(i)
		if i > 0 && config.At(i-1) == leaf {
			continue
		}

		// below the ceiling, a level up never passes it
		if leaf.Less(ceiling) && leaf.Level != g.maxLevel {
			next := models.Leaf{Tier: leaf.Tier, Level: leaf.Level + 1}
			edges = append(edges, Edge{
				To:   config.Replace(i, next),
				Cost: g.model.ElapsedTime(leaf, next, factor),
			})
		}

		for t := leaf.Tier + 1; t <= ceiling.Tier; t++ {
			next := models.Leaf{Tier: t, Level: g.model.SmallestLevelUpgrade(leaf, t)}
			if ceiling.Less(next) {
				continue
			}
			edges = append(edges, Edge{
				To:   config.Replace(i, next),
				Cost: g.model.ElapsedTime(leaf, next, factor),
			})
		}
	}

	return edges
}

// Predecessors returns every configuration that reaches config by upgrading
// one leaf, never going below floor. Edge costs are those of the forward
// upgrade, paid at the predecessor's throughput.
//
// A lower tier candidate is only a predecessor while it leaves the
// configuration slower than it is now. Bonuses grow with level inside a tier,
// so the scan of a tier stops at the first level that does not.
func (g *Graph) Predecessors(config models.Leaves, floor models.Leaf) []Edge {
	current := g.model.Factor(config)
	edges := make([]Edge, 0, 2*config.Len())

	for i := 0; i < config.Len(); i++ {
		leaf := config.At(i)
		if i > 0 && config.At(i-1) == leaf {
			continue
		}

		if floor.Less(leaf) && leaf.Level != 0 {
			prev := models.Leaf{Tier: leaf.Tier, Level: leaf.Level - 1}
			candidate := config.Replace(i, prev)
			edges = append(edges, Edge{
				To:   candidate,
				Cost: g.model.ElapsedTime(prev, leaf, g.model.Factor(candidate)),
			})
		}

		for t := floor.Tier; t < leaf.Tier; t++ {
			for lvl := 0; lvl <= int(g.maxLevel); lvl++ {
				prev := models.Leaf{Tier: t, Level: uint8(lvl)}
				if prev.Less(floor) {
					continue
				}

				candidate := config.Replace(i, prev)
				factor := g.model.Factor(candidate)
				if factor >= current {
					break
				}
				edges = append(edges, Edge{
					To:   candidate,
					Cost: g.model.ElapsedTime(prev, leaf, factor),
				})
			}
		}
	}

	return edges
}

// LowerBound is the time to upgrade start into end if every upgrade were paid
// at end's throughput, the fastest any intermediate configuration can farm.
// Leaves are paired the cheapest way; it is +Inf when no pairing can be
// upgraded.
func (g *Graph) LowerBound(start, end models.Leaves) float64 {
	p := g.cheapestPairing(start, end)
	if !p.reachable {
		return math.Inf(1)
	}
	return g.model.Hours(p.dark, g.model.Factor(end))
}

// UpperBound is the time to upgrade start into end if every upgrade were paid
// at start's throughput. Upgrading each leaf of the cheapest pairing straight
// to its partner is a real plan that costs no more than this.
func (g *Graph) UpperBound(start, end models.Leaves) float64 {
	p := g.cheapestPairing(start, end)
	if !p.reachable {
		return math.Inf(1)
	}
	return g.model.Hours(p.dark, g.model.Factor(start))
}

// Reachable reports whether end can be planned from start
func (g *Graph) Reachable(start, end models.Leaves) bool {
	return g.cheapestPairing(start, end).reachable
}

// ReversedLowerBound is LowerBound for a search running from end back to start
func (g *Graph) ReversedLowerBound(end, start models.Leaves) float64 {
	return g.LowerBound(start, end)
}

// ReversedUpperBound is UpperBound for a search running from end back to start
func (g *Graph) ReversedUpperBound(end, start models.Leaves) float64 {
	return g.UpperBound(start, end)
}
