package economy

import (
	"math"

	"github.com/napolitain/solver-leaves/internal/models"
)

// buildFusionTable fills the total fusion shards per tier. Reaching a tier takes
// FusionMultiplier leaves of the previous tier plus that tier's own shards.
func (m *Model) buildFusionTable() {
	m.fusion[models.Ancient] = 0
	for _, t := range models.AllTiers()[1:] {
		m.fusion[t] = m.fusion[t-1]*m.c.FusionMultiplier + m.c.FusionCosts[t]
	}
}

func (m *Model) buildAscensionTable() {
	for _, t := range models.AllTiers() {
		levels := make([]int, int(m.c.MaxLevel)+1)
		cost := 0
		for next := 1; next <= int(m.c.MaxLevel); next++ {
			cost += m.ascensionStep(t, next)
			levels[next] = cost
		}
		m.ascension[t] = levels
	}
}

// ascensionStep returns the shards needed to go from next-1 to next.
// Ancient leaves ascend for free.
func (m *Model) ascensionStep(t models.Tier, next int) int {
	if t.Weight() <= models.Ancient.Weight() {
		return 0
	}
	return next * (2 + int(math.Ceil(math.Pow(1.5, float64(t.Weight()-m.c.BaseWeight)))))
}

func (m *Model) buildBonusTables() {
	baseWem := m.c.BaseWemBonus()
	baseCrit := m.c.BaseCritBonus()

	for _, t := range models.AllTiers() {
		wem := make([]float64, int(m.c.MaxLevel)+1)
		crit := make([]float64, int(m.c.MaxLevel)+1)
		for lvl := range wem {
			leaf := models.Leaf{Tier: t, Level: uint8(lvl)}
			wem[lvl] = m.propertyBonus(leaf, baseWem, m.c.WemShards)
			crit[lvl] = m.propertyBonus(leaf, baseCrit, m.c.CritShards)
		}
		m.wem[t] = wem
		m.crit[t] = crit
	}
}

// propertyBonus is the in-game formula for a leaf property. Level 0 counts as
// one level below level 1 in the level term.
func (m *Model) propertyBonus(leaf models.Leaf, base float64, shards int) float64 {
	level := int(leaf.Level)
	if level == 0 {
		level = -1
	}

	levelTerm := float64((level+1)*60+m.c.ItemLevels)/5.0 + 1
	rarityTerm := math.Pow(float64((leaf.Tier.Weight()-m.c.BaseWeight)*128), 1.6)
	shardTerm := float64(1 + shards*3)

	return base * levelTerm * rarityTerm * shardTerm * float64(m.c.Quality) / 20
}

// TotalFusionShards returns the fusion shards spent to reach tier t from Ancient
func (m *Model) TotalFusionShards(t models.Tier) int {
	return m.fusion[t]
}

// TotalAscensionShards returns the ascension shards spent to reach the leaf's
// level within its tier
func (m *Model) TotalAscensionShards(leaf models.Leaf) int {
	return m.ascension[leaf.Tier][leaf.Level]
}

// WemBonus returns the essence bonus of a single leaf
func (m *Model) WemBonus(leaf models.Leaf) float64 {
	return m.wem[leaf.Tier][leaf.Level]
}

// CritBonus returns the crit rate bonus of a single leaf
func (m *Model) CritBonus(leaf models.Leaf) float64 {
	return m.crit[leaf.Tier][leaf.Level]
}
