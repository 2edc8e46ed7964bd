// Package economy turns leaf upgrades into dark essence and hours.
//
// A Model is built once from models.Constants. Its tables are read-only after
// New returns, and the only mutable piece, the upgrade level memo, is a
// go-cache, so a single Model can back several searches running at once.
package economy

import (
	"errors"
	"fmt"
	"math"

	"github.com/patrickmn/go-cache"

	"github.com/napolitain/solver-leaves/internal/models"
)

// Invariant violations. These are raised as panics wrapping the sentinel:
// they mean a malformed configuration or misconfigured tables, not bad input.
var (
	ErrInvalidTransition = errors.New("economy: transition goes to a smaller leaf")
	ErrNoUpgradeLevel    = errors.New("economy: no level beats the old leaf")
	ErrNonPositiveFactor = errors.New("economy: throughput factor must be positive")
)

// Model holds the cost and bonus tables derived from a set of constants
type Model struct {
	c models.Constants

	fusion    [models.TierCount]int       // total fusion shards to reach a tier
	ascension [models.TierCount][]int     // total ascension shards per tier and level
	wem       [models.TierCount][]float64 // essence bonus per tier and level
	crit      [models.TierCount][]float64 // crit rate bonus per tier and level

	upgrades *cache.Cache
}

// New validates the constants and builds the tables
func New(c models.Constants) (*Model, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		c:        c,
		upgrades: cache.New(cache.NoExpiration, 0),
	}
	m.buildFusionTable()
	m.buildAscensionTable()
	m.buildBonusTables()

	// Every tier's top level must beat every leaf of the tier below, otherwise
	// some tier upgrades have no valid target level.
	for _, t := range models.AllTiers()[1:] {
		top := models.Leaf{Tier: t, Level: c.MaxLevel}
		below := models.Leaf{Tier: t - 1, Level: c.MaxLevel}
		if m.WemBonus(top) <= m.WemBonus(below) {
			return nil, fmt.Errorf("%w: %s does not beat %s", models.ErrInvalidConstants, top, below)
		}
	}

	return m, nil
}

// MustNew is like New but panics on error
func MustNew(c models.Constants) *Model {
	m, err := New(c)
	if err != nil {
		panic(err)
	}
	return m
}

// Default returns a model over the default constants
func Default() *Model {
	return MustNew(models.DefaultConstants())
}

// Constants returns the constants the model was built from
func (m *Model) Constants() models.Constants {
	return m.c
}

// CachedUpgrades returns the number of memoized upgrade levels
func (m *Model) CachedUpgrades() int {
	return m.upgrades.ItemCount()
}

// Factor returns the throughput factor of a configuration: essence gained per
// run, boosted by the squared crit multiplier. Higher is faster.
func (m *Model) Factor(leaves models.Leaves) float64 {
	wem, critRate := 1.0, m.c.BaseCritRate
	for i := 0; i < leaves.Len(); i++ {
		leaf := leaves.At(i)
		wem += m.wem[leaf.Tier][leaf.Level]
		critRate += m.crit[leaf.Tier][leaf.Level]
	}

	essence := m.c.BaseEssencePerRun * wem
	return essence * math.Pow(1+critRate, 2)
}

// TotalTime returns the hours needed to turn every leaf of start into the leaf
// at the same position of end, all paid at the throughput of through
func (m *Model) TotalTime(start, end, through models.Leaves) float64 {
	if start.Len() != end.Len() {
		panic(fmt.Errorf("%w: %d leaves vs %d", models.ErrSetSize, start.Len(), end.Len()))
	}

	factor := m.Factor(through)
	hours := 0.0
	for i := 0; i < start.Len(); i++ {
		hours += m.ElapsedTime(start.At(i), end.At(i), factor)
	}
	return hours
}
