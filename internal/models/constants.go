package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConstants is returned by Constants.Validate
var ErrInvalidConstants = errors.New("invalid constants")

// Constants holds every number that shapes the economy tables.
// Changing any of them reshapes the costs and heuristics but not the search.
type Constants struct {
	// Currency conversion
	EssencePerDark        float64 // regular essence per dark essence
	DarkPerAscensionShard int
	DarkPerFusionShard    int
	HoursPerRun           float64 // hours per witch killed

	// Throughput
	BaseEssencePerRun float64 // essence per witch before leaf bonuses
	BaseCritRate      float64

	// Property bonuses
	WemBonusExponent  float64 // base wem bonus is 10^exponent
	CritBonusExponent float64 // base crit bonus is 10^exponent
	WemShards         int
	CritShards        int
	ItemLevels        int
	Quality           int

	// Leaves
	MaxLevel     uint8
	LeavesPerSet int

	// Tier cost shape
	BaseWeight       int
	FusionMultiplier int
	FusionCosts      [TierCount]int // fusion shards to reach a tier from the previous one
}

// DefaultConstants returns the values of the live game economy
func DefaultConstants() Constants {
	return Constants{
		EssencePerDark:        6,
		DarkPerAscensionShard: 100,
		DarkPerFusionShard:    50,
		HoursPerRun:           144.0 / 60 / 60,

		BaseEssencePerRun: 17.9,
		BaseCritRate:      0.3463,

		WemBonusExponent:  -8.5,
		CritBonusExponent: -10,
		WemShards:         10,
		CritShards:        7,
		ItemLevels:        30,
		Quality:           200,

		MaxLevel:     10,
		LeavesPerSet: 8,

		BaseWeight:       14,
		FusionMultiplier: 6,
		FusionCosts:      [TierCount]int{0, 5, 7, 11, 19},
	}
}

// BaseWemBonus returns 10^WemBonusExponent
func (c Constants) BaseWemBonus() float64 {
	return math.Pow(10, c.WemBonusExponent)
}

// BaseCritBonus returns 10^CritBonusExponent
func (c Constants) BaseCritBonus() float64 {
	return math.Pow(10, c.CritBonusExponent)
}

// Validate checks that the constants produce positive throughput and
// well-formed tables
func (c Constants) Validate() error {
	switch {
	case c.EssencePerDark <= 0:
		return fmt.Errorf("%w: essence per dark essence must be positive", ErrInvalidConstants)
	case c.DarkPerAscensionShard < 0 || c.DarkPerFusionShard < 0:
		return fmt.Errorf("%w: shard prices must not be negative", ErrInvalidConstants)
	case c.HoursPerRun <= 0:
		return fmt.Errorf("%w: hours per run must be positive", ErrInvalidConstants)
	case c.BaseEssencePerRun <= 0:
		return fmt.Errorf("%w: base essence per run must be positive", ErrInvalidConstants)
	case c.BaseCritRate < 0:
		return fmt.Errorf("%w: base crit rate must not be negative", ErrInvalidConstants)
	case c.WemShards < 0 || c.CritShards < 0:
		return fmt.Errorf("%w: shard counts must not be negative", ErrInvalidConstants)
	case c.ItemLevels < 0 || c.Quality <= 0:
		return fmt.Errorf("%w: item levels and quality must be positive", ErrInvalidConstants)
	case c.MaxLevel == 0:
		return fmt.Errorf("%w: max level must be at least 1", ErrInvalidConstants)
	case c.LeavesPerSet <= 0 || c.LeavesPerSet > MaxSetSize:
		return fmt.Errorf("%w: leaves per set must be in 1..%d", ErrInvalidConstants, MaxSetSize)
	case c.BaseWeight >= Ancient.Weight():
		return fmt.Errorf("%w: base weight must be below %d", ErrInvalidConstants, Ancient.Weight())
	case c.FusionMultiplier < 0:
		return fmt.Errorf("%w: fusion multiplier must not be negative", ErrInvalidConstants)
	}

	for t, cost := range c.FusionCosts {
		if cost < 0 {
			return fmt.Errorf("%w: fusion cost of %s is negative", ErrInvalidConstants, Tier(t))
		}
	}
	return nil
}
