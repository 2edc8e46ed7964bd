package economy

import (
	"fmt"

	"github.com/patrickmn/go-cache"

	"github.com/napolitain/solver-leaves/internal/models"
)

// TransitionCost returns the dark essence needed to turn old into new.
// Fusion shards are paid on the tier difference; ascension shards already spent
// on old are only kept when the tier does not change.
func (m *Model) TransitionCost(old, new models.Leaf) int {
	if new.Less(old) {
		panic(fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, old, new))
	}

	fusionShards := m.fusion[new.Tier] - m.fusion[old.Tier]

	ascensionShards := m.ascension[new.Tier][new.Level]
	if new.Tier == old.Tier {
		ascensionShards -= m.ascension[old.Tier][old.Level]
	}

	return m.c.DarkPerAscensionShard*ascensionShards + m.c.DarkPerFusionShard*fusionShards
}

// ElapsedTime returns the hours of farming needed to pay for old -> new at the
// given throughput factor
func (m *Model) ElapsedTime(old, new models.Leaf, factor float64) float64 {
	return m.Hours(m.TransitionCost(old, new), factor)
}

// Hours converts an amount of dark essence into farming hours at the given
// throughput factor
func (m *Model) Hours(dark int, factor float64) float64 {
	if factor <= 0 {
		panic(fmt.Errorf("%w: got %g", ErrNonPositiveFactor, factor))
	}
	return float64(dark) * m.c.EssencePerDark / factor * m.c.HoursPerRun
}

// CanUpgrade reports whether old can turn into new using only level ups and
// smallest level tier upgrades. Covering is not enough: an a1 leaf never
// becomes s0 because s0 does not beat it.
func (m *Model) CanUpgrade(old, new models.Leaf) bool {
	switch {
	case new.Tier == old.Tier:
		return new.Level >= old.Level
	case new.Tier < old.Tier:
		return false
	default:
		return new.Level >= m.SmallestLevelUpgrade(old, new.Tier)
	}
}

// SmallestLevelUpgrade returns the lowest level at target whose essence bonus
// strictly beats old. Within the same tier that is simply the next level.
func (m *Model) SmallestLevelUpgrade(old models.Leaf, target models.Tier) uint8 {
	if target < old.Tier {
		panic(fmt.Errorf("%w: %s -> tier %s", ErrInvalidTransition, old, target))
	}
	if target == old.Tier {
		return old.Level + 1
	}

	key := upgradeKey(old, target)
	if level, ok := m.upgrades.Get(key); ok {
		return level.(uint8)
	}

	bonus := m.WemBonus(old)
	for lvl, candidate := range m.wem[target] {
		if candidate > bonus {
			m.upgrades.Set(key, uint8(lvl), cache.NoExpiration)
			return uint8(lvl)
		}
	}

	panic(fmt.Errorf("%w: %s -> tier %s", ErrNoUpgradeLevel, old, target))
}

func upgradeKey(old models.Leaf, target models.Tier) string {
	return string([]byte{byte(old.Tier), old.Level, byte(target)})
}
