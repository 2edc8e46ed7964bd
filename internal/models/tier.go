package models

import "fmt"

// Tier represents the rarity of a leaf
type Tier uint8

const (
	Ancient Tier = iota
	Sacred
	Biotite
	Malachite
	Hematite
)

// TierCount is the number of leaf tiers
const TierCount = int(Hematite) + 1

// AllTiers returns all tiers in ascending order
func AllTiers() []Tier {
	return []Tier{Ancient, Sacred, Biotite, Malachite, Hematite}
}

// Valid reports whether t is one of the known tiers
func (t Tier) Valid() bool {
	return t <= Hematite
}

// Weight returns the rarity weight used by the cost and bonus formulas
func (t Tier) Weight() int {
	return 16 + int(t)
}

// Letter returns the single letter used in the compact leaf notation
func (t Tier) Letter() byte {
	switch t {
	case Ancient:
		return 'a'
	case Sacred:
		return 's'
	case Biotite:
		return 'b'
	case Malachite:
		return 'm'
	case Hematite:
		return 'h'
	default:
		return '?'
	}
}

// String returns the tier name
func (t Tier) String() string {
	switch t {
	case Ancient:
		return "Ancient"
	case Sacred:
		return "Sacred"
	case Biotite:
		return "Biotite"
	case Malachite:
		return "Malachite"
	case Hematite:
		return "Hematite"
	default:
		return fmt.Sprintf("Tier(%d)", uint8(t))
	}
}

// TierFromLetter converts a compact notation letter to a Tier
func TierFromLetter(c byte) (Tier, bool) {
	switch c {
	case 'a', 'A':
		return Ancient, true
	case 's', 'S':
		return Sacred, true
	case 'b', 'B':
		return Biotite, true
	case 'm', 'M':
		return Malachite, true
	case 'h', 'H':
		return Hematite, true
	default:
		return 0, false
	}
}
