package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidLeaf is returned when a leaf cannot be parsed or is outside the tables
var ErrInvalidLeaf = errors.New("invalid leaf")

// Leaf is a single upgradeable item: a tier and an ascension level within it
type Leaf struct {
	Tier  Tier
	Level uint8
}

// Compare orders leaves by tier, then by level.
// It returns -1, 0 or +1.
func (l Leaf) Compare(o Leaf) int {
	switch {
	case l.Tier < o.Tier:
		return -1
	case l.Tier > o.Tier:
		return 1
	case l.Level < o.Level:
		return -1
	case l.Level > o.Level:
		return 1
	default:
		return 0
	}
}

// Less reports whether l sorts before o
func (l Leaf) Less(o Leaf) bool {
	return l.Compare(o) < 0
}

// Validate checks the leaf against the configured maximum level
func (l Leaf) Validate(maxLevel uint8) error {
	if !l.Tier.Valid() {
		return fmt.Errorf("%w: unknown tier %d", ErrInvalidLeaf, l.Tier)
	}
	if l.Level > maxLevel {
		return fmt.Errorf("%w: %s is above max level %d", ErrInvalidLeaf, l, maxLevel)
	}
	return nil
}

// String returns the compact notation, e.g. "h10"
func (l Leaf) String() string {
	return string(l.Tier.Letter()) + strconv.Itoa(int(l.Level))
}

// ParseLeaf parses the compact notation produced by Leaf.String
func ParseLeaf(s string) (Leaf, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Leaf{}, fmt.Errorf("%w: %q", ErrInvalidLeaf, s)
	}

	tier, ok := TierFromLetter(s[0])
	if !ok {
		return Leaf{}, fmt.Errorf("%w: unknown tier letter in %q", ErrInvalidLeaf, s)
	}

	level, err := strconv.ParseUint(s[1:], 10, 8)
	if err != nil {
		return Leaf{}, fmt.Errorf("%w: bad level in %q", ErrInvalidLeaf, s)
	}

	return Leaf{Tier: tier, Level: uint8(level)}, nil
}
