package models

import (
	"errors"
	"fmt"
	"strings"
)

// MaxSetSize is the largest number of leaves a configuration can hold
const MaxSetSize = 16

// ErrSetSize is returned when a configuration has the wrong number of leaves
var ErrSetSize = errors.New("invalid number of leaves")

// Leaves is a canonical configuration: a multiset of leaves kept in sorted order.
// Two permutations of the same leaves are the same value, so Leaves can be
// compared with == and used directly as a map key.
type Leaves struct {
	n     uint8
	items [MaxSetSize]Leaf
}

// NewLeaves builds a sorted configuration from the given leaves
func NewLeaves(items ...Leaf) (Leaves, error) {
	if len(items) == 0 || len(items) > MaxSetSize {
		return Leaves{}, fmt.Errorf("%w: got %d, want 1..%d", ErrSetSize, len(items), MaxSetSize)
	}

	var l Leaves
	l.n = uint8(len(items))
	copy(l.items[:], items)

	// insertion sort, sets are tiny
	for i := 1; i < int(l.n); i++ {
		for j := i; j > 0 && l.items[j].Less(l.items[j-1]); j-- {
			l.items[j], l.items[j-1] = l.items[j-1], l.items[j]
		}
	}
	return l, nil
}

// MustLeaves is like NewLeaves but panics on error
func MustLeaves(items ...Leaf) Leaves {
	l, err := NewLeaves(items...)
	if err != nil {
		panic(err)
	}
	return l
}

// FullSetOf returns a configuration of n copies of leaf
func FullSetOf(leaf Leaf, n int) Leaves {
	if n <= 0 || n > MaxSetSize {
		panic(fmt.Errorf("%w: got %d, want 1..%d", ErrSetSize, n, MaxSetSize))
	}
	l := Leaves{n: uint8(n)}
	for i := 0; i < n; i++ {
		l.items[i] = leaf
	}
	return l
}

// Len returns the number of leaves
func (l Leaves) Len() int {
	return int(l.n)
}

// At returns the i-th smallest leaf
func (l Leaves) At(i int) Leaf {
	if i < 0 || i >= int(l.n) {
		panic(fmt.Sprintf("leaves: index %d out of range [0,%d)", i, l.n))
	}
	return l.items[i]
}

// Items returns a copy of the leaves in ascending order
func (l Leaves) Items() []Leaf {
	out := make([]Leaf, l.n)
	copy(out, l.items[:l.n])
	return out
}

// Min returns the smallest leaf
func (l Leaves) Min() Leaf {
	return l.At(0)
}

// Max returns the largest leaf
func (l Leaves) Max() Leaf {
	return l.At(int(l.n) - 1)
}

// Replace returns a new configuration with the i-th leaf swapped for leaf.
// The result is re-sorted; the receiver is not modified.
func (l Leaves) Replace(i int, leaf Leaf) Leaves {
	if i < 0 || i >= int(l.n) {
		panic(fmt.Sprintf("leaves: index %d out of range [0,%d)", i, l.n))
	}

	out := l
	out.items[i] = leaf
	for j := i; j > 0 && out.items[j].Less(out.items[j-1]); j-- {
		out.items[j], out.items[j-1] = out.items[j-1], out.items[j]
	}
	for j := i; j+1 < int(out.n) && out.items[j+1].Less(out.items[j]); j++ {
		out.items[j], out.items[j+1] = out.items[j+1], out.items[j]
	}
	return out
}

// Covers reports whether every leaf of l is at or below the leaf at the same
// position of o. Only then can l be upgraded into o one leaf at a time.
func (l Leaves) Covers(o Leaves) bool {
	if l.n != o.n {
		return false
	}
	for i := 0; i < int(l.n); i++ {
		if o.items[i].Less(l.items[i]) {
			return false
		}
	}
	return true
}

// Compare orders configurations lexicographically over their sorted leaves
func (l Leaves) Compare(o Leaves) int {
	n := min(l.n, o.n)
	for i := 0; i < int(n); i++ {
		if c := l.items[i].Compare(o.items[i]); c != 0 {
			return c
		}
	}
	switch {
	case l.n < o.n:
		return -1
	case l.n > o.n:
		return 1
	default:
		return 0
	}
}

// Validate checks the configuration size and every leaf against the constants
func (l Leaves) Validate(c Constants) error {
	if int(l.n) != c.LeavesPerSet {
		return fmt.Errorf("%w: got %d, want %d", ErrSetSize, l.n, c.LeavesPerSet)
	}
	for i := 0; i < int(l.n); i++ {
		if err := l.items[i].Validate(c.MaxLevel); err != nil {
			return err
		}
	}
	return nil
}

// String returns the space separated compact notation, e.g. "a0 a0 s3 h10"
func (l Leaves) String() string {
	var b strings.Builder
	for i := 0; i < int(l.n); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(l.items[i].String())
	}
	return b.String()
}

// ParseLeaves parses a whitespace or comma separated list of leaves
func ParseLeaves(s string) (Leaves, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})

	items := make([]Leaf, 0, len(fields))
	for _, f := range fields {
		leaf, err := ParseLeaf(f)
		if err != nil {
			return Leaves{}, err
		}
		items = append(items, leaf)
	}
	return NewLeaves(items...)
}
