package bitset

import "fmt"

// NewBitSet returns a BitSet able to hold n bits.
func NewBitSet(n int) BitSet {
	words := (n + 63) / 64
	return make(BitSet, words)
}

// BitSet is a fixed-size set of small non-negative integers, used by the router to
// track which token indices a partial path has already visited.
type BitSet []uint64

func (b BitSet) IsSet(index int) bool {
	return b[index/64]&(uint64(1)<<(uint(index)%64)) != 0
}

func (b BitSet) Set(index int) {
	b[index/64] |= uint64(1) << (uint(index) % 64)
}

func (b BitSet) Unset(index int) {
	b[index/64] &^= uint64(1) << (uint(index) % 64)
}

func (b BitSet) Clear() {
	for i := range b {
		b[i] = 0
	}
}

// Clone returns an independent copy.
func (b BitSet) Clone() BitSet {
	c := make(BitSet, len(b))
	copy(c, b)
	return c
}

// Intersects reports whether b and o share at least one set bit.
func (b BitSet) Intersects(o BitSet) bool {
	if len(b) != len(o) {
		panic(fmt.Sprintf("bitsets must be same size: got %d vs %d", len(b), len(o)))
	}
	for i := range b {
		if b[i]&o[i] != 0 {
			return true
		}
	}
	return false
}

// Union sets every bit of o in b.
func (b BitSet) Union(o BitSet) {
	if len(b) != len(o) {
		panic(fmt.Sprintf("bitsets must be same size: got %d vs %d", len(b), len(o)))
	}
	for i := range b {
		b[i] |= o[i]
	}
}
