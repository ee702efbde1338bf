package bitset

import (
	"testing"
)

func TestBitSet_SetAndIsSet(t *testing.T) {
	bs := NewBitSet(100)

	bs.Set(0)
	bs.Set(63)
	bs.Set(64)
	bs.Set(99)

	for _, i := range []int{0, 63, 64, 99} {
		if !bs.IsSet(i) {
			t.Errorf("expected bit %d to be set", i)
		}
	}
	if bs.IsSet(1) {
		t.Error("expected bit 1 to be not set")
	}
}

func TestBitSet_UnsetAndClear(t *testing.T) {
	bs := NewBitSet(100)
	bs.Set(10)
	bs.Set(20)
	bs.Set(30)

	bs.Unset(20)
	if bs.IsSet(20) {
		t.Error("expected bit 20 to be unset")
	}
	if !bs.IsSet(10) || !bs.IsSet(30) {
		t.Error("expected bits 10 and 30 to remain set")
	}

	bs.Clear()
	for i := 0; i < 100; i++ {
		if bs.IsSet(i) {
			t.Fatalf("expected bit %d to be cleared", i)
		}
	}
}

func TestBitSet_Clone(t *testing.T) {
	src := NewBitSet(70)
	src.Set(3)

	dst := src.Clone()
	dst.Set(65)

	if !dst.IsSet(3) {
		t.Error("clone lost bit 3")
	}
	if src.IsSet(65) {
		t.Error("setting a bit on the clone leaked into the source")
	}
}

func TestBitSet_IntersectsAndUnion(t *testing.T) {
	a := NewBitSet(128)
	b := NewBitSet(128)
	a.Set(5)
	b.Set(100)

	if a.Intersects(b) {
		t.Error("disjoint sets reported as intersecting")
	}

	a.Union(b)
	if !a.IsSet(100) || !a.IsSet(5) {
		t.Error("union did not keep both bits")
	}
	if !a.Intersects(b) {
		t.Error("expected intersection after union")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Intersects did not panic on mismatched lengths")
		}
	}()
	NewBitSet(64).Intersects(a)
}
