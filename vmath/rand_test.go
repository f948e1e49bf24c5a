package vmath

import "testing"

// TestFastRandDeterministic verifies equal seeds give equal sequences
func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("sequence diverged at %d", i)
		}
	}
}

// TestFastRandRange verifies Range and Intn stay within bounds
func TestFastRandRange(t *testing.T) {
	r := NewFastRand(0)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := r.Range(7, 13)
		if v < 7 || v > 13 {
			t.Fatalf("Range out of bounds: %d", v)
		}
		seen[v] = true
		if s := r.Sign(); s != 1 && s != -1 {
			t.Fatalf("Sign returned %d", s)
		}
	}
	if len(seen) != 7 {
		t.Errorf("expected all 7 values, saw %d", len(seen))
	}
	if r.Intn(0) != 0 || r.Range(5, 5) != 5 {
		t.Error("degenerate ranges should return the lower bound")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{12, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d,%d,%d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if Abs(-4) != 4 || Sign(-4) != -1 || Sign(0) != 0 {
		t.Error("Abs/Sign mismatch")
	}
}
