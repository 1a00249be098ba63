package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	// Quarter period at 1 kHz / 48 kHz.
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 64)
	b := DeterministicNoise(42, 0.5, 64)
	c := DeterministicNoise(43, 0.5, 64)

	same := true

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}

		if a[i] < -0.5 || a[i] > 0.5 {
			t.Fatalf("a[%d] = %v outside amplitude", i, a[i])
		}

		if a[i] != c[i] {
			same = false
		}
	}

	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestDCAndOnes(t *testing.T) {
	RequireSliceNearlyEqual(t, DC(0.5, 3), []float64{0.5, 0.5, 0.5}, 0)
	RequireSliceNearlyEqual(t, Ones(2), []float64{1, 1}, 0)
}

func TestNoiseBlockAndClone(t *testing.T) {
	block := NoiseBlock(9, 1, 3, 16)
	if len(block) != 3 || len(block[2]) != 16 {
		t.Fatalf("shape = %d x %d", len(block), len(block[2]))
	}

	RequireSliceNearlyEqual(t, block[1], DeterministicNoise(10, 1, 16), 0)

	clone := CloneBlock(block)
	clone[0][0] = 99

	if block[0][0] == 99 {
		t.Fatal("CloneBlock shares storage with its source")
	}
}

func TestInterleave(t *testing.T) {
	got := Interleave([][]float64{{1, 2, 3}, {-1, -2, -3}})
	RequireSliceNearlyEqual(t, got, []float64{1, -1, 2, -2, 3, -3}, 0)

	if Interleave(nil) != nil {
		t.Fatal("Interleave(nil) should be nil")
	}
}
