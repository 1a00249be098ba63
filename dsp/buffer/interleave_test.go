package buffer

import "testing"

func TestInterleaveRoundTrip(t *testing.T) {
	src := []float64{1, -1, 2, -2, 3, -3}
	planar := New(2, 3).Channels()

	if err := Deinterleave(planar, src); err != nil {
		t.Fatalf("Deinterleave() error = %v", err)
	}

	if planar[0][2] != 3 || planar[1][2] != -3 {
		t.Fatalf("unexpected planar data: %v", planar)
	}

	out := make([]float64, len(src))
	if err := Interleave(out, planar); err != nil {
		t.Fatalf("Interleave() error = %v", err)
	}

	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("sample %d = %v, want %v", i, out[i], src[i])
		}
	}
}

func TestInterleave32(t *testing.T) {
	src := []float32{0.5, 0.25, -0.5, -0.25}
	planar := New(2, 2).Channels()

	if err := Deinterleave32(planar, src); err != nil {
		t.Fatalf("Deinterleave32() error = %v", err)
	}

	if planar[1][1] != -0.25 {
		t.Fatalf("planar[1][1] = %v, want -0.25", planar[1][1])
	}

	out := make([]float32, 4)
	if err := Interleave32(out, planar); err != nil {
		t.Fatalf("Interleave32() error = %v", err)
	}

	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("sample %d = %v, want %v", i, out[i], src[i])
		}
	}
}

func TestInterleaveLengthMismatch(t *testing.T) {
	planar := New(2, 3).Channels()

	if err := Deinterleave(planar, make([]float64, 5)); err == nil {
		t.Fatal("expected error for mismatched interleaved length")
	}

	if err := Interleave(make([]float64, 2), nil); err == nil {
		t.Fatal("expected error for samples without channels")
	}
}
