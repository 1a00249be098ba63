package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fxcore/internal/testutil"
)

func TestGainValidation(t *testing.T) {
	if _, err := NewGain(WithGain(1.1)); err == nil {
		t.Fatal("NewGain() expected error for gain > 1")
	}

	if _, err := NewGain(WithGain(math.NaN())); err == nil {
		t.Fatal("NewGain() expected error for NaN gain")
	}

	g, err := NewGain()
	if err != nil {
		t.Fatalf("NewGain() error = %v", err)
	}

	if g.Gain() != 0 {
		t.Fatalf("default gain = %v, want 0", g.Gain())
	}

	if err := g.SetGain(-0.5); err == nil {
		t.Fatal("SetGain() expected error for negative gain")
	}

	if err := g.SetSampleRate(0); err == nil {
		t.Fatal("SetSampleRate(0) expected error")
	}
}

func TestGainScalesEverySample(t *testing.T) {
	for _, gain := range []float64{0, 0.25, 0.5, 1} {
		g, err := NewGain(WithGain(gain))
		if err != nil {
			t.Fatalf("NewGain(%v) error = %v", gain, err)
		}

		left := testutil.DeterministicNoise(1, 1, 257)
		right := testutil.DeterministicNoise(2, 1, 257)

		wantL := make([]float64, len(left))
		wantR := make([]float64, len(right))

		for i := range left {
			wantL[i] = left[i] * gain
			wantR[i] = right[i] * gain
		}

		g.ProcessBlock([][]float64{left, right})

		testutil.RequireSliceNearlyEqual(t, left, wantL, 0)
		testutil.RequireSliceNearlyEqual(t, right, wantR, 0)
	}
}

func TestGainIdentityAndMute(t *testing.T) {
	in := testutil.DeterministicSine(440, 48000, 0.8, 128)

	unity, _ := NewGain(WithGain(1))
	buf := append([]float64(nil), in...)
	unity.ProcessInPlace(buf)
	testutil.RequireSliceNearlyEqual(t, buf, in, 0)

	mute, _ := NewGain()
	mute.ProcessInPlace(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestGainEndToEnd(t *testing.T) {
	g, err := NewGain(WithGain(0.5))
	if err != nil {
		t.Fatalf("NewGain() error = %v", err)
	}

	buf := []float64{1.0, -1.0, 0.5}
	g.ProcessInPlace(buf)

	testutil.RequireSliceNearlyEqual(t, buf, []float64{0.5, -0.5, 0.25}, 0)

	if got := g.ProcessSample(-0.5); got != -0.25 {
		t.Fatalf("ProcessSample(-0.5) = %v, want -0.25", got)
	}

	if db := g.GainDB(); math.Abs(db-(-6.0206)) > 1e-3 {
		t.Fatalf("GainDB() = %v, want about -6.02", db)
	}
}

func TestGainParamsDriveProcessing(t *testing.T) {
	g, _ := NewGain()

	if err := g.Params().Set(ParamGain, 0.75); err != nil {
		t.Fatalf("Params().Set() error = %v", err)
	}

	buf := []float64{1}
	g.ProcessBlock([][]float64{buf})

	if buf[0] != 0.75 {
		t.Fatalf("sample = %v, want 0.75", buf[0])
	}

	if g.Name() != "gain" || !g.Layout().Supports(1) || !g.Layout().Supports(8) {
		t.Fatal("unexpected gain identity or layout")
	}
}

func TestGainProcessBlockDoesNotAllocate(t *testing.T) {
	g, _ := NewGain(WithGain(0.5))
	block := [][]float64{make([]float64, 256), make([]float64, 256)}

	allocs := testing.AllocsPerRun(100, func() {
		g.ProcessBlock(block)
	})
	if allocs != 0 {
		t.Fatalf("ProcessBlock allocated %v times", allocs)
	}
}
