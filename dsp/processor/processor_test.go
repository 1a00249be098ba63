package processor

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/effects"
	"github.com/cwbudde/algo-fxcore/internal/testutil"
)

func newGainProcessor(t *testing.T, gain float64, opts ...core.ProcessorOption) *Processor {
	t.Helper()

	g, err := effects.NewGain(effects.WithGain(gain))
	if err != nil {
		t.Fatalf("NewGain() error = %v", err)
	}

	p, err := New(g, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return p
}

func TestProcessorGainEndToEnd(t *testing.T) {
	p := newGainProcessor(t, 0.5, core.WithChannels(1))

	block := [][]float64{{1, -1, 0.5}}
	if err := p.Process(block); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, block[0], []float64{0.5, -0.5, 0.25}, 0)
}

func TestProcessorRejectsUnsupportedLayout(t *testing.T) {
	a, err := effects.NewAutopanner(48000)
	if err != nil {
		t.Fatalf("NewAutopanner() error = %v", err)
	}

	_, err = New(a, core.WithChannels(1))
	if !errors.Is(err, ErrUnsupportedLayout) {
		t.Fatalf("New(mono autopanner) error = %v, want ErrUnsupportedLayout", err)
	}

	p, err := New(a)
	if err != nil {
		t.Fatalf("New(stereo autopanner) error = %v", err)
	}

	mono := [][]float64{testutil.Ones(8)}
	if err := p.Process(mono); !errors.Is(err, ErrUnsupportedLayout) {
		t.Fatalf("Process(mono) error = %v, want ErrUnsupportedLayout", err)
	}

	testutil.RequireSliceNearlyEqual(t, mono[0], testutil.Ones(8), 0)

	if a.Phase() != 0 {
		t.Fatalf("rejected block advanced the phase to %v", a.Phase())
	}

	if err := p.Prepare(core.WithChannels(6)); !errors.Is(err, ErrUnsupportedLayout) {
		t.Fatalf("Prepare(6 channels) error = %v", err)
	}

	if p.Prepared() {
		t.Fatal("processor still prepared after a failed Prepare")
	}

	stereo := [][]float64{testutil.Ones(4), testutil.Ones(4)}
	if err := p.Process(stereo); !errors.Is(err, ErrNotPrepared) {
		t.Fatalf("Process() after failed Prepare error = %v", err)
	}

	if err := p.Prepare(core.WithChannels(2)); err != nil {
		t.Fatalf("Prepare(2 channels) error = %v", err)
	}

	if err := p.Process(stereo); err != nil {
		t.Fatalf("Process() after recovery error = %v", err)
	}
}

func TestProcessorRejectsBadShape(t *testing.T) {
	p := newGainProcessor(t, 0.5)

	cases := map[string][][]float64{
		"ragged":   {testutil.Ones(4), testutil.Ones(3)},
		"too many": {testutil.Ones(4), testutil.Ones(4), testutil.Ones(4)},
		"too few":  {testutil.Ones(4)},
	}

	for name, block := range cases {
		t.Run(name, func(t *testing.T) {
			before := testutil.CloneBlock(block)

			if err := p.Process(block); !errors.Is(err, ErrBlockShape) {
				t.Fatalf("Process() error = %v, want ErrBlockShape", err)
			}

			testutil.RequireBlockNearlyEqual(t, block, before, 0)
		})
	}
}

func TestProcessorRejectsBadSampleRate(t *testing.T) {
	a, _ := effects.NewAutopanner(48000)

	if _, err := New(a, core.WithSampleRate(50)); err == nil {
		t.Fatal("expected error for a sample rate the autopanner cannot run at")
	}
}

func TestProcessorVariableBlockSizes(t *testing.T) {
	p := newGainProcessor(t, 0.25, core.WithMaxBlockSize(64))

	for _, n := range []int{0, 1, 64, 17, 500} {
		block := testutil.NoiseBlock(int64(n), 1, 2, n)
		want := testutil.CloneBlock(block)

		for _, ch := range want {
			for i := range ch {
				ch[i] *= 0.25
			}
		}

		if err := p.Process(block); err != nil {
			t.Fatalf("Process(%d) error = %v", n, err)
		}

		testutil.RequireBlockNearlyEqual(t, block, want, 1e-15)
	}
}

func TestProcessorInterleavedMatchesPlanar(t *testing.T) {
	planar, err := DefaultRegistry().NewProcessor("autopanner", core.WithMaxBlockSize(256))
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}

	interleaved, _ := DefaultRegistry().NewProcessor("autopanner", core.WithMaxBlockSize(256))
	narrow, _ := DefaultRegistry().NewProcessor("autopanner", core.WithMaxBlockSize(256))

	for _, n := range []int{256, 13, 100, 1} {
		block := testutil.NoiseBlock(int64(n), 1, 2, n)
		flat := testutil.Interleave(block)

		flat32 := make([]float32, len(flat))
		for i, v := range flat {
			flat32[i] = float32(v)
		}

		if err := planar.Process(block); err != nil {
			t.Fatalf("Process() error = %v", err)
		}

		if err := interleaved.ProcessInterleaved(flat); err != nil {
			t.Fatalf("ProcessInterleaved() error = %v", err)
		}

		if err := narrow.ProcessInterleaved32(flat32); err != nil {
			t.Fatalf("ProcessInterleaved32() error = %v", err)
		}

		want := testutil.Interleave(block)
		testutil.RequireSliceNearlyEqual(t, flat, want, 0)

		for i, v := range flat32 {
			if math.Abs(float64(v)-want[i]) > 1e-6 {
				t.Fatalf("float32 index %d: got %v, want %v", i, v, want[i])
			}
		}
	}
}

func TestProcessorInterleavedErrors(t *testing.T) {
	p := newGainProcessor(t, 1, core.WithMaxBlockSize(4))

	odd := []float64{1, 2, 3}
	if err := p.ProcessInterleaved(odd); !errors.Is(err, ErrBlockShape) {
		t.Fatalf("odd length error = %v, want ErrBlockShape", err)
	}

	large := make([]float32, 10)
	if err := p.ProcessInterleaved32(large); !errors.Is(err, ErrBlockTooLarge) {
		t.Fatalf("oversized block error = %v, want ErrBlockTooLarge", err)
	}

	if err := p.ProcessInterleaved(nil); err != nil {
		t.Fatalf("empty block error = %v", err)
	}
}

func TestProcessorDoesNotAllocate(t *testing.T) {
	for _, name := range DefaultRegistry().Names() {
		t.Run(name, func(t *testing.T) {
			p, err := DefaultRegistry().NewProcessor(name, core.WithMaxBlockSize(128))
			if err != nil {
				t.Fatalf("NewProcessor() error = %v", err)
			}

			block := testutil.NoiseBlock(1, 0.8, 2, 128)
			flat := testutil.Interleave(block)
			flat32 := make([]float32, len(flat))

			allocs := testing.AllocsPerRun(50, func() {
				_ = p.Process(block)
				_ = p.ProcessInterleaved(flat)
				_ = p.ProcessInterleaved32(flat32[:64])
			})
			if allocs != 0 {
				t.Fatalf("processing allocated %v times", allocs)
			}
		})
	}
}

func TestProcessorConcurrentParameterWrites(t *testing.T) {
	p, err := DefaultRegistry().NewProcessor("distortion")
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}

	var wg sync.WaitGroup

	stop := make(chan struct{})

	wg.Add(1)

	go func() {
		defer wg.Done()

		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}

			_ = p.Params().Set(effects.ParamThreshold, float64(i%10)/10)
			_ = p.Params().Set(effects.ParamMix, float64(i%5)/4)
			_ = p.Params().Set(effects.ParamAlgorithm, float64(i%3))
		}
	}()

	block := testutil.NoiseBlock(5, 2, 2, 256)
	for range 200 {
		if err := p.Process(block); err != nil {
			t.Fatalf("Process() error = %v", err)
		}

		for _, ch := range block {
			testutil.RequireFinite(t, ch)
		}
	}

	close(stop)
	wg.Wait()
}

func TestProcessorReset(t *testing.T) {
	p, _ := DefaultRegistry().NewProcessor("autopanner")
	a := p.Effect().(*effects.Autopanner)

	_ = p.Process([][]float64{testutil.Ones(100), testutil.Ones(100)})
	if a.Phase() == 0 {
		t.Fatal("phase did not advance")
	}

	p.Reset()

	if a.Phase() != 0 {
		t.Fatalf("phase after Reset = %v", a.Phase())
	}
}
