package effects

import (
	"testing"

	"github.com/cwbudde/algo-fxcore/internal/testutil"
)

func BenchmarkGainProcessBlock(b *testing.B) {
	g, _ := NewGain(WithGain(0.5))
	block := [][]float64{testutil.DC(0.5, 512), testutil.DC(0.5, 512)}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		g.ProcessBlock(block)
	}
}

func BenchmarkAutopannerProcessBlock(b *testing.B) {
	a, _ := NewAutopanner(48000)
	block := [][]float64{testutil.DC(0.5, 512), testutil.DC(0.5, 512)}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		a.ProcessBlock(block)
	}
}

func BenchmarkDistortionSoftClipExact(b *testing.B) {
	d, _ := NewDistortion(WithDistortionAlgorithm(DistortionSoftClip), WithDistortionThreshold(0.1))
	buf := testutil.DeterministicSine(220, 48000, 0.9, 512)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		d.ProcessInPlace(buf)
	}
}

func BenchmarkDistortionSoftClipFast(b *testing.B) {
	d, _ := NewDistortion(
		WithDistortionAlgorithm(DistortionSoftClip),
		WithDistortionThreshold(0.1),
		WithDistortionApproxMode(DistortionApproxFast),
	)
	buf := testutil.DeterministicSine(220, 48000, 0.9, 512)

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		d.ProcessInPlace(buf)
	}
}
