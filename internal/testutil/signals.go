package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// DeterministicNoise generates white noise in [-amplitude, amplitude] with a
// fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}


// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// NoiseBlock returns a planar block of independent noise channels. Channel c
// uses seed+c.
func NoiseBlock(seed int64, amplitude float64, channels, length int) [][]float64 {
	out := make([][]float64, channels)
	for c := range out {
		out[c] = DeterministicNoise(seed+int64(c), amplitude, length)
	}

	return out
}

// CloneBlock deep-copies a planar block.
func CloneBlock(block [][]float64) [][]float64 {
	out := make([][]float64, len(block))
	for c, ch := range block {
		out[c] = append([]float64(nil), ch...)
	}

	return out
}

// Interleave flattens a planar block into frame order.
func Interleave(block [][]float64) []float64 {
	if len(block) == 0 {
		return nil
	}

	n := len(block[0])
	out := make([]float64, 0, n*len(block))

	for i := range n {
		for _, ch := range block {
			out = append(out, ch[i])
		}
	}

	return out
}
