package main

import (
	"fmt"
	"math"
	"math/rand"
)

type waveform int

const (
	waveSine waveform = iota
	waveSaw
	waveNoise
)

func parseWaveform(name string) (waveform, error) {
	switch name {
	case "sine":
		return waveSine, nil
	case "saw":
		return waveSaw, nil
	case "noise":
		return waveNoise, nil
	default:
		return 0, fmt.Errorf("unknown signal %q (sine, saw, noise)", name)
	}
}

// source generates the mono test signal that is fed through the effect.
type source struct {
	wave  waveform
	amp   float32
	step  float64
	phase float64
	rng   *rand.Rand
}

func newSource(wave waveform, freq, amp, sampleRate float64) *source {
	return &source{
		wave: wave,
		amp:  float32(amp),
		step: freq / sampleRate,
		rng:  rand.New(rand.NewSource(1)),
	}
}

// fill writes frames of the signal into interleaved dst, duplicating each
// sample across channels.
func (s *source) fill(dst []float32, channels int) {
	for i := 0; i+channels <= len(dst); i += channels {
		var x float64

		switch s.wave {
		case waveSine:
			x = math.Sin(2 * math.Pi * s.phase)
		case waveSaw:
			x = 2*s.phase - 1
		case waveNoise:
			x = s.rng.Float64()*2 - 1
		}

		s.phase += s.step
		if s.phase >= 1 {
			s.phase -= math.Floor(s.phase)
		}

		v := s.amp * float32(x)
		for c := range channels {
			dst[i+c] = v
		}
	}
}
