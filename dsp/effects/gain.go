package effects

import (
	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/param"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultGain = 0.0
	minGain     = 0.0
	maxGain     = 1.0

	// ParamGain is the ID of the gain parameter.
	ParamGain = "gain"
)

// GainOption mutates gain construction parameters.
type GainOption func(*gainConfig) error

type gainConfig struct {
	gain float64
}

// WithGain sets the linear gain in [0, 1].
func WithGain(gain float64) GainOption {
	return func(cfg *gainConfig) error {
		if err := core.CheckRange("gain", gain, minGain, maxGain); err != nil {
			return err
		}

		cfg.gain = gain

		return nil
	}
}

// Gain scales every sample of every channel by a linear factor.
type Gain struct {
	params *param.Set
	gain   *param.Value
}

// NewGain creates a gain stage. The default gain is 0 (muted).
func NewGain(opts ...GainOption) (*Gain, error) {
	cfg := gainConfig{gain: defaultGain}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	params, err := param.NewSet("gain",
		param.Float(ParamGain, "Gain", "", minGain, maxGain, defaultGain),
	)
	if err != nil {
		return nil, err
	}

	if err := params.Set(ParamGain, cfg.gain); err != nil {
		return nil, err
	}

	return &Gain{params: params, gain: params.Value(ParamGain)}, nil
}

// Name returns "gain".
func (g *Gain) Name() string { return "gain" }

// Layout reports that any channel count is accepted.
func (g *Gain) Layout() core.ChannelLayout { return core.AnyChannels }

// Params returns the parameter set shared with the control thread.
func (g *Gain) Params() *param.Set { return g.params }

// SetSampleRate validates sampleRate; gain does not depend on it.
func (g *Gain) SetSampleRate(sampleRate float64) error {
	return checkSampleRate("gain", sampleRate)
}

// SetGain sets the linear gain in [0, 1].
func (g *Gain) SetGain(gain float64) error {
	return g.params.Set(ParamGain, gain)
}

// Gain returns the linear gain.
func (g *Gain) Gain() float64 { return g.gain.Load() }

// GainDB returns the gain in dB (-Inf when muted).
func (g *Gain) GainDB() float64 { return core.LinearToDB(g.gain.Load()) }

// Reset is a no-op; gain keeps no signal state.
func (g *Gain) Reset() {}

// ProcessSample scales one sample.
func (g *Gain) ProcessSample(input float64) float64 {
	return input * g.gain.Load()
}

// ProcessInPlace scales buf in place.
func (g *Gain) ProcessInPlace(buf []float64) {
	vecmath.ScaleBlock(buf, buf, g.gain.Load())
}

// ProcessBlock scales every channel with one snapshot of the gain.
func (g *Gain) ProcessBlock(channels [][]float64) {
	gain := g.gain.Load()
	for _, ch := range channels {
		vecmath.ScaleBlock(ch, ch, gain)
	}
}
