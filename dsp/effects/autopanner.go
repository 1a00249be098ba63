package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/param"
)

const (
	defaultAutopannerPeriodMs = 250.0
	minAutopannerPeriodMs     = 10.0
	maxAutopannerPeriodMs     = 5000.0

	// minAutopannerSampleRate keeps the shortest period at least one sample long.
	minAutopannerSampleRate = 1000 / minAutopannerPeriodMs

	// ParamPeriod is the ID of the autopanner period parameter, in milliseconds.
	ParamPeriod = "period"
)

// AutopannerOption mutates autopanner construction parameters.
type AutopannerOption func(*autopannerConfig) error

type autopannerConfig struct {
	periodMs float64
	wrapMode PhaseWrapMode
}

// WithAutopannerPeriodMs sets the sweep period in [10, 5000] ms.
func WithAutopannerPeriodMs(periodMs float64) AutopannerOption {
	return func(cfg *autopannerConfig) error {
		if err := core.CheckRange("autopanner period", periodMs, minAutopannerPeriodMs, maxAutopannerPeriodMs); err != nil {
			return err
		}

		cfg.periodMs = periodMs

		return nil
	}
}

// WithAutopannerWrapMode selects the phase wrap rule.
func WithAutopannerWrapMode(mode PhaseWrapMode) AutopannerOption {
	return func(cfg *autopannerConfig) error {
		if !validPhaseWrapMode(mode) {
			return fmt.Errorf("autopanner wrap mode is invalid: %d", mode)
		}

		cfg.wrapMode = mode

		return nil
	}
}

// Autopanner sweeps a stereo signal between the left and right channel with
// a sine LFO and an equal-power pan law.
type Autopanner struct {
	sampleRate float64
	params     *param.Set
	period     *param.Value
	phase      PhaseState
}

// NewAutopanner creates an autopanner for the given sample rate.
func NewAutopanner(sampleRate float64, opts ...AutopannerOption) (*Autopanner, error) {
	if err := checkAutopannerSampleRate(sampleRate); err != nil {
		return nil, err
	}

	cfg := autopannerConfig{periodMs: defaultAutopannerPeriodMs, wrapMode: PhaseWrapCycle}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	params, err := param.NewSet("autopanner",
		param.Float(ParamPeriod, "Period", "ms", minAutopannerPeriodMs, maxAutopannerPeriodMs, defaultAutopannerPeriodMs),
	)
	if err != nil {
		return nil, err
	}

	if err := params.Set(ParamPeriod, cfg.periodMs); err != nil {
		return nil, err
	}

	return &Autopanner{
		sampleRate: sampleRate,
		params:     params,
		period:     params.Value(ParamPeriod),
		phase:      PhaseState{Mode: cfg.wrapMode},
	}, nil
}

// Name returns "autopanner".
func (a *Autopanner) Name() string { return "autopanner" }

// Layout reports that exactly two channels are required.
func (a *Autopanner) Layout() core.ChannelLayout { return core.StereoOnly }

// Params returns the parameter set shared with the control thread.
func (a *Autopanner) Params() *param.Set { return a.params }

// SetSampleRate updates the sample rate. Rates below 100 Hz are rejected
// because the shortest period would be shorter than one sample.
// The phase is kept.
func (a *Autopanner) SetSampleRate(sampleRate float64) error {
	if err := checkAutopannerSampleRate(sampleRate); err != nil {
		return err
	}

	a.sampleRate = sampleRate

	return nil
}

// SetPeriodMs sets the sweep period in [10, 5000] ms.
func (a *Autopanner) SetPeriodMs(periodMs float64) error {
	return a.params.Set(ParamPeriod, periodMs)
}

// SampleRate returns the sample rate in Hz.
func (a *Autopanner) SampleRate() float64 { return a.sampleRate }

// PeriodMs returns the sweep period in milliseconds.
func (a *Autopanner) PeriodMs() float64 { return a.period.Load() }

// PeriodSamples returns the sweep period in samples.
func (a *Autopanner) PeriodSamples() float64 {
	return periodSamples(a.sampleRate, a.period.Load())
}

// WrapMode returns the active phase wrap rule.
func (a *Autopanner) WrapMode() PhaseWrapMode { return a.phase.Mode }

// Phase returns the current LFO phase in radians.
func (a *Autopanner) Phase() float64 { return a.phase.Radians }

// Reset returns the sweep to its starting position.
func (a *Autopanner) Reset() { a.phase.Reset() }

// ProcessStereoInPlace pans one stereo block in place.
func (a *Autopanner) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("autopanner: left/right length mismatch: %d != %d", len(left), len(right))
	}

	a.process(left, right)

	return nil
}

// ProcessBlock pans channels[0] and channels[1]. Blocks that are not
// stereo are left untouched; the block processor rejects them up front.
func (a *Autopanner) ProcessBlock(channels [][]float64) {
	if len(channels) != 2 || len(channels[0]) != len(channels[1]) {
		return
	}

	a.process(channels[0], channels[1])
}

func (a *Autopanner) process(left, right []float64) {
	period := periodSamples(a.sampleRate, a.period.Load())
	step := twoPi / period

	for i := range left {
		l, r := PanGains(a.phase.Radians)
		left[i] *= l
		right[i] *= r

		a.phase.Advance(step)
	}

	a.phase.EndBlock(period)
}

// PanGains returns the left and right gains for an LFO phase. The sine is
// mapped onto a pan angle in [0, π/2]; left follows the cosine and right the
// sine of that angle, so l² + r² == 1.
func PanGains(phase float64) (left, right float64) {
	angle := (math.Sin(phase) + 1) * math.Pi / 4
	return math.Cos(angle), math.Sin(angle)
}

func periodSamples(sampleRate, periodMs float64) float64 {
	return sampleRate * periodMs / 1000
}

func checkAutopannerSampleRate(sampleRate float64) error {
	if sampleRate < minAutopannerSampleRate || !core.IsFinite(sampleRate) {
		return fmt.Errorf("autopanner sample rate must be >= %g and finite: %f", minAutopannerSampleRate, sampleRate)
	}

	return nil
}
