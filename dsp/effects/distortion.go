package effects

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/param"
	"github.com/meko-christian/algo-approx"
)

const (
	defaultDistortionThreshold = 0.5
	defaultDistortionMix       = 1.0

	// Parameter IDs of the distortion parameter set.
	ParamAlgorithm = "algorithm"
	ParamThreshold = "threshold"
	ParamMix       = "mix"
)

// DistortionAlgorithm selects the waveshaping transfer function.
type DistortionAlgorithm int

const (
	// DistortionHardClip clamps the input to [-threshold, threshold].
	DistortionHardClip DistortionAlgorithm = iota
	// DistortionSoftClip saturates samples beyond ±threshold exponentially.
	DistortionSoftClip
	// DistortionHalfWaveRectify passes samples above threshold and zeroes the rest.
	DistortionHalfWaveRectify
)

var distortionAlgorithmNames = []string{"HardClip", "SoftClip", "HalfWaveRectify"}

func (a DistortionAlgorithm) String() string {
	if validDistortionAlgorithm(a) {
		return distortionAlgorithmNames[a]
	}

	return fmt.Sprintf("DistortionAlgorithm(%d)", int(a))
}

// ParseDistortionAlgorithm resolves an algorithm by name, ignoring case.
func ParseDistortionAlgorithm(name string) (DistortionAlgorithm, error) {
	spec := distortionAlgorithmSpec()

	i, ok := spec.ChoiceIndex(name)
	if !ok {
		return 0, fmt.Errorf("%w: distortion algorithm %q", param.ErrInvalidChoice, name)
	}

	return DistortionAlgorithm(i), nil
}

// DistortionApproxMode selects exact or approximate evaluation of SoftClip.
type DistortionApproxMode int32

const (
	DistortionApproxExact DistortionApproxMode = iota
	DistortionApproxFast
)

// DistortionOption mutates distortion construction parameters.
type DistortionOption func(*distortionConfig) error

type distortionConfig struct {
	algorithm  DistortionAlgorithm
	threshold  float64
	mix        float64
	approxMode DistortionApproxMode
}

// WithDistortionAlgorithm selects the waveshaping algorithm.
func WithDistortionAlgorithm(algorithm DistortionAlgorithm) DistortionOption {
	return func(cfg *distortionConfig) error {
		if !validDistortionAlgorithm(algorithm) {
			return fmt.Errorf("%w: distortion algorithm %d", param.ErrInvalidChoice, algorithm)
		}

		cfg.algorithm = algorithm

		return nil
	}
}

// WithDistortionThreshold sets the clipping threshold in [0, 1].
func WithDistortionThreshold(threshold float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if err := core.CheckRange("distortion threshold", threshold, 0, 1); err != nil {
			return err
		}

		cfg.threshold = threshold

		return nil
	}
}

// WithDistortionMix sets dry/wet mix in [0, 1].
func WithDistortionMix(mix float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if err := core.CheckRange("distortion mix", mix, 0, 1); err != nil {
			return err
		}

		cfg.mix = mix

		return nil
	}
}

// WithDistortionApproxMode selects exact or fast SoftClip evaluation.
func WithDistortionApproxMode(mode DistortionApproxMode) DistortionOption {
	return func(cfg *distortionConfig) error {
		if !validApproxMode(mode) {
			return fmt.Errorf("distortion approximation mode is invalid: %d", mode)
		}

		cfg.approxMode = mode

		return nil
	}
}

// Distortion is a memoryless waveshaper with a linear dry/wet crossfade.
type Distortion struct {
	params     *param.Set
	algorithm  *param.Value
	threshold  *param.Value
	mix        *param.Value
	approxMode atomic.Int32
}

// NewDistortion creates a distortion with validated options.
// Defaults: HardClip, threshold 0.5, fully wet.
func NewDistortion(opts ...DistortionOption) (*Distortion, error) {
	cfg := distortionConfig{
		algorithm:  DistortionHardClip,
		threshold:  defaultDistortionThreshold,
		mix:        defaultDistortionMix,
		approxMode: DistortionApproxExact,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	params, err := param.NewSet("distortion",
		distortionAlgorithmSpec(),
		param.Float(ParamThreshold, "Threshold", "", 0, 1, defaultDistortionThreshold),
		param.Float(ParamMix, "Mix", "", 0, 1, defaultDistortionMix),
	)
	if err != nil {
		return nil, err
	}

	d := &Distortion{
		params:    params,
		algorithm: params.Value(ParamAlgorithm),
		threshold: params.Value(ParamThreshold),
		mix:       params.Value(ParamMix),
	}
	d.approxMode.Store(int32(cfg.approxMode))

	if err := d.SetAlgorithm(cfg.algorithm); err != nil {
		return nil, err
	}

	if err := d.SetThreshold(cfg.threshold); err != nil {
		return nil, err
	}

	if err := d.SetMix(cfg.mix); err != nil {
		return nil, err
	}

	return d, nil
}

// Name returns "distortion".
func (d *Distortion) Name() string { return "distortion" }

// Layout reports that any channel count is accepted.
func (d *Distortion) Layout() core.ChannelLayout { return core.AnyChannels }

// Params returns the parameter set shared with the control thread.
func (d *Distortion) Params() *param.Set { return d.params }

// SetSampleRate validates sampleRate; the waveshaper does not depend on it.
func (d *Distortion) SetSampleRate(sampleRate float64) error {
	return checkSampleRate("distortion", sampleRate)
}

// SetAlgorithm selects the waveshaping algorithm.
func (d *Distortion) SetAlgorithm(algorithm DistortionAlgorithm) error {
	return d.params.Set(ParamAlgorithm, float64(algorithm))
}

// SetThreshold sets the clipping threshold in [0, 1].
func (d *Distortion) SetThreshold(threshold float64) error {
	return d.params.Set(ParamThreshold, threshold)
}

// SetMix sets dry/wet mix in [0, 1].
func (d *Distortion) SetMix(mix float64) error {
	return d.params.Set(ParamMix, mix)
}

// SetApproxMode selects exact or fast SoftClip evaluation.
func (d *Distortion) SetApproxMode(mode DistortionApproxMode) error {
	if !validApproxMode(mode) {
		return fmt.Errorf("distortion approximation mode is invalid: %d", mode)
	}

	d.approxMode.Store(int32(mode))

	return nil
}

// Algorithm returns the active algorithm.
func (d *Distortion) Algorithm() DistortionAlgorithm {
	return DistortionAlgorithm(d.algorithm.Index())
}

// Threshold returns the clipping threshold.
func (d *Distortion) Threshold() float64 { return d.threshold.Load() }

// Mix returns dry/wet mix in [0, 1].
func (d *Distortion) Mix() float64 { return d.mix.Load() }

// ApproxMode returns the SoftClip evaluation mode.
func (d *Distortion) ApproxMode() DistortionApproxMode {
	return DistortionApproxMode(d.approxMode.Load())
}

// Reset is a no-op; the waveshaper keeps no signal state.
func (d *Distortion) Reset() {}

// ProcessSample distorts one sample.
func (d *Distortion) ProcessSample(input float64) float64 {
	s := d.snapshot()
	return s.apply(input)
}

// ProcessInPlace distorts buf in place.
func (d *Distortion) ProcessInPlace(buf []float64) {
	s := d.snapshot()
	for i, x := range buf {
		buf[i] = s.apply(x)
	}
}

// ProcessBlock distorts every channel with one parameter snapshot.
func (d *Distortion) ProcessBlock(channels [][]float64) {
	s := d.snapshot()
	for _, ch := range channels {
		for i, x := range ch {
			ch[i] = s.apply(x)
		}
	}
}

type distortionSnapshot struct {
	algorithm DistortionAlgorithm
	threshold float64
	mix       float64
	exp       func(float64) float64
}

func (d *Distortion) snapshot() distortionSnapshot {
	s := distortionSnapshot{
		algorithm: DistortionAlgorithm(d.algorithm.Index()),
		threshold: d.threshold.Load(),
		mix:       d.mix.Load(),
		exp:       math.Exp,
	}

	if DistortionApproxMode(d.approxMode.Load()) == DistortionApproxFast {
		s.exp = fastExp
	}

	return s
}

func (s distortionSnapshot) apply(input float64) float64 {
	clean := input
	shaped := s.shape(input)

	return (1-s.mix)*clean + s.mix*shaped
}

func (s distortionSnapshot) shape(x float64) float64 {
	t := s.threshold

	switch s.algorithm {
	case DistortionHardClip:
		if x > t {
			return t
		}

		if x < -t {
			return -t
		}

		return x
	case DistortionSoftClip:
		// The exponent uses the raw input, not the excess over the threshold.
		if x > t {
			return 1 - s.exp(-x)
		}

		if x < -t {
			return -1 + s.exp(x)
		}

		return x
	case DistortionHalfWaveRectify:
		if x > t {
			return x
		}

		return 0
	default:
		panic(fmt.Sprintf("effects: unreachable distortion algorithm %d", s.algorithm))
	}
}

func fastExp(x float64) float64 {
	return approx.FastExp(x)
}

func distortionAlgorithmSpec() param.Spec {
	return param.Choice(ParamAlgorithm, "Algorithm", int(DistortionHardClip), distortionAlgorithmNames...)
}

func validDistortionAlgorithm(a DistortionAlgorithm) bool {
	return a >= DistortionHardClip && a <= DistortionHalfWaveRectify
}

func validApproxMode(mode DistortionApproxMode) bool {
	return mode == DistortionApproxExact || mode == DistortionApproxFast
}
