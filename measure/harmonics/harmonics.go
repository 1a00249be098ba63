// Package harmonics measures the harmonic content of a periodic signal.
//
// It is used to characterise waveshapers: a symmetric clipper adds odd
// harmonics only, a rectifier adds even ones.
package harmonics

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultFFTSize      = 4096
	defaultMaxHarmonics = 9
	defaultCaptureBins  = 2
)

var errShortSignal = errors.New("harmonics: signal shorter than FFT size")

// Config holds analysis parameters.
type Config struct {
	SampleRate float64
	// FFTSize is the analysed length; only the first FFTSize samples are used.
	FFTSize int
	// Fundamental in Hz. Zero selects the strongest bin.
	Fundamental float64
	// MaxHarmonics is the highest harmonic number reported (2..MaxHarmonics).
	MaxHarmonics int
	// CaptureBins is the half-width, in bins, summed around each peak.
	CaptureBins int
}

// Result holds the measured amplitudes, all in the signal's linear units.
type Result struct {
	FundamentalFreq  float64
	FundamentalLevel float64
	DC               float64
	// Harmonics[i] is the amplitude of harmonic i+2.
	Harmonics []float64
	THD       float64
	OddHD     float64
	EvenHD    float64
}

// THDdB returns THD in decibels.
func (r Result) THDdB() float64 {
	if r.THD <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(r.THD)
}

// Harmonic returns the amplitude of harmonic n (n >= 2), or 0 if it was not
// measured.
func (r Result) Harmonic(n int) float64 {
	i := n - 2
	if i < 0 || i >= len(r.Harmonics) {
		return 0
	}

	return r.Harmonics[i]
}

// Analyzer runs repeated analyses with preallocated FFT buffers.
type Analyzer struct {
	cfg    Config
	plan   *algofft.Plan[complex128]
	window []float64
	norm   float64

	frame []float64
	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	power []float64
}

// NewAnalyzer validates cfg and prepares an FFT plan.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
	}

	if cfg.MaxHarmonics == 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	if cfg.CaptureBins == 0 {
		cfg.CaptureBins = defaultCaptureBins
	}

	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return nil, fmt.Errorf("harmonics: sample rate must be > 0: %f", cfg.SampleRate)
	}

	if cfg.FFTSize < 8 {
		return nil, fmt.Errorf("harmonics: FFT size must be >= 8: %d", cfg.FFTSize)
	}

	if cfg.MaxHarmonics < 2 {
		return nil, fmt.Errorf("harmonics: max harmonics must be >= 2: %d", cfg.MaxHarmonics)
	}

	if cfg.CaptureBins < 0 {
		return nil, fmt.Errorf("harmonics: capture bins must be >= 0: %d", cfg.CaptureBins)
	}

	if cfg.Fundamental < 0 || cfg.Fundamental >= cfg.SampleRate/2 {
		return nil, fmt.Errorf("harmonics: fundamental must be in [0, %g): %f", cfg.SampleRate/2, cfg.Fundamental)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("harmonics: %w", err)
	}

	n := cfg.FFTSize
	bins := n/2 + 1

	a := &Analyzer{
		cfg:    cfg,
		plan:   plan,
		window: hann(n),
		frame:  make([]float64, n),
		in:     make([]complex128, n),
		out:    make([]complex128, n),
		re:     make([]float64, bins),
		im:     make([]float64, bins),
		power:  make([]float64, bins),
	}

	sumSquares := 0.0
	for _, w := range a.window {
		sumSquares += w * w
	}

	// A sinusoid of amplitude A spreads A²·N·Σw²/4 over its main lobe.
	a.norm = 4 / (float64(n) * sumSquares)

	return a, nil
}

// Config returns the effective configuration after defaults.
func (a *Analyzer) Config() Config { return a.cfg }

// Analyze measures the first FFTSize samples of signal.
func (a *Analyzer) Analyze(signal []float64) (Result, error) {
	n := a.cfg.FFTSize
	if len(signal) < n {
		return Result{}, fmt.Errorf("%w: %d < %d", errShortSignal, len(signal), n)
	}

	copy(a.frame, signal[:n])

	dc := 0.0
	for _, x := range a.frame {
		dc += x
	}

	dc /= float64(n)

	vecmath.MulBlockInPlace(a.frame, a.window)

	for i, x := range a.frame {
		a.in[i] = complex(x, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Result{}, fmt.Errorf("harmonics: %w", err)
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}

	vecmath.Power(a.power, a.re, a.im)

	binHz := a.cfg.SampleRate / float64(n)

	fundBin := a.fundamentalBin(binHz)
	if fundBin < 1 {
		return Result{DC: dc}, nil
	}

	res := Result{
		FundamentalFreq:  float64(fundBin) * binHz,
		FundamentalLevel: a.level(fundBin),
		DC:               dc,
		Harmonics:        make([]float64, 0, a.cfg.MaxHarmonics-1),
	}

	var odd, even float64

	for h := 2; h <= a.cfg.MaxHarmonics; h++ {
		bin := h * fundBin
		if bin+a.cfg.CaptureBins >= len(a.power) {
			break
		}

		level := a.level(bin)
		res.Harmonics = append(res.Harmonics, level)

		if h%2 == 0 {
			even += level * level
		} else {
			odd += level * level
		}
	}

	if res.FundamentalLevel > 0 {
		res.THD = math.Sqrt(odd+even) / res.FundamentalLevel
		res.OddHD = math.Sqrt(odd) / res.FundamentalLevel
		res.EvenHD = math.Sqrt(even) / res.FundamentalLevel
	}

	return res, nil
}

// Analyze is a one-shot analysis of signal.
func Analyze(signal []float64, cfg Config) (Result, error) {
	a, err := NewAnalyzer(cfg)
	if err != nil {
		return Result{}, err
	}

	return a.Analyze(signal)
}

func (a *Analyzer) fundamentalBin(binHz float64) int {
	if a.cfg.Fundamental > 0 {
		return int(math.Round(a.cfg.Fundamental / binHz))
	}

	// Skip the DC lobe.
	best, bestPower := 0, 0.0
	for k := a.cfg.CaptureBins + 1; k < len(a.power); k++ {
		if a.power[k] > bestPower {
			best, bestPower = k, a.power[k]
		}
	}

	return best
}

// level returns the amplitude of the component centred on bin.
func (a *Analyzer) level(bin int) float64 {
	lo := max(bin-a.cfg.CaptureBins, 1)
	hi := min(bin+a.cfg.CaptureBins, len(a.power)-1)

	sum := 0.0
	for k := lo; k <= hi; k++ {
		sum += a.power[k]
	}

	return math.Sqrt(sum * a.norm)
}

// hann returns a periodic Hann window of length n.
func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}

	return w
}
