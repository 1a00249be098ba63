package processor

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fxcore/dsp/buffer"
	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/param"
)

var (
	// ErrUnsupportedLayout reports a channel count the effect cannot process.
	ErrUnsupportedLayout = errors.New("unsupported channel layout")
	// ErrBlockShape reports a block whose channel count or lengths do not
	// match the prepared configuration.
	ErrBlockShape = errors.New("block shape mismatch")
	// ErrBlockTooLarge reports an interleaved block longer than the
	// prepared maximum block size.
	ErrBlockTooLarge = errors.New("block exceeds max block size")
	// ErrNotPrepared is returned when processing is attempted before a
	// successful Prepare.
	ErrNotPrepared = errors.New("processor not prepared")
)

// Effect is the contract every processable effect fulfils.
type Effect interface {
	// Name returns the registry name of the effect.
	Name() string
	// Layout reports the channel counts the effect accepts.
	Layout() core.ChannelLayout
	// Params returns the effect's parameter set.
	Params() *param.Set
	// SetSampleRate updates the sample rate. It is called from Prepare and
	// never while a block is processed.
	SetSampleRate(sampleRate float64) error
	// ProcessBlock transforms a validated planar block in place.
	ProcessBlock(channels [][]float64)
	// Reset clears running state such as oscillator phase.
	Reset()
}

// Processor runs one Effect against host blocks.
type Processor struct {
	effect   Effect
	cfg      core.ProcessorConfig
	scratch  *buffer.SampleBuffer
	prepared bool
}

// New creates a processor for effect and prepares it with the given options.
func New(effect Effect, opts ...core.ProcessorOption) (*Processor, error) {
	if effect == nil {
		return nil, errors.New("processor: nil effect")
	}

	p := &Processor{
		effect: effect,
		cfg:    core.ApplyProcessorOptions(opts...),
	}

	if err := p.Prepare(); err != nil {
		return nil, err
	}

	return p, nil
}

// Prepare applies opts on top of the current configuration, negotiates the
// channel layout and allocates scratch storage. A failed Prepare leaves the
// processor refusing to run until a later Prepare succeeds.
func (p *Processor) Prepare(opts ...core.ProcessorOption) error {
	p.prepared = false

	for _, opt := range opts {
		if opt != nil {
			opt(&p.cfg)
		}
	}

	if !p.effect.Layout().Supports(p.cfg.Channels) {
		return fmt.Errorf("%w: %s needs %s, host has %d channels",
			ErrUnsupportedLayout, p.effect.Name(), p.effect.Layout(), p.cfg.Channels)
	}

	if err := p.effect.SetSampleRate(p.cfg.SampleRate); err != nil {
		return fmt.Errorf("processor: prepare %s: %w", p.effect.Name(), err)
	}

	if p.scratch == nil {
		p.scratch = buffer.New(p.cfg.Channels, p.cfg.MaxBlockSize)
	} else {
		p.scratch.Reshape(p.cfg.Channels, p.cfg.MaxBlockSize)
	}

	p.prepared = true

	return nil
}

// Config returns the active host configuration.
func (p *Processor) Config() core.ProcessorConfig { return p.cfg }

// Effect returns the wrapped effect.
func (p *Processor) Effect() Effect { return p.effect }

// Params is shorthand for Effect().Params().
func (p *Processor) Params() *param.Set { return p.effect.Params() }

// Prepared reports whether the processor accepts blocks.
func (p *Processor) Prepared() bool { return p.prepared }

// Reset clears the effect's running state.
func (p *Processor) Reset() { p.effect.Reset() }

// Process transforms a planar block in place. Blocks of any length are
// accepted; the channel count must match the prepared configuration.
func (p *Processor) Process(block [][]float64) error {
	if err := p.checkBlock(block); err != nil {
		return err
	}

	p.effect.ProcessBlock(block)

	return nil
}

// ProcessInterleaved transforms a frame-interleaved float64 block in place.
func (p *Processor) ProcessInterleaved(buf []float64) error {
	work, err := p.stage(len(buf))
	if err != nil {
		return err
	}

	if err := buffer.Deinterleave(work, buf); err != nil {
		return fmt.Errorf("%w: %w", ErrBlockShape, err)
	}

	p.effect.ProcessBlock(work)

	return buffer.Interleave(buf, work)
}

// ProcessInterleaved32 transforms a frame-interleaved float32 block in place.
// Samples are processed in float64 and rounded back on output.
func (p *Processor) ProcessInterleaved32(buf []float32) error {
	work, err := p.stage(len(buf))
	if err != nil {
		return err
	}

	if err := buffer.Deinterleave32(work, buf); err != nil {
		return fmt.Errorf("%w: %w", ErrBlockShape, err)
	}

	p.effect.ProcessBlock(work)

	return buffer.Interleave32(buf, work)
}

func (p *Processor) checkBlock(block [][]float64) error {
	if !p.prepared {
		return ErrNotPrepared
	}

	if !p.effect.Layout().Supports(len(block)) {
		return fmt.Errorf("%w: %s got %d channels", ErrUnsupportedLayout, p.effect.Name(), len(block))
	}

	if len(block) != p.cfg.Channels {
		return fmt.Errorf("%w: %d channels, prepared for %d", ErrBlockShape, len(block), p.cfg.Channels)
	}

	if err := buffer.Validate(block); err != nil {
		return fmt.Errorf("%w: %w", ErrBlockShape, err)
	}

	return nil
}

// stage sizes the scratch buffer for an interleaved block of n samples.
func (p *Processor) stage(n int) ([][]float64, error) {
	if !p.prepared {
		return nil, ErrNotPrepared
	}

	channels := p.cfg.Channels
	if n%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a multiple of %d channels", ErrBlockShape, n, channels)
	}

	frames := n / channels
	if frames > p.cfg.MaxBlockSize {
		return nil, fmt.Errorf("%w: %d frames > %d", ErrBlockTooLarge, frames, p.cfg.MaxBlockSize)
	}

	p.scratch.Resize(frames)

	return p.scratch.Channels(), nil
}
