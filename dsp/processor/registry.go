package processor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/effects"
)

// ErrUnknownEffect is returned for an effect name with no registered factory.
var ErrUnknownEffect = errors.New("unknown effect")

var errDuplicateEffect = errors.New("duplicate effect")

var (
	_ Effect = (*effects.Gain)(nil)
	_ Effect = (*effects.Autopanner)(nil)
	_ Effect = (*effects.Distortion)(nil)
)

// Factory builds one Effect for the given host configuration.
type Factory func(cfg core.ProcessorConfig) (Effect, error)

// Registry maps effect names to their factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding gain, autopanner and distortion.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("gain", func(core.ProcessorConfig) (Effect, error) {
		return effects.NewGain()
	})
	r.MustRegister("autopanner", func(cfg core.ProcessorConfig) (Effect, error) {
		return effects.NewAutopanner(cfg.SampleRate)
	})
	r.MustRegister("distortion", func(core.ProcessorConfig) (Effect, error) {
		return effects.NewDistortion()
	})

	return r
}

// Register adds a factory for name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("empty effect name")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, name)
	}

	r.factories[name] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic("processor registry: " + err.Error())
	}
}

// Lookup returns the factory for name, or nil.
func (r *Registry) Lookup(name string) Factory {
	return r.factories[name]
}

// Names returns the registered effect names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]

	return ok
}

// Build creates the named effect for cfg.
func (r *Registry) Build(name string, cfg core.ProcessorConfig) (Effect, error) {
	factory := r.Lookup(name)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}

	effect, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}

	return effect, nil
}

// NewProcessor builds the named effect and wraps it in a prepared Processor.
func (r *Registry) NewProcessor(name string, opts ...core.ProcessorOption) (*Processor, error) {
	effect, err := r.Build(name, core.ApplyProcessorOptions(opts...))
	if err != nil {
		return nil, err
	}

	return New(effect, opts...)
}
