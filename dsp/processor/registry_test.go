package processor

import (
	"errors"
	"slices"
	"testing"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/effects"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	want := []string{"autopanner", "distortion", "gain"}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}

	for _, name := range want {
		effect, err := r.Build(name, core.DefaultProcessorConfig())
		if err != nil {
			t.Fatalf("Build(%q) error = %v", name, err)
		}

		if effect.Name() != name {
			t.Fatalf("Build(%q).Name() = %q", name, effect.Name())
		}
	}

	if _, err := r.Build("chorus", core.DefaultProcessorConfig()); !errors.Is(err, ErrUnknownEffect) {
		t.Fatalf("Build(chorus) error = %v, want ErrUnknownEffect", err)
	}

	if _, err := r.NewProcessor("chorus"); !errors.Is(err, ErrUnknownEffect) {
		t.Fatalf("NewProcessor(chorus) error = %v, want ErrUnknownEffect", err)
	}

	if r.Has("chorus") || !r.Has("gain") {
		t.Fatal("Has() disagrees with Names()")
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	factory := func(core.ProcessorConfig) (Effect, error) { return effects.NewGain() }

	if err := r.Register("", factory); err == nil {
		t.Fatal("expected error for empty name")
	}

	if err := r.Register("gain", nil); err == nil {
		t.Fatal("expected error for nil factory")
	}

	if err := r.Register("gain", factory); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := r.Register("gain", factory); !errors.Is(err, errDuplicateEffect) {
		t.Fatalf("duplicate Register() error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustRegister did not panic on duplicate")
		}
	}()

	r.MustRegister("gain", factory)
}

func TestRegistryFactoryError(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("broken", func(cfg core.ProcessorConfig) (Effect, error) {
		return effects.NewAutopanner(cfg.SampleRate / 1000)
	})

	if _, err := r.NewProcessor("broken"); err == nil {
		t.Fatal("expected factory error to propagate")
	}
}
