package param

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrUnknownParam is returned for IDs that are not part of a Set.
	ErrUnknownParam = errors.New("unknown parameter")
	// ErrOutOfRange is returned when a value falls outside [Min, Max] or is not finite.
	ErrOutOfRange = errors.New("parameter out of range")
	// ErrInvalidChoice is returned for choice values that do not select a listed entry.
	ErrInvalidChoice = errors.New("invalid parameter choice")
)

// Kind distinguishes continuous parameters from enumerations.
type Kind int

const (
	KindFloat Kind = iota
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindChoice:
		return "choice"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec describes one parameter: identity, bounds and default.
// Choice parameters hold the index of the selected entry in Choices.
type Spec struct {
	ID      string
	Name    string
	Unit    string
	Kind    Kind
	Min     float64
	Max     float64
	Default float64
	Choices []string
}

// Float returns the Spec of a continuous parameter.
func Float(id, name, unit string, lo, hi, def float64) Spec {
	return Spec{ID: id, Name: name, Unit: unit, Kind: KindFloat, Min: lo, Max: hi, Default: def}
}

// Choice returns the Spec of an enumeration whose default is choices[def].
func Choice(id, name string, def int, choices ...string) Spec {
	return Spec{
		ID:      id,
		Name:    name,
		Kind:    KindChoice,
		Min:     0,
		Max:     float64(len(choices) - 1),
		Default: float64(def),
		Choices: choices,
	}
}

func (s Spec) validate() error {
	if s.ID == "" {
		return errors.New("param: empty parameter id")
	}

	if !finite(s.Min) || !finite(s.Max) || s.Min > s.Max {
		return fmt.Errorf("param %q: invalid bounds [%g, %g]", s.ID, s.Min, s.Max)
	}

	if s.Kind == KindChoice && len(s.Choices) == 0 {
		return fmt.Errorf("param %q: choice parameter without choices", s.ID)
	}

	if s.Kind != KindFloat && s.Kind != KindChoice {
		return fmt.Errorf("param %q: invalid kind %v", s.ID, s.Kind)
	}

	return s.check("", s.Default)
}

// check reports whether v is an acceptable value. owner prefixes the message.
func (s Spec) check(owner string, v float64) error {
	label := strings.TrimSpace(owner + " " + s.ID)

	if s.Kind == KindChoice {
		if !finite(v) || v != math.Trunc(v) || v < s.Min || v > s.Max {
			return fmt.Errorf("%w: %s must select one of %v: %g", ErrInvalidChoice, label, s.Choices, v)
		}

		return nil
	}

	if !finite(v) || v < s.Min || v > s.Max {
		return fmt.Errorf("%w: %s must be in [%g, %g]: %g", ErrOutOfRange, label, s.Min, s.Max, v)
	}

	return nil
}

// clamp forces v into the valid domain. NaN has no sensible clamp and is
// left for check to reject.
func (s Spec) clamp(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}

	v = math.Min(math.Max(v, s.Min), s.Max)
	if s.Kind == KindChoice {
		v = math.Round(v)
	}

	return v
}

// ChoiceIndex returns the index of name in Choices, matching case-insensitively.
func (s Spec) ChoiceIndex(name string) (int, bool) {
	for i, c := range s.Choices {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return i, true
		}
	}

	return 0, false
}

// Format renders v for display, using the choice label for enumerations.
func (s Spec) Format(v float64) string {
	if s.Kind == KindChoice {
		i := int(v)
		if i >= 0 && i < len(s.Choices) {
			return s.Choices[i]
		}

		return fmt.Sprintf("#%d", i)
	}

	if s.Unit == "" {
		return fmt.Sprintf("%.3f", v)
	}

	return fmt.Sprintf("%.3f %s", v, s.Unit)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
