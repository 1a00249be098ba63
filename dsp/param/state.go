package param

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MarshalJSON encodes the set as {"id": value}. Choice parameters are written
// by label.
func (s *Set) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.values))
	for _, v := range s.values {
		if v.spec.Kind == KindChoice {
			out[v.spec.ID] = v.spec.Format(v.Load())
			continue
		}

		out[v.spec.ID] = v.Load()
	}

	return json.Marshal(out)
}

// UnmarshalJSON restores values written by MarshalJSON. Choice parameters
// accept a label or an index. IDs missing from data keep their current value.
// The whole document is validated before anything is stored, so a rejected
// document leaves the set unchanged.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("param: decode %s state: %w", s.owner, err)
	}

	pending := make(map[*Value]float64, len(raw))

	for id, msg := range raw {
		v, err := s.lookup(id)
		if err != nil {
			return err
		}

		x, err := decodeValue(v.spec, msg)
		if err != nil {
			return fmt.Errorf("param: decode %s %q: %w", s.owner, id, err)
		}

		if err := v.spec.check(s.owner, x); err != nil {
			return err
		}

		pending[v] = x
	}

	for _, v := range s.values {
		if x, ok := pending[v]; ok {
			s.store(v, x)
		}
	}

	return nil
}

func decodeValue(spec Spec, msg json.RawMessage) (float64, error) {
	var x float64
	if err := json.Unmarshal(msg, &x); err == nil {
		return x, nil
	}

	if spec.Kind != KindChoice {
		return 0, fmt.Errorf("%w: expected a number, got %s", ErrOutOfRange, msg)
	}

	var label string
	if err := json.Unmarshal(msg, &label); err != nil {
		return 0, fmt.Errorf("%w: expected a label or index, got %s", ErrInvalidChoice, msg)
	}

	i, ok := spec.ChoiceIndex(label)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not one of %v", ErrInvalidChoice, label, spec.Choices)
	}

	return float64(i), nil
}

// SetString parses text as a number or, for choice parameters, as a label,
// and stores the result with the same validation as Set.
func (s *Set) SetString(id, text string) error {
	v, err := s.lookup(id)
	if err != nil {
		return err
	}

	text = strings.TrimSpace(text)

	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if v.spec.Kind != KindChoice {
			return fmt.Errorf("%w: %s %s: %q is not a number", ErrOutOfRange, s.owner, id, text)
		}

		i, ok := v.spec.ChoiceIndex(text)
		if !ok {
			return fmt.Errorf("%w: %q is not one of %v", ErrInvalidChoice, text, v.spec.Choices)
		}

		x = float64(i)
	}

	return s.Set(id, x)
}
