package param

import (
	"math"
	"sync/atomic"
)

// Value is the live, atomically stored setting of one parameter.
// Load is safe on the audio thread; stores go through the owning Set.
type Value struct {
	spec Spec
	bits atomic.Uint64
}

func newValue(spec Spec) *Value {
	v := &Value{spec: spec}
	v.bits.Store(math.Float64bits(spec.Default))

	return v
}

// Spec returns the parameter description.
func (v *Value) Spec() Spec { return v.spec }

// Load returns the current plain value.
func (v *Value) Load() float64 {
	return math.Float64frombits(v.bits.Load())
}

// Index returns the current value of a choice parameter as an index.
func (v *Value) Index() int {
	return int(v.Load())
}

// Normalized returns the current value mapped to [0, 1].
func (v *Value) Normalized() float64 {
	span := v.spec.Max - v.spec.Min
	if span == 0 {
		return 0
	}

	return (v.Load() - v.spec.Min) / span
}

func (v *Value) swap(x float64) float64 {
	return math.Float64frombits(v.bits.Swap(math.Float64bits(x)))
}
