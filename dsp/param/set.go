package param

import (
	"fmt"
	"sync"
)

// Change describes one accepted write.
type Change struct {
	ID  string
	Old float64
	New float64
}

type subscriber struct {
	id uint64
	fn func(Change)
}

// Set is the parameter set owned by one effect instance.
type Set struct {
	owner  string
	values []*Value
	index  map[string]int

	mu     sync.Mutex
	subs   []subscriber
	nextID uint64
}

// NewSet builds a Set from specs. owner names the effect in error messages.
func NewSet(owner string, specs ...Spec) (*Set, error) {
	s := &Set{
		owner:  owner,
		values: make([]*Value, 0, len(specs)),
		index:  make(map[string]int, len(specs)),
	}

	for _, spec := range specs {
		if err := spec.validate(); err != nil {
			return nil, err
		}

		if _, dup := s.index[spec.ID]; dup {
			return nil, fmt.Errorf("param: duplicate parameter id %q", spec.ID)
		}

		s.index[spec.ID] = len(s.values)
		s.values = append(s.values, newValue(spec))
	}

	return s, nil
}

// Owner returns the name the set was created with.
func (s *Set) Owner() string { return s.owner }

// Len returns the number of parameters.
func (s *Set) Len() int { return len(s.values) }

// Specs returns the parameter descriptions in declaration order.
func (s *Set) Specs() []Spec {
	out := make([]Spec, len(s.values))
	for i, v := range s.values {
		out[i] = v.spec
	}

	return out
}

// Value returns the live value for id, or nil when id is unknown.
func (s *Set) Value(id string) *Value {
	i, ok := s.index[id]
	if !ok {
		return nil
	}

	return s.values[i]
}

// Get returns the current value of id.
func (s *Set) Get(id string) (float64, error) {
	v, err := s.lookup(id)
	if err != nil {
		return 0, err
	}

	return v.Load(), nil
}

// Set validates x and stores it. Rejected values leave the parameter unchanged.
func (s *Set) Set(id string, x float64) error {
	v, err := s.lookup(id)
	if err != nil {
		return err
	}

	if err := v.spec.check(s.owner, x); err != nil {
		return err
	}

	s.store(v, x)

	return nil
}

// SetClamped stores x after forcing it into the parameter's range.
// Only NaN and unknown IDs are rejected.
func (s *Set) SetClamped(id string, x float64) error {
	v, err := s.lookup(id)
	if err != nil {
		return err
	}

	return s.Set(id, v.spec.clamp(x))
}

// SetNormalized maps n in [0, 1] onto the parameter's range and stores it.
func (s *Set) SetNormalized(id string, n float64) error {
	v, err := s.lookup(id)
	if err != nil {
		return err
	}

	return s.SetClamped(id, v.spec.Min+n*(v.spec.Max-v.spec.Min))
}

// Reset restores every parameter to its default.
func (s *Set) Reset() {
	for _, v := range s.values {
		s.store(v, v.spec.Default)
	}
}

// Snapshot appends the current values in declaration order to dst[:0].
func (s *Set) Snapshot(dst []float64) []float64 {
	dst = dst[:0]
	for _, v := range s.values {
		dst = append(dst, v.Load())
	}

	return dst
}

// Subscribe registers fn to be called after every accepted write. fn runs on
// the writing goroutine. The returned function removes the subscription.
func (s *Set) Subscribe(fn func(Change)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Set) lookup(id string) (*Value, error) {
	v := s.Value(id)
	if v == nil {
		return nil, fmt.Errorf("%w: %s %q", ErrUnknownParam, s.owner, id)
	}

	return v, nil
}

func (s *Set) store(v *Value, x float64) {
	old := v.swap(x)
	if old == x {
		return
	}

	s.mu.Lock()
	subs := s.subs
	s.mu.Unlock()

	change := Change{ID: v.spec.ID, Old: old, New: x}
	for _, sub := range subs {
		sub.fn(change)
	}
}
