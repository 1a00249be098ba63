package buffer

import (
	"errors"
	"fmt"
)

// ErrRagged is returned when the channels of a block differ in length.
var ErrRagged = errors.New("buffer: channels differ in length")

// SampleBuffer holds one slice per channel. All channels share the same length.
type SampleBuffer struct {
	channels [][]float64
}

// New returns a zero-filled buffer with the given shape.
func New(channels, length int) *SampleBuffer {
	if channels < 0 {
		channels = 0
	}

	if length < 0 {
		length = 0
	}

	b := &SampleBuffer{channels: make([][]float64, channels)}
	for ch := range b.channels {
		b.channels[ch] = make([]float64, length)
	}

	return b
}

// FromChannels wraps existing channel slices without copying.
func FromChannels(channels [][]float64) (*SampleBuffer, error) {
	if err := Validate(channels); err != nil {
		return nil, err
	}

	return &SampleBuffer{channels: channels}, nil
}

// Validate checks that all channels have the same length.
func Validate(channels [][]float64) error {
	if len(channels) == 0 {
		return nil
	}

	n := len(channels[0])
	for ch := 1; ch < len(channels); ch++ {
		if len(channels[ch]) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d",
				ErrRagged, ch, len(channels[ch]), n)
		}
	}

	return nil
}

// Channels returns the planar channel slices.
func (b *SampleBuffer) Channels() [][]float64 { return b.channels }

// Channel returns the samples of channel ch.
func (b *SampleBuffer) Channel(ch int) []float64 { return b.channels[ch] }

// NumChannels returns the channel count.
func (b *SampleBuffer) NumChannels() int { return len(b.channels) }

// Len returns the number of samples per channel.
func (b *SampleBuffer) Len() int {
	if len(b.channels) == 0 {
		return 0
	}

	return len(b.channels[0])
}

// Resize sets the per-channel length to n, reusing capacity when possible.
// Newly exposed samples are zeroed.
func (b *SampleBuffer) Resize(n int) {
	if n < 0 {
		n = 0
	}

	for ch, s := range b.channels {
		old := len(s)
		if n <= cap(s) {
			s = s[:n]
		} else {
			grown := make([]float64, n)
			copy(grown, s)
			s = grown
		}

		for i := old; i < n; i++ {
			s[i] = 0
		}

		b.channels[ch] = s
	}
}

// Reshape sets the channel count and length, keeping existing channel storage.
func (b *SampleBuffer) Reshape(channels, length int) {
	if channels < 0 {
		channels = 0
	}

	for len(b.channels) < channels {
		b.channels = append(b.channels, nil)
	}

	b.channels = b.channels[:channels]
	b.Resize(length)
}

// Zero sets every sample to 0.
func (b *SampleBuffer) Zero() {
	for _, s := range b.channels {
		clear(s)
	}
}

// Copy returns a deep copy of the buffer.
func (b *SampleBuffer) Copy() *SampleBuffer {
	out := &SampleBuffer{channels: make([][]float64, len(b.channels))}
	for ch, s := range b.channels {
		out.channels[ch] = append([]float64(nil), s...)
	}

	return out
}
