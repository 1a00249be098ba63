package core

import "fmt"

// ChannelLayout is the range of channel counts an effect can process.
// MaxChannels == 0 means there is no upper bound.
type ChannelLayout struct {
	MinChannels int
	MaxChannels int
}

var (
	// AnyChannels accepts one or more channels.
	AnyChannels = ChannelLayout{MinChannels: 1}
	// StereoOnly accepts exactly two channels.
	StereoOnly = ChannelLayout{MinChannels: 2, MaxChannels: 2}
)

// Supports reports whether a bus with the given channel count can be processed.
func (l ChannelLayout) Supports(channels int) bool {
	if channels < l.MinChannels || channels <= 0 {
		return false
	}

	return l.MaxChannels == 0 || channels <= l.MaxChannels
}

func (l ChannelLayout) String() string {
	switch {
	case l.MaxChannels == 0:
		return fmt.Sprintf("%d+ channels", l.MinChannels)
	case l.MinChannels == l.MaxChannels:
		return fmt.Sprintf("%d channels", l.MinChannels)
	default:
		return fmt.Sprintf("%d-%d channels", l.MinChannels, l.MaxChannels)
	}
}
