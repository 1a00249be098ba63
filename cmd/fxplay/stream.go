package main

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-fxcore/dsp/processor"
)

const bytesPerSample = 4

// stream renders the test signal through the processor as float32
// little-endian frames. Read runs on the audio device's goroutine.
type stream struct {
	proc     *processor.Processor
	src      *source
	channels int
	block    []float32
}

func newStream(proc *processor.Processor, src *source) *stream {
	cfg := proc.Config()

	return &stream{
		proc:     proc,
		src:      src,
		channels: cfg.Channels,
		block:    make([]float32, cfg.MaxBlockSize*cfg.Channels),
	}
}

func (s *stream) Read(p []byte) (int, error) {
	frameBytes := bytesPerSample * s.channels
	frames := len(p) / frameBytes

	if frames == 0 {
		clear(p)
		return len(p), nil
	}

	maxFrames := len(s.block) / s.channels
	written := 0

	for frames > 0 {
		n := min(frames, maxFrames)
		buf := s.block[:n*s.channels]

		s.src.fill(buf, s.channels)

		if err := s.proc.ProcessInterleaved32(buf); err != nil {
			return written, err
		}

		out := p[written:]
		for i, v := range buf {
			binary.LittleEndian.PutUint32(out[i*bytesPerSample:], math.Float32bits(v))
		}

		written += len(buf) * bytesPerSample
		frames -= n
	}

	return written, nil
}
