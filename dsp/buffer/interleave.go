package buffer

import "fmt"

// Deinterleave splits frame-interleaved src into dst channels.
// len(src) must equal len(dst) * len(dst[0]).
func Deinterleave(dst [][]float64, src []float64) error {
	n, err := frameCount(dst, len(src))
	if err != nil {
		return err
	}

	channels := len(dst)
	for ch, s := range dst {
		for i := range n {
			s[i] = src[i*channels+ch]
		}
	}

	return nil
}

// Interleave writes planar src channels into frame-interleaved dst.
func Interleave(dst []float64, src [][]float64) error {
	n, err := frameCount(src, len(dst))
	if err != nil {
		return err
	}

	channels := len(src)
	for ch, s := range src {
		for i := range n {
			dst[i*channels+ch] = s[i]
		}
	}

	return nil
}

// Deinterleave32 is Deinterleave for float32 host buffers.
func Deinterleave32(dst [][]float64, src []float32) error {
	n, err := frameCount(dst, len(src))
	if err != nil {
		return err
	}

	channels := len(dst)
	for ch, s := range dst {
		for i := range n {
			s[i] = float64(src[i*channels+ch])
		}
	}

	return nil
}

// Interleave32 is Interleave for float32 host buffers.
func Interleave32(dst []float32, src [][]float64) error {
	n, err := frameCount(src, len(dst))
	if err != nil {
		return err
	}

	channels := len(src)
	for ch, s := range src {
		for i := range n {
			dst[i*channels+ch] = float32(s[i])
		}
	}

	return nil
}

func frameCount(planar [][]float64, interleavedLen int) (int, error) {
	if len(planar) == 0 {
		if interleavedLen != 0 {
			return 0, fmt.Errorf("buffer: %d interleaved samples for 0 channels", interleavedLen)
		}

		return 0, nil
	}

	if err := Validate(planar); err != nil {
		return 0, err
	}

	n := len(planar[0])
	if n*len(planar) != interleavedLen {
		return 0, fmt.Errorf("buffer: interleaved length %d does not match %d channels x %d samples",
			interleavedLen, len(planar), n)
	}

	return n, nil
}
