// Package buffer provides the planar multichannel sample buffer the effects
// process in place, conversions from and to interleaved host buffers, and a
// pool for offline rendering. DSP code works on raw [][]float64; SampleBuffer
// is a thin, allocation-aware wrapper around that shape.
package buffer
