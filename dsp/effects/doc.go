// Package effects provides the block-level audio effects of the core:
//
//   - Gain: linear scaling of every channel.
//   - Autopanner: sine-swept equal-power stereo panning with a persistent phase.
//   - Distortion: hard clip, exponential soft clip and half-wave rectification
//     with a dry/wet crossfade.
//
// Each effect owns one param.Set. Setters validate and store values
// atomically, so a control goroutine may change parameters while the audio
// goroutine processes; each Process call snapshots every parameter once.
// The processing methods do not allocate, lock or block.
package effects
