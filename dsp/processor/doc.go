// Package processor drives an effect from a host's audio callback.
//
// A Processor owns one Effect and the host configuration it runs under
// (sample rate, maximum block size, channel count). Prepare negotiates the
// channel layout and preallocates scratch storage; after that the Process
// methods validate each block and hand it to the effect without allocating,
// locking or performing I/O.
//
// Parameters are changed from any goroutine through the effect's param.Set.
// The effect reads them once per block.
package processor
