// Package param implements bounded effect parameters shared between a
// control thread and the audio thread.
//
// Every value lives in an atomic 64-bit word, so the audio thread reads it
// without locking while a UI or automation goroutine writes it. Writes are
// validated against the parameter's Spec and rejected (or clamped, with
// SetClamped) before they become visible; the processing path never sees an
// out-of-range value. Effects take one snapshot of each value at the start
// of a block so a block is always processed with a consistent setting.
//
// A Set also serializes to JSON, which is the extension point for session
// save and restore.
package param
