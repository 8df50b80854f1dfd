// Package core holds the small cross-cutting primitives every background
// worker shares: the halt signal and a generic mutex-guarded cell.
package core

import "sync/atomic"

// Signal is a two-variant tag for the shared termination flag. It is
// modeled as a tag rather than a raw bool (spec §9) so a future signal
// (Reindex, Pause, ...) can be added without touching call sites that
// only care about Halt.
type Signal int32

const (
	Nothing Signal = iota
	Halt
)

// HaltFlag is the process-lifetime halt cell every worker polls between
// units of work (one entry, one bucket, or one sleep away from exiting).
type HaltFlag struct {
	v atomic.Int32
}

// Get returns the current signal.
func (f *HaltFlag) Get() Signal {
	return Signal(f.v.Load())
}

// Set stores a new signal.
func (f *HaltFlag) Set(s Signal) {
	f.v.Store(int32(s))
}

// Halted reports whether the flag is currently set to Halt.
func (f *HaltFlag) Halted() bool {
	return f.Get() == Halt
}
