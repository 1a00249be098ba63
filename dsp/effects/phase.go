package effects

import (
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// PhaseWrapMode selects how the autopanner keeps its phase bounded.
type PhaseWrapMode int

const (
	// PhaseWrapCycle subtracts 2π whenever the phase completes a cycle.
	// The pan position is continuous across every block.
	PhaseWrapCycle PhaseWrapMode = iota
	// PhaseWrapLegacy resets the phase to 0 at the end of a block once it
	// exceeds the period length in samples. The comparison mixes radians and
	// samples, so the sweep jumps back to the start whenever the reset fires.
	// Kept for presets that depend on that behaviour.
	PhaseWrapLegacy
)

func (m PhaseWrapMode) String() string {
	switch m {
	case PhaseWrapCycle:
		return "cycle"
	case PhaseWrapLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("PhaseWrapMode(%d)", int(m))
	}
}

func validPhaseWrapMode(m PhaseWrapMode) bool {
	return m == PhaseWrapCycle || m == PhaseWrapLegacy
}

// PhaseState is a monotonic phase accumulator in radians.
type PhaseState struct {
	Radians float64
	Mode    PhaseWrapMode
}

// Advance moves the phase forward by step radians.
// step must not exceed 2π.
func (p *PhaseState) Advance(step float64) {
	p.Radians += step
	if p.Mode == PhaseWrapCycle && p.Radians >= twoPi {
		p.Radians -= twoPi
	}
}

// EndBlock applies the block-level wrap rule of PhaseWrapLegacy.
func (p *PhaseState) EndBlock(periodSamples float64) {
	if p.Mode == PhaseWrapLegacy && p.Radians > periodSamples {
		p.Radians = 0
	}
}

// Reset returns the phase to 0.
func (p *PhaseState) Reset() {
	p.Radians = 0
}
