package effects

import (
	"fmt"

	"github.com/cwbudde/algo-fxcore/dsp/core"
)

func checkSampleRate(owner string, sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("%s sample rate must be > 0 and finite: %f", owner, sampleRate)
	}

	return nil
}
