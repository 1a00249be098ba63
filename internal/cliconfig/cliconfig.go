// Package cliconfig applies command-line parameter settings to an effect.
package cliconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-fxcore/dsp/param"
)

// ParamFlags collects repeated -set id=value arguments. It implements
// flag.Value.
type ParamFlags []string

func (p *ParamFlags) String() string { return strings.Join(*p, ",") }

// Set appends one id=value pair.
func (p *ParamFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected id=value, got %q", v)
	}

	*p = append(*p, v)

	return nil
}

// Apply loads the JSON state file at statePath (if not empty) into params and
// then applies the overrides in order. Parameters the state file does not name
// keep their current value; a state file naming a parameter params lacks is
// rejected. Overrides for IDs params lacks are skipped so one list can be
// shared between effects.
func Apply(params *param.Set, statePath string, overrides []string) error {
	if statePath != "" {
		data, err := os.ReadFile(statePath)
		if err != nil {
			return err
		}

		if err := json.Unmarshal(data, params); err != nil {
			return fmt.Errorf("state %s: %w", statePath, err)
		}
	}

	for _, kv := range overrides {
		id, value, _ := strings.Cut(kv, "=")

		id = strings.TrimSpace(id)
		if params.Value(id) == nil {
			continue
		}

		if err := params.SetString(id, value); err != nil {
			return err
		}
	}

	return nil
}
