// Command fxinfo prints parameters and measured behaviour of the effects.
//
// Usage:
//
//	fxinfo [flags] [effect ...]
//
// Without arguments it prints the parameter table of every effect.
//
// Examples:
//
//	fxinfo -list
//	fxinfo -curve distortion
//	fxinfo -curve -set algorithm=SoftClip -set threshold=0.2 distortion
//	fxinfo -thd -state preset.json distortion
//	fxinfo -panlaw -points 9
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/processor"
	"github.com/cwbudde/algo-fxcore/internal/cliconfig"
)

func main() {
	var sets cliconfig.ParamFlags

	list := flag.Bool("list", false, "list available effects")
	curve := flag.Bool("curve", false, "print the static transfer curve")
	panlaw := flag.Bool("panlaw", false, "print the autopanner pan law over one period")
	thd := flag.Bool("thd", false, "print harmonic content of a processed sine")
	points := flag.Int("points", 11, "rows in -curve and -panlaw tables")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	freq := flag.Float64("freq", 1000, "test tone frequency for -thd (rounded to an FFT bin)")
	amp := flag.Float64("amp", 1, "test tone amplitude for -thd, peak of the -curve sweep")
	size := flag.Int("size", 8192, "FFT size for -thd")
	state := flag.String("state", "", "JSON parameter state file applied to every effect")
	flag.Var(&sets, "set", "parameter override id=value (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fxinfo [flags] [effect ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints parameters and measured behaviour of audio effects.\n")
		fmt.Fprintf(os.Stderr, "Without a mode flag, prints the parameter table.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fxinfo -list\n")
		fmt.Fprintf(os.Stderr, "  fxinfo -curve -set algorithm=SoftClip distortion\n")
		fmt.Fprintf(os.Stderr, "  fxinfo -thd -state preset.json distortion\n")
		fmt.Fprintf(os.Stderr, "  fxinfo -panlaw\n")
	}
	flag.Parse()

	registry := processor.DefaultRegistry()

	if *list {
		for _, name := range registry.Names() {
			fmt.Println(name)
		}

		return
	}

	names := flag.Args()
	if len(names) == 0 {
		names = registry.Names()
		if *panlaw && !*curve && !*thd {
			names = []string{"autopanner"}
		}
	}

	opts := []core.ProcessorOption{
		core.WithSampleRate(*rate),
		core.WithMaxBlockSize(max(*size, *points)),
		core.WithChannels(2),
	}

	failed := false

	for _, name := range names {
		p, err := registry.NewProcessor(strings.ToLower(strings.TrimSpace(name)), opts...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v (use -list to see available)\n", err)
			failed = true

			continue
		}

		if err := cliconfig.Apply(p.Params(), *state, sets); err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", name, err)
			failed = true

			continue
		}

		fmt.Printf("== %s\n", p.Effect().Name())

		switch {
		case *curve || *panlaw || *thd:
			if *curve {
				err = printCurve(os.Stdout, p, *amp, *points)
			}

			if err == nil && *panlaw {
				err = printPanLaw(os.Stdout, p, *points)
			}

			if err == nil && *thd {
				err = printHarmonics(os.Stdout, p, *freq, *amp, *size)
			}
		default:
			err = printParams(os.Stdout, p)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", name, err)
			failed = true
		}

		fmt.Println()
	}

	if failed {
		os.Exit(1)
	}
}
