package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-fxcore/dsp/buffer"
	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/effects"
	"github.com/cwbudde/algo-fxcore/dsp/param"
	"github.com/cwbudde/algo-fxcore/dsp/processor"
	"github.com/cwbudde/algo-fxcore/measure/harmonics"
)

var errNotAutopanner = errors.New("pan law applies to the autopanner only")

var blocks = buffer.NewPool()

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printParams(w io.Writer, p *processor.Processor) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\tName\tKind\tRange\tDefault\tValue\n")
	fmt.Fprintf(tw, "--\t----\t----\t-----\t-------\t-----\n")

	params := p.Params()
	for _, spec := range params.Specs() {
		value := params.Value(spec.ID).Load()

		rng := fmt.Sprintf("[%g, %g]", spec.Min, spec.Max)
		if spec.Kind == param.KindChoice {
			rng = fmt.Sprint(spec.Choices)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			spec.ID, spec.Name, spec.Kind, rng, spec.Format(spec.Default), spec.Format(value))
	}

	return tw.Flush()
}

// render fills both channels of a pooled stereo block from gen and runs it
// through a freshly reset effect. Callers return the block with blocks.Put.
func render(p *processor.Processor, n int, gen func(i int) float64) (*buffer.SampleBuffer, error) {
	b := blocks.Get(2, n)
	left, right := b.Channel(0), b.Channel(1)

	for i := range n {
		left[i] = gen(i)
		right[i] = left[i]
	}

	p.Reset()

	if err := p.Process(b.Channels()); err != nil {
		blocks.Put(b)
		return nil, err
	}

	return b, nil
}

// printCurve sweeps [-amp, amp] through the effect and prints input against
// both output channels.
func printCurve(w io.Writer, p *processor.Processor, amp float64, points int) error {
	if points < 2 {
		return fmt.Errorf("need at least 2 points: %d", points)
	}

	input := func(i int) float64 {
		return -amp + 2*amp*float64(i)/float64(points-1)
	}

	b, err := render(p, points, input)
	if err != nil {
		return err
	}
	defer blocks.Put(b)

	tw := newTable(w)
	fmt.Fprintf(tw, "Input\tLeft\tRight\n")
	fmt.Fprintf(tw, "-----\t----\t-----\n")

	for i := range points {
		fmt.Fprintf(tw, "%+.4f\t%+.6f\t%+.6f\n", input(i), b.Channel(0)[i], b.Channel(1)[i])
	}

	return tw.Flush()
}

func printPanLaw(w io.Writer, p *processor.Processor, points int) error {
	a, ok := p.Effect().(*effects.Autopanner)
	if !ok {
		return errNotAutopanner
	}

	if points < 1 {
		return fmt.Errorf("need at least 1 point: %d", points)
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Time [ms]\tPhase [rad]\tLeft\tRight\tLeft [dB]\tRight [dB]\tEnergy\n")
	fmt.Fprintf(tw, "---------\t-----------\t----\t-----\t---------\t----------\t------\n")

	for i := range points {
		frac := float64(i) / float64(points)
		phase := 2 * math.Pi * frac
		l, r := effects.PanGains(phase)

		fmt.Fprintf(tw, "%.1f\t%.4f\t%.4f\t%.4f\t%.2f\t%.2f\t%.4f\n",
			frac*a.PeriodMs(), phase, l, r, core.LinearToDB(l), core.LinearToDB(r), l*l+r*r)
	}

	return tw.Flush()
}

func printHarmonics(w io.Writer, p *processor.Processor, freq, amp float64, size int) error {
	rate := p.Config().SampleRate

	bin := math.Round(freq * float64(size) / rate)
	if bin < 1 {
		bin = 1
	}

	freq = bin * rate / float64(size)

	b, err := render(p, size, func(i int) float64 {
		return amp * math.Sin(2*math.Pi*freq*float64(i)/rate)
	})
	if err != nil {
		return err
	}
	defer blocks.Put(b)

	res, err := harmonics.Analyze(b.Channel(0), harmonics.Config{
		SampleRate:  rate,
		FFTSize:     size,
		Fundamental: freq,
	})
	if err != nil {
		return err
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Harmonic\tFreq [Hz]\tLevel\tRel [dB]\n")
	fmt.Fprintf(tw, "--------\t---------\t-----\t--------\n")
	fmt.Fprintf(tw, "1\t%.1f\t%.6f\t%.2f\n", res.FundamentalFreq, res.FundamentalLevel, 0.0)

	for i, level := range res.Harmonics {
		rel := math.Inf(-1)
		if res.FundamentalLevel > 0 {
			rel = core.LinearToDB(level / res.FundamentalLevel)
		}

		fmt.Fprintf(tw, "%d\t%.1f\t%.6f\t%.2f\n", i+2, float64(i+2)*res.FundamentalFreq, level, rel)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "DC %.6f  THD %.4f%% (%.2f dB)  odd %.4f%%  even %.4f%%\n",
		res.DC, 100*res.THD, res.THDdB(), 100*res.OddHD, 100*res.EvenHD)

	return err
}
