// Command fxplay plays a test signal through an effect on the default audio
// device and lets the keyboard change its parameters while it runs.
//
// Usage:
//
//	fxplay [flags]
//
// Examples:
//
//	fxplay -effect autopanner -set period=1000
//	fxplay -effect distortion -signal saw -set algorithm=SoftClip
//	fxplay -effect gain -state preset.json -duration 5s
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/term"

	"github.com/cwbudde/algo-fxcore/dsp/core"
	"github.com/cwbudde/algo-fxcore/dsp/param"
	"github.com/cwbudde/algo-fxcore/dsp/processor"
	"github.com/cwbudde/algo-fxcore/internal/cliconfig"
)

func main() {
	var sets cliconfig.ParamFlags

	effectName := flag.String("effect", "autopanner", "effect to play (gain, autopanner, distortion)")
	rate := flag.Int("rate", 48000, "sample rate in Hz")
	block := flag.Int("block", 512, "processing block size in frames")
	signal := flag.String("signal", "sine", "test signal: sine, saw or noise")
	freq := flag.Float64("freq", 220, "test signal frequency in Hz")
	amp := flag.Float64("amp", 0.5, "test signal amplitude")
	state := flag.String("state", "", "JSON parameter state file")
	duration := flag.Duration("duration", 0, "stop after this long (0 plays until q)")
	flag.Var(&sets, "set", "parameter override id=value (repeatable)")
	flag.Parse()

	log.SetFlags(log.Ltime)
	log.SetPrefix("fxplay: ")

	wave, err := parseWaveform(*signal)
	if err != nil {
		log.Fatal(err)
	}

	proc, err := processor.DefaultRegistry().NewProcessor(*effectName,
		core.WithSampleRate(float64(*rate)),
		core.WithMaxBlockSize(*block),
		core.WithChannels(2),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := cliconfig.Apply(proc.Params(), *state, sets); err != nil {
		log.Fatal(err)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *rate,
		ChannelCount: proc.Config().Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(2 * *block) * time.Second / time.Duration(*rate),
	})
	if err != nil {
		log.Fatalf("audio: %v", err)
	}
	<-ready

	player := ctx.NewPlayer(newStream(proc, newSource(wave, *freq, *amp, float64(*rate))))
	defer player.Close()

	player.Play()
	log.Printf("playing %s through %s at %d Hz", *signal, proc.Effect().Name(), *rate)

	if err := control(proc.Params(), *duration); err != nil {
		log.Print(err)
	}

	if err := player.Err(); err != nil {
		log.Printf("audio: %v", err)
	}
}

// control runs the keyboard loop when stdin is a terminal and otherwise
// waits for the duration.
func control(params *param.Set, duration time.Duration) error {
	var timeout <-chan time.Time
	if duration > 0 {
		timeout = time.After(duration)
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		if timeout == nil {
			return fmt.Errorf("stdin is not a terminal; use -duration")
		}

		<-timeout

		return nil
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	logger := log.New(crlfWriter{os.Stderr}, log.Prefix(), log.Flags())
	c := newController(params, logger)

	cancel := params.Subscribe(func(ch param.Change) {
		spec := params.Value(ch.ID).Spec()
		logger.Printf("%s: %s -> %s", spec.Name, spec.Format(ch.Old), spec.Format(ch.New))
	})
	defer cancel()

	logger.Print(keyHelp)

	done := make(chan struct{})
	go c.run(os.Stdin, done)

	select {
	case <-done:
	case <-timeout:
	}

	return nil
}
