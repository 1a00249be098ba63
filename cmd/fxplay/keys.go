package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/cwbudde/algo-fxcore/dsp/param"
)

const keyHelp = "keys: 1-9 select parameter, +/- adjust, r reset, p print, ? help, q quit"

// controller maps key presses onto parameter writes. It runs on the control
// goroutine; the audio goroutine only sees the resulting atomic stores.
type controller struct {
	params   *param.Set
	specs    []param.Spec
	selected int
	steps    float64
	log      *log.Logger
}

func newController(params *param.Set, logger *log.Logger) *controller {
	return &controller{
		params: params,
		specs:  params.Specs(),
		steps:  20,
		log:    logger,
	}
}

// handle processes one key and reports whether playback should stop.
func (c *controller) handle(key byte) bool {
	switch {
	case key == 'q' || key == 0x03 || key == 0x1b:
		return true
	case key >= '1' && key <= '9':
		i := int(key - '1')
		if i < len(c.specs) {
			c.selected = i
			c.log.Printf("selected %s", c.describe(i))
		}
	case key == '+' || key == '=':
		c.nudge(1)
	case key == '-' || key == '_':
		c.nudge(-1)
	case key == 'r':
		c.params.Reset()
	case key == 'p':
		for i := range c.specs {
			c.log.Print(c.describe(i))
		}
	case key == '?' || key == 'h':
		c.log.Print(keyHelp)
	}

	return false
}

func (c *controller) nudge(dir float64) {
	if len(c.specs) == 0 {
		return
	}

	spec := c.specs[c.selected]
	v := c.params.Value(spec.ID).Load()

	step := (spec.Max - spec.Min) / c.steps
	if spec.Kind == param.KindChoice {
		step = 1
	}

	if err := c.params.SetClamped(spec.ID, v+dir*step); err != nil {
		c.log.Printf("set %s: %v", spec.ID, err)
	}
}

func (c *controller) describe(i int) string {
	spec := c.specs[i]
	marker := " "

	if i == c.selected {
		marker = "*"
	}

	return fmt.Sprintf("%s%d %s = %s", marker, i+1, spec.Name, spec.Format(c.params.Value(spec.ID).Load()))
}

// run feeds bytes from r into handle until quit or r fails.
func (c *controller) run(r io.Reader, done chan<- struct{}) {
	defer close(done)

	buf := make([]byte, 1)

	for {
		n, err := r.Read(buf)
		if n > 0 && c.handle(buf[0]) {
			return
		}

		if err != nil {
			return
		}
	}
}

// crlfWriter turns LF into CRLF so log lines stay aligned in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(c.w, strings.ReplaceAll(string(p), "\n", "\r\n")); err != nil {
		return 0, err
	}

	return len(p), nil
}
