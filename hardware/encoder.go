package hardware

import (
	"context"
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/lixenwraith/solo-pong/input"
)

// DefaultPollInterval is fast enough for a hand-turned 20 detent encoder
const DefaultPollInterval = time.Millisecond

// RotaryEncoder samples a quadrature encoder and its push button
// A falling edge on channel A is one detent, channel B gives the direction
type RotaryEncoder struct {
	a, b   gpio.PinIn
	button gpio.PinIn
	sink   input.Encoder

	prevA      gpio.Level
	prevButton gpio.Level
}

// NewRotaryEncoder configures the pins as pulled-up inputs
func NewRotaryEncoder(a, b, button gpio.PinIn, sink input.Encoder) (*RotaryEncoder, error) {
	for _, p := range []gpio.PinIn{a, b, button} {
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("hardware: encoder %s: %w", p, err)
		}
	}
	return &RotaryEncoder{
		a:          a,
		b:          b,
		button:     button,
		sink:       sink,
		prevA:      a.Read(),
		prevButton: button.Read(),
	}, nil
}

// Poll samples the pins once and forwards any detent or press
func (e *RotaryEncoder) Poll() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("hardware: encoder handler panicked: %v", r)
		}
	}()

	a := e.a.Read()
	if e.prevA == gpio.High && a == gpio.Low {
		if e.b.Read() == gpio.High {
			e.sink.Rotated(input.Clockwise)
		} else {
			e.sink.Rotated(input.CounterClockwise)
		}
	}
	e.prevA = a

	btn := e.button.Read()
	if e.prevButton == gpio.High && btn == gpio.Low {
		e.sink.Clicked()
	}
	e.prevButton = btn
}

// Run polls until ctx is done
func (e *RotaryEncoder) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	tk := time.NewTicker(interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C:
			e.Poll()
		}
	}
}
