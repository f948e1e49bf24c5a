package hardware

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"github.com/lixenwraith/solo-pong/audio"
	"github.com/lixenwraith/solo-pong/engine"
)

// Piezo drives a buzzer with hardware PWM
type Piezo struct {
	pin   gpio.PinOut
	clock engine.Clock
}

// NewPiezo creates a driver on pin, silenced until the first tone
func NewPiezo(pin gpio.PinOut, clock engine.Clock) (*Piezo, error) {
	if clock == nil {
		clock = engine.NewTimeProvider()
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("hardware: piezo %s: %w", pin, err)
	}
	return &Piezo{pin: pin, clock: clock}, nil
}

// DutyOf converts a duty percentage to the periph representation
func DutyOf(percent int) gpio.Duty {
	percent = min(max(percent, 0), 100)
	return gpio.Duty(int64(gpio.DutyMax) * int64(percent) / 100)
}

// FrequencyOf converts hertz to the periph representation
func FrequencyOf(hz float64) physic.Frequency {
	return physic.Frequency(hz * float64(physic.Hertz))
}

// PlayTone implements audio.ToneDriver
func (p *Piezo) PlayTone(t audio.Tone) error {
	if t.Duration <= 0 {
		return nil
	}
	if err := p.pin.PWM(DutyOf(t.Duty), FrequencyOf(t.Frequency)); err != nil {
		return fmt.Errorf("hardware: piezo pwm: %w", err)
	}
	p.clock.Sleep(t.Duration)
	if err := p.pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("hardware: piezo off: %w", err)
	}
	return nil
}

// Close leaves the pin low
func (p *Piezo) Close() error {
	return p.pin.Out(gpio.Low)
}
