package hardware

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// VolumeSwitch reads a switch that pulls its pin high when selected
type VolumeSwitch struct {
	pin gpio.PinIn
}

// NewVolumeSwitch configures pin as a pulled-down input
func NewVolumeSwitch(pin gpio.PinIn) (*VolumeSwitch, error) {
	if err := pin.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("hardware: volume switch %s: %w", pin, err)
	}
	return &VolumeSwitch{pin: pin}, nil
}

// State implements audio.Switch
func (s *VolumeSwitch) State() bool {
	return s.pin.Read() == gpio.High
}
