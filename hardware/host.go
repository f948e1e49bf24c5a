package hardware

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// ErrPinNotFound is returned when a pin name is not known to the host drivers
var ErrPinNotFound = errors.New("hardware: pin not found")

// Init loads the host drivers, must run before any pin or bus lookup
func Init() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("hardware: host init: %w", err)
	}
	return nil
}

// PinByName resolves a GPIO by name, e.g. "GPIO17"
func PinByName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrPinNotFound, name)
	}
	return p, nil
}

// Pins names the GPIOs used by the board
type Pins struct {
	EncoderA string
	EncoderB string
	Button   string
	Volume1  string
	Volume2  string
	Piezo    string
	OLEDBus  string
}

// DefaultPins is the reference wiring
var DefaultPins = Pins{
	EncoderA: "GPIO17",
	EncoderB: "GPIO27",
	Button:   "GPIO22",
	Volume1:  "GPIO5",
	Volume2:  "GPIO6",
	Piezo:    "GPIO18",
	OLEDBus:  "",
}
