package hardware

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
)

// Drawer is the part of a periph display used for presenting, *ssd1306.Dev satisfies it
type Drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// OLED presents frames on a small monochrome panel, scaling them down to its resolution
type OLED struct {
	mu     sync.Mutex
	dev    Drawer
	scaled *image.RGBA
	halt   func() error
	bus    i2c.BusCloser
}

// NewOLED wraps an opened display
func NewOLED(dev Drawer) *OLED {
	return &OLED{
		dev:    dev,
		scaled: image.NewRGBA(dev.Bounds()),
	}
}

// OpenOLED opens the I²C bus by name ("" picks the first) and an SSD1306 on it
func OpenOLED(busName string) (*OLED, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("hardware: i2c %q: %w", busName, err)
	}
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("hardware: ssd1306: %w", err)
	}
	o := NewOLED(dev)
	o.halt = dev.Halt
	o.bus = bus
	return o, nil
}

// Present implements render.Presenter
func (o *OLED) Present(frame *image.RGBA) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	dst := o.scaled.Bounds()
	draw.NearestNeighbor.Scale(o.scaled, dst, frame, frame.Bounds(), draw.Src, nil)
	if err := o.dev.Draw(dst, o.scaled, dst.Min); err != nil {
		return fmt.Errorf("hardware: oled draw: %w", err)
	}
	return nil
}

// Close blanks the panel and releases the bus
func (o *OLED) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var err error
	if o.halt != nil {
		err = o.halt()
	}
	if o.bus != nil {
		if cerr := o.bus.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
