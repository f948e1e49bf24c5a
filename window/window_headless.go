//go:build headless

package window

import (
	"image"

	"github.com/lixenwraith/solo-pong/audio"
	"github.com/lixenwraith/solo-pong/input"
)

// Window is the headless stand-in, it accepts frames and never opens
type Window struct {
	volume *audio.VolumeSwitches
}

// New creates the stand-in
func New(width, height, scale int, title string) *Window {
	return &Window{volume: audio.NewVolumeSwitches(audio.VolumeNormal)}
}

// Available reports whether this build can open a window
func Available() bool { return false }

func (w *Window) SetEncoder(input.Encoder) {}

func (w *Window) Input1() audio.Switch { return w.volume.Input1() }

func (w *Window) Input2() audio.Switch { return w.volume.Input2() }

// Present discards the frame
func (w *Window) Present(*image.RGBA) error { return nil }

// Run fails immediately
func (w *Window) Run() error { return ErrUnavailable }

func (w *Window) Close() {}
