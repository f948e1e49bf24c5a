package terminal

import (
	"context"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/solo-pong/audio"
	"github.com/lixenwraith/solo-pong/input"
)

// Keyboard maps terminal keys onto the rotary encoder and the two volume switches
type Keyboard struct {
	screen  tcell.Screen
	encoder input.Encoder
	display *Display
	volume  *audio.VolumeSwitches
}

// NewKeyboard creates a keyboard delivering events to enc, starting at normal volume
func NewKeyboard(screen tcell.Screen, enc input.Encoder, display *Display) *Keyboard {
	return &Keyboard{
		screen:  screen,
		encoder: enc,
		display: display,
		volume:  audio.NewVolumeSwitches(audio.VolumeNormal),
	}
}

// SetEncoder replaces the event receiver, must be called before Run
func (k *Keyboard) SetEncoder(enc input.Encoder) {
	k.encoder = enc
}

// Input1 is the normal-volume switch
func (k *Keyboard) Input1() audio.Switch {
	return k.volume.Input1()
}

// Input2 is the silent switch
func (k *Keyboard) Input2() audio.Switch {
	return k.volume.Input2()
}

// CycleVolume steps to the next volume mode
func (k *Keyboard) CycleVolume() audio.VolumeMode {
	mode := k.volume.Cycle()
	log.Printf("terminal: volume %s", mode)
	return mode
}

// Run polls screen events until a quit key, ctx cancellation or screen shutdown
func (k *Keyboard) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = k.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := k.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if k.Handle(ev) {
			return nil
		}
	}
}

// Handle processes one event and reports whether the user asked to quit
func (k *Keyboard) Handle(ev tcell.Event) (quit bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("terminal: input handler panicked: %v", r)
			quit = false
		}
	}()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyLeft:
			k.encoder.Rotated(input.CounterClockwise)
		case tcell.KeyRight:
			k.encoder.Rotated(input.Clockwise)
		case tcell.KeyEnter:
			k.encoder.Clicked()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case 'h', 'a':
				k.encoder.Rotated(input.CounterClockwise)
			case 'l', 'd':
				k.encoder.Rotated(input.Clockwise)
			case ' ':
				k.encoder.Clicked()
			case 'v', 'V':
				k.CycleVolume()
			}
		}
	case *tcell.EventResize:
		if k.display != nil {
			k.display.Sync()
		}
	}
	return false
}
