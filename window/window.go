//go:build !headless

package window

import (
	"errors"
	"image"
	"log"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/solo-pong/audio"
	"github.com/lixenwraith/solo-pong/core"
	"github.com/lixenwraith/solo-pong/input"
)

// Window is an ebiten game that shows presented frames and feeds keys to an encoder
type Window struct {
	width, height int
	scale         int
	title         string

	mu     sync.RWMutex
	pixels []byte
	dirty  bool
	img    *ebiten.Image

	encoder input.Encoder
	volume  *audio.VolumeSwitches
	closing atomic.Bool
}

// New creates a window for frames of the given size, scale multiplies the window size
func New(width, height, scale int, title string) *Window {
	if scale < 1 {
		scale = 1
	}
	return &Window{
		width:  width,
		height: height,
		scale:  scale,
		title:  title,
		pixels: make([]byte, width*height*4),
		volume: audio.NewVolumeSwitches(audio.VolumeNormal),
	}
}

// Available reports whether this build can open a window
func Available() bool { return true }

// SetEncoder sets the receiver of knob events, must be called before Run
func (w *Window) SetEncoder(enc input.Encoder) {
	w.encoder = enc
}

// Input1 is the normal-volume switch
func (w *Window) Input1() audio.Switch { return w.volume.Input1() }

// Input2 is the silent switch
func (w *Window) Input2() audio.Switch { return w.volume.Input2() }

// Present implements render.Presenter
func (w *Window) Present(frame *image.RGBA) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	b := frame.Bounds()
	if b.Dx() != w.width || b.Dy() != w.height {
		return errors.New("window: frame size mismatch")
	}
	for y := 0; y < w.height; y++ {
		src := frame.Pix[y*frame.Stride : y*frame.Stride+w.width*4]
		copy(w.pixels[y*w.width*4:], src)
	}
	w.dirty = true
	return nil
}

// Update implements ebiten.Game
func (w *Window) Update() error {
	if w.closing.Load() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		log.Printf("window: volume %s", w.volume.Cycle())
	}
	if w.encoder == nil {
		return nil
	}

	defer core.Guard("window")
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		w.encoder.Rotated(input.CounterClockwise)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		w.encoder.Rotated(input.Clockwise)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.encoder.Clicked()
	}
	return nil
}

// Draw implements ebiten.Game
func (w *Window) Draw(screen *ebiten.Image) {
	if w.img == nil {
		w.img = ebiten.NewImage(w.width, w.height)
	}

	w.mu.Lock()
	if w.dirty {
		w.img.WritePixels(w.pixels)
		w.dirty = false
	}
	w.mu.Unlock()

	screen.DrawImage(w.img, nil)
}

// Layout implements ebiten.Game
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}

// Run blocks on the ebiten main loop until the window is closed
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.width*w.scale, w.height*w.scale)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetRunnableOnUnfocused(true)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Close asks the main loop to exit on its next update
func (w *Window) Close() {
	w.closing.Store(true)
}
